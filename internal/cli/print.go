// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fatih/color"
	"github.com/gogama/xhr"
	"github.com/gogama/xhr/request"
)

type printer struct {
	stdout io.Writer
	stderr io.Writer
	ok     *color.Color
	warn   *color.Color
	fail   *color.Color
}

func newPrinter(stdout, stderr io.Writer, noColor bool) *printer {
	p := &printer{
		stdout: stdout,
		stderr: stderr,
		ok:     color.New(color.FgGreen, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		fail:   color.New(color.FgRed, color.Bold),
	}
	if noColor {
		p.ok.DisableColor()
		p.warn.DisableColor()
		p.fail.DisableColor()
	}
	return p
}

// status prints the status line of a loaded response.
func (p *printer) status(code int, elapsed time.Duration) {
	c := p.ok
	switch {
	case code >= 500 || code < 200:
		c = p.fail
	case code >= 400:
		c = p.warn
	}
	line := fmt.Sprintf("%d", code)
	if text := http.StatusText(code); text != "" {
		line += " " + text
	}
	_, _ = c.Fprintln(p.stderr, line+" ("+elapsed.Round(time.Millisecond).String()+")")
}

// failure prints the status line of a request that produced no response.
func (p *printer) failure(err error, elapsed time.Duration) {
	var transportErr *xhr.TransportError
	var urlErr *url.Error
	label := "error"
	switch {
	case errors.As(err, &transportErr):
		label = "transport error [" + transportErr.Category().String() + "]"
	case errors.As(err, &urlErr):
		label = "aborted"
	}
	_, _ = p.fail.Fprintln(p.stderr, label+": "+err.Error()+" ("+elapsed.Round(time.Millisecond).String()+")")
}

// body prints the response body, or the value at the gjson path filter.
func (p *printer) body(b request.Body, filter string) error {
	if filter == "" {
		_, err := p.stdout.Write(b)
		if err == nil && len(b) > 0 && b[len(b)-1] != '\n' {
			_, err = io.WriteString(p.stdout, "\n")
		}
		return err
	}
	r := b.Get(filter)
	if !r.Exists() {
		return fmt.Errorf("xhr/cli: filter %q matched nothing", filter)
	}
	_, err := fmt.Fprintln(p.stdout, r.String())
	return err
}
