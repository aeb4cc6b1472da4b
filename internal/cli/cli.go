// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package cli implements the xhr command, which issues a single request
// through an xhr.Client and prints the outcome.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/gogama/xhr"
	"github.com/gogama/xhr/logging"
	"github.com/gogama/xhr/request"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Exit codes returned by ExitCode.
const (
	ExitSuccess = 0
	// ExitRejected means the request was sent and its future rejected.
	ExitRejected = 1
	// ExitConfigError means the config file could not be loaded.
	ExitConfigError = 3
	// ExitUsageError means the command line was invalid or the request
	// could not be started.
	ExitUsageError = 64
)

// A RejectedError is returned by the command when the future of the
// request rejects. The outcome has already been printed.
type RejectedError struct {
	Err error
}

func (e *RejectedError) Error() string {
	return e.Err.Error()
}

func (e *RejectedError) Unwrap() error {
	return e.Err
}

type configError struct {
	err error
}

func (e *configError) Error() string {
	return e.err.Error()
}

func (e *configError) Unwrap() error {
	return e.err
}

// ExitCode maps an error returned by the command to a process exit code.
func ExitCode(err error) int {
	var rejected *RejectedError
	var cfgErr *configError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &rejected):
		return ExitRejected
	case errors.As(err, &cfgErr):
		return ExitConfigError
	default:
		return ExitUsageError
	}
}

type options struct {
	headers  []string
	query    []string
	data     string
	json     bool
	config   string
	filter   string
	timeout  time.Duration
	compress bool
	verbose  int
	noColor  bool

	doer   xhr.HTTPDoer
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewCommand returns the root xhr command. The body of the outcome is
// written to stdout; the status line, and any logging, to stderr. If doer
// is nil, http.DefaultClient is used.
func NewCommand(doer xhr.HTTPDoer, stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	o := &options{
		doer:   doer,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}
	cmd := &cobra.Command{
		Use:   "xhr [flags] METHOD URL",
		Short: "Issue one HTTP request and print the response body",
		Long: `xhr sends a single HTTP request with any method and prints the
response body to standard output and a status line to standard error.

A response with a status code in the range 200-399 exits with status 0.
Any other response, or a transport error, exits with status 1.

Examples:
  xhr get https://api.example.com/users -q name=x
  xhr post https://api.example.com/users -H 'Content-Type: application/json' -d '{"name":"x"}'
  xhr put https://api.example.com/counter -d 7
  xhr get users --config api.yaml --filter 'items.#.name'`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd.Context(), args[0], args[1])
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringArrayVarP(&o.headers, "header", "H", nil, "Request header as 'Name: value' (repeatable)")
	flags.StringArrayVarP(&o.query, "query", "q", nil, "Query parameter as key=value (repeatable, order kept)")
	flags.StringVarP(&o.data, "data", "d", "", "Request body; @file reads a file and @- reads standard input")
	flags.BoolVar(&o.json, "json", false, "Parse --data as JSON and send it as application/json")
	flags.StringVar(&o.config, "config", "", "YAML request profile (baseURL, headers, query, compress, timeout)")
	flags.StringVar(&o.filter, "filter", "", "Print only the value at this gjson path of the response body")
	flags.DurationVar(&o.timeout, "timeout", 0, "Abort the request after this long (e.g. 5s); 0 means no limit")
	flags.BoolVar(&o.compress, "compress", false, "Request and decode gzip, deflate and brotli responses")
	flags.CountVarP(&o.verbose, "verbose", "v", "Log request events to standard error (-v info, -vv debug)")
	flags.BoolVar(&o.noColor, "no-color", false, "Disable colored output")
	return cmd
}

func (o *options) run(ctx context.Context, method, target string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := &Config{}
	if o.config != "" {
		var err error
		cfg, err = LoadConfig(o.config)
		if err != nil {
			return &configError{err}
		}
	}

	req, err := o.requestOptions(cfg)
	if err != nil {
		return err
	}

	timeout := cfg.Timeout
	if o.timeout > 0 {
		timeout = o.timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var base *url.URL
	if cfg.BaseURL != "" {
		base, err = url.Parse(cfg.BaseURL)
		if err != nil {
			return &configError{fmt.Errorf("xhr/cli: invalid baseURL: %w", err)}
		}
	}

	handlers := &xhr.HandlerGroup{}
	if o.verbose > 0 {
		logger := logrus.New()
		logger.SetOutput(o.stderr)
		logger.SetLevel(logrus.InfoLevel)
		if o.verbose > 1 {
			logger.SetLevel(logrus.DebugLevel)
		}
		logging.Install(handlers, logger)
	}
	var status int
	var elapsed time.Duration
	handlers.PushBack(xhr.AfterSettle, xhr.HandlerFunc(func(_ xhr.Event, e *request.Execution) {
		status = e.StatusCode
		elapsed = e.Duration()
	}))

	client := &xhr.Client{
		HTTPDoer: o.doer,
		BaseURL:  base,
		Compress: cfg.Compress || o.compress,
		Handlers: handlers,
	}
	f, err := client.Request(ctx, method, target, &req)
	if err != nil {
		return err
	}
	body, err := f.Wait(context.Background())

	p := newPrinter(o.stdout, o.stderr, o.noColor)
	var statusErr *xhr.StatusError
	switch {
	case err == nil:
		p.status(status, elapsed)
		if err = p.body(body, o.filter); err != nil {
			return err
		}
		return nil
	case errors.As(err, &statusErr):
		p.status(statusErr.StatusCode, elapsed)
		if perr := p.body(statusErr.Body, ""); perr != nil {
			return perr
		}
	default:
		p.failure(err, elapsed)
	}
	return &RejectedError{err}
}

func (o *options) requestOptions(cfg *Config) (request.Options, error) {
	header := make(map[string]string, len(cfg.Headers)+len(o.headers))
	for name, value := range cfg.Headers {
		header[http.CanonicalHeaderKey(name)] = value
	}
	for _, h := range o.headers {
		i := strings.IndexByte(h, ':')
		if i <= 0 {
			return request.Options{}, fmt.Errorf("xhr/cli: invalid header %q, want 'Name: value'", h)
		}
		header[http.CanonicalHeaderKey(strings.TrimSpace(h[:i]))] = strings.TrimSpace(h[i+1:])
	}

	query := append(request.Query(nil), cfg.Query...)
	for _, kv := range o.query {
		i := strings.IndexByte(kv, '=')
		if i <= 0 {
			return request.Options{}, fmt.Errorf("xhr/cli: invalid query parameter %q, want key=value", kv)
		}
		query.Add(kv[:i], kv[i+1:])
	}

	data, err := o.body()
	if err != nil {
		return request.Options{}, err
	}
	if o.json && data != nil {
		var v interface{}
		if err := json.Unmarshal([]byte(data.(string)), &v); err != nil {
			return request.Options{}, fmt.Errorf("xhr/cli: --data is not valid JSON: %w", err)
		}
		data = jsonValue{v}
		if _, ok := header["Content-Type"]; !ok {
			header["Content-Type"] = request.JSON
		}
	}

	return request.Options{
		Header: header,
		Query:  query,
		Data:   data,
	}, nil
}

func (o *options) body() (interface{}, error) {
	switch {
	case o.data == "":
		return nil, nil
	case o.data == "@-":
		b, err := ioutil.ReadAll(o.stdin)
		if err != nil {
			return nil, err
		}
		return string(b), nil
	case strings.HasPrefix(o.data, "@"):
		b, err := ioutil.ReadFile(o.data[1:])
		if err != nil {
			return nil, err
		}
		return string(b), nil
	default:
		return o.data, nil
	}
}

// jsonValue makes scalar JSON documents, such as 7 or "x", go out as
// JSON rather than as plain text.
type jsonValue struct {
	v interface{}
}

func (j jsonValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(j.v)
}
