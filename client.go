// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xhr

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gogama/xhr/native"
	"github.com/gogama/xhr/request"
	"github.com/google/uuid"
)

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	Do(r *http.Request) (*http.Response, error)
}

var emptyHandlers = HandlerGroup{}

// A Client issues HTTP requests through single-use native requests and
// returns a Future for each one. Its zero value is a valid configuration.
//
// The zero value client creates native requests from package native,
// sends them with http.DefaultClient (from net/http), and runs no event
// handlers.
//
// Every call to a Client method builds its own merged options, native
// request and future, so a Client is safe for concurrent use by multiple
// goroutines provided its fields are not modified while in use.
//
// A Client does not interpret the request body, retry, or time out. The
// body given in request.Options.Data is passed to the native request's
// Send method untouched, and the future settles when the native request
// signals completion. To bound the lifetime of a request, pass a context
// with a deadline: if it ends before the future settles, the future is
// rejected and the native request aborted.
type Client struct {
	// HTTPDoer specifies the mechanics of sending HTTP requests and
	// receiving responses on behalf of the default native requests.
	//
	// If HTTPDoer is nil, http.DefaultClient from the standard net/http
	// package is used. HTTPDoer is ignored if NewNative is set.
	HTTPDoer HTTPDoer
	// BaseURL, if set, resolves relative request URLs for the default
	// native requests. It is ignored if NewNative is set.
	BaseURL *url.URL
	// Compress makes the default native requests advertise, and decode,
	// gzip, deflate and brotli content codings. It is ignored if
	// NewNative is set.
	Compress bool
	// NewNative, if set, creates the native request for each call.
	// It must return a fresh, unopened request every time.
	NewNative func() NativeRequest
	// Handlers allows custom handler chains to be invoked when
	// designated events occur during a request.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup
}

// Request issues an HTTP request with an arbitrary method and returns a
// future for its outcome. It never blocks waiting for the response.
//
// The method is upper-cased and must then be a valid HTTP token, so
// Request(ctx, "any", ...) sends the method ANY. The options are merged
// with the defaults (see request.Merge); o may be nil. The query built
// from the merged options is appended to url verbatim, so url should not
// already contain a query string.
//
// Request returns an error, and no future, if the request cannot be
// started: an invalid method, URL or header, a body the native request
// cannot encode, or a context that is already done. Once a future is
// returned, every further failure is reported by rejecting it.
//
// If ctx ends before the future settles, the future is rejected with a
// *url.Error wrapping ctx.Err() and the native request is aborted if it
// implements Aborter.
func (c *Client) Request(ctx context.Context, method, url string, o *request.Options) (*Future, error) {
	if ctx == nil {
		return nil, errors.New("xhr: nil context")
	}

	method = strings.ToUpper(method)
	m := request.Merge(o)
	target := url + request.BuildQuery(m.Query)
	if err := ctx.Err(); err != nil {
		return nil, urlErrorWrap(method, target, err)
	}

	handlers := c.Handlers
	if handlers == nil {
		handlers = &emptyHandlers
	}

	e := &request.Execution{
		ID:      uuid.New(),
		Method:  method,
		URL:     target,
		Options: m,
	}
	handlers.run(BeforeOpen, e)
	e.Start = time.Now()

	r := c.newNative()
	if err := r.Open(method, target, true); err != nil {
		return nil, err
	}
	if err := request.AssignHeaders(r, m.Header); err != nil {
		return nil, err
	}

	f := newFuture(func(evt Event, status int, body request.Body, err error) {
		e.StatusCode = status
		e.Body = body
		e.Err = err
		handlers.run(evt, e)
		e.End = time.Now()
		handlers.run(AfterSettle, e)
	})
	listen(r, f)

	handlers.run(BeforeSend, e)
	if err := r.Send(m.Data); err != nil {
		return nil, err
	}

	if ctx.Done() != nil {
		go watch(ctx, r, f, method, target)
	}

	return f, nil
}

// watch rejects f and aborts r if ctx ends before f settles.
func watch(ctx context.Context, r NativeRequest, f *Future, method, target string) {
	select {
	case <-f.Done():
	case <-ctx.Done():
		if f.settle(AfterAbort, 0, nil, urlErrorWrap(method, target, ctx.Err())) {
			if a, ok := r.(Aborter); ok {
				a.Abort()
			}
		}
	}
}

// Get issues a GET to the specified URL. Any Data in o is ignored by
// the default native request, as in a browser.
func (c *Client) Get(ctx context.Context, url string, o *request.Options) (*Future, error) {
	return Get(ctx, c, url, o)
}

// Head issues a HEAD to the specified URL.
func (c *Client) Head(ctx context.Context, url string, o *request.Options) (*Future, error) {
	return Head(ctx, c, url, o)
}

// Post issues a POST to the specified URL with o.Data as the body.
func (c *Client) Post(ctx context.Context, url string, o *request.Options) (*Future, error) {
	return Post(ctx, c, url, o)
}

// Put issues a PUT to the specified URL with o.Data as the body.
func (c *Client) Put(ctx context.Context, url string, o *request.Options) (*Future, error) {
	return Put(ctx, c, url, o)
}

// Patch issues a PATCH to the specified URL with o.Data as the body.
func (c *Client) Patch(ctx context.Context, url string, o *request.Options) (*Future, error) {
	return Patch(ctx, c, url, o)
}

// Delete issues a DELETE to the specified URL.
func (c *Client) Delete(ctx context.Context, url string, o *request.Options) (*Future, error) {
	return Delete(ctx, c, url, o)
}

// CloseIdleConnections invokes the same method on the client's
// underlying HTTPDoer.
//
// If the HTTPDoer has no CloseIdleConnections method, this method does
// nothing. For example, the http.Client type forwards the call to its
// Transport, but only if the Transport itself has a CloseIdleConnections
// method (otherwise it does nothing).
func (c *Client) CloseIdleConnections() {
	doer := c.doer()
	if ic, ok := doer.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

func (c *Client) doer() HTTPDoer {
	if c.HTTPDoer == nil {
		return http.DefaultClient
	}

	return c.HTTPDoer
}

func (c *Client) newNative() NativeRequest {
	if c.NewNative != nil {
		return c.NewNative()
	}

	f := native.Factory{
		HTTPDoer: c.doer(),
		BaseURL:  c.BaseURL,
		Compress: c.Compress,
	}
	return f.NewRequest()
}

func urlErrorWrap(method, target string, err error) error {
	if _, ok := err.(*url.Error); ok {
		return err
	}

	return &url.Error{
		Op:  urlErrorOp(method),
		URL: target,
		Err: err,
	}
}

// urlErrorOp is lifted verbatim from net/http/client.go
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
