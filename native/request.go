// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package native

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"context"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/andybalholm/brotli"
	"github.com/gogama/xhr/request"
	"golang.org/x/net/http/httpguts"
)

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	Do(r *http.Request) (*http.Response, error)
}

// ErrInvalidState is returned (wrapped) when a Request method is called
// in a ready state that does not permit it, for example SetRequestHeader
// before Open or Send after Send.
var ErrInvalidState = errors.New("xhr/native: invalid state")

// acceptEncoding is advertised when a Factory has Compress set.
const acceptEncoding = "gzip, deflate, br"

// A Factory makes native requests that share an HTTPDoer and settings.
// Its zero value is valid and uses http.DefaultClient.
type Factory struct {
	// HTTPDoer sends the HTTP requests. If nil, http.DefaultClient is
	// used.
	HTTPDoer HTTPDoer

	// BaseURL, if set, is used to resolve relative URLs passed to Open,
	// much as a browser resolves them against the document location.
	BaseURL *url.URL

	// Compress makes every request advertise gzip, deflate and brotli
	// support unless the caller sets Accept-Encoding explicitly.
	Compress bool
}

// NewRequest returns a fresh, unopened Request.
func (f *Factory) NewRequest() *Request {
	doer := f.HTTPDoer
	if doer == nil {
		doer = http.DefaultClient
	}
	return &Request{
		doer:     doer,
		base:     f.BaseURL,
		compress: f.Compress,
	}
}

// A Request is a single-use HTTP request primitive modelled on the
// browser XMLHttpRequest object. All methods are safe to call from
// multiple goroutines.
type Request struct {
	doer     HTTPDoer
	base     *url.URL
	compress bool

	mu     sync.Mutex
	state  ReadyState
	gen    uint64
	method string
	url    *url.URL
	async  bool
	header http.Header
	sent   bool
	cancel context.CancelFunc

	status     int
	statusText string
	respHeader http.Header
	response   []byte
	err        error

	onLoad  func()
	onError func()
}

// Open initializes the request with an HTTP method and target URL.
//
// The method must be a valid HTTP token; it is used exactly as given,
// so callers wanting a conventional verb should upper-case it first. The
// URL is resolved against the factory's BaseURL, if any. Opening a
// request that is already in flight aborts it first.
func (r *Request) Open(method, rawURL string, async bool) error {
	if !validMethod(method) {
		return fmt.Errorf("xhr/native: invalid method %q", method)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	if r.base != nil {
		u = r.base.ResolveReference(u)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.abortLocked()
	r.method = method
	r.url = u
	r.async = async
	r.header = make(http.Header)
	r.status = 0
	r.statusText = ""
	r.respHeader = nil
	r.response = nil
	r.err = nil
	r.state = Opened
	return nil
}

// SetRequestHeader adds a request header field. It may only be called
// after Open and before Send. Setting the same name twice sends both
// values.
func (r *Request) SetRequestHeader(name, value string) error {
	if !httpguts.ValidHeaderFieldName(name) {
		return fmt.Errorf("xhr/native: invalid header field name %q", name)
	}
	if !httpguts.ValidHeaderFieldValue(value) {
		return fmt.Errorf("xhr/native: invalid header field value for %q", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != Opened || r.sent {
		return fmt.Errorf("%w: cannot set header %q in state %s", ErrInvalidState, name, r.state)
	}
	r.header.Add(name, value)
	return nil
}

// Send starts the HTTP exchange. It may only be called once per Open.
//
// The body is converted with request.EncodeBody, and its suggested
// content type is used unless a Content-Type header was set. As in a
// browser, the body is ignored for GET and HEAD requests.
//
// In asynchronous mode Send returns as soon as the exchange has been
// started. In synchronous mode it returns after the load or error
// callback has run. Either way, failures of the exchange itself are
// reported through the error callback, not the return value.
func (r *Request) Send(body interface{}) error {
	r.mu.Lock()
	if r.state != Opened || r.sent {
		state := r.state
		r.mu.Unlock()
		return fmt.Errorf("%w: cannot send in state %s", ErrInvalidState, state)
	}
	b, contentType, err := request.EncodeBody(body)
	if err != nil {
		r.mu.Unlock()
		return err
	}
	if r.method == http.MethodGet || r.method == http.MethodHead {
		b, contentType = nil, ""
	}
	if contentType != "" && r.header.Get("Content-Type") == "" {
		r.header.Set("Content-Type", contentType)
	}
	if r.compress && r.header.Get("Accept-Encoding") == "" {
		r.header.Set("Accept-Encoding", acceptEncoding)
	}

	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, r.method, r.url.String(), nil)
	if err != nil {
		cancel()
		r.mu.Unlock()
		return err
	}
	req.Header = r.header.Clone()
	if len(b) > 0 {
		req.Body = ioutil.NopCloser(bytes.NewReader(b))
		req.GetBody = func() (io.ReadCloser, error) {
			return ioutil.NopCloser(bytes.NewReader(b)), nil
		}
		req.ContentLength = int64(len(b))
	}
	if host := r.header.Get("Host"); host != "" {
		req.Host = host
	}

	r.sent = true
	r.cancel = cancel
	gen := r.gen
	async := r.async
	r.mu.Unlock()

	if async {
		go r.exchange(gen, req, cancel)
	} else {
		r.exchange(gen, req, cancel)
	}
	return nil
}

// Abort cancels the request. If an exchange is in flight it is
// cancelled and neither callback will fire for it. The request returns
// to the Unsent state and may be opened again.
func (r *Request) Abort() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.abortLocked()
}

func (r *Request) abortLocked() {
	r.gen++
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	if r.sent && r.state != Done {
		r.status = 0
		r.statusText = ""
		r.respHeader = nil
		r.response = nil
	}
	r.sent = false
	r.state = Unsent
}

func (r *Request) exchange(gen uint64, req *http.Request, cancel context.CancelFunc) {
	defer cancel()

	resp, err := r.doer.Do(req)
	if err != nil {
		r.fail(gen, wrapErr(req, err))
		return
	}

	r.mu.Lock()
	if gen != r.gen {
		r.mu.Unlock()
		_ = resp.Body.Close()
		return
	}
	r.status = resp.StatusCode
	r.statusText = resp.Status
	r.respHeader = resp.Header.Clone()
	r.state = HeadersReceived
	r.mu.Unlock()

	r.advance(gen, Loading)
	b, decoded, err := readBody(resp)
	if err != nil {
		r.fail(gen, wrapErr(req, err))
		return
	}

	r.mu.Lock()
	if gen != r.gen {
		r.mu.Unlock()
		return
	}
	if decoded {
		r.respHeader.Del("Content-Encoding")
		r.respHeader.Del("Content-Length")
	}
	r.response = b
	r.state = Done
	r.cancel = nil
	f := r.onLoad
	r.mu.Unlock()

	if f != nil {
		f()
	}
}

func (r *Request) advance(gen uint64, state ReadyState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen == r.gen {
		r.state = state
	}
}

func (r *Request) fail(gen uint64, err error) {
	r.mu.Lock()
	if gen != r.gen {
		r.mu.Unlock()
		return
	}
	r.status = 0
	r.statusText = ""
	r.respHeader = nil
	r.response = nil
	r.err = err
	r.state = Done
	r.cancel = nil
	f := r.onError
	r.mu.Unlock()

	if f != nil {
		f()
	}
}

// readBody reads the whole response body, decoding any content coding
// the transport left in place. It reports whether it decoded.
func readBody(resp *http.Response) ([]byte, bool, error) {
	defer func() {
		_ = resp.Body.Close()
	}()

	var rd io.Reader
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, false, err
		}
		defer gz.Close()
		rd = gz
	case "deflate":
		zr, err := zlib.NewReader(resp.Body)
		if err != nil {
			return nil, false, err
		}
		defer zr.Close()
		rd = zr
	case "br":
		rd = brotli.NewReader(resp.Body)
	default:
		b, err := ioutil.ReadAll(resp.Body)
		return b, false, err
	}

	b, err := ioutil.ReadAll(rd)
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// OnLoad sets the function called when a response has been fully
// received. It replaces any previously set load callback.
func (r *Request) OnLoad(f func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onLoad = f
}

// OnError sets the function called when the exchange fails without a
// response. It replaces any previously set error callback.
func (r *Request) OnError(f func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onError = f
}

// ReadyState returns the current state of the request.
func (r *Request) ReadyState() ReadyState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Status returns the HTTP status code of the response, or zero if no
// response has been received.
func (r *Request) Status() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// StatusText returns the HTTP status line text of the response, for
// example "200 OK", or "" if no response has been received.
func (r *Request) StatusText() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.statusText
}

// Response returns the response body. It is nil until the request is
// Done.
func (r *Request) Response() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.response
}

// ResponseText returns the response body as a string.
func (r *Request) ResponseText() string {
	return string(r.Response())
}

// ResponseHeader returns the first value of the named response header,
// or "" if there is none or no response has been received.
func (r *Request) ResponseHeader(name string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.respHeader.Get(name)
}

// AllResponseHeaders returns a copy of the response headers, or nil if
// no response has been received.
func (r *Request) AllResponseHeaders() http.Header {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.respHeader.Clone()
}

// Err returns the error behind the most recent error callback, or nil.
// It always has type *url.Error.
func (r *Request) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func wrapErr(req *http.Request, err error) error {
	if _, ok := err.(*url.Error); ok {
		return err
	}
	op := req.Method
	if len(op) > 1 {
		op = op[:1] + strings.ToLower(op[1:])
	}
	return &url.Error{
		Op:  op,
		URL: req.URL.String(),
		Err: err,
	}
}

func validMethod(method string) bool {
	return method != "" && strings.IndexFunc(method, isNotToken) == -1
}

func isNotToken(r rune) bool {
	return !httpguts.IsTokenRune(r)
}
