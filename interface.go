// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xhr

import (
	"context"
	"net/http"

	"github.com/gogama/xhr/request"
)

// Requester is the interface that wraps the basic Request method.
//
// Request issues an HTTP request with any method token and returns a
// future for its outcome. Client implements the Requester interface, and
// any other Requester implementation must behave substantially the same
// as Client.Request.
//
// Any Requester can be converted into an Executor via the Inflate
// function.
type Requester interface {
	Request(ctx context.Context, method, url string, o *request.Options) (*Future, error)
}

// Getter is the interface that wraps the basic Get method.
//
// Any Requester can be used to emulate a Getter via the Get function.
type Getter interface {
	Get(ctx context.Context, url string, o *request.Options) (*Future, error)
}

// Header is the interface that wraps the basic Head method.
//
// Any Requester can be used to emulate a Header via the Head function.
type Header interface {
	Head(ctx context.Context, url string, o *request.Options) (*Future, error)
}

// Poster is the interface that wraps the basic Post method.
//
// Any Requester can be used to emulate a Poster via the Post function.
type Poster interface {
	Post(ctx context.Context, url string, o *request.Options) (*Future, error)
}

// Putter is the interface that wraps the basic Put method.
type Putter interface {
	Put(ctx context.Context, url string, o *request.Options) (*Future, error)
}

// Patcher is the interface that wraps the basic Patch method.
type Patcher interface {
	Patch(ctx context.Context, url string, o *request.Options) (*Future, error)
}

// Deleter is the interface that wraps the basic Delete method.
type Deleter interface {
	Delete(ctx context.Context, url string, o *request.Options) (*Future, error)
}

// IdleCloser is the interface that wraps the basic CloseIdleConnections
// method.
//
// If the underlying implementation supports it, CloseIdleConnections
// closes any idle which were previously connected from previous
// requests but are now sitting idle in a "keep-alive" state. It does
// not interrupt any connections currently in use.
//
// If the underlying implementation does not support this ability,
// CloseIdleConnections does nothing.
type IdleCloser interface {
	CloseIdleConnections()
}

// Executor is the interface that groups the basic Request, verb and
// CloseIdleConnections methods.
//
// Any Requester can be converted into an Executor via the Inflate
// function.
type Executor interface {
	Requester
	Getter
	Header
	Poster
	Putter
	Patcher
	Deleter
	IdleCloser
}

// Get uses the specified Requester to issue a GET to the specified URL.
func Get(ctx context.Context, r Requester, url string, o *request.Options) (*Future, error) {
	return r.Request(ctx, http.MethodGet, url, o)
}

// Head uses the specified Requester to issue a HEAD to the specified URL.
func Head(ctx context.Context, r Requester, url string, o *request.Options) (*Future, error) {
	return r.Request(ctx, http.MethodHead, url, o)
}

// Post uses the specified Requester to issue a POST to the specified
// URL.
func Post(ctx context.Context, r Requester, url string, o *request.Options) (*Future, error) {
	return r.Request(ctx, http.MethodPost, url, o)
}

// Put uses the specified Requester to issue a PUT to the specified URL.
func Put(ctx context.Context, r Requester, url string, o *request.Options) (*Future, error) {
	return r.Request(ctx, http.MethodPut, url, o)
}

// Patch uses the specified Requester to issue a PATCH to the specified
// URL.
func Patch(ctx context.Context, r Requester, url string, o *request.Options) (*Future, error) {
	return r.Request(ctx, http.MethodPatch, url, o)
}

// Delete uses the specified Requester to issue a DELETE to the specified
// URL.
func Delete(ctx context.Context, r Requester, url string, o *request.Options) (*Future, error) {
	return r.Request(ctx, http.MethodDelete, url, o)
}

// Inflate converts any non-nil Requester into an Executor. This may be
// helpful for interop across library boundaries, i.e. if code that only
// has access to a Requester needs to call a function that requires an
// Executor.
func Inflate(r Requester) Executor {
	if r == nil {
		panic("xhr: nil requester")
	}

	if e, ok := r.(Executor); ok {
		return e
	}

	return inflated{r}
}

type inflated struct {
	requester Requester
}

func (i inflated) Request(ctx context.Context, method, url string, o *request.Options) (*Future, error) {
	return i.requester.Request(ctx, method, url, o)
}

func (i inflated) Get(ctx context.Context, url string, o *request.Options) (*Future, error) {
	return Get(ctx, i.requester, url, o)
}

func (i inflated) Head(ctx context.Context, url string, o *request.Options) (*Future, error) {
	return Head(ctx, i.requester, url, o)
}

func (i inflated) Post(ctx context.Context, url string, o *request.Options) (*Future, error) {
	return Post(ctx, i.requester, url, o)
}

func (i inflated) Put(ctx context.Context, url string, o *request.Options) (*Future, error) {
	return Put(ctx, i.requester, url, o)
}

func (i inflated) Patch(ctx context.Context, url string, o *request.Options) (*Future, error) {
	return Patch(ctx, i.requester, url, o)
}

func (i inflated) Delete(ctx context.Context, url string, o *request.Options) (*Future, error) {
	return Delete(ctx, i.requester, url, o)
}

func (i inflated) CloseIdleConnections() {
	if ic, ok := i.requester.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}
