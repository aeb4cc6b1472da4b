// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xhr

import (
	"context"
	"sync"

	"github.com/gogama/xhr/request"
)

// A Future is the eventual outcome of a request. It settles exactly once,
// either resolving with the response body or rejecting with an error, and
// never changes afterwards.
//
// A Future is safe for concurrent use by multiple goroutines.
type Future struct {
	mu   sync.Mutex
	done chan struct{}
	body request.Body
	err  error
	hook settleHook
}

// settleHook observes a settlement while the future's lock is held,
// before waiters are released.
type settleHook func(evt Event, status int, body request.Body, err error)

func newFuture(hook settleHook) *Future {
	return &Future{
		done: make(chan struct{}),
		hook: hook,
	}
}

// Done returns a channel that is closed when the future settles.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the future settles or ctx is done, whichever happens
// first. The context bounds only the wait: if it ends first, Wait returns
// ctx.Err() and the request carries on regardless.
//
// If the future resolved, Wait returns the response body and a nil
// error. If it rejected, Wait returns a nil body and the rejection error,
// which is a *StatusError, a *TransportError, or a *url.Error if the
// request's own context ended first.
func (f *Future) Wait(ctx context.Context) (request.Body, error) {
	select {
	case <-f.done:
		return f.body, f.err
	default:
	}

	select {
	case <-f.done:
		return f.body, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Result returns the outcome of the future without blocking. The bool
// result reports whether the future has settled; if it is false, the body
// and error are both nil.
func (f *Future) Result() (request.Body, bool, error) {
	select {
	case <-f.done:
		return f.body, true, f.err
	default:
		return nil, false, nil
	}
}

// settle resolves the future if err is nil, and rejects it otherwise. It
// reports whether this call settled the future; calls after the first
// have no effect.
func (f *Future) settle(evt Event, status int, body request.Body, err error) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	select {
	case <-f.done:
		return false
	default:
	}

	if f.hook != nil {
		f.hook(evt, status, body, err)
	}
	if err == nil {
		f.body = body
	}
	f.err = err
	close(f.done)
	return true
}

// Listen registers one load callback and one error callback on r and
// returns a future that settles when either fires. Any callbacks
// previously set on r are replaced.
//
// On load, the future resolves with r.Response() if r.Status() is in the
// range 200-399, and rejects with a *StatusError carrying the response
// body otherwise. On error, it rejects with a *TransportError carrying
// r.Status(). Signals after the first are ignored.
//
// Listen does not send r and never times out. A native request which
// never signals leaves its future unsettled forever.
func Listen(r NativeRequest) *Future {
	f := newFuture(nil)
	listen(r, f)
	return f
}

func listen(r NativeRequest, f *Future) {
	r.OnLoad(func() {
		status := r.Status()
		body := request.Body(r.Response())
		if status >= 200 && status < 400 {
			f.settle(AfterLoad, status, body, nil)
		} else {
			f.settle(AfterLoad, status, body, &StatusError{StatusCode: status, Body: body})
		}
	})
	r.OnError(func() {
		status := r.Status()
		f.settle(AfterError, status, nil, &TransportError{Status: status, Err: nativeErr(r)})
	})
}
