// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"time"

	"github.com/gogama/xhr/transient"
	"github.com/google/uuid"
)

// An Execution records the progress of a single request issued by the
// xhr client, from the moment the native request is opened until the
// returned future settles.
//
// Event handlers receive the Execution of the request they observe.
// They may store their own data with SetValue and read it back with
// Value, but should treat the exported fields as read-only: the client
// owns them and updates them as the request progresses.
type Execution struct {
	// ID uniquely identifies the execution. It is useful for correlating
	// the log lines or metrics emitted by event handlers.
	ID uuid.UUID

	// Method is the upper-cased HTTP method token sent to the native
	// request.
	Method string

	// URL is the request target handed to the native request, including
	// the query string built from Options.Query.
	URL string

	// Options are the effective, merged options of the request.
	Options Options

	// Start is the time the execution started, just before the native
	// request was opened.
	Start time.Time

	// End is the time the future settled. It contains the zero value
	// until then.
	End time.Time

	// StatusCode is the HTTP status reported by the native request when
	// it signalled completion. It is zero until then, and remains zero
	// if the native request reports a transport error.
	StatusCode int

	// Body is the response body the future resolved with, or the body
	// carried by a *StatusError rejection. It is nil otherwise.
	Body Body

	// Err is the error the future was rejected with. It is nil while the
	// request is in flight and if the future resolved.
	Err error

	data context.Context
}

// Duration returns the duration of the execution.
//
// If the execution has not yet started, the duration is zero. If the
// execution has ended, the duration is End minus Start. Otherwise, it is
// the current time minus Start.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return time.Duration(0)
	} else if !e.Ended() {
		return time.Since(e.Start)
	}

	return e.End.Sub(e.Start)
}

// Started indicates whether the execution has started.
func (e *Execution) Started() bool {
	return e.Start != (time.Time{})
}

// Ended indicates whether the execution has ended, meaning the future
// has settled and there will be no further changes to the execution.
func (e *Execution) Ended() bool {
	return e.End != (time.Time{})
}

// Timeout indicates whether Err is a timeout, for example because the
// deadline of the caller's context expired or the underlying HTTP
// client gave up waiting.
func (e *Execution) Timeout() bool {
	return transient.Categorize(e.Err) == transient.Timeout
}

// SetValue allows event handlers to store arbitrary data in the
// execution.
//
// The key must follow the same rules as the key parameter in
// context.WithValue: it may not be nil, it must be comparable, and it
// should not be a built-in type, to avoid collisions between different
// handlers.
func (e *Execution) SetValue(key, value interface{}) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}

	e.data = context.WithValue(ctx, key, value)
}

// Value returns the data value associated with this execution for key,
// or nil if there is no value associated with key.
func (e *Execution) Value(key interface{}) interface{} {
	ctx := e.data
	if ctx == nil {
		return nil
	}

	return ctx.Value(key)
}
