// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xhr

import (
	"fmt"
	"net/http"

	"github.com/gogama/xhr/request"
	"github.com/gogama/xhr/transient"
)

// A StatusError rejects a future whose native request loaded with a
// status code outside the range 200-399.
//
// Its payload is the response body. Compare TransportError, whose payload
// is the status code: the asymmetry is deliberate and mirrors the
// information each completion signal actually carries.
type StatusError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int
	// Body is the fully-read response body.
	Body request.Body
}

func (e *StatusError) Error() string {
	if text := http.StatusText(e.StatusCode); text != "" {
		return fmt.Sprintf("xhr: status %d %s", e.StatusCode, text)
	}
	return fmt.Sprintf("xhr: status %d", e.StatusCode)
}

// A TransportError rejects a future whose native request signalled an
// error, meaning no HTTP response was obtained.
//
// Its payload is the status the native request reported, usually zero.
// The response body is never part of a TransportError.
type TransportError struct {
	// Status is the status code reported by the native request when it
	// signalled the error.
	Status int
	// Err is the underlying cause, if the native request can report one.
	// For the default native request it is always a *url.Error.
	Err error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return "xhr: transport error: " + e.Err.Error()
	}
	return fmt.Sprintf("xhr: transport error (status %d)", e.Status)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Category returns the transience category of the underlying cause.
func (e *TransportError) Category() transient.Category {
	return transient.Categorize(e.Err)
}

// Payload returns the payload of a rejection error: the response body
// for a *StatusError and the status code for a *TransportError. For any
// other error, including cancellation, it returns nil and false.
func Payload(err error) (interface{}, bool) {
	switch x := err.(type) {
	case *StatusError:
		return x.Body, true
	case *TransportError:
		return x.Status, true
	default:
		return nil, false
	}
}
