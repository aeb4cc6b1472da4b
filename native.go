// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xhr

import (
	"github.com/gogama/xhr/native"
	"github.com/gogama/xhr/request"
)

// A NativeRequest is the single-use asynchronous HTTP primitive a Client
// drives, modelled on the browser XMLHttpRequest object. The concrete
// implementation in package native is used by default, but any type with
// the same contract can be plugged in through Client.NewNative.
//
// A NativeRequest signals completion exactly once, by invoking either the
// load callback (an HTTP response was received, whatever its status) or
// the error callback (no response was obtained). Callbacks may be invoked
// on any goroutine, including from within Send.
type NativeRequest interface {
	request.HeaderSetter

	// Open initializes the request with a method token and target URL.
	Open(method, url string, async bool) error
	// Send starts the exchange with the given body, which is passed
	// through untouched.
	Send(body interface{}) error
	// Status returns the HTTP status code, or zero if there is none.
	Status() int
	// Response returns the response body.
	Response() []byte
	// OnLoad sets the load callback.
	OnLoad(f func())
	// OnError sets the error callback.
	OnError(f func())
}

// An Aborter is a NativeRequest that can cancel an in-flight exchange.
// When the context of a request is done before the future settles, the
// Client aborts the native request if it implements Aborter.
type Aborter interface {
	Abort()
}

// errReporter is implemented by native requests that can explain an
// error signal, such as *native.Request.
type errReporter interface {
	Err() error
}

var _ interface {
	NativeRequest
	Aborter
	errReporter
} = (*native.Request)(nil)

func nativeErr(r NativeRequest) error {
	if er, ok := r.(errReporter); ok {
		return er.Err()
	}
	return nil
}
