// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package native provides the default native request primitive used by
the xhr client: an XMLHttpRequest look-alike implemented on top of any
HTTP client with a net/http compatible Do method.

A Request follows the familiar open, set headers, send lifecycle and
reports completion through exactly one of two callbacks:

	r := (&native.Factory{}).NewRequest()
	r.OnLoad(func() { fmt.Println(r.Status(), r.ResponseText()) })
	r.OnError(func() { fmt.Println("failed:", r.Err()) })
	if err := r.Open("GET", "https://example.com", true); err != nil {
		...
	}
	if err := r.Send(nil); err != nil {
		...
	}

The load callback fires whenever an HTTP response was received and its
body read completely, whatever the status code. The error callback fires
when no response could be obtained, in which case Status is zero and Err
describes the failure. Neither fires after Abort.

In asynchronous mode Send returns immediately and the callbacks run on
a goroutine owned by the Request. In synchronous mode Send performs the
whole exchange, including the callback, before returning.
*/
package native
