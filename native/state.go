// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package native

// A ReadyState is the lifecycle state of a Request.
type ReadyState int

const (
	// Unsent means the request has been created, or aborted, but not
	// opened.
	Unsent ReadyState = iota
	// Opened means Open has been called. Headers may be set and Send may
	// be called; the state stays Opened while the request is on the wire.
	Opened
	// HeadersReceived means the response status and headers arrived.
	HeadersReceived
	// Loading means the response body is being read.
	Loading
	// Done means the exchange is over, either because the body was read
	// completely or because it failed.
	Done
)

var readyStateNames = []string{
	"Unsent",
	"Opened",
	"HeadersReceived",
	"Loading",
	"Done",
}

// String returns the name of the ready state.
func (s ReadyState) String() string {
	if s < 0 || int(s) >= len(readyStateNames) {
		return "ReadyState(?)"
	}
	return readyStateNames[s]
}
