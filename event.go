// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package xhr

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Client to observe, or extend, the
// lifecycle of each request.
type Event int

const (
	// BeforeOpen identifies the event that occurs before the native
	// request is opened.
	//
	// When Client fires BeforeOpen, the execution's ID, method, URL and
	// merged options are set, but it has not started.
	BeforeOpen Event = iota
	// BeforeSend identifies the event that occurs after the native
	// request is opened and its headers are assigned, just before it is
	// sent.
	BeforeSend
	// AfterLoad identifies the event that occurs when the native request
	// signals load, meaning an HTTP response was received, whatever its
	// status code.
	//
	// When Client fires AfterLoad, the execution's status code and body
	// are set, and its error is set to a *StatusError if the status code
	// is outside the range 200-399.
	AfterLoad
	// AfterError identifies the event that occurs when the native
	// request signals an error, meaning no HTTP response was obtained.
	//
	// When Client fires AfterError, the execution's error is set to a
	// *TransportError.
	AfterError
	// AfterAbort identifies the event that occurs when the context
	// passed to the client is done before the native request signals
	// completion. The native request is aborted right after the
	// AfterAbort and AfterSettle handlers have run.
	//
	// When Client fires AfterAbort, the execution's error is set to a
	// *url.Error wrapping the context's error.
	AfterAbort
	// AfterSettle identifies the event that occurs after the future has
	// been resolved or rejected. It always follows exactly one of
	// AfterLoad, AfterError or AfterAbort.
	//
	// When Client fires AfterSettle, the execution has ended. Waiters
	// on the future are released once the AfterSettle handlers return.
	AfterSettle
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events types as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeOpen",
	"BeforeSend",
	"AfterLoad",
	"AfterError",
	"AfterAbort",
	"AfterSettle",
}

// Events returns a slice containing all events which can occur during a
// request, in the order in which they would occur.
func Events() []Event {
	return []Event{
		BeforeOpen,
		BeforeSend,
		AfterLoad,
		AfterError,
		AfterAbort,
		AfterSettle,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
