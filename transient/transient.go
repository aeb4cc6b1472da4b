// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"context"
	"errors"
	"syscall"
)

// A Category is the transience category of an error reported by a
// native request, as returned by Categorize.
//
// The category Not means the error is not transient: issuing the same
// request again is unlikely to have a different outcome. Every other
// category describes a condition that may clear up by itself, so a
// caller that wants to try again has some prospect of success.
type Category int

const (
	// Not indicates a nil error or any non-transient error.
	Not Category = iota
	// Timeout indicates a client-side timeout.
	//
	// Categorize returns Timeout if the error or any of its wrapped
	// causes has a Timeout method that reports true, or is
	// context.DeadlineExceeded.
	Timeout
	// Canceled indicates the request was abandoned because the caller's
	// context was canceled.
	Canceled
	// ConnRefused indicates the remote host refused the connection
	// (syscall.ECONNREFUSED), which often happens while a service is
	// starting or restarting.
	ConnRefused
	// ConnReset indicates the remote host reset a previously active TCP
	// connection (syscall.ECONNRESET).
	ConnReset
)

var categoryNames = []string{
	"Not",
	"Timeout",
	"Canceled",
	"ConnRefused",
	"ConnReset",
}

// String returns the name of the category.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "Category(?)"
	}
	return categoryNames[c]
}

// Categorize returns the transience category of err, looking through
// wrapped causes as well as err itself. A nil error produces Not.
//
// Categorize never consults a Temporary method, as the semantics of
// Temporary are not well defined.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout
	}

	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Timeout
	}

	if errors.Is(err, context.Canceled) {
		return Canceled
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ECONNRESET:
			return ConnReset
		case syscall.ECONNREFUSED:
			return ConnRefused
		}
	}

	return Not
}

type hasTimeout interface {
	Timeout() bool
}
