// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the value types passed through a single xhr
request: Options (what the caller asks for), Body (what comes back) and
Execution (the per-call record handed to event handlers), together with
the small pure helpers that turn Options into native request calls.

Options are merged over empty defaults on every call, so a caller's
Options value is never retained or mutated:

	o := request.Merge(&request.Options{
		Header: map[string]string{"Accept": "application/json"},
		Query:  request.Query{{"page", 2}, {"q", "a b"}},
	})
	target := "https://example.com/items" + request.BuildQuery(o.Query)
	// https://example.com/items?page=2&q=a%20b

BuildQuery encodes keys and values the way a browser's
encodeURIComponent does, and yields the empty string (not "?") for an
empty query. AssignHeaders copies a header map onto anything with a
SetRequestHeader method. EncodeBody converts arbitrary request data into
wire bytes and a default content type.
*/
package request
