// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package xhr provides a small HTTP client that wraps a single-use,
callback-based request primitive, modelled on the browser XMLHttpRequest,
and hands back a Future for each request.

Create a Client to begin making requests. Each call returns immediately.

	client := &xhr.Client{}
	f, err := client.Get(ctx, "https://www.example.com/users",
		&request.Options{Query: request.Query{{Key: "name", Value: "x"}}})
	...
	body, err := f.Wait(ctx)

Any method token can be used through Request. It is upper-cased before it
is sent, and the body in Options.Data reaches the native request as is:

	f, err := client.Request(ctx, "report", "https://www.example.com/",
		&request.Options{
			Header: map[string]string{"Content-Type": "application/json"},
			Data:   7,
		})

A future resolves with the response body when the native request loads
with a status code in the range 200-399. Otherwise it rejects:

  - with a *StatusError when the response loaded with any other status
    code. Its payload is the response body;

  - with a *TransportError when the native request signalled an error.
    Its payload is the reported status code, not a body;

  - with a *url.Error wrapping the context's error when the context
    passed to the client ended first.

Use errors.As, or Payload, to tell them apart.

For control over how the default native requests send HTTP requests and
receive HTTP responses, use a custom HTTPDoer. For example, use a GoLang
standard HTTP client:

	doer := &http.Client{
		..., // See package "net/http" for detailed documentation
	}
	client := &xhr.Client{
		HTTPDoer: doer,
	}

To hook into the lifecycle of each request, install a handler into the
appropriate handler chain. Package logging provides a ready-made handler
that logs every event with logrus.

	handlers := &xhr.HandlerGroup{}
	handlers.PushBack(xhr.AfterSettle, xhr.HandlerFunc(
		func(_ xhr.Event, e *request.Execution) {
			log.Printf("%s %s took %s", e.Method, e.URL, e.Duration())
		}),
	)
	client := &xhr.Client{
		Handlers: handlers,
	}

Package xhr provides basic interfaces for each method of the client
(Requester, Getter, Header, Poster, Putter, Patcher, Deleter and
IdleCloser); a combined interface that composes all the basic methods
(Executor); and utility functions for working with a Requester (Inflate,
Get, Head, Post, Put, Patch and Delete).
*/
package xhr
