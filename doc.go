// Copyright 2021 The pipex Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package pipex provides an HTTP client which runs every request through
a composable pipeline of interceptors, data transforms, and a pluggable
transport adapter.

Create a Client to begin making requests.

	client := &pipex.Client{}
	resp, err := client.Get(ctx, "https://www.example.com/users", nil)
	...
	resp, err := client.Post(ctx, "https://www.example.com/users",
		map[string]string{"name": "Ada"}, nil)

Every request is described by a request.Config. The config passed to a
call is merged over the client's defaults, which by default send an
Accept header, encode structured request data as JSON, decode JSON
response data, and treat any status outside 200-299 as an error:

	client := &pipex.Client{
		Defaults: request.Defaults(),
	}
	client.Defaults.BaseURL = "https://api.example.com"
	client.Defaults.Timeout = 10 * time.Second

For control over how requests are sent, use a custom adapter. Package
httpadapter sends requests with any net/http style doer, and package
restyadapter sends them with a resty client:

	client := &pipex.Client{
		Adapter: httpadapter.New(&http.Client{...}),
	}

To observe or modify requests and responses, install interceptors. They
run in registration order and may be ejected at any time without
affecting requests already in flight:

	h := client.Interceptors.Request.Use(
		func(ctx context.Context, c *request.Config) (*request.Config, error) {
			c.Header.Set("Authorization", "Bearer "+token)
			return c, nil
		}, nil)
	...
	client.Interceptors.Request.Eject(h)

Package interceptors contains ready-made interceptors for request IDs
and structured logging.

To cancel a request, give it a cancel token:

	token, cancelFunc := cancel.WithCancel()
	go func() {
		<-done
		cancelFunc("operation abandoned")
	}()
	resp, err := client.Get(ctx, "/slow", &request.Config{CancelToken: token})
	if cancel.IsCancel(err) {
		...
	}

Package pipex provides basic interfaces for each method of the client
(Doer, Getter, Deleter, Header, Optioner, Poster, Putter, Patcher, and
IdleCloser); a combined interface that composes all the basic methods
(Executor); and utility functions for working with a Doer (Inflate,
Get, Delete, Head, Options, Post, Put, and Patch).
*/
package pipex
