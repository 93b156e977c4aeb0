// Copyright 2021 The pipex Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the core types Config (describes a request)
and Response (describes the result of a successful request), together
with the Adapter interface which connects the request pipeline to a
transport, and TransportError, which adapters report on failure.

A Config is a closed record of request parameters:

	cfg := &request.Config{
		Method:  "post",
		URL:     "/widgets",
		BaseURL: "https://api.example.com",
		Data:    map[string]string{"name": "sprocket"},
	}

Configs are combined with Merge, which is how a client applies its
default settings to each request. Defaults returns the standard default
settings.

A Response is produced by an Adapter, and then passed through the
configured response transforms and response interceptors before it is
returned to the caller:

	resp, err := client.Do(ctx, cfg)
	...
	fmt.Println(resp.Status, resp.Data)
*/
package request
