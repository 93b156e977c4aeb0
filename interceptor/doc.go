// Copyright 2021 The pipex Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package interceptor provides Registry, an ordered collection of
interceptor handler pairs which a pipex.Client consults each time it
builds a request pipeline.

An interceptor is a pair of functions: a success handler, which is
called with the value settled by the previous pipeline stage, and an
optional failure handler, which is called with the error settled by the
previous stage. Either handler may transform the value, recover from a
failure by returning a value, or fail by returning an error.

Register an interceptor with Use, which returns a Handle. Later, remove
the interceptor with Eject:

	h := client.Interceptors.Request.Use(
		func(ctx context.Context, cfg *request.Config) (*request.Config, error) {
			cfg.Header.Set("Authorization", "Bearer "+token)
			return cfg, nil
		}, nil)
	...
	client.Interceptors.Request.Eject(h)

Handles are never reused. Ejecting an interceptor leaves a tombstone in
its slot, so every handle handed out by a registry remains valid, and
unique, for the registry's lifetime.
*/
package interceptor
