// Copyright 2021 The pipex Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import "context"

// An Adapter sends a request over a transport and returns the
// response. The Adapter is the only component of the request pipeline
// that does I/O.
//
// The Config given to an Adapter is finalized: its URL already
// includes any BaseURL, its Header is flattened, and its Data has been
// through the request transforms. An Adapter is still responsible for
// Params, Timeout, Auth, MaxContentLength, and ValidateStatus.
//
// If the request fails after a response was received, for example
// because ValidateStatus rejected the status, the Adapter should
// return a *TransportError whose Response is set. An Adapter should
// stop waiting when ctx is done or when the config's CancelToken is
// cancelled.
//
// Implementations of Adapter must be safe for concurrent use by
// multiple goroutines.
type Adapter interface {
	Adapt(ctx context.Context, c *Config) (*Response, error)
}

// The AdapterFunc type is an adapter to allow the use of ordinary
// functions as transport adapters.
type AdapterFunc func(context.Context, *Config) (*Response, error)

// Adapt calls f(ctx, c).
func (f AdapterFunc) Adapt(ctx context.Context, c *Config) (*Response, error) {
	return f(ctx, c)
}
