// Copyright 2021 The pipex Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package pipex

import (
	"context"
	"net/http"
	"strings"

	"github.com/gogama/pipex/adapter/httpadapter"
	"github.com/gogama/pipex/interceptor"
	"github.com/gogama/pipex/request"
	"github.com/gogama/pipex/urlutil"
)

var defaultAdapter = httpadapter.New(nil)

// Interceptors holds a client's request and response interceptor
// registries.
type Interceptors struct {
	// Request interceptors run, in registration order, before the
	// request is dispatched. They receive and return the request
	// config.
	Request interceptor.Registry[*request.Config]
	// Response interceptors run, in registration order, after the
	// request is dispatched. They receive and return the response.
	Response interceptor.Registry[*request.Response]
}

// A Client is an HTTP client which runs every request through a
// pipeline of interceptors around a pluggable transport adapter. Its
// zero value is a valid configuration.
//
// The zero value client uses request.Defaults as its default config,
// an httpadapter.Adapter wrapping http.DefaultClient (from net/http) as
// its adapter, and has no interceptors.
//
// Client is safe for concurrent use by multiple goroutines, including
// while interceptors are being registered or ejected. A Client must not
// be copied after first use.
//
// Each request executes a pipeline built from:
//
// • the active request interceptors, in registration order;
//
// • the dispatch step, which applies the base URL, runs the request
// transforms, flattens the headers, calls the adapter, and runs the
// response transforms; and
//
// • the active response interceptors, in registration order.
//
// Every stage receives the outcome of the stage before it. A success
// goes to the stage's success handler. A failure goes to its failure
// handler, or passes through unchanged if it has none. The outcome of
// the last stage is the result of the request.
type Client struct {
	// Defaults is merged under the config of every request, as if by
	// request.Merge.
	//
	// If Defaults is nil, request.Defaults() is used. To use no
	// defaults at all, set Defaults to &request.Config{}.
	Defaults *request.Config
	// Adapter sends requests whose config does not name an adapter.
	//
	// If Adapter is nil, an httpadapter.Adapter wrapping
	// http.DefaultClient is used.
	Adapter request.Adapter
	// Interceptors holds the request and response interceptors.
	Interceptors Interceptors
}

// Do executes a request and returns the response, after running it
// through the request interceptors, dispatch step, and response
// interceptors installed on the client.
//
// The config cfg is first merged over the client's defaults; cfg itself
// is never modified. Request interceptors always receive a config with
// a non-nil Header. Do returns an error without running the pipeline if
// the merged config has an invalid method or header.
//
// An error is returned if the pipeline's final outcome is a failure:
//
// • a *cancel.Cancel error if the config's cancel token was cancelled
// before the adapter was called, or before the response was
// transformed;
//
// • a *request.TransportError if the adapter failed, which has a
// non-nil Response if the server responded with a status rejected by
// the config's ValidateStatus; or
//
// • any error returned by a transform or interceptor, unchanged.
//
// The interceptors which run are those active when Do is called.
// Interceptors registered or ejected afterwards do not affect the
// in-flight request.
func (c *Client) Do(ctx context.Context, cfg *request.Config) (*request.Response, error) {
	merged := request.Merge(c.defaults(), cfg)
	if err := merged.Normalize(); err != nil {
		return nil, err
	}
	if merged.Header == nil {
		merged.Header = make(http.Header)
	}

	ch := c.buildChain(dispatcher{adapter: c.adapter()})
	return ch.run(ctx, merged)
}

// Request executes a request for url with the given config, which may
// be nil. It is equivalent to Do with cfg's URL replaced by url.
func (c *Client) Request(ctx context.Context, url string, cfg *request.Config) (*request.Response, error) {
	cfg = cfg.Clone()
	cfg.URL = url
	return c.Do(ctx, cfg)
}

// ResolveURI returns the URL a request made with cfg would use, with
// its params serialized into the query string, but without the base
// URL. It does not run the pipeline or send anything.
func (c *Client) ResolveURI(cfg *request.Config) string {
	merged := request.Merge(c.defaults(), cfg)
	u := urlutil.BuildURL(merged.URL, merged.Params, merged.ParamsSerializer)
	return strings.TrimPrefix(u, "?")
}

// Get issues a GET to the specified URL, using the same policies
// followed by Do. The config may be nil.
func (c *Client) Get(ctx context.Context, url string, cfg *request.Config) (*request.Response, error) {
	return Get(ctx, c, url, cfg)
}

// Delete issues a DELETE to the specified URL, using the same policies
// followed by Do. The config may be nil.
func (c *Client) Delete(ctx context.Context, url string, cfg *request.Config) (*request.Response, error) {
	return Delete(ctx, c, url, cfg)
}

// Head issues a HEAD to the specified URL, using the same policies
// followed by Do. The config may be nil.
func (c *Client) Head(ctx context.Context, url string, cfg *request.Config) (*request.Response, error) {
	return Head(ctx, c, url, cfg)
}

// Options issues an OPTIONS to the specified URL, using the same
// policies followed by Do. The config may be nil.
func (c *Client) Options(ctx context.Context, url string, cfg *request.Config) (*request.Response, error) {
	return Options(ctx, c, url, cfg)
}

// Post issues a POST to the specified URL with data as the request
// data, using the same policies followed by Do. The config may be nil.
//
// With the default request transform, data may be a string, []byte,
// or io.Reader, which are sent as is; url.Values, which is sent as a
// form; or any other value, which is sent as JSON.
func (c *Client) Post(ctx context.Context, url string, data interface{}, cfg *request.Config) (*request.Response, error) {
	return Post(ctx, c, url, data, cfg)
}

// Put issues a PUT to the specified URL with data as the request
// data, using the same policies followed by Do. The config may be nil.
func (c *Client) Put(ctx context.Context, url string, data interface{}, cfg *request.Config) (*request.Response, error) {
	return Put(ctx, c, url, data, cfg)
}

// Patch issues a PATCH to the specified URL with data as the request
// data, using the same policies followed by Do. The config may be nil.
func (c *Client) Patch(ctx context.Context, url string, data interface{}, cfg *request.Config) (*request.Response, error) {
	return Patch(ctx, c, url, data, cfg)
}

// CloseIdleConnections invokes the same method on the client's
// adapter.
//
// If the adapter has no CloseIdleConnections method, this method does
// nothing. Adapters named in individual request configs are not
// affected.
func (c *Client) CloseIdleConnections() {
	if ic, ok := c.adapter().(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

func (c *Client) defaults() *request.Config {
	if c.Defaults == nil {
		return request.Defaults()
	}

	return c.Defaults
}

func (c *Client) adapter() request.Adapter {
	if c.Adapter == nil {
		return defaultAdapter
	}

	return c.Adapter
}
