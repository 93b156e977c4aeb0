// Copyright 2021 The pipex Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package pipex

import (
	"context"

	"github.com/gogama/pipex/request"
)

// Doer is the interface that wraps the basic Do method.
//
// Do runs a request config through a request pipeline and returns the
// final response (and error, if any). Client implements the Doer
// interface, and any other Doer implementation must behave
// substantially the same as Client.Do.
//
// Any Doer can be converted into an Executor via the Inflate function.
type Doer interface {
	Do(ctx context.Context, c *request.Config) (*request.Response, error)
}

// Getter is the interface that wraps the basic Get method.
//
// Get issues a GET to the specified URL and returns the final response
// (and error, if any). Client implements the Getter interface.
//
// Any Doer can be used to emulate a Getter via the Get function.
type Getter interface {
	Get(ctx context.Context, url string, c *request.Config) (*request.Response, error)
}

// Deleter is the interface that wraps the basic Delete method.
//
// Any Doer can be used to emulate a Deleter via the Delete function.
type Deleter interface {
	Delete(ctx context.Context, url string, c *request.Config) (*request.Response, error)
}

// Header is the interface that wraps the basic Head method.
//
// Any Doer can be used to emulate a Header via the Head function.
type Header interface {
	Head(ctx context.Context, url string, c *request.Config) (*request.Response, error)
}

// Optioner is the interface that wraps the basic Options method.
//
// Any Doer can be used to emulate an Optioner via the Options function.
type Optioner interface {
	Options(ctx context.Context, url string, c *request.Config) (*request.Response, error)
}

// Poster is the interface that wraps the basic Post method.
//
// Post issues a POST to the specified URL with data as the request
// data and returns the final response (and error, if any). Client
// implements the Poster interface, and any other Poster implementation
// must behave substantially the same as Client.Post.
//
// Any Doer can be used to emulate a Poster via the Post function.
type Poster interface {
	Post(ctx context.Context, url string, data interface{}, c *request.Config) (*request.Response, error)
}

// Putter is the interface that wraps the basic Put method.
//
// Any Doer can be used to emulate a Putter via the Put function.
type Putter interface {
	Put(ctx context.Context, url string, data interface{}, c *request.Config) (*request.Response, error)
}

// Patcher is the interface that wraps the basic Patch method.
//
// Any Doer can be used to emulate a Patcher via the Patch function.
type Patcher interface {
	Patch(ctx context.Context, url string, data interface{}, c *request.Config) (*request.Response, error)
}

// IdleCloser is the interface that wraps the basic CloseIdleConnections
// method.
//
// If the underlying implementation supports it, CloseIdleConnections
// closes any connections which were previously connected from previous
// requests but are now sitting idle in a "keep-alive" state. It does
// not interrupt any connections currently in use.
//
// If the underlying implementation does not support this ability,
// CloseIdleConnections does nothing.
type IdleCloser interface {
	CloseIdleConnections()
}

// Executor is the interface that groups the basic Do, Get, Delete,
// Head, Options, Post, Put, Patch, and CloseIdleConnections methods.
//
// Any Doer can be converted into an Executor via the Inflate function.
type Executor interface {
	Doer
	Getter
	Deleter
	Header
	Optioner
	Poster
	Putter
	Patcher
	IdleCloser
}

// Get uses the specified Doer to issue a GET to the specified URL,
// using the same policies as d.Do. The config c may be nil and is not
// modified.
func Get(ctx context.Context, d Doer, url string, c *request.Config) (*request.Response, error) {
	return d.Do(ctx, target(c, "get", url))
}

// Delete uses the specified Doer to issue a DELETE to the specified
// URL, using the same policies as d.Do.
func Delete(ctx context.Context, d Doer, url string, c *request.Config) (*request.Response, error) {
	return d.Do(ctx, target(c, "delete", url))
}

// Head uses the specified Doer to issue a HEAD to the specified URL,
// using the same policies as d.Do.
func Head(ctx context.Context, d Doer, url string, c *request.Config) (*request.Response, error) {
	return d.Do(ctx, target(c, "head", url))
}

// Options uses the specified Doer to issue an OPTIONS to the specified
// URL, using the same policies as d.Do.
func Options(ctx context.Context, d Doer, url string, c *request.Config) (*request.Response, error) {
	return d.Do(ctx, target(c, "options", url))
}

// Post uses the specified Doer to issue a POST to the specified URL,
// with data as the request data, using the same policies as d.Do. The
// config c may be nil and is not modified.
func Post(ctx context.Context, d Doer, url string, data interface{}, c *request.Config) (*request.Response, error) {
	return d.Do(ctx, withData(target(c, "post", url), data))
}

// Put uses the specified Doer to issue a PUT to the specified URL,
// with data as the request data, using the same policies as d.Do.
func Put(ctx context.Context, d Doer, url string, data interface{}, c *request.Config) (*request.Response, error) {
	return d.Do(ctx, withData(target(c, "put", url), data))
}

// Patch uses the specified Doer to issue a PATCH to the specified URL,
// with data as the request data, using the same policies as d.Do.
func Patch(ctx context.Context, d Doer, url string, data interface{}, c *request.Config) (*request.Response, error) {
	return d.Do(ctx, withData(target(c, "patch", url), data))
}

// Inflate converts any non-nil Doer into an Executor. This may be
// helpful for interop across library boundaries, i.e. if code that only
// has access to a Doer needs to call a function that requires an
// Executor.
func Inflate(d Doer) Executor {
	if d == nil {
		panic("pipex: nil doer")
	}

	if e, ok := d.(Executor); ok {
		return e
	}

	return inflated{d}
}

func target(c *request.Config, method, url string) *request.Config {
	c = c.Clone()
	c.Method = method
	c.URL = url
	return c
}

func withData(c *request.Config, data interface{}) *request.Config {
	c.Data = data
	return c
}

type inflated struct {
	doer Doer
}

func (i inflated) Do(ctx context.Context, c *request.Config) (*request.Response, error) {
	return i.doer.Do(ctx, c)
}

func (i inflated) Get(ctx context.Context, url string, c *request.Config) (*request.Response, error) {
	return Get(ctx, i.doer, url, c)
}

func (i inflated) Delete(ctx context.Context, url string, c *request.Config) (*request.Response, error) {
	return Delete(ctx, i.doer, url, c)
}

func (i inflated) Head(ctx context.Context, url string, c *request.Config) (*request.Response, error) {
	return Head(ctx, i.doer, url, c)
}

func (i inflated) Options(ctx context.Context, url string, c *request.Config) (*request.Response, error) {
	return Options(ctx, i.doer, url, c)
}

func (i inflated) Post(ctx context.Context, url string, data interface{}, c *request.Config) (*request.Response, error) {
	return Post(ctx, i.doer, url, data, c)
}

func (i inflated) Put(ctx context.Context, url string, data interface{}, c *request.Config) (*request.Response, error) {
	return Put(ctx, i.doer, url, data, c)
}

func (i inflated) Patch(ctx context.Context, url string, data interface{}, c *request.Config) (*request.Response, error) {
	return Patch(ctx, i.doer, url, data, c)
}

func (i inflated) CloseIdleConnections() {
	if ic, ok := i.doer.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}
