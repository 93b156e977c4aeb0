// Copyright 2021 The pipex Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package restyadapter provides a request.Adapter which sends requests
// with a resty client.
//
// The resty client's own settings, such as its base URL, default
// headers, and retry policy, apply in addition to the request config.
package restyadapter

import (
	"context"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"
	"github.com/gogama/pipex/cancel"
	"github.com/gogama/pipex/request"
	"github.com/gogama/pipex/urlutil"
)

// An Adapter sends requests with a resty client. Its zero value uses a
// package-wide default resty client.
type Adapter struct {
	// Client sends the requests. If nil, a default client shared by
	// all zero-value adapters is used.
	Client *resty.Client
}

var (
	defaultClient     *resty.Client
	defaultClientOnce sync.Once
)

// New returns an Adapter which sends requests with client.
func New(client *resty.Client) *Adapter {
	return &Adapter{Client: client}
}

// Adapt sends the request described by c and returns the response.
// The response data is the raw response body as a []byte.
func (a *Adapter) Adapt(ctx context.Context, c *request.Config) (*request.Response, error) {
	u := urlutil.BuildURL(c.URL, c.Params, c.ParamsSerializer)

	body, err := request.BodyBytes(c.Data)
	if err != nil {
		return nil, request.NewTransportError(c, u, err)
	}

	if c.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, c.Timeout)
		defer cancelTimeout()
	}
	ctx, abort := cancel.Bind(ctx, c.CancelToken)
	defer abort()

	req := a.client().R().
		SetContext(ctx).
		SetDoNotParseResponse(true)
	for name, values := range c.Header {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	if len(body) > 0 {
		req.SetBody(body)
	}
	if c.Auth != nil {
		req.SetBasicAuth(c.Auth.Username, c.Auth.Password)
	}

	resp, err := req.Execute(strings.ToUpper(c.Method), u)
	if err != nil {
		if r := c.CancelToken.Reason(); r != nil {
			return nil, r
		}
		te := request.NewTransportError(c, u, err)
		te.Request = req.RawRequest
		return nil, te
	}
	raw := resp.RawBody()
	defer func() {
		_ = raw.Close()
	}()

	b, err := request.ReadBody(raw, c.MaxContentLength)
	if err != nil {
		te := request.NewTransportError(c, u, err)
		te.Request = req.RawRequest
		return nil, te
	}

	r := &request.Response{
		Data:       b,
		Status:     resp.StatusCode(),
		StatusText: statusText(resp),
		Header:     resp.Header(),
		Config:     c,
		Request:    req.RawRequest,
	}
	return request.Settle(r, u)
}

func (a *Adapter) client() *resty.Client {
	if a.Client == nil {
		defaultClientOnce.Do(func() {
			defaultClient = resty.New()
		})
		return defaultClient
	}

	return a.Client
}

func statusText(resp *resty.Response) string {
	s := resp.Status()
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[i+1:]
	}
	return s
}
