// Copyright 2021 The pipex Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package httpadapter provides a request.Adapter which sends requests
// using the GoLang standard net/http client, or any other HTTPDoer.
package httpadapter

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gogama/pipex/cancel"
	"github.com/gogama/pipex/request"
	"github.com/gogama/pipex/urlutil"
	"github.com/moul/http2curl"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	//
	// The Do method must follow the contract documented on the GoLang
	// standard library http.Client from the net/http package.
	Do(r *http.Request) (*http.Response, error)
}

// An Adapter sends requests with an HTTPDoer and reads the whole
// response body into the response data as a []byte. Its zero value
// is a valid configuration.
//
// Adapter honors the Params, ParamsSerializer, Timeout, Auth,
// MaxContentLength, ValidateStatus, and CancelToken fields of the
// request config. Cancelling the token aborts the in-flight request.
//
// Adapter is safe for concurrent use by multiple goroutines.
type Adapter struct {
	// HTTPDoer specifies the mechanics of sending HTTP requests and
	// receiving responses.
	//
	// If HTTPDoer is nil, http.DefaultClient from the standard net/http
	// package is used.
	HTTPDoer HTTPDoer
	// Logger receives a debug entry, including an equivalent curl
	// command, for each request sent. If Logger is nil, nothing is
	// logged.
	Logger *zap.Logger
}

// New returns an Adapter which sends requests with doer. If doer is
// nil, http.DefaultClient is used.
func New(doer HTTPDoer) *Adapter {
	return &Adapter{HTTPDoer: doer}
}

// NewTraced returns an Adapter whose requests are sent through an
// OpenTelemetry instrumented transport wrapping base. If base is nil,
// http.DefaultTransport is wrapped.
func NewTraced(base http.RoundTripper) *Adapter {
	return New(&http.Client{Transport: otelhttp.NewTransport(base)})
}

// Adapt sends the request described by c and returns the response.
//
// Any returned error other than a cancellation is a
// *request.TransportError. If the server responded but c.ValidateStatus
// rejected the status, the error's Response field holds the response.
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

	req, err := toRequest(ctx, c, u, body)
	if err != nil {
		return nil, request.NewTransportError(c, u, err)
	}
	a.logRequest(req)

	resp, err := a.doer().Do(req)
	if err != nil {
		return nil, a.failure(c, req, u, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := request.ReadBody(resp.Body, c.MaxContentLength)
	if err != nil {
		return nil, a.failure(c, req, u, err)
	}

	r := &request.Response{
		Data:       b,
		Status:     resp.StatusCode,
		StatusText: statusText(resp),
		Header:     resp.Header,
		Config:     c,
		Request:    req,
	}
	return request.Settle(r, u)
}

// CloseIdleConnections invokes the same method on the adapter's
// HTTPDoer.
//
// If the HTTPDoer has no CloseIdleConnections method, this method does
// nothing.
func (a *Adapter) CloseIdleConnections() {
	type closeIdler interface {
		CloseIdleConnections()
	}
	if tcc, ok := a.doer().(closeIdler); ok {
		tcc.CloseIdleConnections()
	}
}

func (a *Adapter) doer() HTTPDoer {
	if a.HTTPDoer == nil {
		return http.DefaultClient
	}

	return a.HTTPDoer
}

func (a *Adapter) failure(c *request.Config, req *http.Request, u string, err error) error {
	if r := c.CancelToken.Reason(); r != nil {
		return r
	}

	te := request.NewTransportError(c, u, err)
	te.Request = req
	return te
}

func (a *Adapter) logRequest(req *http.Request) {
	if a.Logger == nil {
		return
	}
	ce := a.Logger.Check(zap.DebugLevel, "sending request")
	if ce == nil {
		return
	}

	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
	}
	if cmd, err := http2curl.GetCurlCommand(req); err == nil {
		fields = append(fields, zap.String("curl", cmd.String()))
	}
	ce.Write(fields...)
}

func toRequest(ctx context.Context, c *request.Config, u string, body []byte) (*http.Request, error) {
	var rd io.Reader
	if len(body) > 0 {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, strings.ToUpper(c.Method), u, rd)
	if err != nil {
		return nil, err
	}
	if c.Header != nil {
		req.Header = c.Header.Clone()
	}
	if c.Auth != nil {
		req.SetBasicAuth(c.Auth.Username, c.Auth.Password)
	}
	return req, nil
}

func statusText(resp *http.Response) string {
	text := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)+" ")
	if text == "" || text == resp.Status {
		return http.StatusText(resp.StatusCode)
	}
	return text
}
