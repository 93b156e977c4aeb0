// Copyright 2021 The pipex Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gogama/pipex/cancel"
	"github.com/gogama/pipex/transform"
	"golang.org/x/net/http/httpguts"
)

// A Config describes a logical HTTP request to be run through the
// request pipeline.
//
// Every pipeline execution works on its own copy of the caller's
// Config, produced by Merge, so interceptors and transforms may modify
// the Config (and its header maps) in place without affecting the
// caller or other in-flight requests.
type Config struct {
	// Method specifies the HTTP method. Normalize lower-cases it, and
	// an empty string means "get".
	Method string

	// URL specifies the URL to request. If it is not absolute and
	// BaseURL is set, the two are joined when the request is
	// dispatched.
	URL string

	// BaseURL is prepended to URL unless URL is absolute.
	BaseURL string

	// Params are added to the URL query string by the transport
	// adapter.
	Params url.Values

	// ParamsSerializer, if not nil, serializes Params instead of
	// url.Values.Encode.
	ParamsSerializer func(url.Values) string

	// Header contains the headers set explicitly for this request.
	// Set header fields with Header.Set, so that keys are canonical.
	//
	// Header has the highest precedence when the dispatch step
	// flattens CommonHeader, MethodHeader, and Header into the final
	// header set.
	Header http.Header

	// CommonHeader contains default headers sent with every method.
	CommonHeader http.Header

	// MethodHeader contains default headers sent only with one
	// method. It is keyed by lower-case method name ("post").
	MethodHeader map[string]http.Header

	// Data is the request body. Request transforms turn it into
	// something the adapter can send: nil, a string, a []byte, or an
	// io.Reader.
	Data interface{}

	// TransformRequest is applied, in order, to Data before the
	// request is dispatched.
	TransformRequest []transform.Func

	// TransformResponse is applied, in order, to the response data,
	// including the data of a response embedded in a TransportError.
	TransformResponse []transform.Func

	// Adapter sends the request. If nil, the client's adapter is used.
	Adapter Adapter

	// CancelToken, if not nil, allows the request to be cancelled.
	CancelToken *cancel.Token

	// Timeout limits the time the adapter may spend on the request.
	// Zero means no timeout.
	Timeout time.Duration

	// Auth, if not nil, causes adapters to send HTTP Basic
	// authentication credentials, replacing any Authorization header.
	Auth *BasicAuth

	// MaxContentLength limits the size of the response body the
	// adapter will read. Zero or less means no limit.
	MaxContentLength int64

	// ValidateStatus decides whether a response status code counts as
	// success. If it returns false, the adapter fails with a
	// TransportError carrying the response. If nil, every status is a
	// success.
	ValidateStatus func(status int) bool
}

// BasicAuth holds HTTP Basic authentication credentials.
type BasicAuth struct {
	Username string
	Password string
}

// Defaults returns a new Config holding the default request
// settings: an Accept header for every method, a form Content-Type for
// methods which carry a body, the built-in Request and JSON transforms,
// and ValidateStatus2xx.
func Defaults() *Config {
	form := func() http.Header {
		return http.Header{"Content-Type": []string{"application/x-www-form-urlencoded"}}
	}
	return &Config{
		CommonHeader: http.Header{"Accept": []string{"application/json, text/plain, */*"}},
		MethodHeader: map[string]http.Header{
			"post":  form(),
			"put":   form(),
			"patch": form(),
		},
		TransformRequest:  []transform.Func{transform.Request()},
		TransformResponse: []transform.Func{transform.JSON()},
		ValidateStatus:    ValidateStatus2xx,
	}
}

// ValidateStatus2xx reports whether status is in the range 200-299.
func ValidateStatus2xx(status int) bool {
	return status >= 200 && status < 300
}

// Merge returns a new Config combining defaults with override.
//
// Method, URL, Params, and Data are taken from override only. Header
// and CommonHeader are merged key by key, and MethodHeader method by
// method and then key by key, with override winning. Every other field
// is taken from override if set there, and from defaults otherwise.
//
// Either argument may be nil. Merge never modifies its arguments, and
// the result shares no header or params maps with them. Merge is
// idempotent: Merge(d, Merge(d, o)) is equivalent to Merge(d, o).
func Merge(defaults, override *Config) *Config {
	if defaults == nil {
		defaults = &Config{}
	}
	if override == nil {
		override = &Config{}
	}

	c := &Config{
		Method:       override.Method,
		URL:          override.URL,
		Params:       cloneValues(override.Params),
		Data:         override.Data,
		Header:       MergeHeader(defaults.Header, override.Header),
		CommonHeader: MergeHeader(defaults.CommonHeader, override.CommonHeader),
		MethodHeader: mergeMethodHeader(defaults.MethodHeader, override.MethodHeader),
	}

	c.BaseURL = override.BaseURL
	if c.BaseURL == "" {
		c.BaseURL = defaults.BaseURL
	}
	c.ParamsSerializer = override.ParamsSerializer
	if c.ParamsSerializer == nil {
		c.ParamsSerializer = defaults.ParamsSerializer
	}
	c.TransformRequest = override.TransformRequest
	if c.TransformRequest == nil {
		c.TransformRequest = defaults.TransformRequest
	}
	c.TransformResponse = override.TransformResponse
	if c.TransformResponse == nil {
		c.TransformResponse = defaults.TransformResponse
	}
	c.Adapter = override.Adapter
	if c.Adapter == nil {
		c.Adapter = defaults.Adapter
	}
	c.CancelToken = override.CancelToken
	if c.CancelToken == nil {
		c.CancelToken = defaults.CancelToken
	}
	c.Timeout = override.Timeout
	if c.Timeout == 0 {
		c.Timeout = defaults.Timeout
	}
	auth := override.Auth
	if auth == nil {
		auth = defaults.Auth
	}
	if auth != nil {
		a := *auth
		c.Auth = &a
	}
	c.MaxContentLength = override.MaxContentLength
	if c.MaxContentLength == 0 {
		c.MaxContentLength = defaults.MaxContentLength
	}
	c.ValidateStatus = override.ValidateStatus
	if c.ValidateStatus == nil {
		c.ValidateStatus = defaults.ValidateStatus
	}

	return c
}

// Clone returns a copy of c which shares no header or params maps
// with c.
func (c *Config) Clone() *Config {
	return Merge(nil, c)
}

// Normalize puts c into canonical form: Method is lower-cased and
// defaults to "get". Normalize returns an error if Method is not a
// valid HTTP token, or if Header contains an invalid field name or
// value. Normalizing a Config twice has the same effect as once.
func (c *Config) Normalize() error {
	c.Method = strings.ToLower(c.Method)
	if c.Method == "" {
		c.Method = "get"
	}
	if !httpguts.ValidHeaderFieldName(c.Method) {
		return fmt.Errorf("pipex/request: invalid method %q", c.Method)
	}
	for name, values := range c.Header {
		if !httpguts.ValidHeaderFieldName(name) {
			return fmt.Errorf("pipex/request: invalid header field name %q", name)
		}
		for _, v := range values {
			if !httpguts.ValidHeaderFieldValue(v) {
				return fmt.Errorf("pipex/request: invalid header field value for %q", name)
			}
		}
	}
	return nil
}

// MergeHeader merges headers in increasing order of precedence: when
// the same key appears in more than one header, the values from the
// last one win. The result is a new header, or nil if every argument
// is nil.
func MergeHeader(headers ...http.Header) http.Header {
	var merged http.Header
	for _, h := range headers {
		if h == nil {
			continue
		}
		if merged == nil {
			merged = make(http.Header, len(h))
		}
		for k, v := range h {
			merged[k] = append([]string(nil), v...)
		}
	}
	return merged
}

func mergeMethodHeader(defaults, override map[string]http.Header) map[string]http.Header {
	if defaults == nil && override == nil {
		return nil
	}

	merged := make(map[string]http.Header, len(defaults)+len(override))
	for m, h := range defaults {
		merged[strings.ToLower(m)] = MergeHeader(h)
	}
	for m, h := range override {
		m = strings.ToLower(m)
		merged[m] = MergeHeader(merged[m], h)
	}
	return merged
}

func cloneValues(v url.Values) url.Values {
	if v == nil {
		return nil
	}

	c := make(url.Values, len(v))
	for k, vs := range v {
		c[k] = append([]string(nil), vs...)
	}
	return c
}
