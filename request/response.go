// Copyright 2021 The pipex Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import "net/http"

// A Response is the result of a request which reached the server.
type Response struct {
	// Data is the response body. Adapters set it to the raw []byte
	// body, and response transforms may replace it with a decoded
	// value.
	Data interface{}

	// Status is the HTTP status code, for example 200.
	Status int

	// StatusText is the HTTP status line text, for example "OK".
	StatusText string

	// Header contains the response headers.
	Header http.Header

	// Config is the finalized config the request was sent with.
	Config *Config

	// Request is the lower-level request the adapter sent, if the
	// adapter is based on net/http. It may be nil.
	Request *http.Request
}

// Bytes returns Data as a byte slice if it is a []byte or a string.
func (r *Response) Bytes() ([]byte, bool) {
	switch x := r.Data.(type) {
	case []byte:
		return x, true
	case string:
		return []byte(x), true
	default:
		return nil, false
	}
}
