// Copyright 2021 The pipex Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gogama/pipex/transient"
)

// ErrStatus is wrapped by the Err of a TransportError reported because
// the config's ValidateStatus rejected the response status.
var ErrStatus = errors.New("pipex/request: unacceptable status")

// A TransportError reports a failed request attempt. Its fields are
// modelled on url.Error, with the addition of the request config and,
// when the server did respond, the response.
type TransportError struct {
	// Op is the method of the request in title case ("Get").
	Op string
	// URL is the URL the request was sent to.
	URL string
	// Err is the underlying cause.
	Err error
	// Config is the finalized config of the failed request.
	Config *Config
	// Request is the lower-level request, if one was created.
	Request *http.Request
	// Response is the response, if one was received. It is set when
	// ValidateStatus rejects the response status.
	Response *Response
}

// NewTransportError returns a TransportError for a request made with
// config c to url, failing with err.
func NewTransportError(c *Config, url string, err error) *TransportError {
	return &TransportError{
		Op:     errorOp(c.Method),
		URL:    url,
		Err:    err,
		Config: c,
	}
}

// StatusError returns the error an adapter should put in a
// TransportError's Err when ValidateStatus rejects status.
func StatusError(status int) error {
	return fmt.Errorf("%w: request failed with status code %d", ErrStatus, status)
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the error represents a timeout.
func (e *TransportError) Timeout() bool {
	return e.Category() == transient.Timeout
}

// Category returns the transience category of the underlying cause.
func (e *TransportError) Category() transient.Category {
	return transient.Categorize(e.Err)
}

// errorOp is adapted from urlErrorOp in net/http/client.go.
func errorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return strings.ToUpper(method[:1]) + strings.ToLower(method[1:])
}
