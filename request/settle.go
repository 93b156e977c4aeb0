// Copyright 2021 The pipex Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"errors"
	"io"
)

// ErrMaxContentLength is the cause of a TransportError reported when a
// response body is longer than the config's MaxContentLength.
var ErrMaxContentLength = errors.New("pipex/request: response body exceeds max content length")

// Settle decides the outcome of a request which produced a response.
// If r.Config has no ValidateStatus function, or it accepts r.Status,
// Settle returns r. Otherwise it returns a TransportError whose cause
// wraps ErrStatus and whose Response is r.
//
// Adapters call Settle once they have read the full response.
func Settle(r *Response, url string) (*Response, error) {
	c := r.Config
	if c == nil || c.ValidateStatus == nil || c.ValidateStatus(r.Status) {
		return r, nil
	}

	err := NewTransportError(c, url, StatusError(r.Status))
	err.Request = r.Request
	err.Response = r
	return nil, err
}

// ReadBody reads the whole of body, which is limited to max bytes if
// max is positive. If body is longer than the limit, ReadBody returns
// ErrMaxContentLength.
func ReadBody(body io.Reader, max int64) ([]byte, error) {
	if max <= 0 {
		return io.ReadAll(body)
	}

	b, err := io.ReadAll(io.LimitReader(body, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > max {
		return nil, ErrMaxContentLength
	}
	return b, nil
}
