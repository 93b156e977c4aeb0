// Copyright 2021 The pipex Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"context"
	"errors"
	"syscall"
)

// A Category is the transience category of a transport error, as
// reported by Categorize.
//
// The category Not means the error is not transient: trying the same
// request again is very unlikely to go differently. Every other
// category names a condition which may clear up by itself.
type Category int

const (
	// Not indicates any non-transient error, and a nil error.
	Not Category = iota
	// Timeout indicates a client-side timeout, either from the
	// request's Timeout setting or from a context deadline.
	//
	// Categorize returns Timeout if the error or any of its wrapped
	// causes has a Timeout method that reports true, or is
	// context.DeadlineExceeded.
	Timeout
	// ConnRefused indicates the remote host refused the connection
	// (POSIX ECONNREFUSED). This is typical of a service which is
	// starting or restarting and not yet listening on its port.
	ConnRefused
	// ConnReset indicates the remote host reset a previously active
	// TCP connection (POSIX ECONNRESET), for example because the
	// service went down while it was still responding.
	ConnReset
	// Canceled indicates the request's context was cancelled. It is
	// reported only when no timeout is involved.
	Canceled
)

var categoryCodes = []string{
	"",
	"ECONNABORTED",
	"ECONNREFUSED",
	"ECONNRESET",
	"ERR_CANCELED",
}

// Code returns a short error code for the category, in the style of
// POSIX error names, or the empty string for Not.
func (c Category) Code() string {
	if c < 0 || int(c) >= len(categoryCodes) {
		return ""
	}

	return categoryCodes[c]
}

// Categorize returns the transience category of err. Categorize looks
// at the causes wrapped inside err, not only err itself, but it never
// consults a Temporary method, as the semantics of Temporary aren't
// entirely clear.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}

	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Timeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if errno == syscall.ECONNRESET {
			return ConnReset
		} else if errno == syscall.ECONNREFUSED {
			return ConnRefused
		}
	}

	if errors.Is(err, context.Canceled) {
		return Canceled
	}

	return Not
}

type hasTimeout interface {
	Timeout() bool
}
