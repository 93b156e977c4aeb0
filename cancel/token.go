// Copyright 2021 The pipex Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cancel

import (
	"context"
	"errors"
	"sync"
)

// Cancel is the error reported when a request is cancelled via its
// Token. Message is the message given to the token's cancel function,
// and may be empty.
type Cancel struct {
	Message string
}

func (c *Cancel) Error() string {
	if c.Message == "" {
		return "pipex/cancel: request canceled"
	}

	return "pipex/cancel: request canceled: " + c.Message
}

// IsCancel reports whether err is, or wraps, a *Cancel.
func IsCancel(err error) bool {
	var c *Cancel
	return errors.As(err, &c)
}

// A Func requests cancellation of the token it was created with. Only
// the first call has any effect; later calls are ignored, so the
// token keeps the first message.
type Func func(message string)

// A Token signals that cancellation of a request has been requested.
//
// A nil *Token is valid and never reports cancellation. A Token is safe
// for concurrent use by multiple goroutines.
type Token struct {
	once   sync.Once
	done   chan struct{}
	lock   sync.Mutex
	reason *Cancel
}

// WithCancel returns a new token and the function which cancels it.
func WithCancel() (*Token, Func) {
	t := &Token{done: make(chan struct{})}
	return t, t.cancel
}

// FromContext returns a token which is cancelled when ctx is done. The
// cancellation message is the text of ctx.Err().
//
// The returned release func unlinks the token from ctx. Call it once
// the token is no longer needed if ctx outlives the request; after
// release the token is only cancelled if ctx was already done.
func FromContext(ctx context.Context) (*Token, func()) {
	t, fn := WithCancel()
	stop := context.AfterFunc(ctx, func() {
		fn(ctx.Err().Error())
	})
	return t, func() { stop() }
}

func (t *Token) cancel(message string) {
	t.once.Do(func() {
		t.lock.Lock()
		t.reason = &Cancel{Message: message}
		t.lock.Unlock()
		close(t.done)
	})
}

// Requested reports whether cancellation has been requested.
func (t *Token) Requested() bool {
	return t.Reason() != nil
}

// Err returns a *Cancel error if cancellation has been requested, and
// nil otherwise.
func (t *Token) Err() error {
	if r := t.Reason(); r != nil {
		return r
	}

	return nil
}

// Reason returns the *Cancel recorded when cancellation was requested,
// or nil if it has not been requested.
func (t *Token) Reason() *Cancel {
	if t == nil {
		return nil
	}

	t.lock.Lock()
	defer t.lock.Unlock()
	return t.reason
}

// Done returns a channel which is closed when cancellation is
// requested. The Done channel of a nil token is nil, which blocks
// forever in a select.
func (t *Token) Done() <-chan struct{} {
	if t == nil {
		return nil
	}

	return t.done
}

// Bind returns a copy of parent which is cancelled when t is
// cancelled, so that cancelling a request's token aborts the in-flight
// transport call. The returned CancelFunc must be called to release
// resources once the call is complete. If t is nil, Bind is equivalent
// to context.WithCancel.
func Bind(parent context.Context, t *Token) (context.Context, context.CancelFunc) {
	ctx, cancelCtx := context.WithCancel(parent)
	if done := t.Done(); done != nil {
		go func() {
			select {
			case <-done:
				cancelCtx()
			case <-ctx.Done():
			}
		}()
	}
	return ctx, cancelCtx
}
