// Copyright 2021 The pipex Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package restyadapter

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gogama/pipex/cancel"
	"github.com/gogama/pipex/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapter_Adapt(t *testing.T) {
	ctx := context.Background()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/echo":
			b, _ := io.ReadAll(r.Body)
			u, p, _ := r.BasicAuth()
			w.Header().Set("X-Method", r.Method)
			_, _ = io.WriteString(w, r.URL.RawQuery+"|"+r.Header.Get("X-Custom")+"|"+u+":"+p+"|"+string(b))
		case "/teapot":
			w.WriteHeader(http.StatusTeapot)
			_, _ = io.WriteString(w, "short and stout")
		case "/block":
			select {
			case <-r.Context().Done():
			case <-time.After(5 * time.Second):
			}
		}
	}))
	defer server.Close()

	t.Run("round trip", func(t *testing.T) {
		a := New(resty.New())
		r, err := a.Adapt(ctx, &request.Config{
			Method: "patch",
			URL:    server.URL + "/echo",
			Params: url.Values{"a": []string{"1"}},
			Header: http.Header{"X-Custom": []string{"ham"}},
			Data:   "eggs",
			Auth:   &request.BasicAuth{Username: "u", Password: "p"},
		})
		require.NoError(t, err)
		assert.Equal(t, 200, r.Status)
		assert.Equal(t, "OK", r.StatusText)
		assert.Equal(t, "PATCH", r.Header.Get("X-Method"))
		assert.Equal(t, "a=1|ham|u:p|eggs", string(r.Data.([]byte)))
	})
	t.Run("zero value", func(t *testing.T) {
		a := &Adapter{}
		r, err := a.Adapt(ctx, &request.Config{URL: server.URL + "/echo"})
		require.NoError(t, err)
		assert.Equal(t, "||:|", string(r.Data.([]byte)))
	})
	t.Run("zero value shares client", func(t *testing.T) {
		first := (&Adapter{}).client()
		require.NotNil(t, first)
		assert.Same(t, first, (&Adapter{}).client())
		own := resty.New()
		assert.Same(t, own, New(own).client())
	})
	t.Run("rejected status", func(t *testing.T) {
		a := New(resty.New())
		_, err := a.Adapt(ctx, &request.Config{
			URL:            server.URL + "/teapot",
			ValidateStatus: request.ValidateStatus2xx,
		})
		var te *request.TransportError
		require.True(t, errors.As(err, &te))
		assert.True(t, errors.Is(err, request.ErrStatus))
		require.NotNil(t, te.Response)
		assert.Equal(t, http.StatusTeapot, te.Response.Status)
		assert.Equal(t, "I'm a teapot", te.Response.StatusText)
		assert.Equal(t, "short and stout", string(te.Response.Data.([]byte)))
	})
	t.Run("max content length", func(t *testing.T) {
		a := New(resty.New())
		_, err := a.Adapt(ctx, &request.Config{
			URL:              server.URL + "/teapot",
			MaxContentLength: 5,
		})
		assert.True(t, errors.Is(err, request.ErrMaxContentLength))
	})
	t.Run("timeout", func(t *testing.T) {
		a := New(resty.New())
		_, err := a.Adapt(ctx, &request.Config{
			URL:     server.URL + "/block",
			Timeout: 20 * time.Millisecond,
		})
		var te *request.TransportError
		require.True(t, errors.As(err, &te))
		assert.True(t, te.Timeout())
	})
	t.Run("cancel token aborts", func(t *testing.T) {
		a := New(resty.New())
		token, cancelFunc := cancel.WithCancel()
		go func() {
			time.Sleep(20 * time.Millisecond)
			cancelFunc("enough")
		}()
		_, err := a.Adapt(ctx, &request.Config{
			URL:         server.URL + "/block",
			CancelToken: token,
		})
		assert.True(t, cancel.IsCancel(err))
	})
	t.Run("invalid body", func(t *testing.T) {
		a := New(resty.New())
		_, err := a.Adapt(ctx, &request.Config{URL: server.URL, Data: struct{}{}})
		var te *request.TransportError
		require.True(t, errors.As(err, &te))
	})
}
