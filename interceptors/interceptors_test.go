// Copyright 2021 The pipex Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package interceptors

import (
	"context"
	"errors"
	"net/http"
	"syscall"
	"testing"

	"github.com/gogama/pipex"
	"github.com/gogama/pipex/cancel"
	"github.com/gogama/pipex/request"
	"github.com/google/uuid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	t.Run("default header", func(t *testing.T) {
		c, err := RequestID("")(ctx, &request.Config{})
		require.NoError(t, err)
		id := c.Header.Get(RequestIDHeader)
		_, err = uuid.Parse(id)
		assert.NoError(t, err)
	})
	t.Run("custom header", func(t *testing.T) {
		c, err := RequestID("X-Trace")(ctx, &request.Config{Header: http.Header{}})
		require.NoError(t, err)
		assert.NotEmpty(t, c.Header.Get("X-Trace"))
		assert.Empty(t, c.Header.Get(RequestIDHeader))
	})
	t.Run("existing value kept", func(t *testing.T) {
		c, err := RequestID("")(ctx, &request.Config{Header: http.Header{RequestIDHeader: []string{"abc"}}})
		require.NoError(t, err)
		assert.Equal(t, "abc", c.Header.Get(RequestIDHeader))
	})
	t.Run("unique", func(t *testing.T) {
		fn := RequestID("")
		a, _ := fn(ctx, &request.Config{})
		b, _ := fn(ctx, &request.Config{})
		assert.NotEqual(t, a.Header.Get(RequestIDHeader), b.Header.Get(RequestIDHeader))
	})
}

func TestLogRequest(t *testing.T) {
	assert.PanicsWithValue(t, "pipex/interceptors: nil logger", func() {
		LogRequest(nil)
	})

	core, logs := observer.New(zap.InfoLevel)
	fn := LogRequest(zap.New(core))
	in := &request.Config{
		Method:  "get",
		URL:     "/users",
		BaseURL: "https://api.example.com",
		Header:  http.Header{RequestIDHeader: []string{"id-1"}},
	}
	out, err := fn(context.Background(), in)
	require.NoError(t, err)
	assert.Same(t, in, out)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "request", entry.Message)
	assert.Equal(t, map[string]interface{}{
		"method":     "get",
		"url":        "/users",
		"base_url":   "https://api.example.com",
		"request_id": "id-1",
	}, entry.ContextMap())
}

func TestLogResponse(t *testing.T) {
	ctx := context.Background()
	assert.PanicsWithValue(t, "pipex/interceptors: nil logger", func() {
		LogResponse(nil)
	})

	t.Run("success", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		onSuccess, _ := LogResponse(zap.New(core))
		in := &request.Response{Status: 200, Config: &request.Config{Method: "get", URL: "/x"}}
		out, err := onSuccess(ctx, in)
		require.NoError(t, err)
		assert.Same(t, in, out)
		require.Equal(t, 1, logs.Len())
		fields := logs.All()[0].ContextMap()
		assert.Equal(t, int64(200), fields["status"])
		assert.Equal(t, "/x", fields["url"])
	})
	t.Run("transport failure", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		_, onFailure := LogResponse(zap.New(core))
		cause := &request.TransportError{
			Op:       "Get",
			URL:      "/x",
			Err:      syscall.ECONNREFUSED,
			Response: &request.Response{Status: 502},
		}
		out, err := onFailure(ctx, cause)
		assert.Nil(t, out)
		assert.Same(t, cause, err)
		entries := logs.FilterMessage("request failed").All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
		fields := entries[0].ContextMap()
		assert.Equal(t, "ECONNREFUSED", fields["code"])
		assert.Equal(t, int64(502), fields["status"])
	})
	t.Run("other failure", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		_, onFailure := LogResponse(zap.New(core))
		cause := errors.New("interceptor said no")
		_, err := onFailure(ctx, cause)
		assert.Same(t, cause, err)
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "interceptor said no", logs.All()[0].ContextMap()["error"])
	})
	t.Run("cancellation", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		_, onFailure := LogResponse(zap.New(core))
		_, err := onFailure(ctx, &cancel.Cancel{Message: "bye"})
		assert.True(t, cancel.IsCancel(err))
		entries := logs.FilterMessage("request canceled").All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	})
}

func TestInstalledOnClient(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)
	cl := &pipex.Client{
		Adapter: request.AdapterFunc(func(_ context.Context, c *request.Config) (*request.Response, error) {
			return &request.Response{Status: 204, Config: c}, nil
		}),
	}
	cl.Interceptors.Request.Use(RequestID(""), nil)
	cl.Interceptors.Request.Use(LogRequest(logger), nil)
	cl.Interceptors.Response.Use(LogResponse(logger))

	r, err := cl.Get(context.Background(), "/ping", nil)
	require.NoError(t, err)
	assert.Equal(t, 204, r.Status)
	id := r.Config.Header.Get(RequestIDHeader)
	assert.NotEmpty(t, id)
	require.Equal(t, 2, logs.Len())
	assert.Equal(t, id, logs.All()[0].ContextMap()["request_id"])
	assert.Equal(t, id, logs.All()[1].ContextMap()["request_id"])
}
