// Copyright 2021 The pipex Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package interceptors provides ready-made request and response
// interceptors for a pipex.Client.
//
// Install them with the client's interceptor registries:
//
//	client.Interceptors.Request.Use(interceptors.RequestID(""), nil)
//	client.Interceptors.Request.Use(interceptors.LogRequest(logger), nil)
//	client.Interceptors.Response.Use(interceptors.LogResponse(logger))
package interceptors

import (
	"context"
	"errors"
	"net/http"

	"github.com/gogama/pipex/cancel"
	"github.com/gogama/pipex/interceptor"
	"github.com/gogama/pipex/request"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader is the header RequestID sets when no other header
// name is given.
const RequestIDHeader = "X-Request-Id"

// RequestID returns a request interceptor which sets header to a new
// random UUID, unless the request already has a value for it. If
// header is empty, RequestIDHeader is used.
func RequestID(header string) interceptor.SuccessFunc[*request.Config] {
	if header == "" {
		header = RequestIDHeader
	}
	return func(_ context.Context, c *request.Config) (*request.Config, error) {
		if c.Header == nil {
			c.Header = make(http.Header)
		}
		if c.Header.Get(header) == "" {
			c.Header.Set(header, uuid.NewString())
		}
		return c, nil
	}
}

// LogRequest returns a request interceptor which logs each request
// at info level before it is dispatched.
func LogRequest(logger *zap.Logger) interceptor.SuccessFunc[*request.Config] {
	if logger == nil {
		panic("pipex/interceptors: nil logger")
	}

	return func(_ context.Context, c *request.Config) (*request.Config, error) {
		logger.Info("request",
			zap.String("method", c.Method),
			zap.String("url", c.URL),
			zap.String("base_url", c.BaseURL),
			zap.String("request_id", c.Header.Get(RequestIDHeader)),
		)
		return c, nil
	}
}

// LogResponse returns a response interceptor pair which logs each
// response at info level, and each failure at warn level (or at info
// level, for cancellations). Neither handler alters the outcome.
func LogResponse(logger *zap.Logger) (interceptor.SuccessFunc[*request.Response], interceptor.FailureFunc[*request.Response]) {
	if logger == nil {
		panic("pipex/interceptors: nil logger")
	}

	onSuccess := func(_ context.Context, r *request.Response) (*request.Response, error) {
		fields := []zap.Field{zap.Int("status", r.Status)}
		if r.Config != nil {
			fields = append(fields,
				zap.String("method", r.Config.Method),
				zap.String("url", r.Config.URL),
				zap.String("request_id", r.Config.Header.Get(RequestIDHeader)),
			)
		}
		logger.Info("response", fields...)
		return r, nil
	}

	onFailure := func(_ context.Context, err error) (*request.Response, error) {
		if cancel.IsCancel(err) {
			logger.Info("request canceled", zap.Error(err))
			return nil, err
		}

		fields := []zap.Field{zap.Error(err)}
		var te *request.TransportError
		if errors.As(err, &te) {
			fields = append(fields,
				zap.String("op", te.Op),
				zap.String("url", te.URL),
				zap.String("code", te.Category().Code()),
			)
			if te.Response != nil {
				fields = append(fields, zap.Int("status", te.Response.Status))
			}
		}
		logger.Warn("request failed", fields...)
		return nil, err
	}

	return onSuccess, onFailure
}
