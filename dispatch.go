// Copyright 2021 The pipex Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package pipex

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gogama/pipex/cancel"
	"github.com/gogama/pipex/request"
	"github.com/gogama/pipex/transform"
	"github.com/gogama/pipex/urlutil"
)

var errNilResponse = errors.New("pipex: nil response")

// dispatcher is the pipeline stage which sits between the request and
// response interceptors. It has no failure handler: a failed request
// interceptor skips the dispatch.
type dispatcher struct {
	adapter request.Adapter
}

func (d dispatcher) stage(ctx context.Context, o outcome) outcome {
	resp, err := d.dispatch(ctx, o.config)
	return outcome{config: o.config, response: resp, err: err}
}

func (d dispatcher) dispatch(ctx context.Context, c *request.Config) (*request.Response, error) {
	// Cancellation checkpoint before any work is done.
	if err := c.CancelToken.Err(); err != nil {
		return nil, err
	}

	if c.BaseURL != "" && !urlutil.IsAbsoluteURL(c.URL) {
		c.URL = urlutil.CombineURLs(c.BaseURL, c.URL)
	}

	if c.Header == nil {
		c.Header = make(http.Header)
	}
	data, err := transform.Apply(c.Data, c.Header, c.TransformRequest)
	if err != nil {
		return nil, err
	}
	c.Data = data

	flattenHeader(c)

	adapter := c.Adapter
	if adapter == nil {
		adapter = d.adapter
	}
	resp, err := adapter.Adapt(ctx, c)
	if err != nil {
		return nil, d.failure(c, err)
	}

	// Cancellation checkpoint after the adapter settles.
	if err = c.CancelToken.Err(); err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, errNilResponse
	}

	if resp.Header == nil {
		resp.Header = make(http.Header)
	}
	resp.Data, err = transform.Apply(resp.Data, resp.Header, c.TransformResponse)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (d dispatcher) failure(c *request.Config, err error) error {
	if cancel.IsCancel(err) {
		return err
	}
	if cerr := c.CancelToken.Err(); cerr != nil {
		return cerr
	}

	var te *request.TransportError
	if errors.As(err, &te) && te.Response != nil {
		if te.Response.Header == nil {
			te.Response.Header = make(http.Header)
		}
		data, terr := transform.Apply(te.Response.Data, te.Response.Header, c.TransformResponse)
		if terr != nil {
			return terr
		}
		te.Response.Data = data
	}
	return err
}

// flattenHeader collapses the common, method-specific, and explicit
// headers of c into c.Header, in increasing order of precedence, and
// clears the two default header sets.
func flattenHeader(c *request.Config) {
	c.Header = request.MergeHeader(c.CommonHeader, c.MethodHeader[strings.ToLower(c.Method)], c.Header)
	c.CommonHeader = nil
	c.MethodHeader = nil
}
