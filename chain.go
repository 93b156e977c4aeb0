// Copyright 2021 The pipex Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package pipex

import (
	"context"

	"github.com/gogama/pipex/interceptor"
	"github.com/gogama/pipex/request"
)

// An outcome is the settled result of a pipeline stage. Exactly one of
// err and the stage's value is meaningful: before the dispatch stage
// the value is config, after it the value is response. The config is
// carried along the whole pipeline so that a stage which recovers
// without supplying a value can fall back on the last one.
type outcome struct {
	config   *request.Config
	response *request.Response
	err      error
}

// A stage is one link in a pipeline. A nil onFailure passes failures
// through unchanged.
type stage struct {
	onSuccess func(context.Context, outcome) outcome
	onFailure func(context.Context, outcome) outcome
}

func (s stage) settle(ctx context.Context, o outcome) outcome {
	if o.err == nil {
		return s.onSuccess(ctx, o)
	} else if s.onFailure == nil {
		return o
	}

	return s.onFailure(ctx, o)
}

// A chain is the immutable, ordered list of stages built for a single
// request.
type chain []stage

func (c *Client) buildChain(d dispatcher) chain {
	var ch chain
	c.Interceptors.Request.ForEach(func(e interceptor.Entry[*request.Config]) {
		ch = append(ch, requestStage(e))
	})
	ch = append(ch, stage{onSuccess: d.stage})
	c.Interceptors.Response.ForEach(func(e interceptor.Entry[*request.Response]) {
		ch = append(ch, responseStage(e))
	})
	return ch
}

func (ch chain) run(ctx context.Context, cfg *request.Config) (*request.Response, error) {
	o := outcome{config: cfg}
	for _, s := range ch {
		o = s.settle(ctx, o)
	}

	if o.err != nil {
		return nil, o.err
	}
	return o.response, nil
}

func requestStage(e interceptor.Entry[*request.Config]) stage {
	s := stage{
		onSuccess: func(ctx context.Context, o outcome) outcome {
			cfg, err := e.OnSuccess(ctx, o.config)
			return settleConfig(o, cfg, err)
		},
	}
	if e.OnFailure != nil {
		s.onFailure = func(ctx context.Context, o outcome) outcome {
			cfg, err := e.OnFailure(ctx, o.err)
			return settleConfig(o, cfg, err)
		}
	}
	return s
}

func responseStage(e interceptor.Entry[*request.Response]) stage {
	s := stage{
		onSuccess: func(ctx context.Context, o outcome) outcome {
			resp, err := e.OnSuccess(ctx, o.response)
			return settleResponse(o, resp, err)
		},
	}
	if e.OnFailure != nil {
		s.onFailure = func(ctx context.Context, o outcome) outcome {
			resp, err := e.OnFailure(ctx, o.err)
			return settleResponse(o, resp, err)
		}
	}
	return s
}

func settleConfig(prev outcome, cfg *request.Config, err error) outcome {
	if cfg == nil {
		cfg = prev.config
	}

	return outcome{config: cfg, err: err}
}

func settleResponse(prev outcome, resp *request.Response, err error) outcome {
	if resp == nil {
		resp = prev.response
	}
	// A failure handler recovering with nil has no response to fall
	// back on when the dispatch itself failed.
	if resp == nil && err == nil {
		err = errNilResponse
	}

	return outcome{config: prev.config, response: resp, err: err}
}
