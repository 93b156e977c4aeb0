// Copyright 2021 The pipex Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package pipex

import (
	"context"
	"net/http"
	"testing"

	"github.com/gogama/pipex/request"

	"github.com/stretchr/testify/assert"

	"github.com/stretchr/testify/mock"
)

func TestMethodHelpers(t *testing.T) {
	ctx := context.Background()
	expected := &request.Response{}
	cfg := &request.Config{Method: "put", URL: "ignored", Header: http.Header{"X-Foo": []string{"bar"}}}

	noData := []struct {
		method string
		fn     func(context.Context, Doer, string, *request.Config) (*request.Response, error)
	}{
		{"get", Get},
		{"delete", Delete},
		{"head", Head},
		{"options", Options},
	}
	for _, testCase := range noData {
		t.Run(testCase.method, func(t *testing.T) {
			m := newMockDoer(t)
			m.On("Do", ctx, mock.MatchedBy(func(c *request.Config) bool {
				return c.Method == testCase.method && c.URL == "foo" && c.Header.Get("X-Foo") == "bar"
			})).Return(expected, nil).Once()
			r, err := testCase.fn(ctx, m, "foo", cfg)
			assert.Same(t, expected, r)
			assert.NoError(t, err)
			m.AssertExpectations(t)
			assert.Equal(t, "put", cfg.Method)
			assert.Equal(t, "ignored", cfg.URL)
		})
	}

	withData := []struct {
		method string
		fn     func(context.Context, Doer, string, interface{}, *request.Config) (*request.Response, error)
	}{
		{"post", Post},
		{"put", Put},
		{"patch", Patch},
	}
	for _, testCase := range withData {
		t.Run(testCase.method, func(t *testing.T) {
			m := newMockDoer(t)
			m.On("Do", ctx, mock.MatchedBy(func(c *request.Config) bool {
				return c.Method == testCase.method && c.URL == "bar" && c.Data == "eggs"
			})).Return(expected, nil).Once()
			r, err := testCase.fn(ctx, m, "bar", "eggs", nil)
			assert.Same(t, expected, r)
			assert.NoError(t, err)
			m.AssertExpectations(t)
		})
	}
}

func TestInflate(t *testing.T) {
	ctx := context.Background()
	t.Run("Inflate", func(t *testing.T) {
		t.Run("nil doer", func(t *testing.T) {
			assert.PanicsWithValue(t, "pipex: nil doer", func() {
				Inflate(nil)
			})
		})
		t.Run("already an Executor", func(t *testing.T) {
			cl := &Client{}
			x := Inflate(cl)
			assert.Same(t, cl, x)
		})
		t.Run("not yet an Executor", func(t *testing.T) {
			m := newMockDoer(t)
			x := Inflate(m)
			assert.NotSame(t, m, x)
		})
	})
	expected := &request.Response{}
	t.Run("Do", func(t *testing.T) {
		c := &request.Config{Method: "put", URL: "http://www.randomcollections.com/widgets/1", Data: "foo"}
		m := newMockDoer(t)
		m.On("Do", ctx, c).Return(expected, nil).Once()
		x := Inflate(m)
		r, err := x.Do(ctx, c)
		assert.Same(t, expected, r)
		assert.NoError(t, err)
		m.AssertExpectations(t)
	})
	methodMatcher := func(method, url string) interface{} {
		return mock.MatchedBy(func(c *request.Config) bool {
			return c.Method == method && c.URL == url
		})
	}
	t.Run("Get", func(t *testing.T) {
		m := newMockDoer(t)
		m.On("Do", ctx, methodMatcher("get", "bar")).Return(expected, nil).Once()
		r, err := Inflate(m).Get(ctx, "bar", nil)
		assert.Same(t, expected, r)
		assert.NoError(t, err)
		m.AssertExpectations(t)
	})
	t.Run("Delete", func(t *testing.T) {
		m := newMockDoer(t)
		m.On("Do", ctx, methodMatcher("delete", "bar")).Return(expected, nil).Once()
		r, err := Inflate(m).Delete(ctx, "bar", nil)
		assert.Same(t, expected, r)
		assert.NoError(t, err)
		m.AssertExpectations(t)
	})
	t.Run("Head", func(t *testing.T) {
		m := newMockDoer(t)
		m.On("Do", ctx, methodMatcher("head", "baz")).Return(expected, nil).Once()
		r, err := Inflate(m).Head(ctx, "baz", nil)
		assert.Same(t, expected, r)
		assert.NoError(t, err)
		m.AssertExpectations(t)
	})
	t.Run("Options", func(t *testing.T) {
		m := newMockDoer(t)
		m.On("Do", ctx, methodMatcher("options", "*")).Return(expected, nil).Once()
		r, err := Inflate(m).Options(ctx, "*", nil)
		assert.Same(t, expected, r)
		assert.NoError(t, err)
		m.AssertExpectations(t)
	})
	t.Run("Post", func(t *testing.T) {
		m := newMockDoer(t)
		m.On("Do", ctx, methodMatcher("post", "ham")).Return(expected, nil).Once()
		r, err := Inflate(m).Post(ctx, "ham", nil, nil)
		assert.Same(t, expected, r)
		assert.NoError(t, err)
		m.AssertExpectations(t)
	})
	t.Run("Put", func(t *testing.T) {
		m := newMockDoer(t)
		m.On("Do", ctx, methodMatcher("put", "ham")).Return(expected, nil).Once()
		r, err := Inflate(m).Put(ctx, "ham", "x", nil)
		assert.Same(t, expected, r)
		assert.NoError(t, err)
		m.AssertExpectations(t)
	})
	t.Run("Patch", func(t *testing.T) {
		m := newMockDoer(t)
		m.On("Do", ctx, methodMatcher("patch", "ham")).Return(expected, nil).Once()
		r, err := Inflate(m).Patch(ctx, "ham", "x", nil)
		assert.Same(t, expected, r)
		assert.NoError(t, err)
		m.AssertExpectations(t)
	})
	t.Run("CloseIdleConnections", func(t *testing.T) {
		t.Run("Doer does not implement IdleCloser", func(t *testing.T) {
			m := newMockDoer(t)
			x := Inflate(m)
			x.CloseIdleConnections()
			m.AssertNotCalled(t, "CloseIdleConnections")
		})
		t.Run("Doer implements IdleCloser", func(t *testing.T) {
			m := newMockDoerWithCloseIdleConnections(t)
			m.On("CloseIdleConnections").Once()
			x := Inflate(m)
			x.CloseIdleConnections()
			m.AssertExpectations(t)
		})
	})
}

type mockDoer struct {
	mock.Mock
}

func newMockDoer(t *testing.T) *mockDoer {
	m := &mockDoer{}
	m.Test(t)
	return m
}

func (m *mockDoer) Do(ctx context.Context, c *request.Config) (*request.Response, error) {
	args := m.Called(ctx, c)
	err := args.Error(1)
	if r, ok := args.Get(0).(*request.Response); ok {
		return r, err
	}
	return nil, err
}

type mockDoerWithCloseIdleConnections struct {
	mockDoer
}

func newMockDoerWithCloseIdleConnections(t *testing.T) *mockDoerWithCloseIdleConnections {
	m := &mockDoerWithCloseIdleConnections{}
	m.Test(t)
	return m
}

func (m *mockDoerWithCloseIdleConnections) CloseIdleConnections() {
	m.Called()
}
