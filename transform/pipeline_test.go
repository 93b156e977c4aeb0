// Copyright 2021 The pipex Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transform

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApply(t *testing.T) {
	t.Run("empty is identity", func(t *testing.T) {
		h := http.Header{"Foo": []string{"bar"}}
		data := []byte("ham")
		x, err := Apply(data, h, nil)
		assert.NoError(t, err)
		assert.Equal(t, data, x)
		assert.Equal(t, http.Header{"Foo": []string{"bar"}}, h)

		x, err = Apply(nil, nil, []Func{})
		assert.NoError(t, err)
		assert.Nil(t, x)
	})
	t.Run("sequential composition", func(t *testing.T) {
		f := func(data interface{}, h http.Header) (interface{}, error) {
			h.Set("X-Seen", "f")
			return data.(string) + "-f", nil
		}
		g := func(data interface{}, h http.Header) (interface{}, error) {
			return data.(string) + "-g(" + h.Get("X-Seen") + ")", nil
		}

		h1 := http.Header{}
		x, err := Apply("b", h1, []Func{f, g})
		assert.NoError(t, err)

		h2 := http.Header{}
		fx, _ := f("b", h2)
		gx, _ := g(fx, h2)
		assert.Equal(t, gx, x)
		assert.Equal(t, "b-f-g(f)", x)
		assert.Equal(t, h2, h1)
	})
	t.Run("error stops pipeline", func(t *testing.T) {
		boom := errors.New("boom")
		calls := 0
		f := func(_ interface{}, _ http.Header) (interface{}, error) {
			calls++
			return nil, boom
		}
		g := func(data interface{}, _ http.Header) (interface{}, error) {
			calls++
			return data, nil
		}
		x, err := Apply("b", http.Header{}, []Func{f, g})
		assert.Same(t, boom, err)
		assert.Nil(t, x)
		assert.Equal(t, 1, calls)
	})
}
