// Copyright 2021 The pipex Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transform

import "net/http"

// A Func transforms a request or response body.
//
// The header parameter holds the headers belonging to the body. A Func
// may read it, and may modify it, but should not retain it.
//
// If a Func returns an error, the transform pipeline stops and the
// error is returned to the caller unchanged.
type Func func(data interface{}, header http.Header) (interface{}, error)

// Apply runs data through fns in order and returns the result of the
// last transform. If fns is empty, data is returned unchanged.
//
// Each transform receives the output of the transform before it, and
// sees every change earlier transforms made to header.
func Apply(data interface{}, header http.Header, fns []Func) (interface{}, error) {
	for _, fn := range fns {
		var err error
		data, err = fn(data, header)
		if err != nil {
			return nil, err
		}
	}

	return data, nil
}
