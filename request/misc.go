// Copyright 2021 The pipex Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"errors"
	"io"
	"net/url"
)

const badBodyTypeMsg = "pipex/request: invalid body type (transform data to " +
	"nil, string, []byte, url.Values, io.Reader or io.ReadCloser)"

// BodyBytes converts transformed request data to the byte slice an
// adapter sends as the request body.
//
// The data parameter may be nil, or it may be a string, []byte,
// url.Values, io.Reader, or io.ReadCloser. The conversion logic is:
//
// • If data is nil, a nil byte slice and no error is returned.
//
// • If data is a []byte, data itself and no error is returned.
//
// • If data is a string, the built-in conversion from string to byte
// slice, and no error, is returned.
//
// • If data is url.Values, its URL-encoded form is returned.
//
// • If data is an io.Reader or io.ReadCloser, the result of reading
// the whole contents of the reader (and closing it if it implements
// Closer) is returned. If reading from the reader (and closing it if
// applicable) causes an error, the return value is a nil byte slice
// and the error.
//
// • If data is any other type, a nil byte slice and an error is
// returned. Install a request transform, such as transform.Request,
// to serialize other types.
func BodyBytes(data interface{}) ([]byte, error) {
	switch x := data.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(x), nil
	case []byte:
		return x, nil
	case url.Values:
		return []byte(x.Encode()), nil
	case io.ReadCloser:
		b, err := io.ReadAll(x)
		if err != nil {
			return nil, err
		}
		err = x.Close()
		if err != nil {
			return nil, err
		}
		return b, nil
	case io.Reader:
		return BodyBytes(io.NopCloser(x))
	default:
		return nil, errors.New(badBodyTypeMsg)
	}
}
