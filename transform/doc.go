// Copyright 2021 The pipex Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package transform contains the body transform pipeline applied to
request data before it is sent, and to response data after it is
received.

A transform is a Func which takes a body and its headers and returns a
new body. Transforms may change the headers as a side effect, for
example to set the Content-Type of a request body they have just
serialized. Apply runs a list of transforms strictly in order, feeding
each one the previous one's output.

The package also provides the built-in transforms used by
request.Defaults: Request, which serializes request data, and JSON,
which parses JSON response data. YAML and XML are available for servers
which speak those formats.
*/
package transform
