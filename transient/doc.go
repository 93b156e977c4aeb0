// Copyright 2021 The pipex Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient classifies the errors transport adapters report
// when an HTTP request fails before a response is received. The
// classification backs request.TransportError's Timeout and Category
// methods, and is handy for bucketing error metrics or deciding, in a
// response interceptor, whether a failure is worth reporting.
//
// Package transient depends only on the standard library.
package transient
