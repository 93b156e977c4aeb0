// Copyright 2021 The pipex Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package urlutil contains the URL helpers used by the request
// pipeline and its transport adapters.
package urlutil

import (
	"net/url"
	"regexp"
	"strings"
)

var absoluteURL = regexp.MustCompile(`(?i)^([a-z][a-z\d+\-.]*:)?//`)

// IsAbsoluteURL reports whether u is absolute, meaning it begins with
// a scheme followed by "//" ("https://example.com") or is
// protocol-relative ("//example.com").
func IsAbsoluteURL(u string) bool {
	return absoluteURL.MatchString(u)
}

// CombineURLs joins base and relative with exactly one slash between
// them. If relative is empty, base is returned unchanged.
func CombineURLs(base, relative string) string {
	if relative == "" {
		return base
	}

	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(relative, "/")
}

// BuildURL appends the serialized params to the query string of u.
//
// If serializer is nil, params are serialized with url.Values.Encode.
// If params is nil, or serializes to the empty string, u is returned
// unchanged. Any fragment in u is dropped when params are appended.
func BuildURL(u string, params url.Values, serializer func(url.Values) string) string {
	if params == nil {
		return u
	}

	var serialized string
	if serializer != nil {
		serialized = serializer(params)
	} else {
		serialized = params.Encode()
	}
	if serialized == "" {
		return u
	}

	if i := strings.IndexByte(u, '#'); i >= 0 {
		u = u[:i]
	}
	sep := "?"
	if strings.IndexByte(u, '?') >= 0 {
		sep = "&"
	}
	return u + sep + serialized
}
