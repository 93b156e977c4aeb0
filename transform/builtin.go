// Copyright 2021 The pipex Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transform

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/goccy/go-yaml"
	"github.com/tidwall/gjson"
)

const (
	// JSONContentType is the Content-Type set by Request when it
	// serializes request data to JSON.
	JSONContentType = "application/json;charset=utf-8"
	// FormContentType is the Content-Type set by Request when it
	// encodes url.Values request data.
	FormContentType = "application/x-www-form-urlencoded;charset=utf-8"
)

// Request returns the default request transform.
//
// The transform leaves nil, string, []byte, and io.Reader data
// unchanged. It encodes url.Values data as a form and sets the
// Content-Type header to FormContentType unless the header is already
// set. Any other data is marshalled to JSON, and the Content-Type
// header is set to JSONContentType unless it is already set.
func Request() Func {
	return requestData
}

func requestData(data interface{}, header http.Header) (interface{}, error) {
	switch x := data.(type) {
	case nil, string, []byte, io.Reader:
		return data, nil
	case url.Values:
		setContentTypeIfUnset(header, FormContentType)
		return x.Encode(), nil
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return nil, err
		}
		setContentTypeIfUnset(header, JSONContentType)
		return b, nil
	}
}

// JSON returns the default response transform.
//
// If data is a string or []byte containing valid JSON, the transform
// returns the unmarshalled value (map[string]interface{},
// []interface{}, string, float64, bool or nil). Otherwise data is
// returned unchanged. The transform never fails.
func JSON() Func {
	return jsonData
}

func jsonData(data interface{}, _ http.Header) (interface{}, error) {
	b, ok := raw(data)
	if !ok || !gjson.ValidBytes(b) {
		return data, nil
	}

	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return data, nil
	}
	return v, nil
}

// YAML returns a response transform which unmarshals string or []byte
// data when the Content-Type header names a YAML media type. Malformed
// YAML results in an error.
func YAML() Func {
	return yamlData
}

func yamlData(data interface{}, header http.Header) (interface{}, error) {
	b, ok := raw(data)
	if !ok || !contentTypeContains(header, "yaml") {
		return data, nil
	}

	var v interface{}
	if err := yaml.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// XML returns a response transform which parses string or []byte data
// into an *xmlquery.Node document when the Content-Type header names
// an XML media type. Malformed XML results in an error.
func XML() Func {
	return xmlData
}

func xmlData(data interface{}, header http.Header) (interface{}, error) {
	b, ok := raw(data)
	if !ok || !contentTypeContains(header, "xml") {
		return data, nil
	}

	doc, err := xmlquery.Parse(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func raw(data interface{}) ([]byte, bool) {
	switch x := data.(type) {
	case []byte:
		return x, true
	case string:
		return []byte(x), true
	default:
		return nil, false
	}
}

func setContentTypeIfUnset(header http.Header, contentType string) {
	if header != nil && header.Get("Content-Type") == "" {
		header.Set("Content-Type", contentType)
	}
}

func contentTypeContains(header http.Header, s string) bool {
	return strings.Contains(strings.ToLower(header.Get("Content-Type")), s)
}
