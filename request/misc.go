// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"fmt"
	"io"
	"io/ioutil"
	"net/url"
	"reflect"

	"github.com/goccy/go-json"
	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
)

// Default content types chosen by EncodeBody.
const (
	TextPlain      = "text/plain;charset=UTF-8"
	FormURLEncoded = "application/x-www-form-urlencoded;charset=UTF-8"
	JSON           = "application/json"
)

// EncodeBody converts request data to the bytes sent on the wire and a
// suggested Content-Type, which is empty when there is no sensible
// default. The conversion logic is:
//
// • nil produces a nil body.
//
// • A string is sent as-is, as text/plain.
//
// • A []byte is sent as-is with no suggested content type.
//
// • url.Values are form-encoded.
//
// • An io.Reader is read to the end (and closed if it is an
// io.ReadCloser); a read or close error is returned.
//
// • Booleans and numbers are sent as their decimal text, as text/plain,
// so that 7 goes over the wire as the single byte "7".
//
// • Anything else is marshaled as JSON.
func EncodeBody(body interface{}) ([]byte, string, error) {
	switch x := body.(type) {
	case nil:
		return nil, "", nil
	case string:
		return []byte(x), TextPlain, nil
	case []byte:
		return x, "", nil
	case url.Values:
		return []byte(x.Encode()), FormURLEncoded, nil
	case io.ReadCloser:
		b, err := ioutil.ReadAll(x)
		if err != nil {
			return nil, "", err
		}
		err = x.Close()
		if err != nil {
			return nil, "", err
		}
		return b, "", nil
	case io.Reader:
		return EncodeBody(ioutil.NopCloser(x))
	}

	if scalar(body) {
		s, err := cast.ToStringE(body)
		if err != nil {
			s = fmt.Sprint(body)
		}
		return []byte(s), TextPlain, nil
	}

	b, err := json.Marshal(body)
	if err != nil {
		return nil, "", fmt.Errorf("xhr/request: cannot encode body: %w", err)
	}
	return b, JSON, nil
}

func scalar(v interface{}) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// Body is a fully read response body.
type Body []byte

// String returns the body as a string.
func (b Body) String() string {
	return string(b)
}

// Unmarshal parses the body as JSON into v.
func (b Body) Unmarshal(v interface{}) error {
	return json.Unmarshal(b, v)
}

// Get searches the body, which should be JSON, for the gjson path and
// returns the result. A missing path yields a result whose Exists
// method reports false.
func (b Body) Get(path string) gjson.Result {
	return gjson.GetBytes(b, path)
}
