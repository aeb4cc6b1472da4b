// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// Options holds the optional per-call inputs of a request. The zero
// value, and a nil *Options, both mean "no headers, no query, no body".
//
// Options are never retained by the client: each call works on the copy
// returned by Merge.
type Options struct {
	// Header contains request header fields, one value per name, to be
	// assigned to the native request before it is sent.
	Header map[string]string

	// Query contains the query parameters appended to the request URL.
	Query Query

	// Data is the request body. It is handed to the native request's
	// Send method unchanged; see EncodeBody for how the default native
	// request turns it into bytes.
	Data interface{}
}

// A Param is a single query parameter. Value is typically a string or a
// number, but any value is accepted and stringified.
type Param struct {
	Key   string
	Value interface{}
}

// A Query is an ordered list of query parameters. Order is preserved by
// BuildQuery and duplicate keys are kept.
type Query []Param

// Add appends a parameter to the query.
func (q *Query) Add(key string, value interface{}) {
	*q = append(*q, Param{Key: key, Value: value})
}

// QueryFrom converts url.Values into a Query. Keys are sorted, and keys
// with multiple values produce one parameter per value.
func QueryFrom(v url.Values) Query {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var q Query
	for _, k := range keys {
		for _, s := range v[k] {
			q = append(q, Param{Key: k, Value: s})
		}
	}
	return q
}

// Merge returns the effective options for one call: o laid over the
// defaults (an empty header map, an empty query and nil data).
//
// The merge is shallow. A non-nil Header or Query in o replaces the
// default entirely, and o.Data is used as-is. Header and Query are
// copied, so later changes to o do not affect the returned value.
func Merge(o *Options) Options {
	m := Options{
		Header: map[string]string{},
		Query:  Query{},
	}
	if o == nil {
		return m
	}
	if o.Header != nil {
		m.Header = make(map[string]string, len(o.Header))
		for k, v := range o.Header {
			m.Header[k] = v
		}
	}
	if o.Query != nil {
		m.Query = make(Query, len(o.Query))
		copy(m.Query, o.Query)
	}
	m.Data = o.Data
	return m
}

// BuildQuery renders q as a URL query suffix of the form
// "?k1=v1&k2=v2". Keys and values are encoded with EncodeComponent, and
// parameters appear in order.
//
// An empty or nil query yields "", never a lone "?".
func BuildQuery(q Query) string {
	var b strings.Builder
	b.WriteByte('?')
	for _, p := range q {
		b.WriteString(EncodeComponent(p.Key))
		b.WriteByte('=')
		b.WriteString(EncodeComponent(stringify(p.Value)))
		b.WriteByte('&')
	}
	s := b.String()
	return s[:len(s)-1]
}

var componentReplacer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeComponent percent-encodes s like the ECMAScript
// encodeURIComponent function: ASCII letters, digits and the marks
// - _ . ! ~ * ' ( ) are kept and every other byte of the UTF-8 encoding
// is escaped. Spaces become "%20". The result decodes back to s with
// url.PathUnescape or url.QueryUnescape.
func EncodeComponent(s string) string {
	return componentReplacer.Replace(url.QueryEscape(s))
}

func stringify(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	return fmt.Sprint(v)
}

// A HeaderSetter sets a request header field. The native requests used
// by the xhr client are HeaderSetters.
type HeaderSetter interface {
	SetRequestHeader(name, value string) error
}

// AssignHeaders calls r.SetRequestHeader once for every entry in h. The
// order of the calls is unspecified. A nil h does nothing.
//
// The first error returned by r is returned unchanged and the remaining
// entries are skipped.
func AssignHeaders(r HeaderSetter, h map[string]string) error {
	for name, value := range h {
		if err := r.SetRequestHeader(name, value); err != nil {
			return err
		}
	}
	return nil
}
