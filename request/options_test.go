// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBuildQuery(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "", BuildQuery(nil))
		assert.Equal(t, "", BuildQuery(Query{}))
	})
	t.Run("single", func(t *testing.T) {
		assert.Equal(t, "?name=x", BuildQuery(Query{{"name", "x"}}))
		assert.Equal(t, "?name=dummyData", BuildQuery(Query{{"name", "dummyData"}}))
	})
	t.Run("order and duplicates", func(t *testing.T) {
		q := Query{{"b", "1"}, {"a", "2"}, {"b", "3"}}
		assert.Equal(t, "?b=1&a=2&b=3", BuildQuery(q))
	})
	t.Run("numbers", func(t *testing.T) {
		q := Query{{"page", 2}, {"ratio", 1.5}, {"whole", 3.0}, {"big", int64(1) << 40}, {"ok", true}}
		assert.Equal(t, "?page=2&ratio=1.5&whole=3&big=1099511627776&ok=true", BuildQuery(q))
	})
	t.Run("other values", func(t *testing.T) {
		assert.Equal(t, "?n=", BuildQuery(Query{{"n", nil}}))
		assert.Equal(t, "?s=%5B1%202%5D", BuildQuery(Query{{"s", []int{1, 2}}}))
	})
	t.Run("encoding", func(t *testing.T) {
		testCases := []string{
			"a b",
			"a+b",
			"k&v=w",
			"50%",
			"path/to?x#y",
			"ünïcødé ✓",
			"-_.!~*'()",
			"$,;:@[]",
		}
		for _, s := range testCases {
			t.Run(s, func(t *testing.T) {
				out := BuildQuery(Query{{s, s}})
				require.True(t, strings.HasPrefix(out, "?"))
				kv := strings.SplitN(out[1:], "=", 2)
				require.Len(t, kv, 2)
				assert.Equal(t, kv[0], kv[1])
				assert.NotContains(t, kv[0], "&")
				assert.NotContains(t, kv[0], "=")
				assert.NotContains(t, kv[0], "+")
				assert.NotContains(t, kv[0], " ")
				k, err := url.PathUnescape(kv[0])
				require.NoError(t, err)
				assert.Equal(t, s, k)
				k, err = url.QueryUnescape(kv[0])
				require.NoError(t, err)
				assert.Equal(t, s, k)
			})
		}
	})
}

func TestEncodeComponent(t *testing.T) {
	assert.Equal(t, "", EncodeComponent(""))
	assert.Equal(t, "abcXYZ019", EncodeComponent("abcXYZ019"))
	assert.Equal(t, "-_.!~*'()", EncodeComponent("-_.!~*'()"))
	assert.Equal(t, "a%20b", EncodeComponent("a b"))
	assert.Equal(t, "a%2Bb", EncodeComponent("a+b"))
	assert.Equal(t, "%3F%26%3D%23%2F%3A%40%24%2C%3B", EncodeComponent("?&=#/:@$,;"))
	assert.Equal(t, "%C3%BC", EncodeComponent("ü"))
}

func TestQuery_Add(t *testing.T) {
	var q Query
	q.Add("foo", "bar")
	q.Add("foo", 1)
	assert.Equal(t, Query{{"foo", "bar"}, {"foo", 1}}, q)
}

func TestQueryFrom(t *testing.T) {
	assert.Nil(t, QueryFrom(nil))
	q := QueryFrom(url.Values{"ham": {"eggs", "spam"}, "a": {"b"}})
	assert.Equal(t, Query{{"a", "b"}, {"ham", "eggs"}, {"ham", "spam"}}, q)
	assert.Equal(t, "?a=b&ham=eggs&ham=spam", BuildQuery(q))
}

func TestMerge(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		m := Merge(nil)
		assert.NotNil(t, m.Header)
		assert.Empty(t, m.Header)
		assert.NotNil(t, m.Query)
		assert.Empty(t, m.Query)
		assert.Nil(t, m.Data)
	})
	t.Run("partial", func(t *testing.T) {
		m := Merge(&Options{Data: 7})
		assert.Empty(t, m.Header)
		assert.Empty(t, m.Query)
		assert.Equal(t, 7, m.Data)
	})
	t.Run("copies", func(t *testing.T) {
		o := &Options{
			Header: map[string]string{"Foo": "bar"},
			Query:  Query{{"ham", "eggs"}},
			Data:   "baz",
		}
		m := Merge(o)
		assert.Equal(t, map[string]string{"Foo": "bar"}, m.Header)
		assert.Equal(t, Query{{"ham", "eggs"}}, m.Query)
		assert.Equal(t, "baz", m.Data)
		o.Header["Foo"] = "changed"
		o.Query[0].Value = "spam"
		assert.Equal(t, "bar", m.Header["Foo"])
		assert.Equal(t, "eggs", m.Query[0].Value)
	})
	t.Run("independent calls", func(t *testing.T) {
		m1 := Merge(nil)
		m1.Header["Leak"] = "yes"
		m2 := Merge(nil)
		assert.Empty(t, m2.Header)
	})
}

func TestAssignHeaders(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		m := newMockHeaderSetter(t)
		assert.NoError(t, AssignHeaders(m, nil))
		m.AssertNotCalled(t, "SetRequestHeader", mock.Anything, mock.Anything)
	})
	t.Run("one", func(t *testing.T) {
		m := newMockHeaderSetter(t)
		m.On("SetRequestHeader", "Content-Type", "application/json").Return(nil).Once()
		assert.NoError(t, AssignHeaders(m, map[string]string{"Content-Type": "application/json"}))
		m.AssertExpectations(t)
		m.AssertNumberOfCalls(t, "SetRequestHeader", 1)
	})
	t.Run("many", func(t *testing.T) {
		m := newMockHeaderSetter(t)
		m.On("SetRequestHeader", "Content-type", "dummyHeader").Return(nil).Once()
		m.On("SetRequestHeader", "Accept", "*/*").Return(nil).Once()
		assert.NoError(t, AssignHeaders(m, map[string]string{
			"Content-type": "dummyHeader",
			"Accept":       "*/*",
		}))
		m.AssertExpectations(t)
	})
	t.Run("error", func(t *testing.T) {
		expectedErr := errors.New("bad header")
		m := newMockHeaderSetter(t)
		m.On("SetRequestHeader", "Bad Name", "x").Return(expectedErr).Once()
		err := AssignHeaders(m, map[string]string{"Bad Name": "x"})
		assert.Same(t, expectedErr, err)
		m.AssertExpectations(t)
	})
}

type mockHeaderSetter struct {
	mock.Mock
}

func newMockHeaderSetter(t *testing.T) *mockHeaderSetter {
	m := &mockHeaderSetter{}
	m.Test(t)
	return m
}

func (m *mockHeaderSetter) SetRequestHeader(name, value string) error {
	args := m.Called(name, value)
	return args.Error(0)
}
