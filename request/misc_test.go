// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"errors"
	"io"
	"io/ioutil"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEncodeBody(t *testing.T) {
	type widget struct {
		Name string `json:"name"`
	}
	type count int

	testCases := []struct {
		name        string
		body        interface{}
		expected    []byte
		contentType string
	}{
		{"nil", nil, nil, ""},
		{"string", "foo", []byte("foo"), TextPlain},
		{"bytes", []byte("bar"), []byte("bar"), ""},
		{"reader", strings.NewReader("baz"), []byte("baz"), ""},
		{"read closer", ioutil.NopCloser(bytes.NewReader([]byte("qux"))), []byte("qux"), ""},
		{"form", url.Values{"ham": {"eggs", "spam"}}, []byte("ham=eggs&ham=spam"), FormURLEncoded},
		{"int", 7, []byte("7"), TextPlain},
		{"named int", count(9), []byte("9"), TextPlain},
		{"float", 2.5, []byte("2.5"), TextPlain},
		{"bool", false, []byte("false"), TextPlain},
		{"map", map[string]string{"name": "xhrTest"}, []byte(`{"name":"xhrTest"}`), JSON},
		{"struct", widget{Name: "xhrTest"}, []byte(`{"name":"xhrTest"}`), JSON},
		{"empty object", struct{}{}, []byte(`{}`), JSON},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			b, ct, err := EncodeBody(testCase.body)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, b)
			assert.Equal(t, testCase.contentType, ct)
		})
	}

	t.Run("unencodable", func(t *testing.T) {
		b, ct, err := EncodeBody(func() {})
		assert.Nil(t, b)
		assert.Empty(t, ct)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "xhr/request: cannot encode body")
	})

	t.Run("reader errors", func(t *testing.T) {
		expectedErr := errors.New("ham")
		t.Run("Read", func(t *testing.T) {
			m := &mockReadCloser{}
			m.Test(t)
			m.On("Read", mock.Anything).Return(10, expectedErr).Once()
			b, _, err := EncodeBody(m)
			assert.Nil(t, b)
			assert.Same(t, expectedErr, err)
			m.AssertExpectations(t)
		})
		t.Run("Close", func(t *testing.T) {
			m := &mockReadCloser{}
			m.Test(t)
			m.On("Read", mock.Anything).Return(0, io.EOF).Once()
			m.On("Close").Return(expectedErr).Once()
			b, _, err := EncodeBody(m)
			assert.Nil(t, b)
			assert.Same(t, expectedErr, err)
			m.AssertExpectations(t)
		})
	})
}

func TestBody(t *testing.T) {
	b := Body(`{"name":"xhrTest","tags":["a","b"],"n":3}`)
	t.Run("String", func(t *testing.T) {
		assert.Equal(t, `{"name":"xhrTest","tags":["a","b"],"n":3}`, b.String())
	})
	t.Run("Get", func(t *testing.T) {
		assert.Equal(t, "xhrTest", b.Get("name").String())
		assert.Equal(t, "b", b.Get("tags.1").String())
		assert.Equal(t, int64(3), b.Get("n").Int())
		assert.False(t, b.Get("missing").Exists())
	})
	t.Run("Unmarshal", func(t *testing.T) {
		var v struct {
			Name string   `json:"name"`
			Tags []string `json:"tags"`
		}
		require.NoError(t, b.Unmarshal(&v))
		assert.Equal(t, "xhrTest", v.Name)
		assert.Equal(t, []string{"a", "b"}, v.Tags)
		assert.Error(t, Body(`[{ "name": "xhrTest" "decribe": "badRequest"}]`).Unmarshal(&v))
	})
}

type mockReadCloser struct {
	mock.Mock
}

func (m *mockReadCloser) Read(p []byte) (n int, err error) {
	args := m.Called(p)
	n = args.Int(0)
	err = args.Error(1)
	return
}

func (m *mockReadCloser) Close() error {
	args := m.Called()
	return args.Error(0)
}
