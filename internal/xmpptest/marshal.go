// Copyright 2021 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package xmpptest provides utilities for testing extension encoding and
// decoding.
package xmpptest // import "mellium.im/jitsi/internal/xmpptest"

import (
	"errors"
	"reflect"
	"strconv"
	"testing"

	"mellium.im/jitsi/extension"
)

// EncodingTestCase is a test that marshals the value and checks that the result
// matches XML, then decodes XML using the registry and checks that it matches
// the original value with reflect.DeepEqual.
// If NoMarshal or NoUnmarshal is set then the corresponding part of the test is
// not run (for payloads that are not roundtrippable).
type EncodingTestCase struct {
	Value       extension.Extension
	XML         string
	Err         error
	NoMarshal   bool
	NoUnmarshal bool
}

// RunEncodingTests iterates over the test cases and runs each one.
func RunEncodingTests(t *testing.T, reg *extension.Registry, testCases []EncodingTestCase) {
	for i, tc := range testCases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			if !tc.NoMarshal {
				t.Run("marshal", func(t *testing.T) {
					x, err := extension.Marshal(tc.Value)
					if !errors.Is(err, tc.Err) {
						t.Fatalf("unexpected error: want=%v, got=%v", tc.Err, err)
					}
					if out := string(x); out != tc.XML {
						t.Fatalf("unexpected output:\nwant=%q,\n got=%q", tc.XML, out)
					}
				})
			}
			if !tc.NoUnmarshal {
				t.Run("unmarshal", func(t *testing.T) {
					newVal, err := reg.Unmarshal([]byte(tc.XML))
					if !errors.Is(err, tc.Err) {
						t.Fatalf("unexpected error: want=%v, got=%v", tc.Err, err)
					}
					if tc.Err != nil {
						if newVal != nil {
							t.Fatalf("expected no value on error, got=%+v", newVal)
						}
						return
					}
					if !reflect.DeepEqual(newVal, tc.Value) {
						t.Fatalf("unexpected value: want=%+v, got=%+v", tc.Value, newVal)
					}
				})
			}
		})
	}
}
