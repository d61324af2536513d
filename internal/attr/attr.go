// Copyright 2017 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package attr contains helpers for reading and writing the scalar values
// carried by XML attributes and text-only elements.
package attr

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// Get returns the index and value of the first attribute with the provided
// local name from a list of attributes or -1 and an empty string if no such
// attribute exists.
func Get(attr []xml.Attr, local string) (int, string) {
	for i, a := range attr {
		if a.Name.Local == local {
			return i, a.Value
		}
	}
	return -1, ""
}

// ParseBool reports whether s is the literal "true", ignoring case.
// Any other text, including the empty string, is false.
func ParseBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}

// FormatBool returns "true" or "false".
func FormatBool(b bool) string {
	return strconv.FormatBool(b)
}

// ParseInt parses s as a base 10 integer.
// Surrounding whitespace is ignored.
func ParseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// FormatInt returns the base 10 representation of i.
func FormatInt(i int) string {
	return strconv.Itoa(i)
}

// Flag values for tri-state boolean fields.
const (
	FlagUnset = -1
	FlagFalse = 0
	FlagTrue  = 1
)

// ParseFlag converts boolean text to FlagTrue or FlagFalse using the same
// lenient rules as ParseBool.
func ParseFlag(s string) int {
	if ParseBool(s) {
		return FlagTrue
	}
	return FlagFalse
}

// FormatFlag returns the text form of a tri-state flag and false if the flag
// is unset.
func FormatFlag(f int) (string, bool) {
	switch f {
	case FlagUnset:
		return "", false
	case FlagFalse:
		return "false", true
	}
	return "true", true
}
