// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package extension

import (
	"encoding/xml"
	"errors"
)

// Sentinel errors that the typed errors in this package match with errors.Is.
var (
	ErrMalformedAttr  = errors.New("extension: malformed attribute")
	ErrInvalidMessage = errors.New("extension: invalid message")
	ErrUnknownElement = errors.New("extension: unknown element")
)

// ParseError is returned when an element cannot be decoded.
// No partially decoded value is ever returned alongside a ParseError.
type ParseError struct {
	// Name is the element that failed to decode.
	Name xml.Name
	// Attr is the attribute or text-only child element holding the bad value,
	// if any.
	Attr string
	Err  error
}

func (e *ParseError) Error() string {
	s := "extension: error decoding " + formatName(e.Name)
	if e.Attr != "" {
		s += " (" + e.Attr + ")"
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// MalformedAttrError is returned when the text of an attribute or text-only
// element cannot be converted to the type of the field it populates.
type MalformedAttrError struct {
	Name  string
	Value string
	Err   error
}

func (e *MalformedAttrError) Error() string {
	return "extension: malformed value " + quote(e.Value) + " for " + e.Name + ": " + e.Err.Error()
}

// Is reports whether target is ErrMalformedAttr.
func (e *MalformedAttrError) Is(target error) bool {
	return target == ErrMalformedAttr
}

// Unwrap returns the underlying conversion error.
func (e *MalformedAttrError) Unwrap() error {
	return e.Err
}

// InvalidMessageError is returned when a message is constructed without one of
// its required fields.
type InvalidMessageError struct {
	// Element is the local name of the message element.
	Element string
	// Field is the first required field found to be missing.
	Field string
}

func (e *InvalidMessageError) Error() string {
	return "extension: " + e.Field + " must be set for " + e.Element
}

// Is reports whether target is ErrInvalidMessage.
func (e *InvalidMessageError) Is(target error) bool {
	return target == ErrInvalidMessage
}

func formatName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return "{" + n.Space + "}" + n.Local
}

func quote(s string) string {
	return `"` + s + `"`
}
