// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package extension

import (
	"mellium.im/jitsi/internal/attr"
)

// Kind is the type held by a Value.
type Kind uint8

// A list of possible value kinds.
const (
	KindString Kind = iota
	KindInt
	KindBool
)

// Value is an attribute value.
// It holds a string, an int, or a bool and converts between them and their
// wire representation explicitly.
// Values decoded from XML are always of KindString.
type Value struct {
	kind Kind
	s    string
	i    int
	b    bool
}

// String returns a Value holding s.
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// Int returns a Value holding i.
func Int(i int) Value {
	return Value{kind: KindInt, i: i}
}

// Bool returns a Value holding b.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Kind returns the kind of value held by v.
func (v Value) Kind() Kind {
	return v.kind
}

// String returns the wire representation of v.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return attr.FormatInt(v.i)
	case KindBool:
		return attr.FormatBool(v.b)
	}
	return v.s
}

// Bool returns v as a boolean.
// Strings other than "true" (ignoring case) are false.
func (v Value) Bool() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i != 0
	}
	return attr.ParseBool(v.s)
}

// Int returns v as an integer.
// If v holds a string that is not a base 10 integer, a *MalformedAttrError is
// returned.
// Booleans convert to 1 or 0.
func (v Value) Int() (int, error) {
	switch v.kind {
	case KindInt:
		return v.i, nil
	case KindBool:
		if v.b {
			return 1, nil
		}
		return 0, nil
	}
	i, err := attr.ParseInt(v.s)
	if err != nil {
		return 0, &MalformedAttrError{Value: v.s, Err: err}
	}
	return i, nil
}

// Equal reports whether v and o have the same wire representation.
func (v Value) Equal(o Value) bool {
	return v.String() == o.String()
}

// Attr is a named attribute.
// Space is the namespace of the attribute and is empty for the usual
// unqualified attributes; xml:lang, for instance, has the XML namespace.
type Attr struct {
	Space string
	Name  string
	Value Value
}
