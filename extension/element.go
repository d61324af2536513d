// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package extension

import (
	"encoding/xml"
	"errors"

	"mellium.im/xmlstream"
)

// Extension is a protocol extension element.
type Extension interface {
	// Name returns the namespace and local name of the element.
	Name() xml.Name

	// TokenReader returns a stream of tokens encoding the element.
	TokenReader() xml.TokenReader
}

// Element is the generic form of an extension element: a namespaced name,
// ordered attributes, optional character data, and an ordered list of child
// extensions.
//
// Character data is kept as a single string and is written before the
// children, so mixed content such as <a>x<b/>y</a> comes back as <a>xy<b/></a>.
// Comments and processing instructions are dropped.
//
// The zero value is an element with no name and is not useful.
type Element struct {
	XMLName  xml.Name
	Text     string
	attrs    []Attr
	children []Extension
}

// New returns an element with the provided namespace and local name.
func New(space, local string) *Element {
	return &Element{XMLName: xml.Name{Space: space, Local: local}}
}

// Name returns the namespace and local name of the element.
func (e *Element) Name() xml.Name {
	return e.XMLName
}

// ElementName returns the local name of the element.
func (e *Element) ElementName() string {
	return e.XMLName.Local
}

// Namespace returns the namespace of the element.
func (e *Element) Namespace() string {
	return e.XMLName.Space
}

// Attr returns the value of the named attribute and whether it was present.
// Only attributes without a namespace are matched by Attr, SetAttr, and
// RemoveAttr.
func (e *Element) Attr(name string) (Value, bool) {
	return e.AttrNS("", name)
}

// AttrNS is like Attr except that it matches attributes in the namespace
// space.
func (e *Element) AttrNS(space, name string) (Value, bool) {
	for _, a := range e.attrs {
		if a.Space == space && a.Name == name {
			return a.Value, true
		}
	}
	return Value{}, false
}

// Attrs returns a copy of the element's attributes in the order they will be
// encoded.
func (e *Element) Attrs() []Attr {
	return append([]Attr(nil), e.attrs...)
}

// SetAttr sets the named attribute.
// Existing attributes keep their position, new ones are appended.
func (e *Element) SetAttr(name string, v Value) {
	e.SetAttrNS("", name, v)
}

// SetAttrNS is like SetAttr except that the attribute is in the namespace
// space.
func (e *Element) SetAttrNS(space, name string, v Value) {
	for i, a := range e.attrs {
		if a.Space == space && a.Name == name {
			e.attrs[i].Value = v
			return
		}
	}
	e.attrs = append(e.attrs, Attr{Space: space, Name: name, Value: v})
}

// SetOptAttr is like SetAttr except that if v has the same wire representation
// as def the attribute is removed instead.
func (e *Element) SetOptAttr(name string, v, def Value) {
	if v.Equal(def) {
		e.RemoveAttr(name)
		return
	}
	e.SetAttr(name, v)
}

// RemoveAttr removes the named attribute if it exists.
func (e *Element) RemoveAttr(name string) {
	for i, a := range e.attrs {
		if a.Space == "" && a.Name == name {
			e.attrs = append(e.attrs[:i], e.attrs[i+1:]...)
			return
		}
	}
}

// BoolAttr returns the named attribute as a boolean or def if it is missing.
func (e *Element) BoolAttr(name string, def bool) bool {
	v, ok := e.Attr(name)
	if !ok {
		return def
	}
	return v.Bool()
}

// IntAttr returns the named attribute as an integer or def if it is missing.
func (e *Element) IntAttr(name string, def int) (int, error) {
	v, ok := e.Attr(name)
	if !ok {
		return def, nil
	}
	i, err := v.Int()
	if err != nil {
		var malformed *MalformedAttrError
		if errors.As(err, &malformed) {
			malformed.Name = name
		}
		return def, err
	}
	return i, nil
}

// AddChild appends a child extension.
// Nil children are ignored.
func (e *Element) AddChild(ext Extension) {
	if ext == nil {
		return
	}
	e.children = append(e.children, ext)
}

// Children returns a copy of the element's children in document order.
func (e *Element) Children() []Extension {
	return append([]Extension(nil), e.children...)
}

// ChildrenOf returns the children of e that have type T in document order.
func ChildrenOf[T Extension](e *Element) []T {
	var out []T
	for _, c := range e.children {
		if t, ok := c.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// ChildOf returns the first child of e that has type T.
func ChildOf[T Extension](e *Element) (T, bool) {
	for _, c := range e.children {
		if t, ok := c.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// ChildrenNamed returns the children of e with the provided XML name.
// An empty namespace matches any namespace.
func (e *Element) ChildrenNamed(name xml.Name) []Extension {
	var out []Extension
	for _, c := range e.children {
		n := c.Name()
		if n.Local == name.Local && (name.Space == "" || n.Space == name.Space) {
			out = append(out, c)
		}
	}
	return out
}

// StartElement returns the start token of e.
func (e *Element) StartElement() xml.StartElement {
	start := xml.StartElement{Name: e.XMLName}
	start.Attr = StartAttrs(e.attrs)
	return start
}

// StartAttrs converts attrs to the attributes of a start token.
func StartAttrs(attrs []Attr) []xml.Attr {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]xml.Attr, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, xml.Attr{
			Name:  xml.Name{Space: a.Space, Local: a.Name},
			Value: a.Value.String(),
		})
	}
	return out
}

// TokenReader satisfies the xmlstream.Marshaler interface.
func (e *Element) TokenReader() xml.TokenReader {
	var inner []xml.TokenReader
	if e.Text != "" {
		inner = append(inner, xmlstream.Token(xml.CharData(e.Text)))
	}
	for _, c := range e.children {
		inner = append(inner, c.TokenReader())
	}
	return xmlstream.Wrap(xmlstream.MultiReader(inner...), e.StartElement())
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (e *Element) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, e.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (e *Element) MarshalXML(enc *xml.Encoder, _ xml.StartElement) error {
	_, err := e.WriteXML(enc)
	return err
}

// UnmarshalXML implements xml.Unmarshaler.
// Children are decoded as generic elements.
func (e *Element) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	el, err := decodeElement(NewDecoder(d), start)
	if err != nil {
		return err
	}
	*e = *el
	return nil
}

// Clone returns a deep copy of e.
func (e *Element) Clone() *Element {
	c := &Element{
		XMLName: e.XMLName,
		Text:    e.Text,
	}
	if len(e.attrs) > 0 {
		c.attrs = append([]Attr(nil), e.attrs...)
	}
	if len(e.children) > 0 {
		c.children = make([]Extension, 0, len(e.children))
		for _, child := range e.children {
			c.children = append(c.children, Clone(child))
		}
	}
	return c
}

// Cloner is implemented by extensions that hold references to mutable data and
// can make deep copies of themselves.
type Cloner interface {
	Clone() Extension
}

// Clone returns a deep copy of ext.
// Elements and extensions implementing Cloner are copied, any other extension
// is assumed to be a plain value and is returned as is.
func Clone(ext Extension) Extension {
	switch e := ext.(type) {
	case nil:
		return nil
	case *Element:
		if e == nil {
			return e
		}
		return e.Clone()
	case Cloner:
		return e.Clone()
	}
	return ext
}

// CloneAll returns a deep copy of every extension in exts.
// If exts is empty, nil is returned.
func CloneAll(exts []Extension) []Extension {
	if len(exts) == 0 {
		return nil
	}
	out := make([]Extension, 0, len(exts))
	for _, ext := range exts {
		out = append(out, Clone(ext))
	}
	return out
}

// Generic converts any extension into its generic form by decoding its token
// stream.
// Typed children become generic elements as well.
func Generic(ext Extension) (*Element, error) {
	d := NewDecoder(ext.TokenReader())
	start, err := d.NextStart()
	if err != nil {
		return nil, err
	}
	return decodeElement(d, start)
}
