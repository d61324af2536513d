// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package extension

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"mellium.im/jitsi/internal/attr"
	"mellium.im/jitsi/internal/ns"
	"mellium.im/xmlstream"
)

// DecodeFunc decodes the element that begins with start.
// When it is called the start token has already been read from d.
// It must read exactly through the matching end token and return either a
// fully populated extension or an error.
type DecodeFunc func(d *Decoder, start xml.StartElement) (Extension, error)

// Decoder is a cursor over an XML token stream that decodes extensions.
// Nested elements are dispatched through the registry the decoder was created
// from.
type Decoder struct {
	r     xml.TokenReader
	reg   *Registry
	depth int
}

// NewDecoder returns a decoder that reads from r and decodes every element as
// a generic Element.
func NewDecoder(r xml.TokenReader) *Decoder {
	return &Decoder{r: r}
}

// Token satisfies the xml.TokenReader interface.
// Returned tokens are copies and remain valid after subsequent calls.
func (d *Decoder) Token() (xml.Token, error) {
	tok, err := d.r.Token()
	if tok != nil {
		tok = xml.CopyToken(tok)
	}
	return tok, err
}

// InnerToken is like Token except that it is meant to be used while reading
// the content of an element: hitting the end of the stream returns
// io.ErrUnexpectedEOF.
func (d *Decoder) InnerToken() (xml.Token, error) {
	tok, err := d.Token()
	switch {
	case errors.Is(err, io.EOF) && tok == nil:
		return nil, io.ErrUnexpectedEOF
	case err != nil && !errors.Is(err, io.EOF):
		return nil, err
	}
	return tok, nil
}

// NextStart reads tokens until the next start element at the current depth and
// returns it.
// If the end of the enclosing element or the end of the stream is reached
// first, io.EOF is returned.
func (d *Decoder) NextStart() (xml.StartElement, error) {
	for {
		tok, err := d.Token()
		if tok == nil && err != nil {
			return xml.StartElement{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return t, nil
		case xml.EndElement:
			return xml.StartElement{}, io.EOF
		}
		if err != nil {
			return xml.StartElement{}, err
		}
	}
}

// Next decodes the next element at the current depth.
// When there are no more elements io.EOF is returned.
func (d *Decoder) Next() (Extension, error) {
	start, err := d.NextStart()
	if err != nil {
		return nil, err
	}
	return d.Decode(start)
}

// Decode decodes the element that begins with start, which must have just been
// read from d.
// The decoder registered for the element's name is used; unknown elements are
// decoded as a generic *Element.
// If the registry is strict an unknown element that is not nested inside
// another decoded element is an error instead.
func (d *Decoder) Decode(start xml.StartElement) (Extension, error) {
	f, ok := d.reg.Lookup(start.Name)
	if !ok {
		if d.depth == 0 && d.reg.isStrict() {
			if err := d.Skip(start); err != nil {
				return nil, wrapErr(start.Name, err)
			}
			return nil, &ParseError{Name: start.Name, Err: ErrUnknownElement}
		}
		f = genericDecoder
	}
	return d.DecodeWith(start, f)
}

// DecodeWith is like Decode except that it uses f instead of looking up the
// decoder in the registry.
// Errors are reported the same way as Decode.
func (d *Decoder) DecodeWith(start xml.StartElement, f DecodeFunc) (Extension, error) {
	d.depth++
	ext, err := f(d, start)
	d.depth--
	if err != nil {
		return nil, wrapErr(start.Name, err)
	}
	return ext, nil
}

// Skip consumes the remainder of the element that begins with start, which
// must have just been read from d.
func (d *Decoder) Skip(start xml.StartElement) error {
	d.reg.logf("skipping element %s", formatName(start.Name))
	return xmlstream.Skip(d)
}

// Finish reads through the end token of the current element, skipping any
// children it has left.
func (d *Decoder) Finish() error {
	for {
		tok, err := d.InnerToken()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := d.Skip(t); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

// Text reads the character data of the current element up to and including its
// end token.
// Nested elements are skipped.
func (d *Decoder) Text() (string, error) {
	var buf strings.Builder
	for {
		tok, err := d.InnerToken()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.StartElement:
			if err := d.Skip(t); err != nil {
				return "", err
			}
		case xml.EndElement:
			return buf.String(), nil
		}
	}
}

// Element decodes the element that begins with start as a generic *Element
// regardless of what is registered for its name.
// Its children are still dispatched through the registry.
func (d *Decoder) Element(start xml.StartElement) (*Element, error) {
	ext, err := d.DecodeWith(start, genericDecoder)
	if err != nil {
		return nil, err
	}
	return ext.(*Element), nil
}

func genericDecoder(d *Decoder, start xml.StartElement) (Extension, error) {
	return decodeElement(d, start)
}

func decodeElement(d *Decoder, start xml.StartElement) (*Element, error) {
	el := &Element{XMLName: start.Name, attrs: Attrs(start)}

	var text strings.Builder
	for {
		tok, err := d.InnerToken()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			child, err := d.Decode(t)
			if err != nil {
				return nil, err
			}
			el.AddChild(child)
		case xml.EndElement:
			if s := text.String(); strings.TrimSpace(s) != "" {
				el.Text = s
			}
			return el, nil
		}
	}
}

// Attrs returns the attributes of start as string values, leaving out namespace
// declarations.
// If there are no attributes, nil is returned.
func Attrs(start xml.StartElement) []Attr {
	var attrs []Attr
	for _, a := range start.Attr {
		if isNSDecl(a.Name) {
			continue
		}
		attrs = append(attrs, Attr{Space: a.Name.Space, Name: a.Name.Local, Value: String(a.Value)})
	}
	return attrs
}

func isNSDecl(n xml.Name) bool {
	return n.Space == ns.XMLNS || (n.Space == "" && n.Local == ns.XMLNS)
}

func wrapErr(name xml.Name, err error) error {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return err
	}
	pe := &ParseError{Name: name, Err: err}
	var malformed *MalformedAttrError
	if errors.As(err, &malformed) {
		pe.Attr = malformed.Name
	}
	return pe
}

// StringAttr returns the value of the named attribute of start or an empty
// string if it does not exist.
func StringAttr(start xml.StartElement, local string) string {
	_, v := attr.Get(start.Attr, local)
	return v
}

// BoolAttr returns the value of the named attribute of start as a boolean or
// def if it does not exist.
// Text other than "true" (ignoring case) is false.
func BoolAttr(start xml.StartElement, local string, def bool) bool {
	idx, v := attr.Get(start.Attr, local)
	if idx < 0 {
		return def
	}
	return attr.ParseBool(v)
}

// IntAttr returns the value of the named attribute of start as an integer or
// def if it does not exist.
// If the attribute is not a base 10 integer a *MalformedAttrError is returned.
func IntAttr(start xml.StartElement, local string, def int) (int, error) {
	idx, v := attr.Get(start.Attr, local)
	if idx < 0 {
		return def, nil
	}
	i, err := attr.ParseInt(v)
	if err != nil {
		return def, &MalformedAttrError{Name: local, Value: v, Err: err}
	}
	return i, nil
}

// IntText is like Text except that the text is converted to an integer.
// The name of the element being read is used in any returned
// *MalformedAttrError.
func (d *Decoder) IntText(local string) (int, error) {
	s, err := d.Text()
	if err != nil {
		return 0, err
	}
	i, err := attr.ParseInt(s)
	if err != nil {
		return 0, &MalformedAttrError{Name: local, Value: s, Err: err}
	}
	return i, nil
}
