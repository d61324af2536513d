// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package colibri2

import (
	"encoding/xml"

	"mellium.im/jitsi/extension"
	"mellium.im/xmlstream"
)

// MediaType is the kind of media described by a Media element.
type MediaType string

// A list of media types.
const (
	Audio MediaType = "audio"
	Video MediaType = "video"
)

// Media describes one kind of media sent or received by a conference entity.
type Media struct {
	Type MediaType

	// Payload types, header extensions, and any other descriptions of the
	// media, in document order.
	// They are not interpreted by this package.
	Children []extension.Extension
}

// Name returns the XML name of the media element.
func (Media) Name() xml.Name {
	return xml.Name{Space: NS, Local: ElementMedia}
}

// TokenReader satisfies the xmlstream.Marshaler interface.
func (m Media) TokenReader() xml.TokenReader {
	start := xml.StartElement{Name: m.Name()}
	if m.Type != "" {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Local: "type"},
			Value: string(m.Type),
		})
	}
	return xmlstream.Wrap(childReader(m.Children), start)
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (m Media) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, m.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (m Media) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	_, err := m.WriteXML(e)
	return err
}

// UnmarshalXML implements xml.Unmarshaler.
func (m *Media) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	ext, err := unmarshal(d, start, DecodeMedia)
	if err != nil {
		return err
	}
	*m = ext.(Media)
	return nil
}

func (m Media) clone() Media {
	m.Children = extension.CloneAll(m.Children)
	return m
}

// DecodeMedia decodes a media element whose start token has just been read
// from d.
func DecodeMedia(d *extension.Decoder, start xml.StartElement) (extension.Extension, error) {
	m := Media{Type: MediaType(extension.StringAttr(start, "type"))}
	children, err := decodeChildren(d)
	if err != nil {
		return nil, err
	}
	m.Children = children
	return m, nil
}

// Source is a media source of a conference entity.
// Its contents are not defined yet; any attributes and children found on the
// wire are kept and written back unchanged.
type Source struct {
	Attrs    []extension.Attr
	Children []extension.Extension
}

// Name returns the XML name of the source element.
func (Source) Name() xml.Name {
	return xml.Name{Space: NS, Local: ElementSource}
}

// TokenReader satisfies the xmlstream.Marshaler interface.
func (s Source) TokenReader() xml.TokenReader {
	start := xml.StartElement{
		Name: s.Name(),
		Attr: extension.StartAttrs(s.Attrs),
	}
	return xmlstream.Wrap(childReader(s.Children), start)
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (s Source) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, s.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (s Source) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	_, err := s.WriteXML(e)
	return err
}

// UnmarshalXML implements xml.Unmarshaler.
func (s *Source) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	ext, err := unmarshal(d, start, DecodeSource)
	if err != nil {
		return err
	}
	*s = ext.(Source)
	return nil
}

func (s Source) clone() Source {
	s.Attrs = cloneSlice(s.Attrs)
	s.Children = extension.CloneAll(s.Children)
	return s
}

// DecodeSource decodes a source element whose start token has just been read
// from d.
func DecodeSource(d *extension.Decoder, start xml.StartElement) (extension.Extension, error) {
	children, err := decodeChildren(d)
	if err != nil {
		return nil, err
	}
	return Source{Attrs: extension.Attrs(start), Children: children}, nil
}

func childReader(children []extension.Extension) xml.TokenReader {
	if len(children) == 0 {
		return nil
	}
	inner := make([]xml.TokenReader, 0, len(children))
	for _, c := range children {
		inner = append(inner, c.TokenReader())
	}
	return xmlstream.MultiReader(inner...)
}

// decodeChildren decodes every remaining child of the current element through
// the registry and consumes its end token.
func decodeChildren(d *extension.Decoder) ([]extension.Extension, error) {
	var children []extension.Extension
	for {
		tok, err := d.InnerToken()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			ext, err := d.Decode(t)
			if err != nil {
				return nil, err
			}
			children = append(children, ext)
		case xml.EndElement:
			return children, nil
		}
	}
}
