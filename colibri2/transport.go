// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package colibri2

import (
	"encoding/xml"

	"mellium.im/jitsi/extension"
	"mellium.im/jitsi/jingle"
	"mellium.im/xmlstream"
)

// UseUniquePortAttrName is the name of the attribute that requests a unique
// candidate port.
const UseUniquePortAttrName = "use-unique-port"

// ICEUDPName is the name of the ICE-UDP transport element that may be nested in
// a Transport.
var ICEUDPName = xml.Name{Space: jingle.NSICEUDP, Local: "transport"}

// Transport is the transport of a conference entity.
type Transport struct {
	// UseUniquePort requests a unique candidate port and is only meaningful in
	// a conference-modify request.
	UseUniquePort bool

	// ICE is the ICE-UDP transport description, if any.
	// It is not interpreted by this package.
	ICE extension.Extension
}

// Name returns the XML name of the transport element.
func (Transport) Name() xml.Name {
	return xml.Name{Space: NS, Local: ElementTransport}
}

// TokenReader satisfies the xmlstream.Marshaler interface.
func (t Transport) TokenReader() xml.TokenReader {
	start := xml.StartElement{Name: t.Name()}
	if t.UseUniquePort {
		start.Attr = append(start.Attr, boolAttr(UseUniquePortAttrName))
	}
	var inner xml.TokenReader
	if t.ICE != nil {
		inner = t.ICE.TokenReader()
	}
	return xmlstream.Wrap(inner, start)
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (t Transport) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, t.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (t Transport) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	_, err := t.WriteXML(e)
	return err
}

// UnmarshalXML implements xml.Unmarshaler.
func (t *Transport) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	ext, err := unmarshal(d, start, DecodeTransport)
	if err != nil {
		return err
	}
	*t = ext.(Transport)
	return nil
}

// ICEUDP returns the generic form of the ICE-UDP transport.
// If there is none, nil is returned.
// An error is only returned if the token stream of ICE cannot be decoded.
func (t Transport) ICEUDP() (*extension.Element, error) {
	if t.ICE == nil {
		return nil, nil
	}
	return extension.Generic(t.ICE)
}

func (t Transport) clone() Transport {
	t.ICE = extension.Clone(t.ICE)
	return t
}

// DecodeTransport decodes a transport element whose start token has just been
// read from d.
// If more than one ICE-UDP transport is present the last one is kept.
func DecodeTransport(d *extension.Decoder, start xml.StartElement) (extension.Extension, error) {
	t := Transport{
		UseUniquePort: extension.BoolAttr(start, UseUniquePortAttrName, false),
	}
	for {
		tok, err := d.InnerToken()
		if err != nil {
			return nil, err
		}
		switch tt := tok.(type) {
		case xml.StartElement:
			if tt.Name != ICEUDPName {
				err = d.Skip(tt)
				break
			}
			t.ICE, err = d.Decode(tt)
		case xml.EndElement:
			return t, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
