// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package jingle implements Jingle transport payloads used to signal WebRTC
// data channels (XEP-0343).
package jingle // import "mellium.im/jitsi/jingle"

import (
	"encoding/xml"

	"mellium.im/jitsi/extension"
	"mellium.im/jitsi/internal/attr"
	"mellium.im/jitsi/internal/ns"
	"mellium.im/xmlstream"
)

// Namespaces used by this package.
const (
	NSDTLSSCTP = ns.DTLSSCTP
	NSICEUDP   = ns.ICEUDP
)

// Names of the sctpmap element and its attributes.
const (
	ElementSctpMap = "sctpmap"

	PortAttrName     = "number"
	ProtocolAttrName = "protocol"
	StreamsAttrName  = "streams"
)

// Unset is the value of Port and Streams when they are not present.
const Unset = -1

// Protocol is a named SCTP association protocol.
type Protocol string

// A list of known protocols.
const (
	WebRTCDataChannel Protocol = "webrtc-datachannel"
)

// String returns the wire form of p.
func (p Protocol) String() string {
	return string(p)
}

// SctpMap describes the SCTP association of a data channel transport.
// Port and Streams are Unset (-1) and Protocol is empty when absent; absent
// fields are not encoded.
//
// The zero value of SctpMap has port and streams of 0, which are encoded.
// Use NewSctpMap for a map with every field unset.
type SctpMap struct {
	Port     int
	Protocol string
	Streams  int
}

// NewSctpMap returns an SctpMap with all fields unset.
func NewSctpMap() SctpMap {
	return SctpMap{Port: Unset, Streams: Unset}
}

// SetProtocol sets the protocol to one of the named protocols.
func (m *SctpMap) SetProtocol(p Protocol) {
	m.Protocol = p.String()
}

// Name returns the XML name of the sctpmap element.
func (SctpMap) Name() xml.Name {
	return xml.Name{Space: NSDTLSSCTP, Local: ElementSctpMap}
}

// TokenReader satisfies the xmlstream.Marshaler interface.
func (m SctpMap) TokenReader() xml.TokenReader {
	start := xml.StartElement{Name: m.Name()}
	if m.Port != Unset {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Local: PortAttrName},
			Value: attr.FormatInt(m.Port),
		})
	}
	if m.Protocol != "" {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Local: ProtocolAttrName},
			Value: m.Protocol,
		})
	}
	if m.Streams != Unset {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Local: StreamsAttrName},
			Value: attr.FormatInt(m.Streams),
		})
	}
	return xmlstream.Wrap(nil, start)
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (m SctpMap) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, m.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (m SctpMap) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	_, err := m.WriteXML(e)
	return err
}

// UnmarshalXML implements xml.Unmarshaler.
func (m *SctpMap) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	ext, err := registry.NewDecoder(d).Decode(start)
	if err != nil {
		return err
	}
	*m = ext.(SctpMap)
	return nil
}

var registry = extension.NewRegistry(Handle())

// Handle returns an option that registers the decoder for SctpMap.
func Handle() extension.Option {
	return extension.Handle(SctpMap{}.Name(), DecodeSctpMap)
}

// DecodeSctpMap decodes an sctpmap element whose start token has just been
// read from d.
func DecodeSctpMap(d *extension.Decoder, start xml.StartElement) (extension.Extension, error) {
	m := NewSctpMap()
	var err error
	m.Port, err = extension.IntAttr(start, PortAttrName, Unset)
	if err != nil {
		return nil, err
	}
	m.Streams, err = extension.IntAttr(start, StreamsAttrName, Unset)
	if err != nil {
		return nil, err
	}
	m.Protocol = extension.StringAttr(start, ProtocolAttrName)

	if err := d.Finish(); err != nil {
		return nil, err
	}
	return m, nil
}
