// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package jingle_test

import (
	"encoding/xml"
	"errors"
	"strconv"
	"testing"

	"github.com/pion/sdp/v3"

	"mellium.im/jitsi/extension"
	"mellium.im/jitsi/internal/xmpptest"
	"mellium.im/jitsi/jingle"
	"mellium.im/xmlstream"
)

var (
	_ extension.Extension = jingle.SctpMap{}
	_ xml.Marshaler       = jingle.SctpMap{}
	_ xml.Unmarshaler     = (*jingle.SctpMap)(nil)
	_ xmlstream.Marshaler = jingle.SctpMap{}
	_ xmlstream.WriterTo  = jingle.SctpMap{}
)

var reg = extension.NewRegistry(jingle.Handle())

func dataChannel() jingle.SctpMap {
	m := jingle.NewSctpMap()
	m.Port = 5000
	m.SetProtocol(jingle.WebRTCDataChannel)
	m.Streams = 1024
	return m
}

var encodingTests = []xmpptest.EncodingTestCase{
	0: {
		Value: jingle.NewSctpMap(),
		XML:   `<sctpmap xmlns="urn:xmpp:jingle:transports:dtls-sctp:1"/>`,
	},
	1: {
		Value: dataChannel(),
		XML:   `<sctpmap xmlns="urn:xmpp:jingle:transports:dtls-sctp:1" number="5000" protocol="webrtc-datachannel" streams="1024"/>`,
	},
	2: {
		Value: jingle.SctpMap{Port: 5000, Protocol: "", Streams: jingle.Unset},
		XML:   `<sctpmap xmlns="urn:xmpp:jingle:transports:dtls-sctp:1" number="5000"/>`,
	},
	3: {
		Value: jingle.SctpMap{Port: jingle.Unset, Protocol: "custom", Streams: 16},
		XML:   `<sctpmap xmlns="urn:xmpp:jingle:transports:dtls-sctp:1" protocol="custom" streams="16"/>`,
	},
	4: {
		NoMarshal: true,
		Value:     dataChannel(),
		XML:       `<sctpmap xmlns="urn:xmpp:jingle:transports:dtls-sctp:1" streams="1024" protocol="webrtc-datachannel" number="5000"><future/></sctpmap>`,
	},
	5: {
		NoMarshal: true,
		Err:       extension.ErrMalformedAttr,
		XML:       `<sctpmap xmlns="urn:xmpp:jingle:transports:dtls-sctp:1" number="five"/>`,
	},
}

func TestEncode(t *testing.T) {
	xmpptest.RunEncodingTests(t, reg, encodingTests)
}

func TestProtocolString(t *testing.T) {
	m := jingle.NewSctpMap()
	m.SetProtocol(jingle.WebRTCDataChannel)
	if m.Protocol != "webrtc-datachannel" {
		t.Errorf("wrong protocol: %q", m.Protocol)
	}
	if jingle.Protocol(m.Protocol) != jingle.WebRTCDataChannel {
		t.Errorf("protocol does not round trip")
	}
}

func TestUnmarshalXML(t *testing.T) {
	var m jingle.SctpMap
	err := xml.Unmarshal([]byte(`<sctpmap xmlns="urn:xmpp:jingle:transports:dtls-sctp:1" number="5000" protocol="webrtc-datachannel" streams="1024"/>`), &m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m != dataChannel() {
		t.Errorf("wrong value: want=%+v, got=%+v", dataChannel(), m)
	}

	err = xml.Unmarshal([]byte(`<sctpmap xmlns="urn:xmpp:jingle:transports:dtls-sctp:1" streams="x"/>`), &m)
	var parseErr *extension.ParseError
	if !errors.As(err, &parseErr) || parseErr.Attr != jingle.StreamsAttrName {
		t.Errorf("wrong error: %v", err)
	}
}

var sdpTests = [...]struct {
	attr sdp.Attribute
	out  jingle.SctpMap
	err  bool
}{
	0: {
		attr: sdp.NewAttribute("sctpmap", "5000 webrtc-datachannel 1024"),
		out:  dataChannel(),
	},
	1: {
		attr: sdp.NewAttribute("sctpmap", "5000 webrtc-datachannel"),
		out:  jingle.SctpMap{Port: 5000, Protocol: "webrtc-datachannel", Streams: jingle.Unset},
	},
	2: {
		attr: sdp.NewAttribute("sctp-port", "5000"),
		out:  jingle.NewSctpMap(),
		err:  true,
	},
	3: {
		attr: sdp.NewAttribute("sctpmap", "5000"),
		out:  jingle.NewSctpMap(),
		err:  true,
	},
	4: {
		attr: sdp.NewAttribute("sctpmap", "port webrtc-datachannel 1024"),
		out:  jingle.NewSctpMap(),
		err:  true,
	},
	5: {
		attr: sdp.NewAttribute("sctpmap", "5000 webrtc-datachannel many"),
		out:  jingle.NewSctpMap(),
		err:  true,
	},
}

func TestParseSDPAttribute(t *testing.T) {
	for i, tc := range sdpTests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			m, err := jingle.ParseSDPAttribute(tc.attr)
			switch {
			case tc.err && err == nil:
				t.Fatalf("expected error")
			case !tc.err && err != nil:
				t.Fatalf("unexpected error: %v", err)
			}
			if m != tc.out {
				t.Errorf("wrong value: want=%+v, got=%+v", tc.out, m)
			}
		})
	}
}

func TestSDPAttribute(t *testing.T) {
	a := dataChannel().SDPAttribute()
	if a.Key != "sctpmap" || a.Value != "5000 webrtc-datachannel 1024" {
		t.Errorf("wrong attribute: %+v", a)
	}
	m, err := jingle.ParseSDPAttribute(a)
	if err != nil {
		t.Fatalf("error parsing generated attribute: %v", err)
	}
	if m != dataChannel() {
		t.Errorf("attribute does not round trip: %+v", m)
	}
}

func TestFromMediaDescription(t *testing.T) {
	md := &sdp.MediaDescription{
		MediaName: sdp.MediaName{
			Media:   "application",
			Port:    sdp.RangedPort{Value: 9},
			Protos:  []string{"DTLS", "SCTP"},
			Formats: []string{"5000"},
		},
	}
	if _, err := jingle.FromMediaDescription(md); err == nil {
		t.Errorf("expected error for media section without sctpmap")
	}

	md = md.WithValueAttribute("sctpmap", "5000 webrtc-datachannel 1024")
	m, err := jingle.FromMediaDescription(md)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m != dataChannel() {
		t.Errorf("wrong value: want=%+v, got=%+v", dataChannel(), m)
	}
}
