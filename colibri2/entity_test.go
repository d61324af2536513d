// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package colibri2_test

import (
	"encoding/xml"
	"errors"
	"testing"

	"mellium.im/jitsi/colibri2"
	"mellium.im/jitsi/extension"
	"mellium.im/jitsi/internal/xmpptest"
	"mellium.im/jitsi/jingle"
	"mellium.im/xmlstream"
)

var (
	_ extension.Extension = colibri2.Endpoint{}
	_ xml.Marshaler       = colibri2.Endpoint{}
	_ xml.Unmarshaler     = (*colibri2.Endpoint)(nil)
	_ xmlstream.Marshaler = colibri2.Endpoint{}
	_ xmlstream.WriterTo  = colibri2.Endpoint{}
	_ extension.Extension = colibri2.Relay{}
	_ xml.Unmarshaler     = (*colibri2.Relay)(nil)
	_ extension.Extension = colibri2.Media{}
	_ xml.Unmarshaler     = (*colibri2.Media)(nil)
	_ extension.Extension = colibri2.Source{}
	_ xml.Unmarshaler     = (*colibri2.Source)(nil)
)

const nsRTP = "urn:xmpp:jingle:apps:rtp:1"

func vp8() *extension.Element {
	pt := extension.New(nsRTP, "payload-type")
	pt.SetAttr("id", extension.String("100"))
	pt.SetAttr("name", extension.String("VP8"))
	return pt
}

func fullEndpoint() colibri2.Endpoint {
	ep := colibri2.Endpoint{ID: "bd9b6765", StatsID: "Jayme-Clv", Create: true}
	ep.SetTransport(colibri2.Transport{})
	ep.SetTransport(colibri2.Transport{UseUniquePort: true})
	ep.AddMedia(colibri2.Media{Type: colibri2.Audio})
	ep.AddMedia(colibri2.Media{Type: colibri2.Video, Children: []extension.Extension{vp8()}})
	ep.AddSource(colibri2.Source{})
	return ep
}

func lastTransportEndpoint() colibri2.Endpoint {
	ep := colibri2.Endpoint{ID: "bd9b6765", StatsID: "Jayme-Clv"}
	ep.SetTransport(colibri2.Transport{UseUniquePort: true})
	return ep
}

func relay() colibri2.Relay {
	r := colibri2.Relay{ID: "r1", Expire: true}
	r.AddSource(colibri2.Source{
		Attrs: []extension.Attr{{Name: "ssrc", Value: extension.String("1234")}},
	})
	return r
}

var entityTests = []xmpptest.EncodingTestCase{
	0: {
		Value: colibri2.Endpoint{},
		XML:   `<endpoint xmlns="jitsi:colibri2"/>`,
	},
	1: {
		Value: fullEndpoint(),
		XML:   `<endpoint xmlns="jitsi:colibri2" id="bd9b6765" stats-id="Jayme-Clv" create="true"><transport use-unique-port="true"/><media type="audio"/><media type="video"><payload-type xmlns="urn:xmpp:jingle:apps:rtp:1" id="100" name="VP8"/></media><source/></endpoint>`,
	},
	2: {
		NoMarshal: true,
		Value:     lastTransportEndpoint(),
		XML: `<endpoint xmlns='jitsi:colibri2' id='bd9b6765' stats-id='Jayme-Clv'>
    <transport ice-controlling='true'/>
    <transport id='second-transport' use-unique-port='true'/>
    <unknown/>
</endpoint>`,
	},
	3: {
		Value: relay(),
		XML:   `<relay xmlns="jitsi:colibri2" id="r1" expire="true"><source ssrc="1234"/></relay>`,
	},
	4: {
		Value: colibri2.Media{Type: colibri2.Audio},
		XML:   `<media xmlns="jitsi:colibri2" type="audio"/>`,
	},
	5: {
		NoMarshal: true,
		Err:       extension.ErrMalformedAttr,
		XML:       `<endpoint xmlns="jitsi:colibri2" id="e"><transport><transport xmlns="urn:xmpp:jingle:transports:ice-udp:1"><sctpmap xmlns="urn:xmpp:jingle:transports:dtls-sctp:1" number="x"/></transport></transport></endpoint>`,
	},
	6: {
		Value: colibri2.Source{
			Attrs: []extension.Attr{
				{Space: "http://www.w3.org/XML/1998/namespace", Name: "lang", Value: extension.String("en")},
				{Name: "name", Value: extension.String("s")},
			},
		},
		XML: `<source xmlns="jitsi:colibri2" xml:lang="en" name="s"/>`,
	},
}

func TestEntityEncoding(t *testing.T) {
	xmpptest.RunEncodingTests(t, reg, entityTests)
}

func TestEntityComposition(t *testing.T) {
	var ep colibri2.Endpoint
	if _, ok := ep.Transport(); ok {
		t.Errorf("zero endpoint should have no transport")
	}
	ep.SetTransport(colibri2.Transport{})
	ep.SetTransport(colibri2.Transport{UseUniquePort: true})
	tr, ok := ep.Transport()
	if !ok || !tr.UseUniquePort {
		t.Errorf("second transport should replace the first: %+v", tr)
	}

	ep.AddMedia(colibri2.Media{Type: colibri2.Audio})
	ep.AddMedia(colibri2.Media{Type: colibri2.Video})
	media := ep.Media()
	if len(media) != 2 || media[0].Type != colibri2.Audio || media[1].Type != colibri2.Video {
		t.Errorf("wrong media: %+v", media)
	}
	media[0].Type = "data"
	if ep.Media()[0].Type != colibri2.Audio {
		t.Errorf("modifying the returned media changed the endpoint")
	}

	ep.AddSource(colibri2.Source{})
	if n := len(ep.Sources()); n != 1 {
		t.Errorf("wrong number of sources: want=1, got=%d", n)
	}
}

func TestEntityErrorNamesChild(t *testing.T) {
	var ep colibri2.Endpoint
	err := xml.Unmarshal([]byte(entityTests[5].XML), &ep)
	var parseErr *extension.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected a *ParseError, got %T: %v", err, err)
	}
	if parseErr.Name.Local != "sctpmap" || parseErr.Attr != "number" {
		t.Errorf("error does not identify the bad attribute: %v", parseErr)
	}
}

func TestStrictAllowsUnknownChildren(t *testing.T) {
	strict := extension.NewRegistry(colibri2.Handle(), jingle.Handle(), extension.Strict())
	const in = `<endpoint xmlns="jitsi:colibri2" id="e1"><transport><transport xmlns="urn:xmpp:jingle:transports:ice-udp:1" ufrag="abc"><candidate xmlns="urn:xmpp:jingle:transports:ice-udp:1" port="1"/></transport></transport><media type="video"><payload-type xmlns="urn:xmpp:jingle:apps:rtp:1" id="100" name="VP8"/></media></endpoint>`
	ext, err := strict.Unmarshal([]byte(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ep, ok := ext.(colibri2.Endpoint)
	if !ok {
		t.Fatalf("wrong type: want=colibri2.Endpoint, got=%T", ext)
	}
	media := ep.Media()
	if len(media) != 1 || len(media[0].Children) != 1 {
		t.Fatalf("payload type not kept: %+v", media)
	}
	if tr, _ := ep.Transport(); tr.ICE == nil {
		t.Errorf("ICE-UDP transport not kept")
	}

	_, err = strict.Unmarshal([]byte(`<payload-type xmlns="urn:xmpp:jingle:apps:rtp:1"/>`))
	if !errors.Is(err, extension.ErrUnknownElement) {
		t.Errorf("wrong error for unknown top-level element: want=%v, got=%v", extension.ErrUnknownElement, err)
	}
}
