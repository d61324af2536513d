// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package extension_test

import (
	"encoding/xml"
	"errors"
	"strconv"
	"strings"
	"testing"

	"mellium.im/jitsi/extension"
	"mellium.im/jitsi/internal/xmpptest"
)

var encoderTests = [...]struct {
	in  []xml.Token
	out string
	err bool
}{
	0: {},
	1: {
		in: []xml.Token{
			xml.StartElement{Name: xml.Name{Space: "urn:a", Local: "a"}},
			xml.EndElement{Name: xml.Name{Space: "urn:a", Local: "a"}},
		},
		out: `<a xmlns="urn:a"/>`,
	},
	2: {
		in: []xml.Token{
			xml.StartElement{Name: xml.Name{Space: "urn:a", Local: "a"}},
			xml.StartElement{Name: xml.Name{Local: "b"}},
			xml.CharData("x"),
			xml.EndElement{Name: xml.Name{Local: "b"}},
			xml.StartElement{Name: xml.Name{Space: "urn:a", Local: "c"}},
			xml.EndElement{Name: xml.Name{Space: "urn:a", Local: "c"}},
			xml.StartElement{Name: xml.Name{Space: "urn:d", Local: "d"}},
			xml.StartElement{Name: xml.Name{Space: "urn:d", Local: "e"}},
			xml.EndElement{Name: xml.Name{Space: "urn:d", Local: "e"}},
			xml.EndElement{Name: xml.Name{Space: "urn:d", Local: "d"}},
			xml.EndElement{Name: xml.Name{Space: "urn:a", Local: "a"}},
		},
		out: `<a xmlns="urn:a"><b>x</b><c/><d xmlns="urn:d"><e/></d></a>`,
	},
	3: {
		in: []xml.Token{
			xml.StartElement{
				Name: xml.Name{Local: "iq"},
				Attr: []xml.Attr{
					{Name: xml.Name{Local: "xmlns"}, Value: "jabber:client"},
					{Name: xml.Name{Local: "id"}, Value: `"1"&`},
					{Name: xml.Name{Space: "http://www.w3.org/XML/1998/namespace", Local: "lang"}, Value: "en"},
				},
			},
			xml.EndElement{Name: xml.Name{Local: "iq"}},
		},
		out: `<iq id="&#34;1&#34;&amp;" xml:lang="en"/>`,
	},
	4: {
		in: []xml.Token{
			xml.StartElement{Name: xml.Name{Local: "a"}},
			xml.EndElement{Name: xml.Name{Local: "b"}},
		},
		err: true,
	},
	5: {
		in:  []xml.Token{xml.EndElement{Name: xml.Name{Local: "a"}}},
		err: true,
	},
	6: {
		in: []xml.Token{
			xml.StartElement{Name: xml.Name{Local: "a"}},
			xml.Comment(" c "),
			xml.EndElement{Name: xml.Name{Local: "a"}},
		},
		out: `<a><!-- c --></a>`,
	},
	7: {
		in: []xml.Token{
			xml.StartElement{
				Name: xml.Name{Space: "urn:a", Local: "a"},
				Attr: []xml.Attr{
					{Name: xml.Name{Space: "urn:x", Local: "b"}, Value: "1"},
					{Name: xml.Name{Space: "urn:y", Local: "c"}, Value: "2"},
					{Name: xml.Name{Space: "urn:x", Local: "d"}, Value: "3"},
				},
			},
			xml.EndElement{Name: xml.Name{Space: "urn:a", Local: "a"}},
		},
		out: `<a xmlns="urn:a" xmlns:ns1="urn:x" ns1:b="1" xmlns:ns2="urn:y" ns2:c="2" ns1:d="3"/>`,
	},
}

func TestEncoder(t *testing.T) {
	for i, tc := range encoderTests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			toks := xmpptest.Tokens(tc.in)
			out, err := xmpptest.Encode(&toks)
			switch {
			case tc.err && err == nil:
				t.Fatalf("expected error, got output %q", out)
			case !tc.err && err != nil:
				t.Fatalf("unexpected error: %v", err)
			case tc.err:
				return
			}
			if out != tc.out {
				t.Errorf("wrong output:\nwant=%s,\n got=%s", tc.out, out)
			}
		})
	}
}

type unclosed struct{}

func (unclosed) Name() xml.Name {
	return xml.Name{Local: "open"}
}

func (u unclosed) TokenReader() xml.TokenReader {
	return &xmpptest.Tokens{xml.StartElement{Name: u.Name()}}
}

func TestEncodeUnclosed(t *testing.T) {
	var buf strings.Builder
	err := extension.Encode(&buf, unclosed{})
	if err == nil {
		t.Fatalf("expected error encoding unclosed element")
	}
	if errors.Is(err, extension.ErrMalformedAttr) {
		t.Errorf("unexpected error kind: %v", err)
	}
}
