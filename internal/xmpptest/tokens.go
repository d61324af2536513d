// Copyright 2020 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package xmpptest

import (
	"encoding/xml"
	"io"
	"strings"

	"mellium.im/jitsi/extension"
	"mellium.im/xmlstream"
)

// Tokens is a slice of XML tokens that acts as an xml.TokenReader by popping
// tokens from itself.
// It lets tests feed decoders streams that an xml.Decoder would never produce,
// such as truncated elements.
type Tokens []xml.Token

func (r *Tokens) Token() (xml.Token, error) {
	if len(*r) == 0 {
		return nil, io.EOF
	}

	var t xml.Token
	t, *r = (*r)[0], (*r)[1:]
	return t, nil
}

// Encode reads all tokens from r and returns their wire encoding.
func Encode(r xml.TokenReader) (string, error) {
	var buf strings.Builder
	e := extension.NewEncoder(&buf)
	if _, err := xmlstream.Copy(e, r); err != nil {
		return "", err
	}
	if err := e.Flush(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
