// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package jingle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pion/sdp/v3"

	"mellium.im/jitsi/extension"
	"mellium.im/jitsi/internal/attr"
)

// SDPAttrKey is the key of the SDP media attribute that carries the same
// information as an sctpmap element, for example:
//
//	a=sctpmap:5000 webrtc-datachannel 1024
const SDPAttrKey = "sctpmap"

var errNoSDPAttr = errors.New("jingle: no sctpmap attribute")

// SDPAttribute returns m as an SDP media attribute.
// Unset fields are left out; since the SDP form is positional a map with an
// unset port or protocol cannot be represented and the attribute value will be
// incomplete.
func (m SctpMap) SDPAttribute() sdp.Attribute {
	fields := make([]string, 0, 3)
	if m.Port != Unset {
		fields = append(fields, attr.FormatInt(m.Port))
	}
	if m.Protocol != "" {
		fields = append(fields, m.Protocol)
	}
	if m.Streams != Unset {
		fields = append(fields, attr.FormatInt(m.Streams))
	}
	return sdp.NewAttribute(SDPAttrKey, strings.Join(fields, " "))
}

// ParseSDPAttribute parses an SDP sctpmap attribute.
// The streams count is optional.
func ParseSDPAttribute(a sdp.Attribute) (SctpMap, error) {
	m := NewSctpMap()
	if a.Key != SDPAttrKey {
		return m, fmt.Errorf("jingle: unexpected SDP attribute %q", a.Key)
	}
	fields := strings.Fields(a.Value)
	if len(fields) < 2 || len(fields) > 3 {
		return m, fmt.Errorf("jingle: malformed sctpmap attribute %q", a.Value)
	}

	port, err := attr.ParseInt(fields[0])
	if err != nil {
		return m, &extension.MalformedAttrError{Name: PortAttrName, Value: fields[0], Err: err}
	}
	m.Port = port
	m.Protocol = fields[1]
	if len(fields) == 3 {
		streams, err := attr.ParseInt(fields[2])
		if err != nil {
			return NewSctpMap(), &extension.MalformedAttrError{Name: StreamsAttrName, Value: fields[2], Err: err}
		}
		m.Streams = streams
	}
	return m, nil
}

// FromMediaDescription extracts the sctpmap attribute from an SDP media
// section.
func FromMediaDescription(md *sdp.MediaDescription) (SctpMap, error) {
	v, ok := md.Attribute(SDPAttrKey)
	if !ok {
		return NewSctpMap(), errNoSDPAttr
	}
	return ParseSDPAttribute(sdp.NewAttribute(SDPAttrKey, v))
}
