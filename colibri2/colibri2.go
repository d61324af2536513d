// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package colibri2 implements the COnferencing with LIghtweight BRIdging
// (version 2) payloads used to control a videobridge.
//
// Simple payloads such as Transport and Media are plain structs that may be
// modified directly.
// Messages such as ConferenceModify are created from a config struct by a
// constructor that checks required fields and are immutable afterwards.
package colibri2 // import "mellium.im/jitsi/colibri2"

import (
	"encoding/xml"

	"mellium.im/jitsi/extension"
	"mellium.im/jitsi/internal/ns"
	"mellium.im/jitsi/jingle"
)

// NS is the XML namespace used by colibri2 payloads.
// It is provided as a convenience.
const NS = ns.Colibri2

// Element names of the colibri2 payloads.
const (
	ElementConferenceModify = "conference-modify"
	ElementEndpoint         = "endpoint"
	ElementRelay            = "relay"
	ElementTransport        = "transport"
	ElementMedia            = "media"
	ElementSource           = "source"
)

// Handle returns an option that registers decoders for all colibri2 payloads.
func Handle() extension.Option {
	return extension.Options(
		extension.Handle(xml.Name{Space: NS, Local: ElementConferenceModify}, DecodeConferenceModify),
		extension.Handle(xml.Name{Space: NS, Local: ElementEndpoint}, DecodeEndpoint),
		extension.Handle(xml.Name{Space: NS, Local: ElementRelay}, DecodeRelay),
		extension.Handle(xml.Name{Space: NS, Local: ElementTransport}, DecodeTransport),
		extension.Handle(xml.Name{Space: NS, Local: ElementMedia}, DecodeMedia),
		extension.Handle(xml.Name{Space: NS, Local: ElementSource}, DecodeSource),
	)
}

// registry is used by the UnmarshalXML methods.
// ICE transports may carry an sctpmap, so the jingle payloads are included.
var registry = extension.NewRegistry(Handle(), jingle.Handle())

func unmarshal(d *xml.Decoder, start xml.StartElement, f extension.DecodeFunc) (extension.Extension, error) {
	return registry.NewDecoder(d).DecodeWith(start, f)
}

func boolAttr(local string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: local}, Value: "true"}
}

func cloneSlice[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
