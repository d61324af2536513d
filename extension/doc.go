// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package extension implements the generic representation of protocol
// extension elements and the codec between them and XML.
//
// An extension is any value that has an XML name and can produce the token
// stream of its encoding.
// Typed extensions (such as those in the coin, jingle, and colibri2 packages)
// are plain structs; Element is the generic form used for anything that has no
// typed representation.
//
// Decoding is driven by a Registry that maps XML names to DecodeFuncs.
// Each DecodeFunc is handed a Decoder that has just read the element's start
// token and must consume exactly through the matching end token so that a
// caller iterating over siblings stays in step with the stream.
//
// Encoding goes through Marshal or an Encoder, which write the exact wire form:
// namespaces are declared only where they change and elements with no content
// are self-closing.
package extension // import "mellium.im/jitsi/extension"
