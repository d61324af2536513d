// Copyright 2016 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package ns provides namespace constants that are used by the extension
// packages.
package ns // import "mellium.im/jitsi/internal/ns"

// List of commonly used namespaces.
const (
	Colibri2 = "jitsi:colibri2"
	Coin     = "urn:ietf:params:xml:ns:conference-info"
	DTLSSCTP = "urn:xmpp:jingle:transports:dtls-sctp:1"
	ICEUDP   = "urn:xmpp:jingle:transports:ice-udp:1"
	XML      = "http://www.w3.org/XML/1998/namespace"
	XMLNS    = "xmlns"
)
