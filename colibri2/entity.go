// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package colibri2

import (
	"encoding/xml"

	"mellium.im/jitsi/extension"
	"mellium.im/xmlstream"
)

// Attribute names shared by endpoints and relays.
const (
	IDAttrName      = "id"
	StatsIDAttrName = "stats-id"
	CreateAttrName  = "create"
	ExpireAttrName  = "expire"
)

// ConferenceEntity is the part of a conference participant that is common to
// endpoints and relays: at most one transport and ordered lists of media and
// sources.
//
// The zero value is an entity with no transport, media, or sources.
type ConferenceEntity struct {
	transport *Transport
	media     []Media
	sources   []Source
}

// SetTransport sets the transport of the entity, replacing any previous one.
func (e *ConferenceEntity) SetTransport(t Transport) {
	e.transport = &t
}

// Transport returns a copy of the transport of the entity and false if none is
// set.
func (e ConferenceEntity) Transport() (Transport, bool) {
	if e.transport == nil {
		return Transport{}, false
	}
	return e.transport.clone(), true
}

// AddMedia appends a media description.
func (e *ConferenceEntity) AddMedia(m Media) {
	e.media = append(e.media, m)
}

// Media returns copies of the media descriptions in the order they were added.
func (e ConferenceEntity) Media() []Media {
	return e.clone().media
}

// AddSource appends a source.
func (e *ConferenceEntity) AddSource(s Source) {
	e.sources = append(e.sources, s)
}

// Sources returns copies of the sources in the order they were added.
func (e ConferenceEntity) Sources() []Source {
	return e.clone().sources
}

func (e ConferenceEntity) clone() ConferenceEntity {
	var c ConferenceEntity
	if e.transport != nil {
		t := e.transport.clone()
		c.transport = &t
	}
	if len(e.media) > 0 {
		c.media = make([]Media, 0, len(e.media))
		for _, m := range e.media {
			c.media = append(c.media, m.clone())
		}
	}
	if len(e.sources) > 0 {
		c.sources = make([]Source, 0, len(e.sources))
		for _, s := range e.sources {
			c.sources = append(c.sources, s.clone())
		}
	}
	return c
}

func (e ConferenceEntity) tokenReader() xml.TokenReader {
	var inner []xml.TokenReader
	if e.transport != nil {
		inner = append(inner, e.transport.TokenReader())
	}
	for _, m := range e.media {
		inner = append(inner, m.TokenReader())
	}
	for _, s := range e.sources {
		inner = append(inner, s.TokenReader())
	}
	return xmlstream.MultiReader(inner...)
}

// decode reads the children of an entity element up to and including its end
// token.
// Unknown children are skipped.
func (e *ConferenceEntity) decode(d *extension.Decoder) error {
	for {
		tok, err := d.InnerToken()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != NS {
				err = d.Skip(t)
				break
			}
			var ext extension.Extension
			switch t.Name.Local {
			case ElementTransport:
				ext, err = d.DecodeWith(t, DecodeTransport)
				if err == nil {
					e.SetTransport(ext.(Transport))
				}
			case ElementMedia:
				ext, err = d.DecodeWith(t, DecodeMedia)
				if err == nil {
					e.AddMedia(ext.(Media))
				}
			case ElementSource:
				ext, err = d.DecodeWith(t, DecodeSource)
				if err == nil {
					e.AddSource(ext.(Source))
				}
			default:
				err = d.Skip(t)
			}
		case xml.EndElement:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func entityAttrs(id, statsID string, create, expire bool) []xml.Attr {
	var attrs []xml.Attr
	if id != "" {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: IDAttrName}, Value: id})
	}
	if statsID != "" {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: StatsIDAttrName}, Value: statsID})
	}
	if create {
		attrs = append(attrs, boolAttr(CreateAttrName))
	}
	if expire {
		attrs = append(attrs, boolAttr(ExpireAttrName))
	}
	return attrs
}

// Endpoint is a conference participant connected directly to the bridge.
type Endpoint struct {
	ID      string
	StatsID string

	// Create asks the bridge to allocate the endpoint and Expire asks it to
	// remove the endpoint.
	Create bool
	Expire bool

	ConferenceEntity
}

// Name returns the XML name of the endpoint element.
func (Endpoint) Name() xml.Name {
	return xml.Name{Space: NS, Local: ElementEndpoint}
}

// TokenReader satisfies the xmlstream.Marshaler interface.
func (ep Endpoint) TokenReader() xml.TokenReader {
	start := xml.StartElement{
		Name: ep.Name(),
		Attr: entityAttrs(ep.ID, ep.StatsID, ep.Create, ep.Expire),
	}
	return xmlstream.Wrap(ep.ConferenceEntity.tokenReader(), start)
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (ep Endpoint) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, ep.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (ep Endpoint) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	_, err := ep.WriteXML(e)
	return err
}

// UnmarshalXML implements xml.Unmarshaler.
func (ep *Endpoint) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	ext, err := unmarshal(d, start, DecodeEndpoint)
	if err != nil {
		return err
	}
	*ep = ext.(Endpoint)
	return nil
}

// DecodeEndpoint decodes an endpoint element whose start token has just been
// read from d.
// If more than one transport is present the last one is kept.
func DecodeEndpoint(d *extension.Decoder, start xml.StartElement) (extension.Extension, error) {
	ep := Endpoint{
		ID:      extension.StringAttr(start, IDAttrName),
		StatsID: extension.StringAttr(start, StatsIDAttrName),
		Create:  extension.BoolAttr(start, CreateAttrName, false),
		Expire:  extension.BoolAttr(start, ExpireAttrName, false),
	}
	if err := ep.ConferenceEntity.decode(d); err != nil {
		return nil, err
	}
	return ep, nil
}

// Relay is another bridge that media is relayed through.
type Relay struct {
	ID string

	// Create asks the bridge to allocate the relay and Expire asks it to remove
	// the relay.
	Create bool
	Expire bool

	ConferenceEntity
}

// Name returns the XML name of the relay element.
func (Relay) Name() xml.Name {
	return xml.Name{Space: NS, Local: ElementRelay}
}

// TokenReader satisfies the xmlstream.Marshaler interface.
func (r Relay) TokenReader() xml.TokenReader {
	start := xml.StartElement{
		Name: r.Name(),
		Attr: entityAttrs(r.ID, "", r.Create, r.Expire),
	}
	return xmlstream.Wrap(r.ConferenceEntity.tokenReader(), start)
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (r Relay) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, r.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (r Relay) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	_, err := r.WriteXML(e)
	return err
}

// UnmarshalXML implements xml.Unmarshaler.
func (r *Relay) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	ext, err := unmarshal(d, start, DecodeRelay)
	if err != nil {
		return err
	}
	*r = ext.(Relay)
	return nil
}

// DecodeRelay decodes a relay element whose start token has just been read
// from d.
// If more than one transport is present the last one is kept.
func DecodeRelay(d *extension.Decoder, start xml.StartElement) (extension.Extension, error) {
	r := Relay{
		ID:     extension.StringAttr(start, IDAttrName),
		Create: extension.BoolAttr(start, CreateAttrName, false),
		Expire: extension.BoolAttr(start, ExpireAttrName, false),
	}
	if err := r.ConferenceEntity.decode(d); err != nil {
		return nil, err
	}
	return r, nil
}
