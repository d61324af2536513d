// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package colibri2

import (
	"encoding/xml"
	"fmt"

	"mellium.im/jitsi/extension"
	"mellium.im/jitsi/internal/attr"
	"mellium.im/xmlstream"
	"mellium.im/xmpp/stanza"
)

// Attribute names of the conference-modify element.
const (
	MeetingIDAttrName        = "meeting-id"
	NameAttrName             = "name"
	RTCStatsEnabledAttrName  = "rtcstats-enabled"
	CallStatsEnabledAttrName = "callstats-enabled"
)

// ConferenceModifyConfig holds the fields used to create a ConferenceModify.
// MeetingID and Name are required.
type ConferenceModifyConfig struct {
	MeetingID string
	Name      string

	// Statistics reporting is enabled unless disabled here.
	DisableRTCStats  bool
	DisableCallStats bool

	Endpoints []Endpoint
	Relays    []Relay
}

// ConferenceModify is a request to create or modify a conference on a bridge.
// It is immutable once created; accessors return copies.
type ConferenceModify struct {
	meetingID        string
	name             string
	rtcStatsEnabled  bool
	callStatsEnabled bool
	endpoints        []Endpoint
	relays           []Relay
}

// NewConferenceModify validates cfg and returns a new request.
// If a required field is empty an *extension.InvalidMessageError naming the
// first missing field is returned.
func NewConferenceModify(cfg ConferenceModifyConfig) (ConferenceModify, error) {
	switch {
	case cfg.MeetingID == "":
		return ConferenceModify{}, &extension.InvalidMessageError{Element: ElementConferenceModify, Field: MeetingIDAttrName}
	case cfg.Name == "":
		return ConferenceModify{}, &extension.InvalidMessageError{Element: ElementConferenceModify, Field: NameAttrName}
	}

	c := ConferenceModify{
		meetingID:        cfg.MeetingID,
		name:             cfg.Name,
		rtcStatsEnabled:  !cfg.DisableRTCStats,
		callStatsEnabled: !cfg.DisableCallStats,
	}
	for _, ep := range cfg.Endpoints {
		ep.ConferenceEntity = ep.ConferenceEntity.clone()
		c.endpoints = append(c.endpoints, ep)
	}
	for _, r := range cfg.Relays {
		r.ConferenceEntity = r.ConferenceEntity.clone()
		c.relays = append(c.relays, r)
	}
	return c, nil
}

// Name returns the XML name of the conference-modify element.
func (ConferenceModify) Name() xml.Name {
	return xml.Name{Space: NS, Local: ElementConferenceModify}
}

// MeetingID returns the ID of the conference.
func (c ConferenceModify) MeetingID() string {
	return c.meetingID
}

// ConferenceName returns the name of the conference.
func (c ConferenceModify) ConferenceName() string {
	return c.name
}

// RTCStatsEnabled reports whether rtcstats reporting should be enabled.
func (c ConferenceModify) RTCStatsEnabled() bool {
	return c.rtcStatsEnabled
}

// CallStatsEnabled reports whether callstats reporting should be enabled.
func (c ConferenceModify) CallStatsEnabled() bool {
	return c.callStatsEnabled
}

// Endpoints returns the endpoints being modified.
func (c ConferenceModify) Endpoints() []Endpoint {
	out := cloneSlice(c.endpoints)
	for i := range out {
		out[i].ConferenceEntity = out[i].ConferenceEntity.clone()
	}
	return out
}

// Relays returns the relays being modified.
func (c ConferenceModify) Relays() []Relay {
	out := cloneSlice(c.relays)
	for i := range out {
		out[i].ConferenceEntity = out[i].ConferenceEntity.clone()
	}
	return out
}

// Config returns a config that would create an identical request.
func (c ConferenceModify) Config() ConferenceModifyConfig {
	return ConferenceModifyConfig{
		MeetingID:        c.meetingID,
		Name:             c.name,
		DisableRTCStats:  !c.rtcStatsEnabled,
		DisableCallStats: !c.callStatsEnabled,
		Endpoints:        c.Endpoints(),
		Relays:           c.Relays(),
	}
}

// TokenReader satisfies the xmlstream.Marshaler interface.
func (c ConferenceModify) TokenReader() xml.TokenReader {
	start := xml.StartElement{
		Name: c.Name(),
		Attr: []xml.Attr{
			{Name: xml.Name{Local: MeetingIDAttrName}, Value: c.meetingID},
			{Name: xml.Name{Local: NameAttrName}, Value: c.name},
		},
	}
	if !c.rtcStatsEnabled {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Local: RTCStatsEnabledAttrName},
			Value: attr.FormatBool(false),
		})
	}
	if !c.callStatsEnabled {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Local: CallStatsEnabledAttrName},
			Value: attr.FormatBool(false),
		})
	}

	var inner []xml.TokenReader
	for _, ep := range c.endpoints {
		inner = append(inner, ep.TokenReader())
	}
	for _, r := range c.relays {
		inner = append(inner, r.TokenReader())
	}
	return xmlstream.Wrap(xmlstream.MultiReader(inner...), start)
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (c ConferenceModify) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, c.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (c ConferenceModify) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	_, err := c.WriteXML(e)
	return err
}

// DecodeConferenceModify decodes a conference-modify element whose start token
// has just been read from d.
// A request missing a required attribute results in an error matching
// extension.ErrInvalidMessage.
func DecodeConferenceModify(d *extension.Decoder, start xml.StartElement) (extension.Extension, error) {
	cfg := ConferenceModifyConfig{
		MeetingID:        extension.StringAttr(start, MeetingIDAttrName),
		Name:             extension.StringAttr(start, NameAttrName),
		DisableRTCStats:  !extension.BoolAttr(start, RTCStatsEnabledAttrName, true),
		DisableCallStats: !extension.BoolAttr(start, CallStatsEnabledAttrName, true),
	}
	for {
		tok, err := d.InnerToken()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != NS {
				err = d.Skip(t)
				break
			}
			var ext extension.Extension
			switch t.Name.Local {
			case ElementEndpoint:
				ext, err = d.DecodeWith(t, DecodeEndpoint)
				if err == nil {
					cfg.Endpoints = append(cfg.Endpoints, ext.(Endpoint))
				}
			case ElementRelay:
				ext, err = d.DecodeWith(t, DecodeRelay)
				if err == nil {
					cfg.Relays = append(cfg.Relays, ext.(Relay))
				}
			default:
				err = d.Skip(t)
			}
		case xml.EndElement:
			c, err := NewConferenceModify(cfg)
			if err != nil {
				return nil, err
			}
			return c, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// ConferenceModifyIQ is a conference-modify request wrapped in an IQ stanza.
type ConferenceModifyIQ struct {
	stanza.IQ
	ConferenceModify ConferenceModify
}

// NewConferenceModifyIQ returns a set IQ carrying the request created from cfg.
// If id is empty a random stanza ID is generated.
// The addresses of the IQ may be set on the returned value.
func NewConferenceModifyIQ(id string, cfg ConferenceModifyConfig) (ConferenceModifyIQ, error) {
	c, err := NewConferenceModify(cfg)
	if err != nil {
		return ConferenceModifyIQ{}, err
	}
	if id == "" {
		id = attr.RandomID()
	}
	return ConferenceModifyIQ{
		IQ:               stanza.IQ{ID: id, Type: stanza.SetIQ},
		ConferenceModify: c,
	}, nil
}

// Name returns the name of the IQ element.
func (iq ConferenceModifyIQ) Name() xml.Name {
	return xml.Name{Space: iq.XMLName.Space, Local: "iq"}
}

// TokenReader satisfies the xmlstream.Marshaler interface.
func (iq ConferenceModifyIQ) TokenReader() xml.TokenReader {
	return iq.IQ.Wrap(iq.ConferenceModify.TokenReader())
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (iq ConferenceModifyIQ) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, iq.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (iq ConferenceModifyIQ) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	_, err := iq.WriteXML(e)
	return err
}

// UnmarshalXML implements xml.Unmarshaler.
func (iq *ConferenceModifyIQ) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	v, err := DecodeConferenceModifyIQ(registry.NewDecoder(d), start)
	if err != nil {
		return err
	}
	*iq = v
	return nil
}

// DecodeConferenceModifyIQ decodes an IQ whose start token has just been read
// from d and whose payload is a conference-modify request.
func DecodeConferenceModifyIQ(d *extension.Decoder, start xml.StartElement) (ConferenceModifyIQ, error) {
	if start.Name.Local != "iq" {
		return ConferenceModifyIQ{}, &extension.ParseError{
			Name: start.Name,
			Err:  fmt.Errorf("colibri2: expected iq, got %s", start.Name.Local),
		}
	}
	iq, err := stanza.NewIQ(start)
	if err != nil {
		return ConferenceModifyIQ{}, &extension.ParseError{Name: start.Name, Err: err}
	}

	payload, err := d.NextStart()
	if err != nil {
		return ConferenceModifyIQ{}, &extension.ParseError{Name: start.Name, Err: fmt.Errorf("colibri2: missing %s payload: %w", ElementConferenceModify, err)}
	}
	if payload.Name.Space != NS || payload.Name.Local != ElementConferenceModify {
		return ConferenceModifyIQ{}, &extension.ParseError{
			Name: payload.Name,
			Err:  fmt.Errorf("colibri2: expected %s payload", ElementConferenceModify),
		}
	}
	ext, err := d.DecodeWith(payload, DecodeConferenceModify)
	if err != nil {
		return ConferenceModifyIQ{}, err
	}
	if err := d.Finish(); err != nil {
		return ConferenceModifyIQ{}, &extension.ParseError{Name: start.Name, Err: err}
	}
	return ConferenceModifyIQ{IQ: iq, ConferenceModify: ext.(ConferenceModify)}, nil
}
