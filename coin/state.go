// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// Package coin implements the conference state payload of the conference
// information event package.
package coin // import "mellium.im/jitsi/coin"

import (
	"encoding/xml"

	"mellium.im/jitsi/extension"
	"mellium.im/jitsi/internal/attr"
	"mellium.im/jitsi/internal/ns"
	"mellium.im/xmlstream"
)

// NS is the XML namespace used by conference information payloads.
// It is provided as a convenience.
const NS = ns.Coin

// Element names used by State.
const (
	ElementState     = "State"
	ElementActive    = "active"
	ElementLocked    = "locked"
	ElementUserCount = "userCount"
)

// Values of the tri-state Active and Locked flags.
const (
	Unset = attr.FlagUnset
	False = attr.FlagFalse
	True  = attr.FlagTrue
)

// State is the state of a conference.
// Each field is carried in its own child element and fields set to Unset (-1)
// are omitted.
//
// The zero value of State reports an inactive, unlocked, empty conference; use
// NewState for a state with every field unset.
type State struct {
	// Active and Locked are Unset, False, or True.
	Active    int
	Locked    int
	UserCount int
}

// NewState returns a State with all fields unset.
func NewState() State {
	return State{Active: Unset, Locked: Unset, UserCount: Unset}
}

// Name returns the XML name of the state element.
func (State) Name() xml.Name {
	return xml.Name{Space: NS, Local: ElementState}
}

func textElem(local, text string) xml.TokenReader {
	return xmlstream.Wrap(
		xmlstream.Token(xml.CharData(text)),
		xml.StartElement{Name: xml.Name{Local: local}},
	)
}

// TokenReader satisfies the xmlstream.Marshaler interface.
func (s State) TokenReader() xml.TokenReader {
	var inner []xml.TokenReader
	if v, ok := attr.FormatFlag(s.Active); ok {
		inner = append(inner, textElem(ElementActive, v))
	}
	if v, ok := attr.FormatFlag(s.Locked); ok {
		inner = append(inner, textElem(ElementLocked, v))
	}
	if s.UserCount != Unset {
		inner = append(inner, textElem(ElementUserCount, attr.FormatInt(s.UserCount)))
	}
	return xmlstream.Wrap(
		xmlstream.MultiReader(inner...),
		xml.StartElement{Name: s.Name()},
	)
}

// WriteXML satisfies the xmlstream.WriterTo interface.
// It is like MarshalXML except it writes tokens to w.
func (s State) WriteXML(w xmlstream.TokenWriter) (int, error) {
	return xmlstream.Copy(w, s.TokenReader())
}

// MarshalXML implements xml.Marshaler.
func (s State) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	_, err := s.WriteXML(e)
	return err
}

// UnmarshalXML implements xml.Unmarshaler.
func (s *State) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	ext, err := registry.NewDecoder(d).Decode(start)
	if err != nil {
		return err
	}
	*s = ext.(State)
	return nil
}

var registry = extension.NewRegistry(Handle())

// Handle returns an option that registers the decoder for State.
func Handle() extension.Option {
	return extension.Handle(State{}.Name(), DecodeState)
}

// DecodeState decodes a State element whose start token has just been read
// from d.
// Fields whose child element is missing stay unset and unknown children are
// skipped.
// Boolean text other than "true" is read as False.
func DecodeState(d *extension.Decoder, start xml.StartElement) (extension.Extension, error) {
	state := NewState()
	for {
		tok, err := d.InnerToken()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != "" && t.Name.Space != NS {
				err = d.Skip(t)
				break
			}
			var text string
			switch t.Name.Local {
			case ElementActive:
				text, err = d.Text()
				state.Active = attr.ParseFlag(text)
			case ElementLocked:
				text, err = d.Text()
				state.Locked = attr.ParseFlag(text)
			case ElementUserCount:
				state.UserCount, err = d.IntText(ElementUserCount)
			default:
				err = d.Skip(t)
			}
		case xml.EndElement:
			return state, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
