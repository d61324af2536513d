// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package extension

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"

	"mellium.im/jitsi/internal/ns"
	"mellium.im/xmlstream"
)

var errUnbalanced = errors.New("extension: unbalanced end element")

// Encoder writes XML tokens to an output stream in the canonical wire form of
// extensions.
//
// Unlike xml.Encoder it declares a default namespace only on elements whose
// namespace differs from their parent's (an empty namespace inherits the
// parent's) and writes elements with no content as self-closing tags.
// Attributes in the XML namespace use the xml prefix; attributes in any other
// namespace get a generated prefix declared on the same element.
type Encoder struct {
	w       *bufio.Writer
	stack   []xml.StartElement
	spaces  []string
	pending bool
	err     error
}

// NewEncoder returns an encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

// EncodeToken satisfies the xmlstream.TokenWriter interface.
func (e *Encoder) EncodeToken(t xml.Token) error {
	if e.err != nil {
		return e.err
	}
	switch tok := t.(type) {
	case xml.StartElement:
		e.closePending()
		e.writeStart(tok)
	case xml.EndElement:
		if len(e.stack) == 0 {
			return errUnbalanced
		}
		top := e.stack[len(e.stack)-1]
		if top.Name.Local != tok.Name.Local {
			return fmt.Errorf("%w: want </%s>, got </%s>", errUnbalanced, top.Name.Local, tok.Name.Local)
		}
		if e.pending {
			e.pending = false
			e.writeString("/>")
		} else {
			e.writeString("</" + top.Name.Local + ">")
		}
		e.stack = e.stack[:len(e.stack)-1]
		e.spaces = e.spaces[:len(e.spaces)-1]
	case xml.CharData:
		if len(tok) == 0 {
			return e.err
		}
		e.closePending()
		e.escape(tok)
	case xml.Comment:
		e.closePending()
		e.writeString("<!--" + string(tok) + "-->")
	case xml.ProcInst:
		e.closePending()
		e.writeString("<?" + tok.Target + " " + string(tok.Inst) + "?>")
	case xml.Directive:
		e.closePending()
		e.writeString("<!" + string(tok) + ">")
	default:
		return fmt.Errorf("extension: invalid token type %T", t)
	}
	return e.err
}

// Flush writes any buffered output to the underlying writer.
func (e *Encoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	return e.w.Flush()
}

func (e *Encoder) writeStart(start xml.StartElement) {
	parent := ""
	if len(e.spaces) > 0 {
		parent = e.spaces[len(e.spaces)-1]
	}
	space := start.Name.Space
	if space == "" {
		space = parent
	}

	e.writeString("<" + start.Name.Local)
	if space != parent {
		e.writeAttr("xmlns", space)
	}
	var prefixes map[string]string
	for _, a := range start.Attr {
		if isNSDecl(a.Name) {
			continue
		}
		name := a.Name.Local
		switch a.Name.Space {
		case "":
		case ns.XML:
			name = "xml:" + name
		default:
			prefix, ok := prefixes[a.Name.Space]
			if !ok {
				if prefixes == nil {
					prefixes = make(map[string]string)
				}
				prefix = "ns" + strconv.Itoa(len(prefixes)+1)
				prefixes[a.Name.Space] = prefix
				e.writeAttr("xmlns:"+prefix, a.Name.Space)
			}
			name = prefix + ":" + name
		}
		e.writeAttr(name, a.Value)
	}

	e.stack = append(e.stack, start)
	e.spaces = append(e.spaces, space)
	e.pending = true
}

func (e *Encoder) writeAttr(name, value string) {
	e.writeString(" " + name + `="`)
	e.escape([]byte(value))
	e.writeString(`"`)
}

func (e *Encoder) closePending() {
	if e.pending {
		e.pending = false
		e.writeString(">")
	}
}

func (e *Encoder) escape(b []byte) {
	if e.err != nil {
		return
	}
	e.err = xml.EscapeText(e.w, b)
}

func (e *Encoder) writeString(s string) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.WriteString(s)
}

// Encode writes the encoding of ext to w.
func Encode(w io.Writer, ext Extension) error {
	e := NewEncoder(w)
	if _, err := xmlstream.Copy(e, ext.TokenReader()); err != nil {
		return err
	}
	if len(e.stack) != 0 {
		return fmt.Errorf("extension: %s not closed", e.stack[len(e.stack)-1].Name.Local)
	}
	return e.Flush()
}

// Marshal returns the encoding of ext.
func Marshal(ext Extension) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, ext); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
