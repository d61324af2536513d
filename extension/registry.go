// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package extension

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"log"
)

// Registry maps XML names to the functions that decode them.
//
// Patterns are XML names.
// If the namespace is left off, any namespace will be matched.
// Full XML names take precedence over wildcard namespaces.
//
// A nil *Registry is valid and decodes every element as a generic *Element.
// Once created a Registry is not modified and may be shared between
// goroutines.
type Registry struct {
	decoders map[xml.Name]DecodeFunc
	logger   *log.Logger
	strict   bool
}

// Option configures a Registry.
type Option func(*Registry)

// Handle returns an option that decodes elements with the provided XML name
// using f.
// If a decoder already exists for n when the option is applied, the option
// panics.
func Handle(n xml.Name, f DecodeFunc) Option {
	return func(r *Registry) {
		if f == nil {
			panic("extension: nil decoder")
		}
		if _, ok := r.decoders[n]; ok {
			panic("extension: multiple registrations for " + formatName(n))
		}
		if r.decoders == nil {
			r.decoders = make(map[xml.Name]DecodeFunc)
		}
		r.decoders[n] = f
	}
}

// Options combines several options into one.
func Options(opts ...Option) Option {
	return func(r *Registry) {
		for _, o := range opts {
			o(r)
		}
	}
}

// Logger returns an option that logs skipped elements and other debug
// information to l.
func Logger(l *log.Logger) Option {
	return func(r *Registry) {
		r.logger = l
	}
}

// Strict returns an option that causes elements with no registered decoder to
// be reported as errors matching ErrUnknownElement instead of being decoded as
// generic elements.
// Unknown children that a typed decoder chooses to skip are unaffected.
func Strict() Option {
	return func(r *Registry) {
		r.strict = true
	}
}

// NewRegistry allocates and returns a new Registry.
func NewRegistry(opt ...Option) *Registry {
	r := &Registry{}
	for _, o := range opt {
		o(r)
	}
	return r
}

// Lookup returns the decoder registered for name, falling back to a decoder
// registered for the local name alone.
func (r *Registry) Lookup(name xml.Name) (DecodeFunc, bool) {
	if r == nil {
		return nil, false
	}
	if f, ok := r.decoders[name]; ok {
		return f, true
	}
	f, ok := r.decoders[xml.Name{Local: name.Local}]
	return f, ok
}

// NewDecoder returns a decoder reading from tr that dispatches through r.
func (r *Registry) NewDecoder(tr xml.TokenReader) *Decoder {
	return &Decoder{r: tr, reg: r}
}

// Unmarshal decodes the first element in b.
func (r *Registry) Unmarshal(b []byte) (Extension, error) {
	ext, err := r.NewDecoder(xml.NewDecoder(bytes.NewReader(b))).Next()
	if errors.Is(err, io.EOF) && ext == nil {
		return nil, io.ErrUnexpectedEOF
	}
	return ext, err
}

func (r *Registry) isStrict() bool {
	return r != nil && r.strict
}

func (r *Registry) logf(format string, v ...interface{}) {
	if r == nil || r.logger == nil {
		return
	}
	r.logger.Printf(format, v...)
}
