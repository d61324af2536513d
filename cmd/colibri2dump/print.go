// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"mellium.im/jitsi/extension"
)

type printer interface {
	print(ext extension.Extension) error
	close() error
}

func newPrinter(format string, w io.Writer) (printer, error) {
	switch strings.ToLower(format) {
	case "xml":
		return xmlPrinter{w: w}, nil
	case "json":
		e := json.NewEncoder(w)
		e.SetIndent("", "  ")
		return treePrinter{encode: e.Encode}, nil
	case "yaml":
		e := yaml.NewEncoder(w)
		e.SetIndent(2)
		return treePrinter{encode: e.Encode, closer: e.Close}, nil
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

type xmlPrinter struct {
	w io.Writer
}

func (xmlPrinter) close() error { return nil }

func (p xmlPrinter) print(ext extension.Extension) error {
	if err := extension.Encode(p.w, ext); err != nil {
		return err
	}
	_, err := io.WriteString(p.w, "\n")
	return err
}

type attr struct {
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Name      string `json:"name" yaml:"name"`
	Value     string `json:"value" yaml:"value"`
}

// node is the generic form of an extension used for JSON and YAML output.
type node struct {
	Type      string `json:"type,omitempty" yaml:"type,omitempty"`
	Name      string `json:"name" yaml:"name"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Attrs     []attr `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Text      string `json:"text,omitempty" yaml:"text,omitempty"`
	Children  []node `json:"children,omitempty" yaml:"children,omitempty"`
}

func newNode(el *extension.Element, parentNS string) node {
	n := node{
		Name: el.ElementName(),
		Text: el.Text,
	}
	if ns := el.Namespace(); ns != parentNS {
		n.Namespace = ns
	}
	for _, a := range el.Attrs() {
		n.Attrs = append(n.Attrs, attr{Namespace: a.Space, Name: a.Name, Value: a.Value.String()})
	}
	space := parentNS
	if el.Namespace() != "" {
		space = el.Namespace()
	}
	for _, c := range extension.ChildrenOf[*extension.Element](el) {
		n.Children = append(n.Children, newNode(c, space))
	}
	return n
}

type treePrinter struct {
	encode func(v interface{}) error
	closer func() error
}

func (p treePrinter) print(ext extension.Extension) error {
	el, err := extension.Generic(ext)
	if err != nil {
		return err
	}
	n := newNode(el, "")
	n.Type = fmt.Sprintf("%T", ext)
	return p.encode(n)
}

func (p treePrinter) close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer()
}
