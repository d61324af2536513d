// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// The colibri2dump command decodes conference control payloads and prints them.
//
// It reads a sequence of XML elements from the files named on the command line
// (or standard input if there are none), decodes each one using the colibri2,
// coin, and jingle decoders, and writes the result back out as canonical XML,
// JSON, or YAML.
// Elements with no registered decoder are printed in generic form unless
// -strict is set.
package main

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/pflag"

	"mellium.im/jitsi/coin"
	"mellium.im/jitsi/colibri2"
	"mellium.im/jitsi/extension"
	"mellium.im/jitsi/jingle"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "colibri2dump: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var (
		format  = "xml"
		strict  bool
		verbose bool
	)
	flags := pflag.NewFlagSet("colibri2dump", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&format, "format", "f", format, "output format: xml, json, or yaml")
	flags.BoolVar(&strict, "strict", strict, "fail on elements with no registered decoder")
	flags.BoolVarP(&verbose, "verbose", "v", verbose, "log skipped elements to stderr")
	if err := flags.Parse(args); err != nil {
		return err
	}

	p, err := newPrinter(format, stdout)
	if err != nil {
		return err
	}

	debug := log.New(io.Discard, "", 0)
	if verbose {
		debug = log.New(stderr, "DEBUG ", log.LstdFlags)
	}
	opts := []extension.Option{
		colibri2.Handle(),
		coin.Handle(),
		jingle.Handle(),
		extension.Logger(debug),
	}
	if strict {
		opts = append(opts, extension.Strict())
	}
	reg := extension.NewRegistry(opts...)

	err = dumpAll(reg, flags.Args(), stdin, p)
	if closeErr := p.close(); err == nil {
		err = closeErr
	}
	return err
}

func dumpAll(reg *extension.Registry, names []string, stdin io.Reader, p printer) error {
	if len(names) == 0 {
		return dump(reg, stdin, p)
	}
	for _, name := range names {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		err = dump(reg, f, p)
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func dump(reg *extension.Registry, r io.Reader, p printer) error {
	d := reg.NewDecoder(xml.NewDecoder(r))
	for {
		ext, err := d.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := p.print(ext); err != nil {
			return err
		}
	}
}
