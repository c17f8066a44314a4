// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/msgpack/cmd/msgpack/cli"
	"github.com/bureau-foundation/msgpack/lib/codec"
)

type decodeOptions struct {
	// format selects the output encoding: "json" or "yaml".
	format string
	// compact emits single-line JSON. Ignored for YAML.
	compact bool
	// slurp reads a sequence of concatenated items and outputs them
	// as one array.
	slurp bool
}

func decodeCommand() *cli.Command {
	var (
		opts     decodeOptions
		hexInput bool
	)

	return &cli.Command{
		Name:    "decode",
		Summary: "Convert a binary stream to JSON or YAML",
		Description: `Read a binary stream from stdin (or a file argument) and write the
equivalent JSON to stdout.

By default, output is pretty-printed with 2-space indentation. Use -c
for compact single-line output, or --format yaml for YAML.

Byte strings holding valid UTF-8 appear as text; other byte strings
appear as base64. Integer map keys appear as string keys since JSON
requires string keys. Use "msgpack diag" for a representation that
preserves wire types.

With -s, reads a sequence of concatenated items and outputs them as a
single array.`,
		Usage: "msgpack decode [-c] [-s] [--format json|yaml] [file]",
		Examples: []cli.Example{
			{
				Description: "Decode a file to pretty JSON",
				Command:     "msgpack decode message.bin",
			},
			{
				Description: "Decode a sequence of items to a JSON array",
				Command:     "msgpack decode -s < sequence.bin",
			},
			{
				Description: "Decode to YAML",
				Command:     "msgpack decode --format yaml message.bin",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("decode", pflag.ContinueOnError)
			flagSet.StringVar(&opts.format, "format", "json", "output format: json or yaml")
			flagSet.BoolVarP(&opts.compact, "compact", "c", false, "compact output (no indentation)")
			flagSet.BoolVarP(&opts.slurp, "slurp", "s", false, "read an item sequence as one array")
			flagSet.BoolVarP(&hexInput, "hex", "x", false, "treat input as hex-encoded bytes")
			return flagSet
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, hexInput)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("decode takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			return decodeStream(data, os.Stdout, opts)
		},
	}
}

// decodeStream decodes binary data and writes it to w in the selected
// output format.
func decodeStream(data []byte, w io.Writer, opts decodeOptions) error {
	if opts.format != "json" && opts.format != "yaml" {
		return fmt.Errorf("unknown output format %q (want json or yaml)", opts.format)
	}
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected binary data on stdin")
	}

	reader := bytes.NewReader(data)
	unpacker := codec.NewUnpacker(reader)

	if opts.slurp {
		return decodeSlurp(reader, unpacker, w, opts)
	}

	decoded, err := unpacker.Unpack()
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if reader.Len() > 0 {
		return fmt.Errorf("trailing data after first item (%d bytes left; use -s for item sequences)", reader.Len())
	}

	value, err := objectToValue(decoded)
	if err != nil {
		return err
	}
	return writeOutput(w, value, opts)
}

// decodeSlurp reads a sequence of concatenated items and outputs them
// as one array. Looping on the reader's remaining length (rather than
// waiting for an end-of-stream error) keeps a truncated final item an
// error instead of a silent drop.
func decodeSlurp(reader *bytes.Reader, unpacker *codec.Unpacker, w io.Writer, opts decodeOptions) error {
	var items []any
	for reader.Len() > 0 {
		decoded, err := unpacker.Unpack()
		if err != nil {
			return fmt.Errorf("decode item %d: %w", len(items), err)
		}
		value, err := objectToValue(decoded)
		if err != nil {
			return err
		}
		items = append(items, value)
	}

	return writeOutput(w, items, opts)
}

// writeOutput encodes value in the selected format and writes it to w
// with a trailing newline.
func writeOutput(w io.Writer, value any, opts decodeOptions) error {
	if opts.format == "yaml" {
		output, err := yaml.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		_, err = w.Write(output)
		return err
	}

	var output []byte
	var err error
	if opts.compact {
		output, err = json.Marshal(value)
	} else {
		output, err = json.MarshalIndent(value, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	_, err = fmt.Fprintln(w, string(output))
	return err
}
