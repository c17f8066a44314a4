// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/msgpack/cmd/msgpack/cli"
	"github.com/bureau-foundation/msgpack/lib/codec"
)

func diagCommand() *cli.Command {
	var hexInput bool

	return &cli.Command{
		Name:    "diag",
		Summary: "Convert a binary stream to diagnostic notation",
		Description: `Read a binary stream and write diagnostic notation to stdout.

Unlike JSON output, diagnostic notation preserves wire type
information: integer vs float, text vs binary byte strings, and
non-string map keys.

Examples of diagnostic notation:

  {"action": "status", "count": 42}       text keys, integer value
  {1: "subject", 2: "machine"}            integer map keys
  h'01ff42'                               binary byte string in hex
  [1.0, -7, null]                         float stays distinct from int`,
		Usage: "msgpack diag [-x] [file]",
		Examples: []cli.Example{
			{
				Description: "Show diagnostic notation for a file",
				Command:     "msgpack diag message.bin",
			},
			{
				Description: "Encode JSON and inspect the wire structure",
				Command:     "echo '{\"count\":42}' | msgpack encode | msgpack diag",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("diag", pflag.ContinueOnError)
			flagSet.BoolVarP(&hexInput, "hex", "x", false, "treat input as hex-encoded bytes")
			return flagSet
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, hexInput)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("diag takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			return diagStream(data, os.Stdout)
		},
	}
}

// diagStream decodes each item in data and prints its diagnostic
// notation on its own line. For a single item this produces one line;
// for concatenated sequences it produces one line per item.
func diagStream(data []byte, w io.Writer) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected binary data on stdin")
	}

	reader := bytes.NewReader(data)
	unpacker := codec.NewUnpacker(reader)
	for reader.Len() > 0 {
		offset := len(data) - reader.Len()
		decoded, err := unpacker.Unpack()
		if err != nil {
			return fmt.Errorf("diagnose item at byte %d: %w", offset, err)
		}
		if _, err := fmt.Fprintln(w, decoded.Diag()); err != nil {
			return err
		}
	}

	return nil
}
