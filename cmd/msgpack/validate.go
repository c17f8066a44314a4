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

func validateCommand() *cli.Command {
	var hexInput bool

	return &cli.Command{
		Name:    "validate",
		Summary: "Check whether a stream uses canonical minimal-width encoding",
		Description: `Read a binary stream and verify every value uses the smallest wire
form that can hold it. Exits 0 with "valid" if the input is canonical,
exits 1 with a diagnostic message if not.

Validation works by decoding the input and re-encoding it with the
canonical encoder, then comparing the bytes. This catches non-minimal
integer widths (e.g. a small count stored as a 32-bit integer) and
oversized length headers.

Concatenated item sequences are validated item by item.`,
		Usage: "msgpack validate [-x] [file]",
		Examples: []cli.Example{
			{
				Description: "Validate a stream from a pipeline",
				Command:     "echo '{\"count\":42}' | msgpack encode | msgpack validate",
			},
			{
				Description: "Validate hex-encoded bytes",
				Command:     "echo 'ce00000005' | msgpack validate --hex",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("validate", pflag.ContinueOnError)
			flagSet.BoolVarP(&hexInput, "hex", "x", false, "treat input as hex-encoded bytes")
			return flagSet
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, hexInput)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("validate takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			return validateStream(data, os.Stdout)
		},
	}
}

// validateStream checks whether data is canonical minimal-width
// encoding by decoding every item, re-encoding with the canonical
// encoder, and comparing bytes.
func validateStream(data []byte, w io.Writer) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected binary data")
	}

	reader := bytes.NewReader(data)
	unpacker := codec.NewUnpacker(reader)
	var reencoded bytes.Buffer
	packer := codec.NewPacker(&reencoded)

	var count int
	for reader.Len() > 0 {
		decoded, err := unpacker.Unpack()
		if err != nil {
			return fmt.Errorf("decode item %d: %w", count, err)
		}
		if err := packer.PackObject(decoded); err != nil {
			return fmt.Errorf("re-encode item %d: %w", count, err)
		}
		count++
	}

	if bytes.Equal(data, reencoded.Bytes()) {
		fmt.Fprintln(w, "valid")
		return nil
	}

	return describeMismatch(data, reencoded.Bytes())
}

// describeMismatch reports the first byte offset where the original
// and re-encoded streams diverge.
func describeMismatch(original, reencoded []byte) error {
	offset := 0
	minLength := min(len(original), len(reencoded))
	for offset < minLength {
		if original[offset] != reencoded[offset] {
			break
		}
		offset++
	}

	return fmt.Errorf("not canonical: first difference at byte %d (original %d bytes, re-encoded %d bytes)",
		offset, len(original), len(reencoded))
}
