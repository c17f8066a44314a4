// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/msgpack/cmd/msgpack/cli"
	"github.com/bureau-foundation/msgpack/lib/codec"
	"github.com/bureau-foundation/msgpack/lib/object"
)

// cborEncMode encodes with Core Deterministic Encoding (RFC 8949
// §4.2) so converted streams are byte-stable across runs.
var cborEncMode cbor.EncMode

// cborDecMode uses the default map type (map[any]any) so CBOR maps
// with integer keys survive conversion.
var cborDecMode cbor.DecMode

func init() {
	var err error
	cborEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("cbor encoder initialization failed: " + err.Error())
	}
	cborDecMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("cbor decoder initialization failed: " + err.Error())
	}
}

func toCBORCommand() *cli.Command {
	var hexInput bool

	return &cli.Command{
		Name:    "to-cbor",
		Summary: "Convert a binary stream to deterministic CBOR",
		Description: `Read a binary stream and write the equivalent CBOR to stdout using
Core Deterministic Encoding (RFC 8949 §4.2).

Concatenated item sequences convert item by item into a CBOR sequence
(RFC 8742).`,
		Usage: "msgpack to-cbor [-x] [file]",
		Examples: []cli.Example{
			{
				Description: "Convert a file to CBOR",
				Command:     "msgpack to-cbor message.bin > message.cbor",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("to-cbor", pflag.ContinueOnError)
			flagSet.BoolVarP(&hexInput, "hex", "x", false, "treat input as hex-encoded bytes")
			return flagSet
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, hexInput)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("to-cbor takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			return streamToCBOR(data, os.Stdout)
		},
	}
}

func fromCBORCommand() *cli.Command {
	var hexInput bool

	return &cli.Command{
		Name:    "from-cbor",
		Summary: "Convert CBOR to a binary stream",
		Description: `Read CBOR and write the equivalent binary stream to stdout.

CBOR byte strings and text strings both become the single byte-string
wire type. CBOR tags are not supported and fail the conversion. A
CBOR sequence (RFC 8742) converts item by item.`,
		Usage: "msgpack from-cbor [-x] [file]",
		Examples: []cli.Example{
			{
				Description: "Convert a CBOR file to a binary stream",
				Command:     "msgpack from-cbor message.cbor > message.bin",
			},
			{
				Description: "Round-trip through CBOR",
				Command:     "msgpack to-cbor message.bin | msgpack from-cbor",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("from-cbor", pflag.ContinueOnError)
			flagSet.BoolVarP(&hexInput, "hex", "x", false, "treat input as hex-encoded CBOR")
			return flagSet
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, hexInput)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("from-cbor takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			return streamFromCBOR(data, os.Stdout)
		},
	}
}

// streamToCBOR decodes each item in data and writes it as
// deterministic CBOR.
func streamToCBOR(data []byte, w io.Writer) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected binary data")
	}

	reader := bytes.NewReader(data)
	unpacker := codec.NewUnpacker(reader)
	encoder := cborEncMode.NewEncoder(w)

	var count int
	for reader.Len() > 0 {
		decoded, err := unpacker.Unpack()
		if err != nil {
			return fmt.Errorf("decode item %d: %w", count, err)
		}
		value, err := objectToCBORValue(decoded)
		if err != nil {
			return fmt.Errorf("convert item %d: %w", count, err)
		}
		if err := encoder.Encode(value); err != nil {
			return fmt.Errorf("encode CBOR item %d: %w", count, err)
		}
		count++
	}

	return nil
}

// objectToCBORValue converts a decoded object tree to Go values for
// the CBOR encoder. Unlike objectToValue, raw payloads that are not
// valid UTF-8 stay []byte (CBOR has a byte-string type) and map keys
// keep their wire type (CBOR allows non-string keys).
func objectToCBORValue(o *object.Object) (any, error) {
	switch o.Type() {
	case object.TypeRaw:
		raw, err := o.Bytes()
		if err != nil {
			return nil, err
		}
		if utf8.Valid(raw) {
			return string(raw), nil
		}
		return raw, nil

	case object.TypeArray:
		elems, err := o.Elems()
		if err != nil {
			return nil, err
		}
		result := make([]any, len(elems))
		for index, elem := range elems {
			value, err := objectToCBORValue(elem)
			if err != nil {
				return nil, err
			}
			result[index] = value
		}
		return result, nil

	case object.TypeMap:
		pairs, err := o.Pairs()
		if err != nil {
			return nil, err
		}
		result := make(map[any]any, len(pairs))
		for _, pair := range pairs {
			key, err := objectToCBORValue(pair.Key)
			if err != nil {
				return nil, err
			}
			value, err := objectToCBORValue(pair.Value)
			if err != nil {
				return nil, err
			}
			switch typed := key.(type) {
			case []byte:
				// Byte-string keys are not hashable in Go maps.
				result[string(typed)] = value
			case []any, map[any]any:
				return nil, fmt.Errorf("container map keys cannot convert to CBOR")
			default:
				result[typed] = value
			}
		}
		return result, nil
	}

	// Scalars convert the same way as for JSON output.
	return objectToValue(o)
}

// streamFromCBOR decodes each CBOR item in data and writes it to the
// binary stream format.
func streamFromCBOR(data []byte, w io.Writer) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected CBOR data")
	}

	decoder := cborDecMode.NewDecoder(bytes.NewReader(data))
	packer := codec.NewPacker(w)

	var count int
	for {
		var value any
		if err := decoder.Decode(&value); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("decode CBOR item %d: %w", count, err)
		}
		if err := packValue(packer, value); err != nil {
			return fmt.Errorf("convert item %d: %w", count, err)
		}
		count++
	}

	return nil
}
