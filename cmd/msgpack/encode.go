// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/msgpack/cmd/msgpack/cli"
	"github.com/bureau-foundation/msgpack/lib/codec"
)

func encodeCommand() *cli.Command {
	return &cli.Command{
		Name:    "encode",
		Summary: "Convert JSON to a binary stream",
		Description: `Read JSON from stdin (or a file argument) and write the equivalent
binary stream to stdout.

The input may contain // and /* */ comments and trailing commas; they
are stripped before parsing. JSON integers are preserved as integers
(not floats), and map keys are written in sorted order so the same
input always produces the same bytes.

The output is binary. Pipe to "msgpack diag" or "xxd" to inspect.`,
		Usage: "msgpack encode [file]",
		Examples: []cli.Example{
			{
				Description: "Encode JSON to a binary stream",
				Command:     "echo '{\"action\":\"status\"}' | msgpack encode > request.bin",
			},
			{
				Description: "Encode a commented JSON file",
				Command:     "msgpack encode config.jsonc > config.bin",
			},
			{
				Description: "Round-trip: encode then decode",
				Command:     "echo '{\"count\":42}' | msgpack encode | msgpack decode",
			},
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, false)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("encode takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			return encodeStream(data, os.Stdout)
		},
	}
}

// encodeStream parses JSON (with comments and trailing commas
// allowed) and writes the equivalent binary stream to w.
func encodeStream(data []byte, w io.Writer) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected JSON data")
	}

	decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return fmt.Errorf("parse JSON: %w", err)
	}

	return packValue(codec.NewPacker(w), convertNumbers(value))
}

// convertNumbers recursively converts json.Number to int64 or
// float64. Without this, numbers parsed with UseNumber() would reach
// the packer as strings and be written as text.
func convertNumbers(v any) any {
	switch value := v.(type) {
	case json.Number:
		if integer, err := value.Int64(); err == nil {
			return integer
		}
		// Positive integers above int64 range still fit uint64.
		if unsigned, err := strconv.ParseUint(value.String(), 10, 64); err == nil {
			return unsigned
		}
		if float, err := value.Float64(); err == nil {
			return float
		}
		// Neither integer nor float64. Fall back to the literal text
		// so the value is not silently lost.
		return value.String()

	case map[string]any:
		for key, element := range value {
			value[key] = convertNumbers(element)
		}
		return value

	case []any:
		for index, element := range value {
			value[index] = convertNumbers(element)
		}
		return value

	default:
		return v
	}
}
