// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/msgpack/cmd/msgpack/cli"
)

func rootCommand() *cli.Command {
	var (
		compact  bool
		hexInput bool
	)

	return &cli.Command{
		Name:    "msgpack",
		Summary: "Inspect, produce, and convert binary serialization streams",
		Description: `Tools for working with binary serialization streams from the command
line.

With no arguments, decodes a binary stream on stdin to pretty-printed
JSON on stdout (equivalent to "msgpack decode").

All subcommands accept an optional trailing file path argument. When
provided, input is read from the file instead of stdin. With --hex,
input is treated as hex-encoded bytes rather than raw binary;
whitespace in the hex input is ignored.`,
		Subcommands: []*cli.Command{
			decodeCommand(),
			encodeCommand(),
			diagCommand(),
			validateCommand(),
			toCBORCommand(),
			fromCBORCommand(),
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("msgpack", pflag.ContinueOnError)
			flagSet.BoolVarP(&compact, "compact", "c", false, "compact output (no indentation)")
			flagSet.BoolVarP(&hexInput, "hex", "x", false, "treat input as hex-encoded bytes")
			return flagSet
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, hexInput)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("unknown command %q\n\nRun 'msgpack --help' for usage.", remainingArgs[0])
			}
			return decodeStream(data, os.Stdout, decodeOptions{format: "json", compact: compact})
		},
		Examples: []cli.Example{
			{
				Description: "Decode a binary stream to pretty JSON",
				Command:     "msgpack < message.bin",
			},
			{
				Description: "Decode a file to YAML",
				Command:     "msgpack decode --format yaml message.bin",
			},
			{
				Description: "Encode JSON to a binary stream",
				Command:     "echo '{\"action\":\"status\"}' | msgpack encode",
			},
			{
				Description: "Inspect structure with diagnostic notation",
				Command:     "msgpack diag message.bin",
			},
			{
				Description: "Decode hex-encoded bytes",
				Command:     "echo '93 01 02 03' | msgpack --hex",
			},
			{
				Description: "Check a stream for canonical minimal-width encoding",
				Command:     "msgpack validate message.bin",
			},
			{
				Description: "Convert a stream to deterministic CBOR",
				Command:     "msgpack to-cbor message.bin > message.cbor",
			},
		},
	}
}
