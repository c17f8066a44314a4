// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// The msgpack command inspects, produces, validates, and converts
// binary serialization streams from the command line.
//
// Subcommands:
//
//   - decode: convert a binary stream to JSON or YAML.
//   - encode: convert JSON (with comments and trailing commas allowed)
//     to a binary stream.
//   - diag: show a stream in diagnostic notation that preserves type
//     information.
//   - validate: verify a stream uses the canonical minimal-width
//     encoding.
//   - to-cbor / from-cbor: convert between the binary stream format
//     and deterministic CBOR.
//
// All subcommands accept input from stdin or from a trailing file path
// argument. The --hex flag treats input as hex-encoded bytes for
// debugging wire dumps.
package main
