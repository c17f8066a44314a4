// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec implements the MessagePack packer/unpacker pair over
// byte streams.
//
// The engine is split in two layers. [Packer] and [Unpacker] own the
// parts of the protocol that are the same for every wire layout:
// container traversal (header, then elements; for maps, key then
// value), raw payload reads, the [Packable]/[Unpackable] dispatch, and
// the recursion and depth accounting on decode. The [Format] strategy
// supplies the per-layout primitives: how each scalar, raw, and
// container header is written, and how one value's tag and scalar
// payload are read back. [Canonical] is the variable-length MessagePack
// layout used for interchange; [Reference] is a fixed-width layout kept
// as the minimal demonstration of the strategy surface. A new wire
// format is a new Format implementation, not a new traversal.
//
// A Packer or Unpacker wraps one stream and must not be used from
// multiple goroutines concurrently. Decoding one value is
// all-or-nothing: on any error the caller receives (nil, err) and no
// partially-built tree.
package codec
