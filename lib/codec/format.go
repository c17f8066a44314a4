// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"io"

	"github.com/bureau-foundation/msgpack/lib/object"
)

// Format is the set of primitive encodings that define one wire
// layout. Packer and Unpacker call only these primitives; everything
// above them (container traversal, pair handling, raw payload reads,
// recursion) is layout-independent and implemented once.
//
// Pack primitives append the tagged encoding of one value or header to
// w. ReadElement reads one leading tag from r and either completes a
// scalar or reports a pending aggregate whose body the caller reads.
type Format interface {
	PackNil(w io.Writer) error
	PackBool(w io.Writer, v bool) error
	PackInt8(w io.Writer, v int8) error
	PackInt16(w io.Writer, v int16) error
	PackInt32(w io.Writer, v int32) error
	PackInt64(w io.Writer, v int64) error
	PackUint8(w io.Writer, v uint8) error
	PackUint16(w io.Writer, v uint16) error
	PackUint32(w io.Writer, v uint32) error
	PackUint64(w io.Writer, v uint64) error
	PackFloat32(w io.Writer, v float32) error
	PackFloat64(w io.Writer, v float64) error

	// PackRawHeader writes the header for a byte string of n bytes.
	// The payload bytes follow verbatim, written by the Packer.
	PackRawHeader(w io.Writer, n int) error

	// PackArrayHeader writes the header for an array of n elements.
	PackArrayHeader(w io.Writer, n int) error

	// PackMapHeader writes the header for a map of n key/value pairs.
	PackMapHeader(w io.Writer, n int) error

	// ReadElement decodes the next tag (and, for scalars, its payload)
	// from r. Scalar values, nil, and booleans come back as a
	// completed Object in Element.Scalar; raw, array, and map tags
	// come back as a pending Element carrying the declared length. An
	// unassigned tag byte fails with ErrInvalidFormat; a missing byte
	// fails with ErrEndOfStream.
	ReadElement(r io.Reader) (Element, error)
}

// Element is one decoded wire element: either a completed scalar or a
// pending aggregate header.
type Element struct {
	// Scalar is the completed value, or nil when the element is an
	// aggregate header.
	Scalar *object.Object

	// Pending is the aggregate category when Scalar is nil: TypeRaw,
	// TypeArray, or TypeMap.
	Pending object.Type

	// Length is the declared byte length (raw) or entry count
	// (array, map) of the pending aggregate. Never negative.
	Length int
}
