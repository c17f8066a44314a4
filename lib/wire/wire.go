// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package wire defines the byte-level layout of the classic MessagePack
// format: the tag byte table, the embedded-length ("fix") tag ranges,
// and the size-class boundaries that select between fix, 16-bit, and
// 32-bit length headers. Both the packer and the unpacker consume this
// single table, so the two sides cannot drift apart.
//
// All multi-byte integers on the wire are big-endian (network order),
// matching every other MessagePack implementation.
package wire

// Dedicated single-value tags. Each is followed on the wire by its
// fixed-width payload (nothing for nil and the booleans).
const (
	TagNil     byte = 0xc0
	TagFalse   byte = 0xc2
	TagTrue    byte = 0xc3
	TagFloat32 byte = 0xca
	TagFloat64 byte = 0xcb
	TagUint8   byte = 0xcc
	TagUint16  byte = 0xcd
	TagUint32  byte = 0xce
	TagUint64  byte = 0xcf
	TagInt8    byte = 0xd0
	TagInt16   byte = 0xd1
	TagInt32   byte = 0xd2
	TagInt64   byte = 0xd3
)

// Variable-length tags. The 16-bit forms carry a big-endian uint16
// length; the 32-bit forms a big-endian uint32.
const (
	TagRaw16   byte = 0xda
	TagRaw32   byte = 0xdb
	TagArray16 byte = 0xdc
	TagArray32 byte = 0xdd
	TagMap16   byte = 0xde
	TagMap32   byte = 0xdf
)

// Embedded-value tag bases. A fixnum carries its value in the low 7
// bits of the tag byte; a negative fixnum in the low 5 bits; fix-raw
// embeds a length in the low 5 bits; fix-array and fix-map embed a
// count in the low 4 bits.
const (
	FixMapBase       byte = 0x80 // 0x80..0x8f
	FixArrayBase     byte = 0x90 // 0x90..0x9f
	FixRawBase       byte = 0xa0 // 0xa0..0xbf
	NegFixnumBase    byte = 0xe0 // 0xe0..0xff
	fixRawMask       byte = 0xe0
	fixContainerMask byte = 0xf0
)

// Size-class boundaries. A value or length at or below the boundary
// uses the smaller encoding; above it, the next size class up.
const (
	MaxFixnum    = 127    // largest value encodable as a positive fixnum
	MinNegFixnum = -32    // smallest value encodable as a negative fixnum
	MaxFixRawLen = 31     // largest fix-raw byte length
	MaxFixCount  = 15     // largest fix-array/fix-map element count
	MaxLen16     = 0xffff // largest 16-bit length/count
)

// Kind is the decoded classification of a leading tag byte.
type Kind uint8

const (
	KindInvalid Kind = iota // unassigned tag byte (0xc1, 0xc4..0xc9, 0xd4..0xd9)
	KindNil
	KindFalse
	KindTrue
	KindFixnum    // value embedded in the tag, 0..127
	KindNegFixnum // value embedded in the tag, -32..-1
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindFixRaw // length embedded in the tag
	KindRaw16
	KindRaw32
	KindFixArray // count embedded in the tag
	KindArray16
	KindArray32
	KindFixMap // count embedded in the tag
	KindMap16
	KindMap32
)

// Classify maps a tag byte to its Kind. Dedicated tags match exactly;
// the embedded-value forms match by bit range. Unassigned bytes return
// KindInvalid.
func Classify(tag byte) Kind {
	switch tag {
	case TagNil:
		return KindNil
	case TagFalse:
		return KindFalse
	case TagTrue:
		return KindTrue
	case TagFloat32:
		return KindFloat32
	case TagFloat64:
		return KindFloat64
	case TagUint8:
		return KindUint8
	case TagUint16:
		return KindUint16
	case TagUint32:
		return KindUint32
	case TagUint64:
		return KindUint64
	case TagInt8:
		return KindInt8
	case TagInt16:
		return KindInt16
	case TagInt32:
		return KindInt32
	case TagInt64:
		return KindInt64
	case TagRaw16:
		return KindRaw16
	case TagRaw32:
		return KindRaw32
	case TagArray16:
		return KindArray16
	case TagArray32:
		return KindArray32
	case TagMap16:
		return KindMap16
	case TagMap32:
		return KindMap32
	}

	switch {
	case tag <= MaxFixnum:
		return KindFixnum
	case tag >= NegFixnumBase:
		return KindNegFixnum
	case tag&fixRawMask == FixRawBase:
		return KindFixRaw
	case tag&fixContainerMask == FixArrayBase:
		return KindFixArray
	case tag&fixContainerMask == FixMapBase:
		return KindFixMap
	}

	return KindInvalid
}

// EmbeddedLength extracts the length or count embedded in a fix-raw,
// fix-array, or fix-map tag byte. The tag must be one of those kinds.
func EmbeddedLength(tag byte) int {
	if tag&fixRawMask == FixRawBase {
		return int(tag &^ fixRawMask)
	}
	return int(tag &^ fixContainerMask)
}

// FixnumValue extracts the integer embedded in a positive or negative
// fixnum tag byte. The low 7 (positive) or 5 (negative) bits carry the
// value; interpreting the whole byte as a two's-complement int8 yields
// both cases.
func FixnumValue(tag byte) int8 {
	return int8(tag)
}
