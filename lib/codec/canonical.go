// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/bureau-foundation/msgpack/lib/object"
	"github.com/bureau-foundation/msgpack/lib/wire"
)

// Canonical is the variable-length MessagePack wire layout: fixnum and
// fix-container tags with embedded values, magnitude-based promotion
// through the 8/16/32/64-bit scalar forms, and 16/32-bit length
// headers, all big-endian. Bytes produced under Canonical interoperate
// with other MessagePack implementations.
var Canonical Format = canonicalFormat{}

type canonicalFormat struct{}

func (canonicalFormat) PackNil(w io.Writer) error {
	return writeFull(w, []byte{wire.TagNil})
}

func (canonicalFormat) PackBool(w io.Writer, v bool) error {
	if v {
		return writeFull(w, []byte{wire.TagTrue})
	}
	return writeFull(w, []byte{wire.TagFalse})
}

// Signed values promote to the smallest sufficient form. Non-negative
// values use the unsigned forms, so every width funnels through
// packInt64.
func (f canonicalFormat) PackInt8(w io.Writer, v int8) error   { return f.packInt64(w, int64(v)) }
func (f canonicalFormat) PackInt16(w io.Writer, v int16) error { return f.packInt64(w, int64(v)) }
func (f canonicalFormat) PackInt32(w io.Writer, v int32) error { return f.packInt64(w, int64(v)) }
func (f canonicalFormat) PackInt64(w io.Writer, v int64) error { return f.packInt64(w, v) }

func (f canonicalFormat) PackUint8(w io.Writer, v uint8) error   { return f.packUint64(w, uint64(v)) }
func (f canonicalFormat) PackUint16(w io.Writer, v uint16) error { return f.packUint64(w, uint64(v)) }
func (f canonicalFormat) PackUint32(w io.Writer, v uint32) error { return f.packUint64(w, uint64(v)) }
func (f canonicalFormat) PackUint64(w io.Writer, v uint64) error { return f.packUint64(w, v) }

func (f canonicalFormat) packInt64(w io.Writer, v int64) error {
	if v >= 0 {
		return f.packUint64(w, uint64(v))
	}
	switch {
	case v >= wire.MinNegFixnum:
		return writeFull(w, []byte{byte(v)})
	case v >= math.MinInt8:
		return writeFull(w, []byte{wire.TagInt8, byte(v)})
	case v >= math.MinInt16:
		var buf [3]byte
		buf[0] = wire.TagInt16
		binary.BigEndian.PutUint16(buf[1:], uint16(v))
		return writeFull(w, buf[:])
	case v >= math.MinInt32:
		var buf [5]byte
		buf[0] = wire.TagInt32
		binary.BigEndian.PutUint32(buf[1:], uint32(v))
		return writeFull(w, buf[:])
	default:
		var buf [9]byte
		buf[0] = wire.TagInt64
		binary.BigEndian.PutUint64(buf[1:], uint64(v))
		return writeFull(w, buf[:])
	}
}

func (canonicalFormat) packUint64(w io.Writer, v uint64) error {
	switch {
	case v <= wire.MaxFixnum:
		return writeFull(w, []byte{byte(v)})
	case v <= math.MaxUint8:
		return writeFull(w, []byte{wire.TagUint8, byte(v)})
	case v <= math.MaxUint16:
		var buf [3]byte
		buf[0] = wire.TagUint16
		binary.BigEndian.PutUint16(buf[1:], uint16(v))
		return writeFull(w, buf[:])
	case v <= math.MaxUint32:
		var buf [5]byte
		buf[0] = wire.TagUint32
		binary.BigEndian.PutUint32(buf[1:], uint32(v))
		return writeFull(w, buf[:])
	default:
		var buf [9]byte
		buf[0] = wire.TagUint64
		binary.BigEndian.PutUint64(buf[1:], v)
		return writeFull(w, buf[:])
	}
}

func (canonicalFormat) PackFloat32(w io.Writer, v float32) error {
	var buf [5]byte
	buf[0] = wire.TagFloat32
	binary.BigEndian.PutUint32(buf[1:], math.Float32bits(v))
	return writeFull(w, buf[:])
}

func (canonicalFormat) PackFloat64(w io.Writer, v float64) error {
	var buf [9]byte
	buf[0] = wire.TagFloat64
	binary.BigEndian.PutUint64(buf[1:], math.Float64bits(v))
	return writeFull(w, buf[:])
}

func (canonicalFormat) PackRawHeader(w io.Writer, n int) error {
	switch {
	case n < 0 || int64(n) > math.MaxUint32:
		return fmt.Errorf("%w: raw length %d not encodable", ErrInvalidFormat, n)
	case n <= wire.MaxFixRawLen:
		return writeFull(w, []byte{wire.FixRawBase | byte(n)})
	case n <= wire.MaxLen16:
		var buf [3]byte
		buf[0] = wire.TagRaw16
		binary.BigEndian.PutUint16(buf[1:], uint16(n))
		return writeFull(w, buf[:])
	default:
		var buf [5]byte
		buf[0] = wire.TagRaw32
		binary.BigEndian.PutUint32(buf[1:], uint32(n))
		return writeFull(w, buf[:])
	}
}

func (canonicalFormat) PackArrayHeader(w io.Writer, n int) error {
	return packContainerHeader(w, n, wire.FixArrayBase, wire.TagArray16, wire.TagArray32)
}

func (canonicalFormat) PackMapHeader(w io.Writer, n int) error {
	return packContainerHeader(w, n, wire.FixMapBase, wire.TagMap16, wire.TagMap32)
}

func packContainerHeader(w io.Writer, n int, fixBase, tag16, tag32 byte) error {
	switch {
	case n < 0 || int64(n) > math.MaxUint32:
		return fmt.Errorf("%w: container count %d not encodable", ErrInvalidFormat, n)
	case n <= wire.MaxFixCount:
		return writeFull(w, []byte{fixBase | byte(n)})
	case n <= wire.MaxLen16:
		var buf [3]byte
		buf[0] = tag16
		binary.BigEndian.PutUint16(buf[1:], uint16(n))
		return writeFull(w, buf[:])
	default:
		var buf [5]byte
		buf[0] = tag32
		binary.BigEndian.PutUint32(buf[1:], uint32(n))
		return writeFull(w, buf[:])
	}
}

func (canonicalFormat) ReadElement(r io.Reader) (Element, error) {
	tag, err := readByte(r)
	if err != nil {
		return Element{}, err
	}

	switch wire.Classify(tag) {
	case wire.KindNil:
		return Element{Scalar: object.Nil()}, nil
	case wire.KindFalse:
		return Element{Scalar: object.Bool(false)}, nil
	case wire.KindTrue:
		return Element{Scalar: object.Bool(true)}, nil

	case wire.KindFixnum, wire.KindNegFixnum:
		return Element{Scalar: object.Int8(wire.FixnumValue(tag))}, nil

	case wire.KindUint8:
		b, err := readByte(r)
		if err != nil {
			return Element{}, err
		}
		return Element{Scalar: object.Uint8(b)}, nil
	case wire.KindUint16:
		v, err := readUint16(r)
		if err != nil {
			return Element{}, err
		}
		return Element{Scalar: object.Uint16(v)}, nil
	case wire.KindUint32:
		v, err := readUint32(r)
		if err != nil {
			return Element{}, err
		}
		return Element{Scalar: object.Uint32(v)}, nil
	case wire.KindUint64:
		v, err := readUint64(r)
		if err != nil {
			return Element{}, err
		}
		return Element{Scalar: object.Uint64(v)}, nil

	case wire.KindInt8:
		b, err := readByte(r)
		if err != nil {
			return Element{}, err
		}
		return Element{Scalar: object.Int8(int8(b))}, nil
	case wire.KindInt16:
		v, err := readUint16(r)
		if err != nil {
			return Element{}, err
		}
		return Element{Scalar: object.Int16(int16(v))}, nil
	case wire.KindInt32:
		v, err := readUint32(r)
		if err != nil {
			return Element{}, err
		}
		return Element{Scalar: object.Int32(int32(v))}, nil
	case wire.KindInt64:
		v, err := readUint64(r)
		if err != nil {
			return Element{}, err
		}
		return Element{Scalar: object.Int64(int64(v))}, nil

	case wire.KindFloat32:
		v, err := readUint32(r)
		if err != nil {
			return Element{}, err
		}
		return Element{Scalar: object.Float32(math.Float32frombits(v))}, nil
	case wire.KindFloat64:
		v, err := readUint64(r)
		if err != nil {
			return Element{}, err
		}
		return Element{Scalar: object.Float64(math.Float64frombits(v))}, nil

	case wire.KindFixRaw:
		return Element{Pending: object.TypeRaw, Length: wire.EmbeddedLength(tag)}, nil
	case wire.KindRaw16:
		n, err := readUint16(r)
		if err != nil {
			return Element{}, err
		}
		return Element{Pending: object.TypeRaw, Length: int(n)}, nil
	case wire.KindRaw32:
		n, err := readLen32(r)
		if err != nil {
			return Element{}, err
		}
		return Element{Pending: object.TypeRaw, Length: n}, nil

	case wire.KindFixArray:
		return Element{Pending: object.TypeArray, Length: wire.EmbeddedLength(tag)}, nil
	case wire.KindArray16:
		n, err := readUint16(r)
		if err != nil {
			return Element{}, err
		}
		return Element{Pending: object.TypeArray, Length: int(n)}, nil
	case wire.KindArray32:
		n, err := readLen32(r)
		if err != nil {
			return Element{}, err
		}
		return Element{Pending: object.TypeArray, Length: n}, nil

	case wire.KindFixMap:
		return Element{Pending: object.TypeMap, Length: wire.EmbeddedLength(tag)}, nil
	case wire.KindMap16:
		n, err := readUint16(r)
		if err != nil {
			return Element{}, err
		}
		return Element{Pending: object.TypeMap, Length: int(n)}, nil
	case wire.KindMap32:
		n, err := readLen32(r)
		if err != nil {
			return Element{}, err
		}
		return Element{Pending: object.TypeMap, Length: n}, nil
	}

	return Element{}, fmt.Errorf("%w: unassigned tag byte 0x%02x", ErrInvalidFormat, tag)
}

func readUint16(r io.Reader) (uint16, error) {
	var buf [2]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

func readUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

func readUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

// readLen32 reads a 32-bit length header as an int. On 32-bit hosts a
// declared length above MaxInt cannot be materialized; treat it as a
// malformed stream rather than overflowing.
func readLen32(r io.Reader) (int, error) {
	v, err := readUint32(r)
	if err != nil {
		return 0, err
	}
	if uint64(v) > uint64(math.MaxInt) {
		return 0, fmt.Errorf("%w: declared length %d exceeds host limits", ErrInvalidFormat, v)
	}
	return int(v), nil
}
