// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/bureau-foundation/msgpack/lib/object"
)

// Reference is the minimal fixed-width wire layout: one tag byte per
// value (the object.Type number) followed by the native-width
// big-endian payload, with uint32 length headers for raw, array, and
// map. It is not interoperable with MessagePack; it exists as the
// simplest possible Format implementation and as the second
// implementation that keeps the strategy surface honest.
var Reference Format = referenceFormat{}

type referenceFormat struct{}

// refTagMax is the largest assigned reference tag byte.
const refTagMax = byte(object.TypeMap)

func refTag(t object.Type) byte { return byte(t) }

func (referenceFormat) PackNil(w io.Writer) error {
	return writeFull(w, []byte{refTag(object.TypeNil)})
}

func (referenceFormat) PackBool(w io.Writer, v bool) error {
	payload := byte(0)
	if v {
		payload = 1
	}
	return writeFull(w, []byte{refTag(object.TypeBool), payload})
}

func (referenceFormat) PackInt8(w io.Writer, v int8) error {
	return writeFull(w, []byte{refTag(object.TypeInt8), byte(v)})
}

func (referenceFormat) PackInt16(w io.Writer, v int16) error {
	var buf [3]byte
	buf[0] = refTag(object.TypeInt16)
	binary.BigEndian.PutUint16(buf[1:], uint16(v))
	return writeFull(w, buf[:])
}

func (referenceFormat) PackInt32(w io.Writer, v int32) error {
	var buf [5]byte
	buf[0] = refTag(object.TypeInt32)
	binary.BigEndian.PutUint32(buf[1:], uint32(v))
	return writeFull(w, buf[:])
}

func (referenceFormat) PackInt64(w io.Writer, v int64) error {
	var buf [9]byte
	buf[0] = refTag(object.TypeInt64)
	binary.BigEndian.PutUint64(buf[1:], uint64(v))
	return writeFull(w, buf[:])
}

func (referenceFormat) PackUint8(w io.Writer, v uint8) error {
	return writeFull(w, []byte{refTag(object.TypeUint8), v})
}

func (referenceFormat) PackUint16(w io.Writer, v uint16) error {
	var buf [3]byte
	buf[0] = refTag(object.TypeUint16)
	binary.BigEndian.PutUint16(buf[1:], v)
	return writeFull(w, buf[:])
}

func (referenceFormat) PackUint32(w io.Writer, v uint32) error {
	var buf [5]byte
	buf[0] = refTag(object.TypeUint32)
	binary.BigEndian.PutUint32(buf[1:], v)
	return writeFull(w, buf[:])
}

func (referenceFormat) PackUint64(w io.Writer, v uint64) error {
	var buf [9]byte
	buf[0] = refTag(object.TypeUint64)
	binary.BigEndian.PutUint64(buf[1:], v)
	return writeFull(w, buf[:])
}

func (referenceFormat) PackFloat32(w io.Writer, v float32) error {
	var buf [5]byte
	buf[0] = refTag(object.TypeFloat32)
	binary.BigEndian.PutUint32(buf[1:], math.Float32bits(v))
	return writeFull(w, buf[:])
}

func (referenceFormat) PackFloat64(w io.Writer, v float64) error {
	var buf [9]byte
	buf[0] = refTag(object.TypeFloat64)
	binary.BigEndian.PutUint64(buf[1:], math.Float64bits(v))
	return writeFull(w, buf[:])
}

func (referenceFormat) PackRawHeader(w io.Writer, n int) error {
	return refHeader(w, refTag(object.TypeRaw), n)
}

func (referenceFormat) PackArrayHeader(w io.Writer, n int) error {
	return refHeader(w, refTag(object.TypeArray), n)
}

func (referenceFormat) PackMapHeader(w io.Writer, n int) error {
	return refHeader(w, refTag(object.TypeMap), n)
}

func refHeader(w io.Writer, tag byte, n int) error {
	if n < 0 || int64(n) > math.MaxUint32 {
		return fmt.Errorf("%w: length %d not encodable", ErrInvalidFormat, n)
	}
	var buf [5]byte
	buf[0] = tag
	binary.BigEndian.PutUint32(buf[1:], uint32(n))
	return writeFull(w, buf[:])
}

func (referenceFormat) ReadElement(r io.Reader) (Element, error) {
	tag, err := readByte(r)
	if err != nil {
		return Element{}, err
	}
	if tag > refTagMax {
		return Element{}, fmt.Errorf("%w: unassigned tag byte 0x%02x", ErrInvalidFormat, tag)
	}

	switch object.Type(tag) {
	case object.TypeNil:
		return Element{Scalar: object.Nil()}, nil
	case object.TypeBool:
		b, err := readByte(r)
		if err != nil {
			return Element{}, err
		}
		return Element{Scalar: object.Bool(b != 0)}, nil
	case object.TypeInt8:
		b, err := readByte(r)
		if err != nil {
			return Element{}, err
		}
		return Element{Scalar: object.Int8(int8(b))}, nil
	case object.TypeInt16:
		v, err := readUint16(r)
		if err != nil {
			return Element{}, err
		}
		return Element{Scalar: object.Int16(int16(v))}, nil
	case object.TypeInt32:
		v, err := readUint32(r)
		if err != nil {
			return Element{}, err
		}
		return Element{Scalar: object.Int32(int32(v))}, nil
	case object.TypeInt64:
		v, err := readUint64(r)
		if err != nil {
			return Element{}, err
		}
		return Element{Scalar: object.Int64(int64(v))}, nil
	case object.TypeUint8:
		b, err := readByte(r)
		if err != nil {
			return Element{}, err
		}
		return Element{Scalar: object.Uint8(b)}, nil
	case object.TypeUint16:
		v, err := readUint16(r)
		if err != nil {
			return Element{}, err
		}
		return Element{Scalar: object.Uint16(v)}, nil
	case object.TypeUint32:
		v, err := readUint32(r)
		if err != nil {
			return Element{}, err
		}
		return Element{Scalar: object.Uint32(v)}, nil
	case object.TypeUint64:
		v, err := readUint64(r)
		if err != nil {
			return Element{}, err
		}
		return Element{Scalar: object.Uint64(v)}, nil
	case object.TypeFloat32:
		v, err := readUint32(r)
		if err != nil {
			return Element{}, err
		}
		return Element{Scalar: object.Float32(math.Float32frombits(v))}, nil
	case object.TypeFloat64:
		v, err := readUint64(r)
		if err != nil {
			return Element{}, err
		}
		return Element{Scalar: object.Float64(math.Float64frombits(v))}, nil
	case object.TypeRaw, object.TypeArray, object.TypeMap:
		n, err := readLen32(r)
		if err != nil {
			return Element{}, err
		}
		return Element{Pending: object.Type(tag), Length: n}, nil
	}

	return Element{}, fmt.Errorf("%w: unassigned tag byte 0x%02x", ErrInvalidFormat, tag)
}
