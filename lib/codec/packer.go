// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"fmt"
	"io"

	"github.com/bureau-foundation/msgpack/lib/object"
)

// Packable is implemented by types that serialize themselves through a
// Packer. The engine invokes PackTo without otherwise inspecting the
// type; what the method writes is the type's own wire contract.
type Packable interface {
	PackTo(p *Packer) error
}

// Packer serializes native values to a stream. Writes are strictly
// sequential appends; nothing is buffered, seeked, or backpatched, so
// output can go straight to a pipe or socket. A Packer must not be
// shared between goroutines.
type Packer struct {
	w      io.Writer
	format Format
}

// NewPacker returns a Packer writing canonical MessagePack to w.
func NewPacker(w io.Writer) *Packer {
	return NewPackerFormat(w, Canonical)
}

// NewPackerFormat returns a Packer writing the given wire format to w.
func NewPackerFormat(w io.Writer, f Format) *Packer {
	return &Packer{w: w, format: f}
}

// PackNil writes the nil value.
func (p *Packer) PackNil() error { return p.format.PackNil(p.w) }

// PackBool writes a boolean.
func (p *Packer) PackBool(v bool) error { return p.format.PackBool(p.w, v) }

// PackInt8 writes an 8-bit signed integer.
func (p *Packer) PackInt8(v int8) error { return p.format.PackInt8(p.w, v) }

// PackInt16 writes a 16-bit signed integer.
func (p *Packer) PackInt16(v int16) error { return p.format.PackInt16(p.w, v) }

// PackInt32 writes a 32-bit signed integer.
func (p *Packer) PackInt32(v int32) error { return p.format.PackInt32(p.w, v) }

// PackInt64 writes a 64-bit signed integer.
func (p *Packer) PackInt64(v int64) error { return p.format.PackInt64(p.w, v) }

// PackUint8 writes an 8-bit unsigned integer.
func (p *Packer) PackUint8(v uint8) error { return p.format.PackUint8(p.w, v) }

// PackUint16 writes a 16-bit unsigned integer.
func (p *Packer) PackUint16(v uint16) error { return p.format.PackUint16(p.w, v) }

// PackUint32 writes a 32-bit unsigned integer.
func (p *Packer) PackUint32(v uint32) error { return p.format.PackUint32(p.w, v) }

// PackUint64 writes a 64-bit unsigned integer.
func (p *Packer) PackUint64(v uint64) error { return p.format.PackUint64(p.w, v) }

// PackFloat32 writes a single-precision float.
func (p *Packer) PackFloat32(v float32) error { return p.format.PackFloat32(p.w, v) }

// PackFloat64 writes a double-precision float.
func (p *Packer) PackFloat64(v float64) error { return p.format.PackFloat64(p.w, v) }

// PackBytes writes a byte string: header, then the bytes verbatim. A
// nil slice packs as the nil value, not as an empty byte string.
func (p *Packer) PackBytes(data []byte) error {
	if data == nil {
		return p.PackNil()
	}
	if err := p.format.PackRawHeader(p.w, len(data)); err != nil {
		return err
	}
	return writeFull(p.w, data)
}

// PackString writes a string as a byte string.
func (p *Packer) PackString(s string) error {
	if err := p.format.PackRawHeader(p.w, len(s)); err != nil {
		return err
	}
	return writeFull(p.w, []byte(s))
}

// PackArrayHeader writes the header for an array of n elements. The
// caller then packs exactly n values in order.
func (p *Packer) PackArrayHeader(n int) error {
	return p.format.PackArrayHeader(p.w, n)
}

// PackMapHeader writes the header for a map of n entries. The caller
// then packs exactly n key/value pairs, key first, in its own order;
// the engine does not re-sort.
func (p *Packer) PackMapHeader(n int) error {
	return p.format.PackMapHeader(p.w, n)
}

// Pack lets v serialize itself through this Packer. A nil v packs as
// the nil value.
func (p *Packer) Pack(v Packable) error {
	if v == nil {
		return p.PackNil()
	}
	return v.PackTo(p)
}

// PackObject re-serializes a decoded value tree. Each node packs
// according to its type tag; containers emit a header and then their
// children in tree order.
func (p *Packer) PackObject(o *object.Object) error {
	switch o.Type() {
	case object.TypeNil:
		return p.PackNil()
	case object.TypeBool:
		v, _ := o.Bool()
		return p.PackBool(v)
	case object.TypeInt8:
		v, _ := o.AsInt8()
		return p.PackInt8(v)
	case object.TypeInt16:
		v, _ := o.AsInt16()
		return p.PackInt16(v)
	case object.TypeInt32:
		v, _ := o.AsInt32()
		return p.PackInt32(v)
	case object.TypeInt64:
		v, _ := o.AsInt64()
		return p.PackInt64(v)
	case object.TypeUint8:
		v, _ := o.AsUint8()
		return p.PackUint8(v)
	case object.TypeUint16:
		v, _ := o.AsUint16()
		return p.PackUint16(v)
	case object.TypeUint32:
		v, _ := o.AsUint32()
		return p.PackUint32(v)
	case object.TypeUint64:
		v, _ := o.AsUint64()
		return p.PackUint64(v)
	case object.TypeFloat32:
		v, _ := o.AsFloat32()
		return p.PackFloat32(v)
	case object.TypeFloat64:
		v, _ := o.AsFloat64()
		return p.PackFloat64(v)
	case object.TypeRaw:
		data, _ := o.Bytes()
		if err := p.format.PackRawHeader(p.w, len(data)); err != nil {
			return err
		}
		return writeFull(p.w, data)
	case object.TypeArray:
		elems, _ := o.Elems()
		if err := p.PackArrayHeader(len(elems)); err != nil {
			return err
		}
		for _, e := range elems {
			if err := p.PackObject(e); err != nil {
				return err
			}
		}
		return nil
	case object.TypeMap:
		pairs, _ := o.Pairs()
		if err := p.PackMapHeader(len(pairs)); err != nil {
			return err
		}
		for _, pair := range pairs {
			if err := p.PackObject(pair.Key); err != nil {
				return err
			}
			if err := p.PackObject(pair.Value); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("%w: cannot pack object of %s", ErrInvalidFormat, o.Type())
}
