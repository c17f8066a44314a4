// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/bureau-foundation/msgpack/lib/object"
)

// Unpackable is implemented by types that deserialize themselves
// through an Unpacker; the counterpart of [Packable].
type Unpackable interface {
	UnpackFrom(u *Unpacker) error
}

// DefaultMaxDepth is the container nesting limit applied when
// Unpacker.MaxDepth is zero. Recursion cost is per nesting level, so
// the limit bounds stack growth on hostile input.
const DefaultMaxDepth = 512

// Unpacker decodes values from a stream by recursive descent. Each
// Unpack call consumes exactly one complete value and returns a fresh
// tree the caller alone holds; on error nothing is returned and the
// stream is left wherever the failing read stopped. An Unpacker must
// not be shared between goroutines.
type Unpacker struct {
	// MaxDepth caps container nesting during decode. Zero means
	// DefaultMaxDepth. Set it before the first Unpack call.
	MaxDepth int

	r      io.Reader
	format Format
}

// NewUnpacker returns an Unpacker reading canonical MessagePack from r.
func NewUnpacker(r io.Reader) *Unpacker {
	return NewUnpackerFormat(r, Canonical)
}

// NewUnpackerFormat returns an Unpacker reading the given wire format
// from r.
func NewUnpackerFormat(r io.Reader, f Format) *Unpacker {
	return &Unpacker{r: r, format: f}
}

// Unpack reads one complete value and returns its object tree.
func (u *Unpacker) Unpack() (*object.Object, error) {
	limit := u.MaxDepth
	if limit <= 0 {
		limit = DefaultMaxDepth
	}
	return u.unpack(limit)
}

// unpack decodes one value with `remaining` nesting levels left.
func (u *Unpacker) unpack(remaining int) (*object.Object, error) {
	elem, err := u.format.ReadElement(u.r)
	if err != nil {
		return nil, err
	}
	if elem.Scalar != nil {
		return elem.Scalar, nil
	}

	switch elem.Pending {
	case object.TypeRaw:
		return u.unpackRaw(elem.Length)
	case object.TypeArray:
		if remaining <= 0 {
			return nil, ErrDepthLimit
		}
		return u.unpackArray(elem.Length, remaining-1)
	case object.TypeMap:
		if remaining <= 0 {
			return nil, ErrDepthLimit
		}
		return u.unpackMap(elem.Length, remaining-1)
	}
	return nil, fmt.Errorf("%w: format returned unusable element", ErrInvalidFormat)
}

// rawPreallocLimit bounds the upfront allocation for a declared raw
// length. Larger payloads are read through a growing buffer so that a
// corrupt header cannot demand gigabytes before the stream runs dry.
const rawPreallocLimit = 1 << 20

// unpackRaw reads exactly n payload bytes into a fresh buffer. A zero
// length is a valid empty byte string.
func (u *Unpacker) unpackRaw(n int) (*object.Object, error) {
	if n <= rawPreallocLimit {
		data := make([]byte, n)
		if err := readFull(u.r, data); err != nil {
			return nil, fmt.Errorf("raw payload of %d bytes: %w", n, err)
		}
		return object.Raw(data), nil
	}

	var buf bytes.Buffer
	if _, err := io.CopyN(&buf, u.r, int64(n)); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			err = ErrEndOfStream
		}
		return nil, fmt.Errorf("raw payload of %d bytes: %w", n, err)
	}
	return object.Raw(buf.Bytes()), nil
}

// unpackArray decodes n child values in wire order. The read fails at
// the first missing child, not after attempting the whole container.
func (u *Unpacker) unpackArray(n, remaining int) (*object.Object, error) {
	elems := make([]*object.Object, 0, containerHint(n))
	for i := 0; i < n; i++ {
		child, err := u.unpack(remaining)
		if err != nil {
			return nil, fmt.Errorf("array element %d of %d: %w", i, n, err)
		}
		elems = append(elems, child)
	}
	return object.Array(elems...), nil
}

// unpackMap decodes n key/value pairs, key first.
func (u *Unpacker) unpackMap(n, remaining int) (*object.Object, error) {
	pairs := make([]object.Pair, 0, containerHint(n))
	for i := 0; i < n; i++ {
		key, err := u.unpack(remaining)
		if err != nil {
			return nil, fmt.Errorf("map key %d of %d: %w", i, n, err)
		}
		value, err := u.unpack(remaining)
		if err != nil {
			return nil, fmt.Errorf("map value %d of %d: %w", i, n, err)
		}
		pairs = append(pairs, object.Pair{Key: key, Value: value})
	}
	return object.Map(pairs...), nil
}

// containerHint caps the pre-allocation for a declared count. A
// corrupt header can declare millions of entries backed by no bytes;
// growing on demand keeps such streams from allocating the declared
// size before the first missing element is noticed.
func containerHint(n int) int {
	const maxHint = 4096
	if n > maxHint {
		return maxHint
	}
	return n
}

// UnpackInto reads into v, letting it deserialize itself; the
// counterpart of Packer.Pack.
func (u *Unpacker) UnpackInto(v Unpackable) error {
	return v.UnpackFrom(u)
}

// ReadBool decodes one value and returns it as a boolean, failing
// with object.ErrTypeMismatch when the value is not a boolean.
func (u *Unpacker) ReadBool() (bool, error) {
	o, err := u.Unpack()
	if err != nil {
		return false, err
	}
	return o.Bool()
}

// ReadInt64 decodes one value and widens any integer to int64.
func (u *Unpacker) ReadInt64() (int64, error) {
	o, err := u.Unpack()
	if err != nil {
		return 0, err
	}
	return o.Int()
}

// ReadUint64 decodes one value and widens any non-negative integer to
// uint64.
func (u *Unpacker) ReadUint64() (uint64, error) {
	o, err := u.Unpack()
	if err != nil {
		return 0, err
	}
	return o.Uint()
}

// ReadFloat64 decodes one value and returns either float width as
// float64.
func (u *Unpacker) ReadFloat64() (float64, error) {
	o, err := u.Unpack()
	if err != nil {
		return 0, err
	}
	return o.Float()
}

// ReadBytes decodes one value and returns its byte-string payload.
func (u *Unpacker) ReadBytes() ([]byte, error) {
	o, err := u.Unpack()
	if err != nil {
		return nil, err
	}
	return o.Bytes()
}

// ReadString decodes one value and returns its byte-string payload as
// text.
func (u *Unpacker) ReadString() (string, error) {
	o, err := u.Unpack()
	if err != nil {
		return "", err
	}
	return o.Text()
}
