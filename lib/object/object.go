// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package object

import (
	"errors"
	"fmt"
	"math"
)

// ErrTypeMismatch is returned by typed accessors when the requested
// type does not match the Object's tag. Test with errors.Is.
var ErrTypeMismatch = errors.New("msgpack: type mismatch")

// Type is the wire-level category of a decoded value. It is fixed at
// construction and never changes.
type Type uint8

const (
	TypeNil Type = iota
	TypeBool
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt64
	TypeUint8
	TypeUint16
	TypeUint32
	TypeUint64
	TypeFloat32
	TypeFloat64
	TypeRaw
	TypeArray
	TypeMap
)

// String returns the lowercase name of the type, as used in error
// messages and diagnostic output.
func (t Type) String() string {
	switch t {
	case TypeNil:
		return "nil"
	case TypeBool:
		return "bool"
	case TypeInt8:
		return "int8"
	case TypeInt16:
		return "int16"
	case TypeInt32:
		return "int32"
	case TypeInt64:
		return "int64"
	case TypeUint8:
		return "uint8"
	case TypeUint16:
		return "uint16"
	case TypeUint32:
		return "uint32"
	case TypeUint64:
		return "uint64"
	case TypeFloat32:
		return "float32"
	case TypeFloat64:
		return "float64"
	case TypeRaw:
		return "raw"
	case TypeArray:
		return "array"
	case TypeMap:
		return "map"
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// Pair is one map entry. Duplicate keys are permitted and entry order
// is the order the pairs appeared on the wire.
type Pair struct {
	Key   *Object
	Value *Object
}

// Object is a single decoded value: an immutable type tag plus the
// payload for that type. The zero value is the nil object.
type Object struct {
	typ Type

	boolVal  bool
	intVal   int64   // payload for the signed integer types
	uintVal  uint64  // payload for the unsigned integer types
	floatVal float64 // payload for both float widths
	rawVal   []byte
	elems    []*Object
	pairs    []Pair
}

// Nil returns the nil object.
func Nil() *Object { return &Object{typ: TypeNil} }

// Bool returns a boolean object.
func Bool(v bool) *Object { return &Object{typ: TypeBool, boolVal: v} }

// Int8 returns an 8-bit signed integer object.
func Int8(v int8) *Object { return &Object{typ: TypeInt8, intVal: int64(v)} }

// Int16 returns a 16-bit signed integer object.
func Int16(v int16) *Object { return &Object{typ: TypeInt16, intVal: int64(v)} }

// Int32 returns a 32-bit signed integer object.
func Int32(v int32) *Object { return &Object{typ: TypeInt32, intVal: int64(v)} }

// Int64 returns a 64-bit signed integer object.
func Int64(v int64) *Object { return &Object{typ: TypeInt64, intVal: v} }

// Uint8 returns an 8-bit unsigned integer object.
func Uint8(v uint8) *Object { return &Object{typ: TypeUint8, uintVal: uint64(v)} }

// Uint16 returns a 16-bit unsigned integer object.
func Uint16(v uint16) *Object { return &Object{typ: TypeUint16, uintVal: uint64(v)} }

// Uint32 returns a 32-bit unsigned integer object.
func Uint32(v uint32) *Object { return &Object{typ: TypeUint32, uintVal: uint64(v)} }

// Uint64 returns a 64-bit unsigned integer object.
func Uint64(v uint64) *Object { return &Object{typ: TypeUint64, uintVal: v} }

// Float32 returns a single-precision float object.
func Float32(v float32) *Object { return &Object{typ: TypeFloat32, floatVal: float64(v)} }

// Float64 returns a double-precision float object.
func Float64(v float64) *Object { return &Object{typ: TypeFloat64, floatVal: v} }

// Raw returns a byte-string object. The Object takes ownership of
// data; the caller must not retain or mutate it.
func Raw(data []byte) *Object { return &Object{typ: TypeRaw, rawVal: data} }

// Array returns an array object owning the given children.
func Array(elems ...*Object) *Object { return &Object{typ: TypeArray, elems: elems} }

// Map returns a map object owning the given entries.
func Map(pairs ...Pair) *Object { return &Object{typ: TypeMap, pairs: pairs} }

// Type returns the immutable type tag.
func (o *Object) Type() Type { return o.typ }

// IsNil reports whether this is the nil object.
func (o *Object) IsNil() bool { return o.typ == TypeNil }

// mismatch builds the standard accessor error.
func (o *Object) mismatch(want string) error {
	return fmt.Errorf("%w: have %s, want %s", ErrTypeMismatch, o.typ, want)
}

// Bool returns the boolean payload, or ErrTypeMismatch.
func (o *Object) Bool() (bool, error) {
	if o.typ != TypeBool {
		return false, o.mismatch("bool")
	}
	return o.boolVal, nil
}

// AsInt8 returns the int8 payload, or ErrTypeMismatch.
func (o *Object) AsInt8() (int8, error) {
	if o.typ != TypeInt8 {
		return 0, o.mismatch("int8")
	}
	return int8(o.intVal), nil
}

// AsInt16 returns the int16 payload, or ErrTypeMismatch.
func (o *Object) AsInt16() (int16, error) {
	if o.typ != TypeInt16 {
		return 0, o.mismatch("int16")
	}
	return int16(o.intVal), nil
}

// AsInt32 returns the int32 payload, or ErrTypeMismatch.
func (o *Object) AsInt32() (int32, error) {
	if o.typ != TypeInt32 {
		return 0, o.mismatch("int32")
	}
	return int32(o.intVal), nil
}

// AsInt64 returns the int64 payload, or ErrTypeMismatch.
func (o *Object) AsInt64() (int64, error) {
	if o.typ != TypeInt64 {
		return 0, o.mismatch("int64")
	}
	return o.intVal, nil
}

// AsUint8 returns the uint8 payload, or ErrTypeMismatch.
func (o *Object) AsUint8() (uint8, error) {
	if o.typ != TypeUint8 {
		return 0, o.mismatch("uint8")
	}
	return uint8(o.uintVal), nil
}

// AsUint16 returns the uint16 payload, or ErrTypeMismatch.
func (o *Object) AsUint16() (uint16, error) {
	if o.typ != TypeUint16 {
		return 0, o.mismatch("uint16")
	}
	return uint16(o.uintVal), nil
}

// AsUint32 returns the uint32 payload, or ErrTypeMismatch.
func (o *Object) AsUint32() (uint32, error) {
	if o.typ != TypeUint32 {
		return 0, o.mismatch("uint32")
	}
	return uint32(o.uintVal), nil
}

// AsUint64 returns the uint64 payload, or ErrTypeMismatch.
func (o *Object) AsUint64() (uint64, error) {
	if o.typ != TypeUint64 {
		return 0, o.mismatch("uint64")
	}
	return o.uintVal, nil
}

// AsFloat32 returns the float32 payload, or ErrTypeMismatch.
func (o *Object) AsFloat32() (float32, error) {
	if o.typ != TypeFloat32 {
		return 0, o.mismatch("float32")
	}
	return float32(o.floatVal), nil
}

// AsFloat64 returns the float64 payload, or ErrTypeMismatch.
func (o *Object) AsFloat64() (float64, error) {
	if o.typ != TypeFloat64 {
		return 0, o.mismatch("float64")
	}
	return o.floatVal, nil
}

// Int widens any integer payload to int64. This is a value-preserving
// conversion, not a reinterpretation: an unsigned payload above
// math.MaxInt64 fails rather than wrapping, and non-integer types fail
// with ErrTypeMismatch.
func (o *Object) Int() (int64, error) {
	switch o.typ {
	case TypeInt8, TypeInt16, TypeInt32, TypeInt64:
		return o.intVal, nil
	case TypeUint8, TypeUint16, TypeUint32, TypeUint64:
		if o.uintVal > math.MaxInt64 {
			return 0, fmt.Errorf("%w: uint64 value %d overflows int64", ErrTypeMismatch, o.uintVal)
		}
		return int64(o.uintVal), nil
	}
	return 0, o.mismatch("integer")
}

// Uint widens any non-negative integer payload to uint64. A negative
// signed payload fails rather than wrapping.
func (o *Object) Uint() (uint64, error) {
	switch o.typ {
	case TypeUint8, TypeUint16, TypeUint32, TypeUint64:
		return o.uintVal, nil
	case TypeInt8, TypeInt16, TypeInt32, TypeInt64:
		if o.intVal < 0 {
			return 0, fmt.Errorf("%w: negative value %d has no uint64 form", ErrTypeMismatch, o.intVal)
		}
		return uint64(o.intVal), nil
	}
	return 0, o.mismatch("integer")
}

// Float returns either float payload as float64.
func (o *Object) Float() (float64, error) {
	switch o.typ {
	case TypeFloat32, TypeFloat64:
		return o.floatVal, nil
	}
	return 0, o.mismatch("float")
}

// Bytes returns the raw byte-string payload. The Object retains
// ownership; the caller must not mutate the returned slice.
func (o *Object) Bytes() ([]byte, error) {
	if o.typ != TypeRaw {
		return nil, o.mismatch("raw")
	}
	return o.rawVal, nil
}

// Text returns the raw payload as a string. This is the supported
// bridging read for byte strings that carry text.
func (o *Object) Text() (string, error) {
	if o.typ != TypeRaw {
		return "", o.mismatch("raw")
	}
	return string(o.rawVal), nil
}

// Elems returns the array children in wire order. The Object retains
// ownership; the caller must not mutate the returned slice.
func (o *Object) Elems() ([]*Object, error) {
	if o.typ != TypeArray {
		return nil, o.mismatch("array")
	}
	return o.elems, nil
}

// Pairs returns the map entries in wire order. The Object retains
// ownership; the caller must not mutate the returned slice.
func (o *Object) Pairs() ([]Pair, error) {
	if o.typ != TypeMap {
		return nil, o.mismatch("map")
	}
	return o.pairs, nil
}

// Len returns the byte length of a raw, the element count of an array,
// or the entry count of a map.
func (o *Object) Len() (int, error) {
	switch o.typ {
	case TypeRaw:
		return len(o.rawVal), nil
	case TypeArray:
		return len(o.elems), nil
	case TypeMap:
		return len(o.pairs), nil
	}
	return 0, o.mismatch("raw, array, or map")
}
