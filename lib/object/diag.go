// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package object

import (
	"encoding/hex"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Diag renders the value in a diagnostic notation modeled on RFC 8949
// EDN: null/true/false, plain integers, floats with a forced decimal
// point, quoted strings for UTF-8 raw payloads and h'..' hex for
// binary ones, [..] arrays, and {key: value} maps. The output is a
// single line and preserves wire order; it is a debugging convenience,
// not part of the wire contract.
func (o *Object) Diag() string {
	var b strings.Builder
	o.writeDiag(&b)
	return b.String()
}

func (o *Object) writeDiag(b *strings.Builder) {
	switch o.typ {
	case TypeNil:
		b.WriteString("null")
	case TypeBool:
		if o.boolVal {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case TypeInt8, TypeInt16, TypeInt32, TypeInt64:
		b.WriteString(strconv.FormatInt(o.intVal, 10))
	case TypeUint8, TypeUint16, TypeUint32, TypeUint64:
		b.WriteString(strconv.FormatUint(o.uintVal, 10))
	case TypeFloat32:
		writeDiagFloat(b, o.floatVal, 32)
	case TypeFloat64:
		writeDiagFloat(b, o.floatVal, 64)
	case TypeRaw:
		if utf8.Valid(o.rawVal) {
			b.WriteString(strconv.Quote(string(o.rawVal)))
		} else {
			b.WriteString("h'")
			b.WriteString(hex.EncodeToString(o.rawVal))
			b.WriteString("'")
		}
	case TypeArray:
		b.WriteByte('[')
		for i, e := range o.elems {
			if i > 0 {
				b.WriteString(", ")
			}
			e.writeDiag(b)
		}
		b.WriteByte(']')
	case TypeMap:
		b.WriteByte('{')
		for i, p := range o.pairs {
			if i > 0 {
				b.WriteString(", ")
			}
			p.Key.writeDiag(b)
			b.WriteString(": ")
			p.Value.writeDiag(b)
		}
		b.WriteByte('}')
	}
}

// writeDiagFloat formats a float so it cannot be mistaken for an
// integer: a finite value always shows a fractional or exponent marker.
func writeDiagFloat(b *strings.Builder, v float64, bits int) {
	s := strconv.FormatFloat(v, 'g', -1, bits)
	b.WriteString(s)
	if !math.IsInf(v, 0) && !math.IsNaN(v) && !strings.ContainsAny(s, ".eE") {
		b.WriteString(".0")
	}
}
