// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"math"
	"testing"

	"github.com/bureau-foundation/msgpack/lib/object"
)

func TestIntRoundTripSizeClasses(t *testing.T) {
	tests := []struct {
		value    int64
		wantLen  int // encoded bytes, including the tag
		wantType object.Type
	}{
		{0, 1, object.TypeInt8},
		{1, 1, object.TypeInt8},
		{127, 1, object.TypeInt8},
		{128, 2, object.TypeUint8},
		{255, 2, object.TypeUint8},
		{256, 3, object.TypeUint16},
		{65535, 3, object.TypeUint16},
		{65536, 5, object.TypeUint32},
		{math.MaxInt32, 5, object.TypeUint32},
		{1 << 31, 5, object.TypeUint32},
		{1<<32 - 1, 5, object.TypeUint32},
		{1 << 32, 9, object.TypeUint64},
		{math.MaxInt64, 9, object.TypeUint64},
		{-1, 1, object.TypeInt8},
		{-32, 1, object.TypeInt8},
		{-33, 2, object.TypeInt8},
		{-128, 2, object.TypeInt8},
		{-129, 3, object.TypeInt16},
		{-32768, 3, object.TypeInt16},
		{-32769, 5, object.TypeInt32},
		{math.MinInt32, 5, object.TypeInt32},
		{math.MinInt32 - 1, 9, object.TypeInt64},
		{math.MinInt64, 9, object.TypeInt64},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		if err := NewPacker(&buf).PackInt64(tt.value); err != nil {
			t.Fatalf("PackInt64(%d): %v", tt.value, err)
		}
		if buf.Len() != tt.wantLen {
			t.Errorf("PackInt64(%d) wrote %d bytes, want %d", tt.value, buf.Len(), tt.wantLen)
		}

		o, err := NewUnpacker(&buf).Unpack()
		if err != nil {
			t.Fatalf("Unpack after PackInt64(%d): %v", tt.value, err)
		}
		if o.Type() != tt.wantType {
			t.Errorf("decode(%d) type = %s, want %s", tt.value, o.Type(), tt.wantType)
		}
		got, err := o.Int()
		if err != nil {
			t.Fatalf("Int() on decode(%d): %v", tt.value, err)
		}
		if got != tt.value {
			t.Errorf("round trip of %d produced %d", tt.value, got)
		}
	}
}

func TestUintRoundTripSizeClasses(t *testing.T) {
	tests := []struct {
		value   uint64
		wantLen int
	}{
		{0, 1},
		{127, 1},
		{128, 2},
		{255, 2},
		{256, 3},
		{65535, 3},
		{65536, 5},
		{1<<32 - 1, 5},
		{1 << 32, 9},
		{math.MaxUint64, 9},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		if err := NewPacker(&buf).PackUint64(tt.value); err != nil {
			t.Fatalf("PackUint64(%d): %v", tt.value, err)
		}
		if buf.Len() != tt.wantLen {
			t.Errorf("PackUint64(%d) wrote %d bytes, want %d", tt.value, buf.Len(), tt.wantLen)
		}

		got, err := NewUnpacker(&buf).ReadUint64()
		if err != nil {
			t.Fatalf("ReadUint64 after PackUint64(%d): %v", tt.value, err)
		}
		if got != tt.value {
			t.Errorf("round trip of %d produced %d", tt.value, got)
		}
	}
}

func TestScalarWireBytes(t *testing.T) {
	// Spot checks of the exact tagged encodings.
	tests := []struct {
		name string
		pack func(p *Packer) error
		want []byte
	}{
		{"nil", func(p *Packer) error { return p.PackNil() }, []byte{0xc0}},
		{"false", func(p *Packer) error { return p.PackBool(false) }, []byte{0xc2}},
		{"true", func(p *Packer) error { return p.PackBool(true) }, []byte{0xc3}},
		{"fixnum 5", func(p *Packer) error { return p.PackInt64(5) }, []byte{0x05}},
		{"neg fixnum -1", func(p *Packer) error { return p.PackInt64(-1) }, []byte{0xff}},
		{"neg fixnum -32", func(p *Packer) error { return p.PackInt64(-32) }, []byte{0xe0}},
		{"int8 -33", func(p *Packer) error { return p.PackInt64(-33) }, []byte{0xd0, 0xdf}},
		{"uint8 200", func(p *Packer) error { return p.PackInt64(200) }, []byte{0xcc, 0xc8}},
		{"uint16 256", func(p *Packer) error { return p.PackInt64(256) }, []byte{0xcd, 0x01, 0x00}},
		{"int16 -129", func(p *Packer) error { return p.PackInt64(-129) }, []byte{0xd1, 0xff, 0x7f}},
		{
			"float32 1.5",
			func(p *Packer) error { return p.PackFloat32(1.5) },
			[]byte{0xca, 0x3f, 0xc0, 0x00, 0x00},
		},
		{
			"float64 1.5",
			func(p *Packer) error { return p.PackFloat64(1.5) },
			[]byte{0xcb, 0x3f, 0xf8, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
		},
		{"fix-raw abc", func(p *Packer) error { return p.PackString("abc") }, []byte{0xa3, 'a', 'b', 'c'}},
		{"empty raw", func(p *Packer) error { return p.PackString("") }, []byte{0xa0}},
		{"int width funnels", func(p *Packer) error { return p.PackInt16(7) }, []byte{0x07}},
		{"uint width funnels", func(p *Packer) error { return p.PackUint32(300) }, []byte{0xcd, 0x01, 0x2c}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.pack(NewPacker(&buf)); err != nil {
				t.Fatalf("pack: %v", err)
			}
			if !bytes.Equal(buf.Bytes(), tt.want) {
				t.Errorf("wire bytes = %x, want %x", buf.Bytes(), tt.want)
			}
		})
	}
}

func TestFloatRoundTrip(t *testing.T) {
	values32 := []float32{0, 1.5, -2.25, math.MaxFloat32, float32(math.Inf(1))}
	for _, v := range values32 {
		var buf bytes.Buffer
		if err := NewPacker(&buf).PackFloat32(v); err != nil {
			t.Fatalf("PackFloat32(%g): %v", v, err)
		}
		o, err := NewUnpacker(&buf).Unpack()
		if err != nil {
			t.Fatalf("Unpack float32 %g: %v", v, err)
		}
		got, err := o.AsFloat32()
		if err != nil {
			t.Fatalf("AsFloat32: %v", err)
		}
		if got != v {
			t.Errorf("float32 round trip of %g produced %g", v, got)
		}
	}

	values64 := []float64{0, 3.141592653589793, -1e308, math.Inf(-1)}
	for _, v := range values64 {
		var buf bytes.Buffer
		if err := NewPacker(&buf).PackFloat64(v); err != nil {
			t.Fatalf("PackFloat64(%g): %v", v, err)
		}
		got, err := NewUnpacker(&buf).ReadFloat64()
		if err != nil {
			t.Fatalf("ReadFloat64 for %g: %v", v, err)
		}
		if got != v {
			t.Errorf("float64 round trip of %g produced %g", v, got)
		}
	}
}

func TestBoolAndNilRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	p := NewPacker(&buf)
	if err := p.PackBool(true); err != nil {
		t.Fatal(err)
	}
	if err := p.PackBool(false); err != nil {
		t.Fatal(err)
	}
	if err := p.PackNil(); err != nil {
		t.Fatal(err)
	}

	u := NewUnpacker(&buf)
	if v, err := u.ReadBool(); err != nil || v != true {
		t.Fatalf("first ReadBool = (%v, %v)", v, err)
	}
	if v, err := u.ReadBool(); err != nil || v != false {
		t.Fatalf("second ReadBool = (%v, %v)", v, err)
	}
	o, err := u.Unpack()
	if err != nil {
		t.Fatalf("Unpack nil: %v", err)
	}
	if !o.IsNil() {
		t.Error("expected nil object")
	}
}

func TestStringAndBytesRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	p := NewPacker(&buf)
	if err := p.PackString("hello, msgpack"); err != nil {
		t.Fatal(err)
	}
	if err := p.PackBytes([]byte{0x00, 0xff, 0x10}); err != nil {
		t.Fatal(err)
	}
	// A nil byte slice packs as the nil value.
	if err := p.PackBytes(nil); err != nil {
		t.Fatal(err)
	}

	u := NewUnpacker(&buf)
	s, err := u.ReadString()
	if err != nil || s != "hello, msgpack" {
		t.Fatalf("ReadString = (%q, %v)", s, err)
	}
	b, err := u.ReadBytes()
	if err != nil || !bytes.Equal(b, []byte{0x00, 0xff, 0x10}) {
		t.Fatalf("ReadBytes = (%x, %v)", b, err)
	}
	o, err := u.Unpack()
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if !o.IsNil() {
		t.Error("nil byte slice should decode as the nil object")
	}
}

func TestPackObjectReEncodesIdentically(t *testing.T) {
	var buf bytes.Buffer
	p := NewPacker(&buf)
	if err := p.PackMapHeader(2); err != nil {
		t.Fatal(err)
	}
	if err := p.PackString("values"); err != nil {
		t.Fatal(err)
	}
	if err := p.PackArrayHeader(3); err != nil {
		t.Fatal(err)
	}
	for _, v := range []int64{1, -40, 70000} {
		if err := p.PackInt64(v); err != nil {
			t.Fatal(err)
		}
	}
	if err := p.PackString("ok"); err != nil {
		t.Fatal(err)
	}
	if err := p.PackBool(true); err != nil {
		t.Fatal(err)
	}
	original := append([]byte(nil), buf.Bytes()...)

	o, err := NewUnpacker(&buf).Unpack()
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}

	var out bytes.Buffer
	if err := NewPacker(&out).PackObject(o); err != nil {
		t.Fatalf("PackObject: %v", err)
	}
	if !bytes.Equal(out.Bytes(), original) {
		t.Errorf("re-encode = %x, want %x", out.Bytes(), original)
	}
}
