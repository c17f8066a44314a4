// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/bureau-foundation/msgpack/lib/codec"
)

// packTestValue encodes a plain Go value to wire bytes for test input.
func packTestValue(t *testing.T, value any) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := packValue(codec.NewPacker(&buf), value); err != nil {
		t.Fatalf("pack test value: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeStream(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		compact bool
		want    any // decoded JSON value to compare
	}{
		{
			name:  "simple map",
			input: map[string]any{"action": "status", "count": int64(42)},
			want:  map[string]any{"action": "status", "count": float64(42)},
		},
		{
			name:    "compact output",
			input:   map[string]any{"key": "value"},
			compact: true,
			want:    map[string]any{"key": "value"},
		},
		{
			name:  "nested structure",
			input: map[string]any{"outer": map[string]any{"inner": "deep"}},
			want:  map[string]any{"outer": map[string]any{"inner": "deep"}},
		},
		{
			name:  "array",
			input: []any{"a", "b", "c"},
			want:  []any{"a", "b", "c"},
		},
		{
			name:  "integer values preserved as numbers",
			input: map[string]any{"small": int64(1), "large": int64(1000000)},
			want:  map[string]any{"small": float64(1), "large": float64(1000000)},
		},
		{
			name:  "boolean and null",
			input: map[string]any{"flag": true, "empty": nil},
			want:  map[string]any{"flag": true, "empty": nil},
		},
		{
			name:  "negative integers",
			input: []any{int64(-1), int64(-70000)},
			want:  []any{float64(-1), float64(-70000)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := packTestValue(t, tt.input)

			var output bytes.Buffer
			opts := decodeOptions{format: "json", compact: tt.compact}
			if err := decodeStream(data, &output, opts); err != nil {
				t.Fatalf("decodeStream: %v", err)
			}

			var got any
			if err := json.Unmarshal([]byte(strings.TrimSpace(output.String())), &got); err != nil {
				t.Fatalf("parse output JSON: %v (output was: %q)", err, output.String())
			}

			if !reflect.DeepEqual(tt.want, got) {
				t.Errorf("decoded %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodeStream_CompactIsSingleLine(t *testing.T) {
	data := packTestValue(t, map[string]any{"a": int64(1), "b": []any{int64(2), int64(3)}})

	var output bytes.Buffer
	if err := decodeStream(data, &output, decodeOptions{format: "json", compact: true}); err != nil {
		t.Fatalf("decodeStream: %v", err)
	}

	if lines := strings.Count(strings.TrimSpace(output.String()), "\n"); lines != 0 {
		t.Errorf("compact output spans %d extra lines: %q", lines, output.String())
	}
}

func TestDecodeStream_YAML(t *testing.T) {
	data := packTestValue(t, map[string]any{"action": "status", "count": int64(42)})

	var output bytes.Buffer
	if err := decodeStream(data, &output, decodeOptions{format: "yaml"}); err != nil {
		t.Fatalf("decodeStream: %v", err)
	}

	got := output.String()
	if !strings.Contains(got, "action: status") {
		t.Errorf("YAML output missing action field: %q", got)
	}
	if !strings.Contains(got, "count: 42") {
		t.Errorf("YAML output missing count field: %q", got)
	}
}

func TestDecodeStream_UnknownFormat(t *testing.T) {
	data := packTestValue(t, int64(1))
	err := decodeStream(data, &bytes.Buffer{}, decodeOptions{format: "toml"})
	if err == nil || !strings.Contains(err.Error(), "unknown output format") {
		t.Fatalf("err = %v, want unknown output format", err)
	}
}

func TestDecodeStream_Slurp(t *testing.T) {
	var data []byte
	data = append(data, packTestValue(t, int64(1))...)
	data = append(data, packTestValue(t, "two")...)
	data = append(data, packTestValue(t, []any{int64(3)})...)

	var output bytes.Buffer
	if err := decodeStream(data, &output, decodeOptions{format: "json", slurp: true}); err != nil {
		t.Fatalf("decodeStream: %v", err)
	}

	var got []any
	if err := json.Unmarshal([]byte(strings.TrimSpace(output.String())), &got); err != nil {
		t.Fatalf("parse output JSON: %v", err)
	}
	want := []any{float64(1), "two", []any{float64(3)}}
	if !reflect.DeepEqual(want, got) {
		t.Errorf("slurped %v, want %v", got, want)
	}
}

func TestDecodeStream_TrailingDataWithoutSlurp(t *testing.T) {
	var data []byte
	data = append(data, packTestValue(t, int64(1))...)
	data = append(data, packTestValue(t, int64(2))...)

	err := decodeStream(data, &bytes.Buffer{}, decodeOptions{format: "json"})
	if err == nil || !strings.Contains(err.Error(), "trailing data") {
		t.Fatalf("err = %v, want trailing data error", err)
	}
}

func TestDecodeStream_TruncatedLastItemInSlurp(t *testing.T) {
	var data []byte
	data = append(data, packTestValue(t, int64(1))...)
	data = append(data, 0xda, 0x01) // raw16 header cut short

	err := decodeStream(data, &bytes.Buffer{}, decodeOptions{format: "json", slurp: true})
	if err == nil || !strings.Contains(err.Error(), "decode item 1") {
		t.Fatalf("err = %v, want decode item 1 error", err)
	}
}

func TestDecodeStream_EmptyInput(t *testing.T) {
	err := decodeStream(nil, &bytes.Buffer{}, decodeOptions{format: "json"})
	if err == nil || !strings.Contains(err.Error(), "empty input") {
		t.Fatalf("err = %v, want empty input error", err)
	}
}

func TestDecodeStream_BinaryRawBecomesBase64(t *testing.T) {
	data := packTestValue(t, []byte{0xff, 0x00, 0x80})

	var output bytes.Buffer
	if err := decodeStream(data, &output, decodeOptions{format: "json", compact: true}); err != nil {
		t.Fatalf("decodeStream: %v", err)
	}

	if got := strings.TrimSpace(output.String()); got != `"/wCA"` {
		t.Errorf("output = %s, want base64 string %q", got, "/wCA")
	}
}
