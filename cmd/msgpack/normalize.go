// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/base64"
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/bureau-foundation/msgpack/lib/codec"
	"github.com/bureau-foundation/msgpack/lib/object"
)

// objectToValue converts a decoded object tree to the plain Go types
// that encoding/json and yaml understand.
//
// The wire format has a single byte-string type with no text/binary
// distinction, so raw payloads become strings when they hold valid
// UTF-8 and base64 strings otherwise. Map keys become strings (JSON
// requires string keys); non-raw keys are formatted with fmt.Sprint.
// Duplicate map keys collapse to the last occurrence, matching JSON
// object semantics. Use "msgpack diag" when the exact wire types
// matter.
func objectToValue(o *object.Object) (any, error) {
	switch o.Type() {
	case object.TypeNil:
		return nil, nil

	case object.TypeBool:
		return o.Bool()

	case object.TypeInt8, object.TypeInt16, object.TypeInt32, object.TypeInt64:
		return o.Int()

	case object.TypeUint8, object.TypeUint16, object.TypeUint32, object.TypeUint64:
		return o.Uint()

	case object.TypeFloat32, object.TypeFloat64:
		return o.Float()

	case object.TypeRaw:
		raw, err := o.Bytes()
		if err != nil {
			return nil, err
		}
		if utf8.Valid(raw) {
			return string(raw), nil
		}
		return base64.StdEncoding.EncodeToString(raw), nil

	case object.TypeArray:
		elems, err := o.Elems()
		if err != nil {
			return nil, err
		}
		result := make([]any, len(elems))
		for index, elem := range elems {
			value, err := objectToValue(elem)
			if err != nil {
				return nil, err
			}
			result[index] = value
		}
		return result, nil

	case object.TypeMap:
		pairs, err := o.Pairs()
		if err != nil {
			return nil, err
		}
		result := make(map[string]any, len(pairs))
		for _, pair := range pairs {
			key, err := mapKeyString(pair.Key)
			if err != nil {
				return nil, err
			}
			value, err := objectToValue(pair.Value)
			if err != nil {
				return nil, err
			}
			result[key] = value
		}
		return result, nil
	}

	return nil, fmt.Errorf("unhandled object type %v", o.Type())
}

// mapKeyString renders a map key object as a JSON-compatible string
// key.
func mapKeyString(key *object.Object) (string, error) {
	if key.Type() == object.TypeRaw {
		raw, err := key.Bytes()
		if err != nil {
			return "", err
		}
		if utf8.Valid(raw) {
			return string(raw), nil
		}
		return base64.StdEncoding.EncodeToString(raw), nil
	}

	value, err := objectToValue(key)
	if err != nil {
		return "", err
	}
	return fmt.Sprint(value), nil
}

// packValue writes a plain Go value tree to the packer. It accepts
// the types produced by JSON and CBOR decoding; map keys inside
// map[string]any are sorted so the output is deterministic across
// runs.
func packValue(p *codec.Packer, v any) error {
	switch value := v.(type) {
	case nil:
		return p.PackNil()

	case bool:
		return p.PackBool(value)

	case int64:
		return p.PackInt64(value)

	case uint64:
		return p.PackUint64(value)

	case float64:
		return p.PackFloat64(value)

	case float32:
		return p.PackFloat32(value)

	case string:
		return p.PackString(value)

	case []byte:
		return p.PackBytes(value)

	case []any:
		if err := p.PackArrayHeader(len(value)); err != nil {
			return err
		}
		for _, element := range value {
			if err := packValue(p, element); err != nil {
				return err
			}
		}
		return nil

	case map[string]any:
		if err := p.PackMapHeader(len(value)); err != nil {
			return err
		}
		keys := make([]string, 0, len(value))
		for key := range value {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if err := p.PackString(key); err != nil {
				return err
			}
			if err := packValue(p, value[key]); err != nil {
				return err
			}
		}
		return nil

	case map[any]any:
		// CBOR maps may carry non-string keys. Sort by the rendered
		// key text for stable output; pack the original key value.
		if err := p.PackMapHeader(len(value)); err != nil {
			return err
		}
		keys := make([]any, 0, len(value))
		for key := range value {
			keys = append(keys, key)
		}
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j])
		})
		for _, key := range keys {
			if err := packValue(p, key); err != nil {
				return err
			}
			if err := packValue(p, value[key]); err != nil {
				return err
			}
		}
		return nil
	}

	return fmt.Errorf("cannot encode value of type %T", v)
}
