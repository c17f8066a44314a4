// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"errors"
	"fmt"
	"io"
)

// The four failure kinds of the codec. Every error returned by a
// Packer or Unpacker wraps one of these (or object.ErrTypeMismatch for
// the typed convenience reads); test with errors.Is.
var (
	// ErrEndOfStream means a tag, header, or payload read needed more
	// bytes than the stream had.
	ErrEndOfStream = errors.New("msgpack: unexpected end of stream")

	// ErrInvalidFormat means the stream contained an unassigned tag
	// byte or a length the format cannot represent.
	ErrInvalidFormat = errors.New("msgpack: invalid format")

	// ErrWrite means the underlying writer rejected a write.
	ErrWrite = errors.New("msgpack: write failed")

	// ErrDepthLimit means a decode descended through more nested
	// containers than the Unpacker allows.
	ErrDepthLimit = errors.New("msgpack: nesting depth limit exceeded")
)

// writeFull writes b to w, wrapping any failure as ErrWrite.
func writeFull(w io.Writer, b []byte) error {
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// readFull fills buf from r. A short read is ErrEndOfStream; any other
// stream failure is passed through wrapped.
func readFull(r io.Reader, buf []byte) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return ErrEndOfStream
		}
		return fmt.Errorf("read: %w", err)
	}
	return nil
}

// readByte reads a single byte from r.
func readByte(r io.Reader) (byte, error) {
	var buf [1]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}
