// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package object defines the dynamically-typed value tree produced by
// decoding a MessagePack stream. Each Object carries an immutable type
// tag and the payload for exactly that type; typed accessors fail with
// [ErrTypeMismatch] instead of reinterpreting the payload as something
// it is not.
//
// Decoded trees are strict trees: the unpacker only ever allocates
// fresh children, so an Object is reachable from exactly one parent and
// sharing or cycles cannot occur. Containers expose their children for
// iteration; callers must not mutate the returned slices.
package object
