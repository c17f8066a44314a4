// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli implements the command tree for the msgpack tool.
//
// Commands form a tree of Command values dispatched by positional
// arguments. Each command owns its flag set (built lazily via the
// Flags field) and either runs directly or forwards to a subcommand.
// Unknown commands and flags produce "did you mean" suggestions based
// on edit distance.
package cli
