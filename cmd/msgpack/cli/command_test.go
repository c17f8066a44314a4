// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "msgpack",
		Subcommands: []*Command{
			{
				Name: "decode",
				Run: func(args []string) error {
					called = "decode"
					return nil
				},
			},
			{
				Name: "encode",
				Run: func(args []string) error {
					called = "encode"
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"encode"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "encode" {
		t.Errorf("dispatched to %q, want %q", called, "encode")
	}
}

func TestCommand_Execute_PassesRemainingArgs(t *testing.T) {
	var receivedArgs []string

	root := &Command{
		Name: "msgpack",
		Subcommands: []*Command{
			{
				Name: "decode",
				Run: func(args []string) error {
					receivedArgs = args
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"decode", "input.bin"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "input.bin" {
		t.Errorf("args = %v, want [input.bin]", receivedArgs)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var format string
	var target string

	command := &Command{
		Name: "decode",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("decode", pflag.ContinueOnError)
			flagSet.StringVar(&format, "format", "json", "output format")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				target = args[0]
			}
			return nil
		},
	}

	if err := command.Execute([]string{"--format", "yaml", "input.bin"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if format != "yaml" {
		t.Errorf("format = %q, want %q", format, "yaml")
	}
	if target != "input.bin" {
		t.Errorf("target = %q, want %q", target, "input.bin")
	}
}

func TestCommand_Execute_UnknownCommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "msgpack",
		Subcommands: []*Command{
			{Name: "decode", Run: func(args []string) error { return nil }},
			{Name: "validate", Run: func(args []string) error { return nil }},
		},
	}

	err := root.Execute([]string{"decoed"})
	if err == nil {
		t.Fatal("Execute() with unknown command should fail")
	}
	if !strings.Contains(err.Error(), `did you mean "decode"`) {
		t.Errorf("error %q should suggest decode", err)
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	command := &Command{
		Name: "decode",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("decode", pflag.ContinueOnError)
			flagSet.Bool("hex", false, "hex input")
			flagSet.String("format", "json", "output format")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--fromat", "yaml"})
	if err == nil {
		t.Fatal("Execute() with unknown flag should fail")
	}
	if !strings.Contains(err.Error(), "--format") {
		t.Errorf("error %q should suggest --format", err)
	}
}

func TestCommand_Execute_SubcommandRequired(t *testing.T) {
	root := &Command{
		Name: "msgpack",
		Subcommands: []*Command{
			{Name: "decode", Run: func(args []string) error { return nil }},
		},
	}

	err := root.Execute(nil)
	if err == nil {
		t.Fatal("Execute() with no args and no Run should fail")
	}
	if !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("error = %q, want subcommand required", err)
	}
}

func TestCommand_Execute_HelpFlagSucceeds(t *testing.T) {
	root := &Command{
		Name: "msgpack",
		Subcommands: []*Command{
			{Name: "decode", Run: func(args []string) error { return nil }},
		},
	}

	if err := root.Execute([]string{"--help"}); err != nil {
		t.Fatalf("Execute(--help) error: %v", err)
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	command := &Command{
		Name:        "msgpack",
		Description: "Inspect and convert binary streams.",
		Subcommands: []*Command{
			{Name: "decode", Summary: "Decode a stream to JSON"},
			{Name: "encode", Summary: "Encode JSON to a stream"},
		},
		Examples: []Example{
			{Description: "Decode a file", Command: "msgpack decode input.bin"},
		},
	}

	var buf bytes.Buffer
	command.PrintHelp(&buf)
	help := buf.String()

	for _, want := range []string{
		"Inspect and convert binary streams.",
		"Usage:",
		"decode",
		"Decode a stream to JSON",
		"msgpack decode input.bin",
		"Run 'msgpack <command> --help'",
	} {
		if !strings.Contains(help, want) {
			t.Errorf("help output missing %q:\n%s", want, help)
		}
	}
}
