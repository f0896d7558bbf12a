// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestExecuteDispatchesSubcommand(t *testing.T) {
	var ran []string
	root := &Command{
		Name: "poskit",
		Subcommands: []*Command{
			{
				Name: "company",
				Subcommands: []*Command{
					{
						Name: "select",
						Run: func(args []string) error {
							ran = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute([]string{"company", "select", "2"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(ran) != 1 || ran[0] != "2" {
		t.Fatalf("args = %v, want [2]", ran)
	}
}

func TestExecuteUnknownCommandSuggests(t *testing.T) {
	root := &Command{
		Name: "poskit",
		Subcommands: []*Command{
			{Name: "console", Run: func([]string) error { return nil }},
			{Name: "login", Run: func([]string) error { return nil }},
		},
	}

	err := root.Execute([]string{"consle"})
	if err == nil {
		t.Fatal("expected an error for an unknown command")
	}
	if !strings.Contains(err.Error(), `did you mean "console"`) {
		t.Fatalf("error = %q, want console suggestion", err)
	}
}

func TestExecuteHelpFlagPrintsAndSucceeds(t *testing.T) {
	root := &Command{
		Name: "poskit",
		Subcommands: []*Command{
			{Name: "login", Summary: "Authenticate"},
		},
	}
	if err := root.Execute([]string{"--help"}); err != nil {
		t.Fatalf("--help returned error: %v", err)
	}
	if err := root.Execute([]string{"help"}); err != nil {
		t.Fatalf("help returned error: %v", err)
	}
}

func TestExecuteNoSubcommandIsError(t *testing.T) {
	root := &Command{
		Name:        "poskit",
		Subcommands: []*Command{{Name: "login"}},
	}
	if err := root.Execute(nil); err == nil {
		t.Fatal("expected a subcommand-required error")
	}
}

func TestExecuteParsesFlags(t *testing.T) {
	var value string
	command := &Command{
		Name: "console",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("console", pflag.ContinueOnError)
			flags.StringVar(&value, "config", "", "")
			return flags
		},
		Run: func(args []string) error { return nil },
	}

	if err := command.Execute([]string{"--config", "/tmp/poskit.yaml"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if value != "/tmp/poskit.yaml" {
		t.Fatalf("config = %q", value)
	}
}

func TestExecuteUnknownFlagSuggests(t *testing.T) {
	command := &Command{
		Name: "console",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("console", pflag.ContinueOnError)
			flags.String("config", "", "")
			return flags
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--confg", "x"})
	if err == nil {
		t.Fatal("expected an error for an unknown flag")
	}
	if !strings.Contains(err.Error(), "--config") {
		t.Fatalf("error = %q, want --config suggestion", err)
	}
}

func TestFullNameWalksParents(t *testing.T) {
	root := &Command{Name: "poskit"}
	group := &Command{Name: "company", parent: root}
	leaf := &Command{Name: "select", parent: group}
	if got := leaf.fullName(); got != "poskit company select" {
		t.Fatalf("fullName = %q", got)
	}
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"console", "console", 0},
		{"consle", "console", 1},
		{"lgoin", "login", 2},
		{"abc", "", 3},
	}
	for _, c := range cases {
		if got := levenshtein(c.a, c.b); got != c.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}
