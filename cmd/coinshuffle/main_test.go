// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"strings"
	"testing"

	"github.com/coinshuffle/coinshuffle/cmd/coinshuffle/cli"
	"github.com/coinshuffle/coinshuffle/cmd/coinshuffle/commands"
)

// TestCommandTree walks the production command tree and checks that
// every command can be listed in its parent's help and reached.
func TestCommandTree(t *testing.T) {
	seen := make(map[string]bool)
	walkCommands(commands.Root(), nil, func(command *cli.Command, path []string) {
		name := strings.Join(path, " ")
		if seen[name] {
			t.Errorf("%s: duplicate command", name)
		}
		seen[name] = true

		if len(path) > 1 && command.Summary == "" {
			t.Errorf("%s: missing Summary", name)
		}
		if command.Run == nil && len(command.Subcommands) == 0 {
			t.Errorf("%s: neither Run nor Subcommands", name)
		}
		if command.Flags != nil {
			// Flag factories panic on malformed params structs.
			command.Flags()
		}
	})

	for _, want := range []string{
		"coinshuffle randomize",
		"coinshuffle info",
		"coinshuffle features list",
		"coinshuffle features normalize",
		"coinshuffle patch apply",
		"coinshuffle patch list",
		"coinshuffle patch manifest",
		"coinshuffle record show",
		"coinshuffle record verify",
		"coinshuffle version",
	} {
		if !seen[want] {
			t.Errorf("command tree is missing %q", want)
		}
	}
}

// walkCommands recursively visits every command in the tree,
// calling visit for each node with the accumulated command path.
func walkCommands(command *cli.Command, path []string, visit func(*cli.Command, []string)) {
	current := make([]string, len(path)+1)
	copy(current, path)
	current[len(path)] = command.Name
	visit(command, current)
	for _, sub := range command.Subcommands {
		walkCommands(sub, current, visit)
	}
}
