// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for coinshuffle.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a [pflag.FlagSet] factory, and a
// Run function. Commands are assembled into a tree in
// cmd/coinshuffle/commands and dispatched via [Command.Execute], which
// handles flag parsing, subcommand routing, and structured help output
// with examples.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3).
//
// Parameters are declared as tagged structs and bound with
// [FlagsFromParams]; [JSONOutput] adds a --json flag. Human-readable
// output goes through [Theme], which styles with lipgloss only when
// stdout is a terminal.
package cli
