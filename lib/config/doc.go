// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for coinshuffle.
//
// Configuration is loaded from a single file named either by the
// COINSHUFFLE_CONFIG environment variable (via [Load]) or a --config
// flag (via [LoadFile]). There is no ~/.config discovery and no
// automatic file search. [Resolve] picks between the two and falls back
// to [Default] when neither is given, so the CLI works without any
// configuration file.
//
// Variable expansion is performed on path fields after loading:
// ${HOME}, ${COINSHUFFLE_DATA}, and ${VAR:-default} patterns are
// expanded. No other environment variables override config values.
//
// Key exports:
//
//   - [Config] -- master struct with Resources and Output
//   - [Default] -- returns a Config with usable defaults
//   - [Load], [LoadFile] and [Resolve] -- the loading entry points
package config
