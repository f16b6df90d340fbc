// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

// Coinshuffle is the command-line front end of the randomizer. It
// provides subcommands to randomize an image (randomize), inspect one
// (info), work with feature masks (features), manage and apply patch
// resources (patch), and read run records (record).
package main
