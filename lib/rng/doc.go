// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

// Package rng provides the seeded pseudo-random stream shared by every
// randomizer pass, and the permutation helpers built on it.
//
// The generator is a 32-bit linear congruential generator
// (multiplier 1664525, increment 1013904223). It exists for exact
// reproducibility: the same seed and the same sequence of draws always
// produce the same values, so a seed plus a feature mask fully
// identifies an output image. It is not suitable for anything that
// needs unpredictability.
//
// Draws are consumed strictly in call order. Callers that want stable
// output across releases must not reorder, add, or remove draws in an
// existing code path.
//
// A [Generator] is not safe for concurrent use.
package rng
