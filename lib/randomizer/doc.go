// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

// Package randomizer turns a valid cartridge image, a seed, and a
// feature mask into a randomized image.
//
// A run has three stages:
//
//  1. The diff resource for the image's sub-version (and the extended
//     variant, when requested) is fetched from a [PatchSource] and
//     applied with package ips. This is the only step that waits on
//     anything external; it honors the context.
//  2. Every enabled [Pass] runs in the order returned by [Passes],
//     sharing one generator seeded from the run's seed.
//  3. The header checksums are recomputed.
//
// Output depends only on the input image, the diff, the seed, and the
// mask. Passes read bytes written by earlier passes (scrolling looks at
// gravity, fast scrolling looks at scrolling and the level table), and
// every pass draws from the same stream, so the pass order is part of
// the output format.
//
// Table offsets and substitution pools live next to the pass that uses
// them, as named package-level values. Each pass declares the spans it
// may write in [Pass.Writes].
package randomizer
