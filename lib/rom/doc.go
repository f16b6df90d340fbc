// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

// Package rom describes the cartridge header of the supported image and
// recomputes its checksums.
//
// Two layouts exist. The standard image is 512 KiB and carries size
// class 0x04 at [SizeClassOffset]. The extended ("DX") image is 1 MiB
// with size class 0x05; it is only ever produced by applying the DX
// diff to a standard image, so [Valid] rejects it as input.
//
// The sub-version byte at [VersionOffset] selects between layout
// revisions ("v1.0", "v1.1", "v1.2") that move a few tables by a byte.
//
// [Finalize] must be the last write to an image. It recomputes the
// header complement checksum and the 16-bit global checksum.
package rom
