// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

// Package digest computes BLAKE3 keyed fingerprints of cartridge images
// and patch resources.
//
// Each kind of content is hashed under its own domain key, so an input
// image and an output image with identical bytes still produce distinct
// digests, and a patch file can never be mistaken for an image in a run
// record or manifest.
//
// The API surface:
//
//   - [Sum] and [SumReader] hash bytes or a stream in a [Domain]
//   - [Digest.String] and [Parse] convert to and from lowercase hex,
//     the form used in manifests, run records, and log output
//   - [Digest.Short] is the 12-character prefix shown in summaries
package digest
