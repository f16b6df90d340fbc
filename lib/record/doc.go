// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

// Package record stores a description of a randomization run next to
// its output: the seed, the normalized feature mask, the passes that
// ran, and fingerprints of the input and output images. A record is
// enough to reproduce the output from the same input and resources.
//
// Records are CBOR with Core Deterministic Encoding (RFC 8949 §4.2),
// so the same run always serializes to the same bytes. A record file
// may hold several records back to back (a CBOR sequence); [Append]
// adds one and [ReadAll] returns them in order.
//
// Record fields carry json tags: the same struct is printed by
// "coinshuffle record --json".
package record
