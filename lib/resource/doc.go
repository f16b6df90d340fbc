// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

// Package resource loads patch resources from a directory.
//
// A patch named "v1.2.ips" may be stored as-is, zstd-compressed as
// "v1.2.ips.zst", or LZ4-framed as "v1.2.ips.lz4". [Store.Patch] looks
// for the names in that order and always returns the decompressed
// diff, so [Store] satisfies randomizer.PatchSource.
//
// A directory may carry a manifest.yaml listing the BLAKE3 digest
// (patch domain, see lib/digest) of each decompressed patch:
//
//	patches:
//	  v1.0.ips: 5c0e...
//	  v1.0-dx.ips: 91ab...
//
// With verification enabled every loaded patch must be listed and
// match, otherwise loading fails with [ErrDigestMismatch].
package resource
