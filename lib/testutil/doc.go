// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared fixtures for coinshuffle tests.
//
// [StandardImage] builds a synthetic image that passes the validity
// check: the right length, title, size class, and a chosen
// sub-version, with a deterministic filler everywhere else so that
// stray writes show up in comparisons.
//
// [PatchSet] is an in-memory patch source keyed by resource name.
// [EmptyPatch] and [ExtendedPatch] are the two diffs most tests need:
// one that changes nothing and one that turns a standard image into an
// extended one.
//
// This package depends only on the rom and ips packages.
package testutil
