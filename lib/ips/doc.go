// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

// Package ips applies binary diff resources in the IPS format.
//
// A diff is the 5-byte magic "PATCH", a sequence of records, and an
// optional 3-byte "EOF" marker. Every record starts with a 3-byte
// big-endian destination offset and a 2-byte big-endian length. A
// non-zero length is followed by that many literal bytes. A zero length
// marks a run: a 2-byte big-endian repeat count and a single fill byte.
//
// [Apply] never modifies its base buffer. The output is a fresh buffer
// at least as long as the base, zero-extended when a record writes past
// the base's end. A diff that fails to parse produces no output at all.
package ips
