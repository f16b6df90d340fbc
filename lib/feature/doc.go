// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

// Package feature defines the 24-bit feature mask that selects which
// randomizer passes run.
//
// The bit table in [Bits] is the single source of truth for what each
// bit means and what it is called. A [Mask] is built either from a raw
// integer ([New], [ParseHex]) or from named toggles ([FromNames],
// [LoadPreset]); both constructors normalize the result so that
// implied and mutually exclusive combinations are resolved before any
// pass looks at the mask:
//
//   - include-hidden implies locations
//   - swap-all-exits wins over random-exit-swap
//   - all-fast-scroll wins over fast-scroll
//   - all-luigi wins over luigi-physics
//
// Presets are JSONC files mapping feature names to booleans:
//
//	{
//	    // core shuffles
//	    "locations": true,
//	    "include-hidden": true,
//	    "enemies": true,
//	}
package feature
