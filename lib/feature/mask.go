// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package feature

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Bit is the index of one feature in the mask.
type Bit uint8

const (
	Locations Bit = iota
	IncludeHidden
	BossLocations
	BossHealth
	RandomExitSwap
	SwapAllExits
	GamblingCosts
	BonusGames
	Enemies
	Powerups
	Platforms
	Gravity
	Scrolling
	FastScroll
	AllFastScroll
	IcePhysics
	LuigiPhysics
	AllLuigi
	Music
	FastMusic
	DisableMusic
	DisableSFX
	ExtraVariant
	Reserved
)

// Width is the number of usable bits.
const Width = 24

// Limit is the largest raw mask value.
const Limit = 1<<Width - 1

// Bits names every bit, indexed by Bit.
var Bits = [Width]string{
	Locations:      "locations",
	IncludeHidden:  "include-hidden",
	BossLocations:  "boss-locations",
	BossHealth:     "boss-health",
	RandomExitSwap: "random-exit-swap",
	SwapAllExits:   "swap-all-exits",
	GamblingCosts:  "gambling-costs",
	BonusGames:     "bonus-games",
	Enemies:        "enemies",
	Powerups:       "powerups",
	Platforms:      "platforms",
	Gravity:        "gravity",
	Scrolling:      "scrolling",
	FastScroll:     "fast-scroll",
	AllFastScroll:  "all-fast-scroll",
	IcePhysics:     "ice-physics",
	LuigiPhysics:   "luigi-physics",
	AllLuigi:       "all-luigi",
	Music:          "music",
	FastMusic:      "fast-music",
	DisableMusic:   "disable-music",
	DisableSFX:     "disable-sfx",
	ExtraVariant:   "extra-variant",
	Reserved:       "reserved",
}

// String returns the feature name.
func (b Bit) String() string {
	if int(b) < Width {
		return Bits[b]
	}
	return fmt.Sprintf("bit%d", uint8(b))
}

// Lookup finds a bit by name.
func Lookup(name string) (Bit, bool) {
	for index, bitName := range Bits {
		if bitName == name {
			return Bit(index), true
		}
	}
	return 0, false
}

// Mask is a normalized set of feature bits.
type Mask uint32

// New normalizes a raw mask. Bits above Width are discarded.
func New(raw uint32) Mask {
	return Mask(raw & Limit).Normalize()
}

// Has reports whether bit is set.
func (m Mask) Has(bit Bit) bool {
	return m&(1<<bit) != 0
}

// With returns m with bit set. The result is not normalized.
func (m Mask) With(bit Bit) Mask {
	return m | 1<<bit
}

// Without returns m with bit cleared.
func (m Mask) Without(bit Bit) Mask {
	return m &^ (1 << bit)
}

// Normalize resolves implied and conflicting bits.
func (m Mask) Normalize() Mask {
	if m.Has(IncludeHidden) {
		m = m.With(Locations)
	}
	if m.Has(RandomExitSwap) && m.Has(SwapAllExits) {
		m = m.Without(RandomExitSwap)
	}
	if m.Has(FastScroll) && m.Has(AllFastScroll) {
		m = m.Without(FastScroll)
	}
	if m.Has(LuigiPhysics) && m.Has(AllLuigi) {
		m = m.Without(LuigiPhysics)
	}
	return m
}

// Hex formats the mask as six uppercase hex digits.
func (m Mask) Hex() string {
	return fmt.Sprintf("%06X", uint32(m))
}

// String lists the enabled feature names.
func (m Mask) String() string {
	names := m.Names()
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}

// Names returns the enabled feature names in bit order.
func (m Mask) Names() []string {
	var names []string
	for index := range Width {
		if m.Has(Bit(index)) {
			names = append(names, Bits[index])
		}
	}
	return names
}

// ParseHex parses a hex mask with an optional 0x prefix. Values that do
// not fit in Width bits are rejected.
func ParseHex(text string) (Mask, error) {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(text), "0x"), "0X")
	value, err := strconv.ParseUint(trimmed, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("parsing feature mask %q: %w", text, err)
	}
	if value > Limit {
		return 0, fmt.Errorf("feature mask %q exceeds %d bits", text, Width)
	}
	return New(uint32(value)), nil
}

// FromNames builds a mask from named toggles. Unknown names are
// returned as an error listing all of them; false values are ignored.
func FromNames(toggles map[string]bool) (Mask, error) {
	var raw uint32
	var unknown []string
	for name, enabled := range toggles {
		bit, ok := Lookup(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		if enabled {
			raw |= 1 << bit
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return 0, fmt.Errorf("unknown features: %s", strings.Join(unknown, ", "))
	}
	return New(raw), nil
}

// Toggles is the inverse of FromNames: every named bit mapped to its
// state.
func (m Mask) Toggles() map[string]bool {
	toggles := make(map[string]bool, Width)
	for index, name := range Bits {
		toggles[name] = m.Has(Bit(index))
	}
	return toggles
}
