// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/coinshuffle/coinshuffle/lib/ips"
	"github.com/coinshuffle/coinshuffle/lib/rom"
)

// fillerStart is the first byte after the cartridge header.
const fillerStart = 0x150

// StandardImage returns a valid standard-size image with sub-version
// version. Every byte after the header holds byte(offset*31 + 7).
func StandardImage(version byte) []byte {
	image := make([]byte, rom.StandardSize)
	for offset := fillerStart; offset < len(image); offset++ {
		image[offset] = byte(offset*31 + 7)
	}
	copy(image[rom.TitleOffset:], rom.Title)
	image[rom.SizeClassOffset] = rom.SizeClassStandard
	image[rom.VersionOffset] = version
	rom.Finalize(image)
	return image
}

// EmptyPatch is a diff with no records.
func EmptyPatch() []byte {
	return []byte(ips.Magic + ips.EndMarker)
}

// ExtendedPatch returns a diff that sets the extended size class and
// zero-extends the image to the extended size.
func ExtendedPatch() []byte {
	diff, err := ips.Encode([]ips.Record{
		{Offset: rom.SizeClassOffset, Data: []byte{rom.SizeClassExtended}},
		{Offset: rom.ExtendedSize - 1, Count: 1, Fill: 0x00},
	})
	if err != nil {
		panic("testutil: encoding extended patch: " + err.Error())
	}
	return diff
}

// PatchSet serves diffs from memory.
type PatchSet map[string][]byte

// Patch returns the named diff, or an error wrapping fs.ErrNotExist.
func (p PatchSet) Patch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	diff, ok := p[name]
	if !ok {
		return nil, fmt.Errorf("patch %s: %w", name, fs.ErrNotExist)
	}
	return diff, nil
}
