// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package randomizer

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/coinshuffle/coinshuffle/lib/feature"
	"github.com/coinshuffle/coinshuffle/lib/ips"
	"github.com/coinshuffle/coinshuffle/lib/rng"
	"github.com/coinshuffle/coinshuffle/lib/rom"
)

const (
	// SeedMin is the smallest accepted seed. Smaller values, including
	// zero for "no seed", are replaced by a random seed.
	SeedMin = 0x10000000

	// SeedMax is the largest accepted seed.
	SeedMax = 0xFFFFFFFF
)

// ErrPatchedSize is returned when the patched image's length does not
// match the size its size class byte declares.
var ErrPatchedSize = errors.New("patched image size does not match its size class")

// PatchSource provides diff resources by name.
type PatchSource interface {
	Patch(ctx context.Context, name string) ([]byte, error)
}

// PatchName is the resource name of the diff for a sub-version, with
// or without the extended variant: "v1.2.ips", "v1.0-dx.ips".
func PatchName(version byte, extended bool) string {
	name := rom.VersionString(version)
	if extended {
		name += "-dx"
	}
	return name + ".ips"
}

// Randomizer holds the inputs of one randomization. It is not safe for
// concurrent use.
type Randomizer struct {
	image  []byte
	valid  bool
	mask   feature.Mask
	seed   uint32
	logger *slog.Logger
}

// Option configures a Randomizer.
type Option func(*Randomizer)

// WithLogger sets the logger used for per-pass debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Randomizer) {
		r.logger = logger
	}
}

// New prepares a randomization of image. A seed outside
// [SeedMin, SeedMax] (pass 0 for none) is replaced by a random one.
//
// New never fails: an unsupported image yields a Randomizer whose
// Valid reports false, and callers must check it before Randomize.
func New(image []byte, mask feature.Mask, seed uint32, options ...Option) *Randomizer {
	r := &Randomizer{
		image:  image,
		valid:  rom.Valid(image),
		mask:   feature.New(uint32(mask)),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, option := range options {
		option(r)
	}
	if seed >= SeedMin {
		r.seed = seed
	} else {
		r.seed = RandomSeed()
	}
	return r
}

// RandomSeed returns a seed drawn from crypto/rand in
// [SeedMin, SeedMax].
func RandomSeed() uint32 {
	var buffer [4]byte
	if _, err := rand.Read(buffer[:]); err != nil {
		// crypto/rand.Read does not fail on supported platforms.
		panic("randomizer: reading random seed: " + err.Error())
	}
	return SeedMin + binary.LittleEndian.Uint32(buffer[:])%(SeedMax-SeedMin+1)
}

// Valid reports whether the input image passed the validity check.
func (r *Randomizer) Valid() bool {
	return r.valid
}

// Seed returns the seed.
func (r *Randomizer) Seed() uint32 {
	return r.seed
}

// SetSeed replaces the seed. Values below SeedMin are ignored.
func (r *Randomizer) SetSeed(seed uint32) {
	if seed >= SeedMin {
		r.seed = seed
	}
}

// SeedHex formats the seed as uppercase hex without padding.
func (r *Randomizer) SeedHex() string {
	return fmt.Sprintf("%X", r.seed)
}

// SetSeedHex parses a hex seed with an optional 0x or 0X prefix.
// Unparseable or out-of-range input is ignored and the previous seed is
// kept.
func (r *Randomizer) SetSeedHex(text string) {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(text), "0x"), "0X")
	value, err := strconv.ParseUint(trimmed, 16, 32)
	if err != nil {
		return
	}
	r.SetSeed(uint32(value))
}

// Mask returns the normalized feature mask.
func (r *Randomizer) Mask() feature.Mask {
	return r.mask
}

// SetMask replaces the feature mask, normalizing it.
func (r *Randomizer) SetMask(mask feature.Mask) {
	if uint32(mask) > feature.Limit {
		return
	}
	r.mask = feature.New(uint32(mask))
}

// MaskHex formats the mask as six uppercase hex digits.
func (r *Randomizer) MaskHex() string {
	return r.mask.Hex()
}

// SetMaskHex parses a hex mask. Unparseable input or values wider than
// 24 bits are ignored.
func (r *Randomizer) SetMaskHex(text string) {
	mask, err := feature.ParseHex(text)
	if err != nil {
		return
	}
	r.mask = mask
}

// Version returns the input's sub-version as "v1.N".
func (r *Randomizer) Version() string {
	return rom.VersionString(rom.Version(r.image))
}

// PatchName is the diff resource this randomization needs.
func (r *Randomizer) PatchName() string {
	return PatchName(rom.Version(r.image), r.mask.Has(feature.ExtraVariant))
}

// Randomize fetches the diff, applies it, runs every enabled pass, and
// returns the finished image. The input image is never modified. On
// error no image is returned.
func (r *Randomizer) Randomize(ctx context.Context, source PatchSource) ([]byte, error) {
	name := r.PatchName()
	diff, err := source.Patch(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("loading patch %s: %w", name, err)
	}

	image, err := ips.Apply(r.image, diff)
	if err != nil {
		return nil, fmt.Errorf("applying patch %s: %w", name, err)
	}
	if expected := rom.SizeForClass(image[rom.SizeClassOffset]); len(image) != expected {
		return nil, fmt.Errorf("%w: %#x bytes, size class %#02x wants %#x",
			ErrPatchedSize, len(image), image[rom.SizeClassOffset], expected)
	}

	state := &run{
		image:    image,
		rng:      rng.New(r.seed),
		mask:     r.mask,
		version:  rom.Version(image),
		extended: rom.Extended(image),
	}

	logger := r.logger.With("seed", r.SeedHex(), "mask", r.MaskHex(), "version", r.Version())
	for _, pass := range passes {
		if !pass.Enabled(r.mask) {
			continue
		}
		pass.apply(state)
		logger.Debug("pass complete", "pass", pass.Name, "generator_state", state.rng.State())
	}

	sums := rom.Finalize(image)
	logger.Debug("checksums written", "header", sums.Header, "global", sums.Global)
	return image, nil
}
