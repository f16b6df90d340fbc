// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package randomizer

import (
	"github.com/coinshuffle/coinshuffle/lib/feature"
	"github.com/coinshuffle/coinshuffle/lib/rng"
)

const (
	levelMusicStart = 0x3C420
	levelMusicCount = 24
	bossMusicStart  = 0x3C440
	bossMusicCount  = 6

	// Rarely every boss fight plays the final boss theme instead.
	bossMusicOverrideChance = 0.02
	bossMusicOverrideTrack  = 0x1D

	// Each tempo entry is [tempo, lead voice, echo voice, unused].
	tempoStart      = 0x3C460
	tempoEntries    = 12
	tempoEntrySize  = 4
	fastTempoChance = 0.3
	fastTempoDelta  = 0x02

	// A RET at the entry of the driver routine silences it.
	musicDriverEntry = 0x3C4A0
	sfxDriverEntry   = 0x3C4B0
	opcodeReturn     = 0xC9
)

var (
	levelTracks = []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x0A, 0x0B, 0x0C}
	bossTracks  = []byte{0x18, 0x19, 0x1A, 0x1B}
)

var musicPass = Pass{
	Name: "music",
	Bits: []feature.Bit{feature.Music},
	Writes: []Span{
		span(levelMusicStart, levelMusicCount),
		span(bossMusicStart, bossMusicCount),
	},
	apply: randomizeMusic,
}

var fastMusicPass = Pass{
	Name:   "fast-music",
	Bits:   []feature.Bit{feature.FastMusic},
	Writes: []Span{span(tempoStart, tempoEntries*tempoEntrySize)},
	apply:  speedUpMusic,
}

var disableMusicPass = Pass{
	Name:   "disable-music",
	Bits:   []feature.Bit{feature.DisableMusic},
	Writes: []Span{span(musicDriverEntry, 1)},
	apply: func(r *run) {
		r.image[musicDriverEntry] = opcodeReturn
	},
}

var disableSFXPass = Pass{
	Name:   "disable-sfx",
	Bits:   []feature.Bit{feature.DisableSFX},
	Writes: []Span{span(sfxDriverEntry, 1)},
	apply: func(r *run) {
		r.image[sfxDriverEntry] = opcodeReturn
	},
}

func randomizeMusic(r *run) {
	for i := range levelMusicCount {
		r.image[levelMusicStart+i] = rng.Pick(r.rng, levelTracks)
	}

	if r.rng.Chance(bossMusicOverrideChance) {
		for i := range bossMusicCount {
			r.image[bossMusicStart+i] = bossMusicOverrideTrack
		}
		return
	}
	for i := range bossMusicCount {
		r.image[bossMusicStart+i] = rng.Pick(r.rng, bossTracks)
	}
}

func speedUpMusic(r *run) {
	for i := range tempoEntries {
		if !r.rng.Chance(fastTempoChance) {
			continue
		}
		offset := tempoStart + i*tempoEntrySize
		r.image[offset] += fastTempoDelta
		r.image[offset+2] = r.image[offset+1]
	}
}
