// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package randomizer

import (
	"slices"

	"github.com/coinshuffle/coinshuffle/lib/entity"
	"github.com/coinshuffle/coinshuffle/lib/rng"
)

// entityRange is one object list region and the rule for replacing the
// objects in it. Exactly one rule applies to an entity: a pool keyed by
// its current id, the shared pool if it is a member, or the computed
// block [base, base+variants).
type entityRange struct {
	start int
	end   int

	pool []byte
	byID map[byte][]byte

	base     byte
	variants int
}

// replacement draws the new id for an entity currently holding id. ok
// is false when the range leaves this id alone; no draw is made then.
func (e entityRange) replacement(g *rng.Generator, id byte) (byte, bool) {
	if pool, found := e.byID[id]; found {
		return rng.Pick(g, pool), true
	}
	if slices.Contains(e.pool, id) {
		return rng.Pick(g, e.pool), true
	}
	if e.variants > 0 && id >= e.base && int(id) < int(e.base)+e.variants {
		return e.base + byte(g.Int(e.variants)), true
	}
	return 0, false
}

func (e entityRange) span() Span {
	return Span{Start: e.start, End: e.end}
}

func spansOf(ranges []entityRange) []Span {
	spans := make([]Span, len(ranges))
	for i, region := range ranges {
		spans[i] = region.span()
	}
	return spans
}

// replaceEntities walks every range and redraws each entity its rule
// covers.
func (r *run) replaceEntities(ranges []entityRange) {
	for _, region := range ranges {
		scanner := entity.NewScanner(r.image, region.start, region.end)
		for scanner.Next() {
			if id, ok := region.replacement(r.rng, scanner.ID()); ok {
				scanner.Set(id)
			}
		}
	}
}
