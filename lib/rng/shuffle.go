// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package rng

// Shuffle permutes items in place: for each index i from the last
// down to 1 it swaps items[i] with items[Int(i+1)].
func Shuffle[T any](g *Generator, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := g.Int(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// ShuffleAvoiding shuffles items until the element at slot is not
// forbidden. Each retry is a complete Shuffle of the whole slice,
// starting from the arrangement the rejected attempt left behind, and
// consumes len(items)-1 draws like any other Shuffle.
//
// If no element other than forbidden exists the constraint cannot be
// met and a single shuffle is performed.
func ShuffleAvoiding[T any](g *Generator, items []T, slot int, forbidden func(T) bool) {
	if slot < 0 || slot >= len(items) || !anyAllowed(items, forbidden) {
		Shuffle(g, items)
		return
	}
	Shuffle(g, items)
	for forbidden(items[slot]) {
		Shuffle(g, items)
	}
}

func anyAllowed[T any](items []T, forbidden func(T) bool) bool {
	for _, item := range items {
		if !forbidden(item) {
			return true
		}
	}
	return false
}
