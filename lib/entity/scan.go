// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package entity

const (
	// Stride is the size of one list entry.
	Stride = 3

	// Terminator in the position byte ends a list.
	Terminator = 0xFF
)

// Scanner iterates the entries of one list region.
//
//	scanner := entity.NewScanner(image, start, end)
//	for scanner.Next() {
//	    if scanner.ID() == oldID {
//	        scanner.Set(newID)
//	    }
//	}
type Scanner struct {
	image  []byte
	next   int
	end    int
	offset int
	done   bool
}

// NewScanner returns a scanner over the entries that start in
// [start, end). An entry is only visited if all three of its bytes
// fit below end.
func NewScanner(image []byte, start, end int) *Scanner {
	if end > len(image) {
		end = len(image)
	}
	return &Scanner{image: image, next: start, end: end, offset: -1}
}

// Next advances to the next entry. It returns false at the terminator
// or when the region is exhausted, and keeps returning false after.
func (s *Scanner) Next() bool {
	if s.done {
		return false
	}
	if s.next+Stride > s.end || s.image[s.next] == Terminator {
		s.done = true
		s.offset = -1
		return false
	}
	s.offset = s.next
	s.next += Stride
	return true
}

// Offset is the absolute offset of the current entry.
func (s *Scanner) Offset() int {
	return s.offset
}

// ID decodes the current entry.
func (s *Scanner) ID() byte {
	return Read(s.image, s.offset)
}

// Set re-encodes the current entry with id.
func (s *Scanner) Set(id byte) {
	Write(s.image, s.offset, id)
}
