// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package ips

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// Magic opens every diff.
	Magic = "PATCH"

	// EndMarker closes a diff. Data after it is ignored.
	EndMarker = "EOF"

	// MaxSize bounds the output: a 3-byte offset plus a 16-bit length
	// cannot address beyond it.
	MaxSize = 1<<24 + 1<<16

	recordHeaderSize = 5
	runBodySize      = 3
)

var (
	// ErrBadMagic is returned when a diff does not start with Magic.
	ErrBadMagic = errors.New("ips: missing PATCH header")

	// ErrTruncated is returned when a record runs past the end of the
	// diff.
	ErrTruncated = errors.New("ips: truncated record")

	// ErrTooLarge is returned when a record would write past MaxSize.
	ErrTooLarge = errors.New("ips: record exceeds addressable size")
)

// Record is one write. Literal records carry Data; run records carry a
// Count copies of Fill.
type Record struct {
	Offset int
	Data   []byte
	Count  int
	Fill   byte
}

// IsRun reports whether the record is run-length encoded.
func (r Record) IsRun() bool {
	return r.Data == nil
}

// Len is the number of bytes the record writes.
func (r Record) Len() int {
	if r.IsRun() {
		return r.Count
	}
	return len(r.Data)
}

// End is the offset one past the last byte the record writes.
func (r Record) End() int {
	return r.Offset + r.Len()
}

// Parse decodes every record of diff. Literal record data aliases diff.
func Parse(diff []byte) ([]Record, error) {
	if !bytes.HasPrefix(diff, []byte(Magic)) {
		return nil, ErrBadMagic
	}

	var records []Record
	position := len(Magic)
	for position < len(diff) {
		if bytes.HasPrefix(diff[position:], []byte(EndMarker)) {
			break
		}
		if len(diff)-position < recordHeaderSize {
			return nil, fmt.Errorf("%w: header at %#x", ErrTruncated, position)
		}

		offset := int(diff[position])<<16 | int(binary.BigEndian.Uint16(diff[position+1:]))
		length := int(binary.BigEndian.Uint16(diff[position+3:]))
		position += recordHeaderSize

		var record Record
		if length == 0 {
			if len(diff)-position < runBodySize {
				return nil, fmt.Errorf("%w: run at %#x", ErrTruncated, offset)
			}
			record = Record{
				Offset: offset,
				Count:  int(binary.BigEndian.Uint16(diff[position:])),
				Fill:   diff[position+2],
			}
			position += runBodySize
		} else {
			if len(diff)-position < length {
				return nil, fmt.Errorf("%w: %d literal bytes at %#x", ErrTruncated, length, offset)
			}
			record = Record{Offset: offset, Data: diff[position : position+length]}
			position += length
		}

		if record.End() > MaxSize {
			return nil, fmt.Errorf("%w: %#x+%d", ErrTooLarge, record.Offset, record.Len())
		}
		records = append(records, record)
	}
	return records, nil
}

// Apply returns base with diff applied. The result is a new buffer;
// base is left untouched.
func Apply(base, diff []byte) ([]byte, error) {
	records, err := Parse(diff)
	if err != nil {
		return nil, err
	}

	size := len(base)
	for _, record := range records {
		size = max(size, record.End())
	}

	output := make([]byte, size)
	copy(output, base)
	for _, record := range records {
		if record.IsRun() {
			fill := output[record.Offset:record.End()]
			for i := range fill {
				fill[i] = record.Fill
			}
			continue
		}
		copy(output[record.Offset:], record.Data)
	}
	return output, nil
}

// Encode serializes records into a diff terminated by EndMarker.
// Literal records longer than 0xFFFF bytes are split.
func Encode(records []Record) ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteString(Magic)

	writeHeader := func(offset, length int) error {
		if offset > 0xFFFFFF {
			return fmt.Errorf("%w: offset %#x", ErrTooLarge, offset)
		}
		buffer.Write([]byte{byte(offset >> 16), byte(offset >> 8), byte(offset)})
		buffer.Write(binary.BigEndian.AppendUint16(nil, uint16(length)))
		return nil
	}

	for _, record := range records {
		if record.IsRun() {
			if record.Count > 0xFFFF {
				return nil, fmt.Errorf("%w: run of %d bytes", ErrTooLarge, record.Count)
			}
			if err := writeHeader(record.Offset, 0); err != nil {
				return nil, err
			}
			buffer.Write(binary.BigEndian.AppendUint16(nil, uint16(record.Count)))
			buffer.WriteByte(record.Fill)
			continue
		}

		for start := 0; start < len(record.Data); start += 0xFFFF {
			chunk := record.Data[start:min(start+0xFFFF, len(record.Data))]
			if err := writeHeader(record.Offset+start, len(chunk)); err != nil {
				return nil, err
			}
			buffer.Write(chunk)
		}
	}

	buffer.WriteString(EndMarker)
	return buffer.Bytes(), nil
}
