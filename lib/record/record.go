// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package record

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/coinshuffle/coinshuffle/lib/digest"
	"github.com/coinshuffle/coinshuffle/lib/feature"
	"github.com/coinshuffle/coinshuffle/lib/randomizer"
)

// FormatVersion is bumped whenever a field changes meaning.
const FormatVersion = 1

// ErrFormat is returned for records written by an incompatible format
// version.
var ErrFormat = errors.New("unsupported record format")

// Record describes one randomization run.
type Record struct {
	Format int    `json:"format"`
	Tool   string `json:"tool"`

	Seed     uint32   `json:"seed"`
	Mask     uint32   `json:"mask"`
	Features []string `json:"features"`
	Passes   []string `json:"passes"`

	// Version is the input's sub-version, "v1.N".
	Version string `json:"version"`
	Patch   string `json:"patch"`

	Input  digest.Digest `json:"input"`
	Output digest.Digest `json:"output"`

	// OutputName is the file the output was written to, if any.
	OutputName string `json:"output_name,omitempty"`
}

// New describes a finished run of r over input that produced output.
func New(r *randomizer.Randomizer, input, output []byte, tool string) Record {
	mask := r.Mask()
	var passes []string
	for _, pass := range randomizer.Passes() {
		if pass.Enabled(mask) {
			passes = append(passes, pass.Name)
		}
	}
	return Record{
		Format:   FormatVersion,
		Tool:     tool,
		Seed:     r.Seed(),
		Mask:     uint32(mask),
		Features: mask.Names(),
		Passes:   passes,
		Version:  r.Version(),
		Patch:    r.PatchName(),
		Input:    digest.Sum(digest.Input, input),
		Output:   digest.Sum(digest.Output, output),
	}
}

// FeatureMask returns the recorded mask.
func (r Record) FeatureMask() feature.Mask {
	return feature.New(r.Mask)
}

// SeedHex formats the seed the way the randomizer does.
func (r Record) SeedHex() string {
	return fmt.Sprintf("%X", r.Seed)
}

// MatchesInput reports whether image is the input this run read.
func (r Record) MatchesInput(image []byte) bool {
	return digest.Sum(digest.Input, image) == r.Input
}

// MatchesOutput reports whether image is the output this run wrote.
func (r Record) MatchesOutput(image []byte) bool {
	return digest.Sum(digest.Output, image) == r.Output
}

// Write replaces the file at path with a single record.
func Write(path string, r Record) error {
	data, err := Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing record %s: %w", path, err)
	}
	return nil
}

// Append adds a record to the end of the file at path, creating it if
// needed.
func Append(path string, r Record) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening record %s: %w", path, err)
	}
	if err := encMode.NewEncoder(file).Encode(r); err != nil {
		file.Close()
		return fmt.Errorf("appending record to %s: %w", path, err)
	}
	return file.Close()
}

// ReadAll decodes every record in data.
func ReadAll(data []byte) ([]Record, error) {
	decoder := decMode.NewDecoder(bytes.NewReader(data))
	var records []Record
	for {
		var r Record
		err := decoder.Decode(&r)
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decoding record %d: %w", len(records)+1, err)
		}
		if r.Format != FormatVersion {
			return nil, fmt.Errorf("%w: record %d has format %d, want %d",
				ErrFormat, len(records)+1, r.Format, FormatVersion)
		}
		records = append(records, r)
	}
}

// ReadFile decodes every record in the file at path.
func ReadFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading record %s: %w", path, err)
	}
	return ReadAll(data)
}
