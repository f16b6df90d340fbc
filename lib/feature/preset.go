// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package feature

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// ParsePreset strips JSONC comments and trailing commas from data and
// builds a mask from the named toggles it contains.
func ParsePreset(data []byte) (Mask, error) {
	stripped := jsonc.ToJSON(data)

	var toggles map[string]bool
	if err := json.Unmarshal(stripped, &toggles); err != nil {
		return 0, fmt.Errorf("parsing preset: %w", err)
	}
	return FromNames(toggles)
}

// LoadPreset reads and parses a JSONC preset file.
func LoadPreset(path string) (Mask, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}

	mask, err := ParsePreset(data)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return mask, nil
}
