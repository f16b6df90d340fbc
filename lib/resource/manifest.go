// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package resource

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/coinshuffle/coinshuffle/lib/digest"
)

// ManifestName is the manifest file inside a resource directory.
const ManifestName = "manifest.yaml"

// Manifest maps decompressed patch names to their digests.
type Manifest struct {
	Patches map[string]digest.Digest `yaml:"patches"`
}

// manifestFile is the on-disk form. Digests are kept as strings so a
// malformed entry names the patch it belongs to.
type manifestFile struct {
	Patches map[string]string `yaml:"patches"`
}

// LoadManifest reads the manifest at path. A missing file yields a nil
// manifest and no error.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var file manifestFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	manifest := &Manifest{Patches: make(map[string]digest.Digest, len(file.Patches))}
	var errs []error
	for name, text := range file.Patches {
		parsed, err := digest.Parse(text)
		if err != nil {
			errs = append(errs, fmt.Errorf("manifest entry %s: %w", name, err))
			continue
		}
		manifest.Patches[name] = parsed
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return manifest, nil
}

// Save writes the manifest to path.
func (m *Manifest) Save(path string) error {
	file := manifestFile{Patches: make(map[string]string, len(m.Patches))}
	for name, sum := range m.Patches {
		file.Patches[name] = sum.String()
	}
	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}

// check compares data against the entry for name.
func (m *Manifest) check(name string, data []byte) error {
	want, listed := m.Patches[name]
	if !listed {
		return fmt.Errorf("%w: %s is not listed in %s", ErrDigestMismatch, name, ManifestName)
	}
	if got := digest.Sum(digest.Patch, data); got != want {
		return fmt.Errorf("%w: %s has digest %s, manifest lists %s", ErrDigestMismatch, name, got.Short(), want.Short())
	}
	return nil
}

// manifestPath is the manifest location for a directory.
func manifestPath(directory string) string {
	return filepath.Join(directory, ManifestName)
}
