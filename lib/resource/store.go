// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package resource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/coinshuffle/coinshuffle/lib/digest"
)

var (
	// ErrNotFound is returned when no file exists for a resource name
	// under any encoding. It matches fs.ErrNotExist.
	ErrNotFound = fmt.Errorf("patch resource not found: %w", fs.ErrNotExist)

	// ErrDigestMismatch is returned when verification is enabled and a
	// patch is missing from the manifest or does not match it.
	ErrDigestMismatch = errors.New("patch digest mismatch")
)

// Store serves patch resources from one directory.
type Store struct {
	directory string
	verify    bool
	manifest  *Manifest
	logger    *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithVerify requires every loaded patch to match the manifest.
func WithVerify(verify bool) Option {
	return func(s *Store) {
		s.verify = verify
	}
}

// WithLogger sets the logger for load events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// Open prepares a store over directory and reads its manifest if one
// exists. Verification without a manifest is an error.
func Open(directory string, options ...Option) (*Store, error) {
	info, err := os.Stat(directory)
	if err != nil {
		return nil, fmt.Errorf("opening resource directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("resource path %s is not a directory", directory)
	}

	store := &Store{
		directory: directory,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, option := range options {
		option(store)
	}

	store.manifest, err = LoadManifest(manifestPath(directory))
	if err != nil {
		return nil, err
	}
	if store.verify && store.manifest == nil {
		return nil, fmt.Errorf("verification requested but %s has no %s", directory, ManifestName)
	}
	return store, nil
}

// Directory returns the directory the store reads from.
func (s *Store) Directory() string {
	return s.directory
}

// Manifest returns the directory manifest, or nil if it has none.
func (s *Store) Manifest() *Manifest {
	return s.manifest
}

// Patch returns the decompressed diff for name.
func (s *Store) Patch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name == "" || filepath.Base(name) != name || strings.HasPrefix(name, ".") {
		return nil, fmt.Errorf("invalid resource name %q", name)
	}

	for _, encoding := range encodings {
		path := filepath.Join(s.directory, name+encoding.Suffix())
		stored, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		data, err := Decompress(stored, encoding)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
		if s.verify {
			if err := s.manifest.check(name, data); err != nil {
				return nil, err
			}
		}
		s.logger.Debug("patch loaded",
			"name", name,
			"encoding", encoding.String(),
			"stored_bytes", len(stored),
			"bytes", len(data),
			"verified", s.verify,
		)
		return data, nil
	}
	return nil, fmt.Errorf("%w: %s in %s", ErrNotFound, name, s.directory)
}

// List returns the resource names available in the directory, without
// compression suffixes, sorted and deduplicated.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.directory)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", s.directory, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		for _, encoding := range slices.Backward(encodings) {
			if trimmed, found := strings.CutSuffix(name, ".ips"+encoding.Suffix()); found {
				names = append(names, trimmed+".ips")
				break
			}
		}
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}

// BuildManifest hashes every available patch. Verification is not
// applied while building.
func (s *Store) BuildManifest(ctx context.Context) (*Manifest, error) {
	names, err := s.List()
	if err != nil {
		return nil, err
	}
	unverified := *s
	unverified.verify = false

	manifest := &Manifest{Patches: make(map[string]digest.Digest, len(names))}
	for _, name := range names {
		data, err := unverified.Patch(ctx, name)
		if err != nil {
			return nil, err
		}
		manifest.Patches[name] = digest.Sum(digest.Patch, data)
	}
	return manifest, nil
}

// WriteManifest builds the manifest and saves it into the directory.
func (s *Store) WriteManifest(ctx context.Context) (*Manifest, error) {
	manifest, err := s.BuildManifest(ctx)
	if err != nil {
		return nil, err
	}
	if err := manifest.Save(manifestPath(s.directory)); err != nil {
		return nil, err
	}
	s.manifest = manifest
	return manifest, nil
}
