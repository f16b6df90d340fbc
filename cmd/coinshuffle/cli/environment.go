// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/coinshuffle/coinshuffle/lib/config"
	"github.com/coinshuffle/coinshuffle/lib/resource"
)

// LoadConfig resolves the configuration (the --config path, then
// $COINSHUFFLE_CONFIG, then defaults), validates it, and applies its
// log level to every command logger.
func LoadConfig(path string) (*config.Config, error) {
	cfg, err := config.Resolve(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	LogLevel.Set(cfg.Level())
	return cfg, nil
}

// OpenStore opens the patch resource directory. A non-empty directory
// overrides the configured one; verify is combined with the
// configured setting, so either can turn verification on.
func OpenStore(cfg *config.Config, directory string, verify bool, logger *slog.Logger) (*resource.Store, error) {
	if directory == "" {
		directory = cfg.Resources.Directory
	}
	return resource.Open(directory,
		resource.WithVerify(verify || cfg.Resources.Verify),
		resource.WithLogger(logger),
	)
}

// ReadImage reads a cartridge image, naming the file in errors.
func ReadImage(path string) ([]byte, error) {
	image, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	return image, nil
}

// ResourceFlags is an embeddable struct that adds --config and
// --resources to a command's parameter struct.
type ResourceFlags struct {
	Config    string `json:"config"    flag:"config,c"  desc:"configuration file (default: $COINSHUFFLE_CONFIG)"`
	Resources string `json:"resources" flag:"resources" desc:"patch resource directory (default: resources.directory)"`
}

// Open loads the configuration and opens the resource store it names.
func (f *ResourceFlags) Open(verify bool, logger *slog.Logger) (*config.Config, *resource.Store, error) {
	cfg, err := LoadConfig(f.Config)
	if err != nil {
		return nil, nil, err
	}
	store, err := OpenStore(cfg, f.Resources, verify, logger)
	if err != nil {
		return nil, nil, err
	}
	return cfg, store, nil
}
