// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the configuration file for [Load].
const EnvironmentVariable = "COINSHUFFLE_CONFIG"

// Name template placeholders.
const (
	PlaceholderName = "{name}"
	PlaceholderSeed = "{seed}"
	PlaceholderMask = "{mask}"
)

// Config is the master configuration.
type Config struct {
	// Resources configures where patch resources are read from.
	Resources ResourcesConfig `yaml:"resources"`

	// Output configures where randomized images are written.
	Output OutputConfig `yaml:"output"`

	// Preset is an optional JSONC feature preset applied when no mask
	// is given on the command line.
	Preset string `yaml:"preset"`

	// LogLevel is one of debug, info, warn, error.
	// Default: info
	LogLevel string `yaml:"log_level"`
}

// ResourcesConfig configures patch resource loading.
type ResourcesConfig struct {
	// Directory holds the vX.Y.ips files, optionally compressed.
	// Default: ${COINSHUFFLE_DATA}/patches
	Directory string `yaml:"directory"`

	// Verify requires every patch to match the directory manifest.
	Verify bool `yaml:"verify"`
}

// OutputConfig configures output naming.
type OutputConfig struct {
	// Directory receives the randomized images.
	// Default: the current directory
	Directory string `yaml:"directory"`

	// NameTemplate builds the output file name from the input's base
	// name, the seed, and the mask.
	// Default: {name}-{seed}-{mask}.gb
	NameTemplate string `yaml:"name_template"`

	// Record writes a CBOR run record next to each output.
	Record bool `yaml:"record"`
}

// dataRoot is the default base for coinshuffle's own files.
func dataRoot() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".local", "share", "coinshuffle")
}

// Default returns the default configuration, used as the base before
// loading a file and on its own when no file is given.
func Default() *Config {
	return &Config{
		Resources: ResourcesConfig{
			Directory: filepath.Join(dataRoot(), "patches"),
		},
		Output: OutputConfig{
			Directory:    ".",
			NameTemplate: PlaceholderName + "-" + PlaceholderSeed + "-" + PlaceholderMask + ".gb",
		},
		LogLevel: "info",
	}
}

// Load loads configuration from the COINSHUFFLE_CONFIG environment
// variable. It fails if the variable is not set.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your coinshuffle.yaml config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. Fields the
// file omits keep their defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.expandVariables()
	return cfg, nil
}

// Resolve loads path if given, otherwise the file named by
// COINSHUFFLE_CONFIG if set, otherwise returns Default.
func Resolve(path string) (*Config, error) {
	if path != "" {
		return LoadFile(path)
	}
	if os.Getenv(EnvironmentVariable) != "" {
		return Load()
	}
	cfg := Default()
	cfg.expandVariables()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"COINSHUFFLE_DATA": dataRoot(),
		"HOME":             os.Getenv("HOME"),
	}
	c.Resources.Directory = expandVars(c.Resources.Directory, vars)
	c.Output.Directory = expandVars(c.Output.Directory, vars)
	c.Preset = expandVars(c.Preset, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Provided vars first, then the environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Resources.Directory == "" {
		errs = append(errs, errors.New("resources.directory is required"))
	}
	if c.Output.Directory == "" {
		errs = append(errs, errors.New("output.directory is required"))
	}

	template := c.Output.NameTemplate
	switch {
	case template == "":
		errs = append(errs, errors.New("output.name_template is required"))
	case !strings.Contains(template, PlaceholderSeed):
		errs = append(errs, fmt.Errorf("output.name_template must contain %s", PlaceholderSeed))
	case strings.ContainsRune(template, '/') || strings.ContainsRune(template, filepath.Separator):
		errs = append(errs, errors.New("output.name_template must not contain a path separator"))
	}

	if _, ok := logLevels[c.LogLevel]; !ok {
		names := make([]string, 0, len(logLevels))
		for name := range logLevels {
			names = append(names, name)
		}
		slices.Sort(names)
		errs = append(errs, fmt.Errorf("log_level must be one of: %v", names))
	}

	return errors.Join(errs...)
}

// Level returns LogLevel as a slog level, info if unrecognized.
func (c *Config) Level() slog.Level {
	if level, ok := logLevels[c.LogLevel]; ok {
		return level
	}
	return slog.LevelInfo
}

// FileName fills in the name template. inputPath's extension is
// dropped to form {name}.
func (o OutputConfig) FileName(inputPath, seed, mask string) string {
	base := filepath.Base(inputPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return strings.NewReplacer(
		PlaceholderName, name,
		PlaceholderSeed, seed,
		PlaceholderMask, mask,
	).Replace(o.NameTemplate)
}

// Path is FileName joined to the output directory.
func (o OutputConfig) Path(inputPath, seed, mask string) string {
	return filepath.Join(o.Directory, o.FileName(inputPath, seed, mask))
}

// EnsureOutput creates the output directory if it does not exist.
func (c *Config) EnsureOutput() error {
	if err := os.MkdirAll(c.Output.Directory, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", c.Output.Directory, err)
	}
	return nil
}
