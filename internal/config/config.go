// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads the optional .docspec.yaml tool configuration from
// the repository root. A missing file yields defaults; a malformed file is
// an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration filename probed at the repository root.
const FileName = ".docspec.yaml"

// Config controls discovery and format resolution for the CLI.
type Config struct {
	// Format overrides the format-definition path. Relative paths are
	// resolved against the repository root by the caller.
	Format string `yaml:"format"`
	// MaxDocspecs caps how many candidates one check run processes.
	MaxDocspecs int `yaml:"max_docspecs"`
	// Include lists doublestar globs selecting docspec files.
	Include []string `yaml:"include"`
	// Exclude lists directory names skipped during discovery.
	Exclude []string `yaml:"exclude"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		MaxDocspecs: 10,
		Include:     []string{"**/*.docspec.md"},
	}
}

// Load reads root/.docspec.yaml, applying defaults for absent fields.
func Load(root string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(root, FileName))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", FileName, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	if cfg.MaxDocspecs <= 0 {
		cfg.MaxDocspecs = 10
	}
	if len(cfg.Include) == 0 {
		cfg.Include = []string{"**/*.docspec.md"}
	}
	return cfg, nil
}
