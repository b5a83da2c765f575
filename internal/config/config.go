// Package config loads optional CLI defaults from a YAML file (spec's
// ambient configuration layer), parsed with goccy/go-yaml the way the rest
// of this module prefers a real decoder over hand-rolled flag defaults.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Config holds the settings a lolcode.yaml file can override. Only Trace
// has a corresponding CLI flag (--trace); cmd/lolcode enables tracing when
// either the flag or the config field is set. VisibleNewline and
// GimmehSource are set only through the config file.
type Config struct {
	// Trace enables per-statement execution tracing (lolcode run --trace).
	Trace bool `yaml:"trace"`
	// VisibleNewline controls whether VISIBLE appends a trailing newline
	// when the statement has no trailing "!" (spec §4.2.2 default is true).
	VisibleNewline *bool `yaml:"visibleNewline"`
	// GimmehSource names a file GIMMEH reads scripted answers from, one
	// per line, instead of prompting on stdin.
	GimmehSource string `yaml:"gimmehSource"`
}

// Default returns the built-in defaults applied when no config file is
// present or a field is left unset in it.
func Default() *Config {
	t := true
	return &Config{VisibleNewline: &t}
}

// Load reads and parses a YAML config file at path. A missing file is not
// an error: Load returns Default() unchanged, since a config file is
// optional (spec's ambient configuration is additive, never required).
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.VisibleNewline == nil {
		t := true
		cfg.VisibleNewline = &t
	}
	return cfg, nil
}
