// Package config loads the optional `.sighrc.yaml` CLI configuration file
//. Absence of the file is not an error — the zero value
// Config is used, matching go-dws's run.go, which treats every flag as
// optional with a sane default.
//
// Grounded in funvibe-funxy's internal/ext config loader: a plain yaml-tagged
// struct plus a Load/Parse split (Parse takes raw bytes so it's testable
// without touching the filesystem), using gopkg.in/yaml.v3 — the same
// YAML-based CLI config pattern recurring across the pack
// (sunholo-data-ailang, funvibe-funxy, termfx-morfx all depend on yaml.v3).
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the shape of .sighrc.yaml.
type Config struct {
	// TypeCheck, when true, makes `sigh run` behave as if --type-check was
	// passed: analyze and report errors but do not execute the program.
	TypeCheck bool `yaml:"type_check,omitempty"`

	// BornTimeout is a duration string (e.g. "5s") parsed by
	// BornTimeoutDuration; zero/absent means no timeout. No command
	// currently reads it: born always waits until the async call finishes.
	BornTimeout string `yaml:"born_timeout,omitempty"`

	// HistoryDB overrides history.DefaultPath().
	HistoryDB string `yaml:"history_db,omitempty"`
}

// BornTimeoutDuration parses BornTimeout, returning 0 if it is unset or
// invalid.
func (c *Config) BornTimeoutDuration() time.Duration {
	if c.BornTimeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.BornTimeout)
	if err != nil {
		return 0
	}
	return d
}

// Load reads and parses path, returning the zero Config if the file does
// not exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses .sighrc.yaml content from bytes. path is used only in error
// messages.
func Parse(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// SearchPaths returns the default .sighrc.yaml lookup order: the current
// directory, then the user's home directory.
func SearchPaths() []string {
	paths := []string{".sighrc.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, home+"/.sighrc.yaml")
	}
	return paths
}

// LoadFirst loads the first existing file among SearchPaths, or the zero
// Config if none exist.
func LoadFirst() (*Config, error) {
	for _, p := range SearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return &Config{}, nil
}
