package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestParse(t *testing.T) {
	data := []byte(`
type_check: true
born_timeout: 5s
history_db: /tmp/sigh-history.db
`)
	cfg, err := Parse(data, "test.yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !cfg.TypeCheck {
		t.Error("expected TypeCheck true")
	}
	if cfg.BornTimeout != "5s" {
		t.Errorf("expected BornTimeout 5s, got %q", cfg.BornTimeout)
	}
	if cfg.HistoryDB != "/tmp/sigh-history.db" {
		t.Errorf("expected HistoryDB set, got %q", cfg.HistoryDB)
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("not: [valid"), "test.yaml"); err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}

func TestBornTimeoutDuration(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Duration
	}{
		{"", 0},
		{"5s", 5 * time.Second},
		{"not-a-duration", 0},
	}
	for _, tt := range tests {
		c := &Config{BornTimeout: tt.raw}
		if got := c.BornTimeoutDuration(); got != tt.want {
			t.Errorf("BornTimeout %q: expected %v, got %v", tt.raw, tt.want, got)
		}
	}
}

func TestLoadMissingFileReturnsZeroConfig(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg != (Config{}) {
		t.Fatalf("expected zero Config, got %+v", cfg)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".sighrc.yaml")
	writeFile(t, path, "type_check: true\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.TypeCheck {
		t.Fatal("expected TypeCheck true after round trip")
	}
}

func TestLoadFirstPrefersCurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, filepath.Join(dir, ".sighrc.yaml"), "history_db: local.db\n")

	cfg, err := LoadFirst()
	if err != nil {
		t.Fatalf("LoadFirst: %v", err)
	}
	if cfg.HistoryDB != "local.db" {
		t.Fatalf("expected local.db, got %q", cfg.HistoryDB)
	}
}
