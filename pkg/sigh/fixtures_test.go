package sigh_test

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/cdelzotti/sigh/pkg/sigh"
	"github.com/gkampitakis/go-snaps/snaps"
)

// TestFixtures runs every testdata/fixtures/*.sigh program end to end and
// snapshots its stdout; a program that reports an error fails the test.
// Grounded on go-dws's TestDWScriptFixtures (internal/interp/fixture_test.go),
// trimmed to this module's much smaller fixture set: one file per scenario
// instead of per-category directories.
func TestFixtures(t *testing.T) {
	paths, err := filepath.Glob("../../testdata/fixtures/*.sigh")
	if err != nil {
		t.Fatalf("glob fixtures: %v", err)
	}
	if len(paths) == 0 {
		t.Fatal("no fixtures found under testdata/fixtures")
	}
	sort.Strings(paths)

	for _, path := range paths {
		path := path
		name := filepath.Base(path)
		t.Run(name, func(t *testing.T) {
			src, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read %s: %v", path, err)
			}

			res := sigh.Run(string(src))
			if res.Error != "" {
				t.Fatalf("%s: runtime error: %s", name, res.Error)
			}
			snaps.MatchSnapshot(t, res.Stdout)
		})
	}
}
