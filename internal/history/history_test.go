package history

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path, false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openTestStore(t)

	first := &Run{Source: "a.sigh", StartedAt: time.Now().Add(-time.Minute), ExitOK: true}
	second := &Run{Source: "b.sigh", StartedAt: time.Now(), ExitOK: false, ErrorCount: 1, FirstError: "boom"}

	if err := s.Record(first); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := s.Record(second); err != nil {
		t.Fatalf("Record: %v", err)
	}

	runs, err := s.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Source != "b.sigh" {
		t.Fatalf("expected newest run first, got %q", runs[0].Source)
	}
	if runs[1].Source != "a.sigh" {
		t.Fatalf("expected oldest run last, got %q", runs[1].Source)
	}
}

func TestRecentRespectsLimit(t *testing.T) {
	s := openTestStore(t)
	for i := 0; i < 5; i++ {
		if err := s.Record(&Run{Source: "x.sigh", StartedAt: time.Now()}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	runs, err := s.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
}

func TestClear(t *testing.T) {
	s := openTestStore(t)
	if err := s.Record(&Run{Source: "a.sigh", StartedAt: time.Now()}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	runs, err := s.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected 0 runs after Clear, got %d", len(runs))
	}
}

func TestDefaultPathNonEmpty(t *testing.T) {
	if DefaultPath() == "" {
		t.Fatal("expected a non-empty default path")
	}
}
