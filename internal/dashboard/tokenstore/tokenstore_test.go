package tokenstore

import (
	"path/filepath"
	"testing"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	s := NewMemoryStore()

	if tok, err := s.Get(); err != nil || tok != "" {
		t.Fatalf("fresh store should be empty, got %q, %v", tok, err)
	}

	if err := s.Set("tok-1"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if tok, _ := s.Get(); tok != "tok-1" {
		t.Fatalf("expected tok-1, got %q", tok)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if tok, _ := s.Get(); tok != "" {
		t.Fatalf("expected empty after clear, got %q", tok)
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("new store failed: %v", err)
	}

	if tok, err := s.Get(); err != nil || tok != "" {
		t.Fatalf("missing file should read as empty, got %q, %v", tok, err)
	}

	if err := s.Set("tok-1"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	// A second store over the same path sees the token: sessions survive
	// process restarts.
	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if tok, _ := reopened.Get(); tok != "tok-1" {
		t.Fatalf("expected tok-1 after reopen, got %q", tok)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if tok, _ := reopened.Get(); tok != "" {
		t.Fatalf("expected empty after clear, got %q", tok)
	}

	// Clearing an already-clear store is fine.
	if err := s.Clear(); err != nil {
		t.Fatalf("second clear failed: %v", err)
	}
}
