package auth

import (
	"path/filepath"
	"testing"
)

func TestFileStoreRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := NewFileStore(path)

	if err := store.SetToken("abc123"); err != nil {
		t.Fatalf("SetToken() error: %v", err)
	}

	token, err := store.Token()
	if err != nil {
		t.Fatalf("Token() error: %v", err)
	}
	if token != "abc123" {
		t.Errorf("Token() = %q, expected %q", token, "abc123")
	}
}

func TestFileStoreMissingFileMeansNoToken(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "token"))

	token, err := store.Token()
	if err != nil {
		t.Fatalf("Token() error: %v", err)
	}
	if token != "" {
		t.Errorf("Token() = %q, expected empty", token)
	}
}

func TestFileStoreRemoveToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := NewFileStore(path)

	if err := store.SetToken("abc123"); err != nil {
		t.Fatalf("SetToken() error: %v", err)
	}
	if err := store.RemoveToken(); err != nil {
		t.Fatalf("RemoveToken() error: %v", err)
	}

	token, err := store.Token()
	if err != nil {
		t.Fatalf("Token() after remove error: %v", err)
	}
	if token != "" {
		t.Errorf("Token() after remove = %q, expected empty", token)
	}

	// Removing an already absent token is not an error.
	if err := store.RemoveToken(); err != nil {
		t.Errorf("second RemoveToken() error: %v", err)
	}
}

func TestFileStoreTrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := NewFileStore(path)

	if err := store.SetToken("abc123"); err != nil {
		t.Fatalf("SetToken() error: %v", err)
	}

	// SetToken appends a trailing newline; Token must strip it.
	token, _ := store.Token()
	if token != "abc123" {
		t.Errorf("Token() = %q, expected %q", token, "abc123")
	}
}

func TestOpenUsesGivenPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	store := Open(path)

	if _, ok := store.(*FileStore); !ok {
		t.Fatalf("Open() returned %T, expected *FileStore", store)
	}
	if err := store.SetToken("tok"); err != nil {
		t.Fatalf("SetToken() error: %v", err)
	}
	token, err := store.Token()
	if err != nil || token != "tok" {
		t.Errorf("Token() = (%q, %v), expected (tok, nil)", token, err)
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	token, err := store.Token()
	if err != nil || token != "" {
		t.Fatalf("Token() on empty store = (%q, %v), expected empty", token, err)
	}

	if err := store.SetToken("abc"); err != nil {
		t.Fatalf("SetToken() error: %v", err)
	}
	token, _ = store.Token()
	if token != "abc" {
		t.Errorf("Token() = %q, expected %q", token, "abc")
	}

	if err := store.RemoveToken(); err != nil {
		t.Fatalf("RemoveToken() error: %v", err)
	}
	token, _ = store.Token()
	if token != "" {
		t.Errorf("Token() after remove = %q, expected empty", token)
	}
}
