// Package auth stores the bearer credential for the personal-finance API.
// The default store keeps the token in a user-only file under the config
// directory, with an in-memory fallback when that location is unusable.
package auth

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const defaultTokenPath = ".config/fintrack/token"

// Store is the credential contract the data-access layer depends on.
// Token returns an empty string, not an error, when no token is stored.
type Store interface {
	Token() (string, error)
	SetToken(token string) error
	RemoveToken() error
}

// Open returns a file-backed store at path, or at the default config-dir
// location when path is empty. When the directory cannot be created the token
// is kept in memory for the lifetime of the process instead.
func Open(path string) Store {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return NewMemoryStore()
		}
		path = filepath.Join(home, defaultTokenPath)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return NewMemoryStore()
	}

	return &FileStore{path: path}
}

// FileStore persists the token in a single file readable only by the user.
type FileStore struct {
	path string
}

// NewFileStore creates a file store at path. The parent directory must exist.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Token reads the stored token. A missing file means no token.
func (s *FileStore) Token() (string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// SetToken writes the token with user-only permissions.
func (s *FileStore) SetToken(token string) error {
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// RemoveToken deletes the token file. Removing an absent token is not an
// error.
func (s *FileStore) RemoveToken() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}

// MemoryStore keeps the token in process memory only.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Token returns the stored token, or an empty string when none is set.
func (s *MemoryStore) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

// SetToken stores the token.
func (s *MemoryStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// RemoveToken clears the stored token.
func (s *MemoryStore) RemoveToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
