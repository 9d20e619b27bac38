package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"
)

// SessionStore holds the current session token for the API client.
type SessionStore interface {
	// Token returns the current access token and whether one is stored.
	Token() (string, bool)
	// Save replaces the stored token and persists it.
	Save(tok *oauth2.Token) error
	// Clear removes the stored token.
	Clear() error
}

// Navigator switches the active view after auth state changes.
type Navigator interface {
	NavigateTo(route string)
}

// Notifier surfaces user-facing messages outside the normal output flow.
type Notifier interface {
	Notify(message string)
}

// FileSessionStore implements [SessionStore] backed by a JSON file.
//
// The token is stored as an [oauth2.Token] document with 0600 permissions
// so other local users cannot read it.
type FileSessionStore struct {
	path string
	mu   sync.RWMutex
	tok  *oauth2.Token
}

// NewFileSessionStore creates a store at path, loading an existing token
// file when one is present. A missing file is not an error.
func NewFileSessionStore(path string) (*FileSessionStore, error) {
	s := &FileSessionStore{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}

	s.tok = &tok
	return s, nil
}

// Token returns the stored access token when present.
func (s *FileSessionStore) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.tok == nil || s.tok.AccessToken == "" {
		return "", false
	}
	return s.tok.AccessToken, true
}

// Save persists tok to disk and keeps it in memory.
func (s *FileSessionStore) Save(tok *oauth2.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session token: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	s.tok = tok
	return nil
}

// Clear drops the in-memory token and removes the session file.
func (s *FileSessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tok = nil

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// Path returns the session file location.
func (s *FileSessionStore) Path() string {
	return s.path
}
