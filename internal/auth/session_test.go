package auth

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestFileSessionStore(t *testing.T) {
	t.Run("missing file yields an empty store", func(t *testing.T) {
		store, err := NewFileSessionStore(filepath.Join(t.TempDir(), "session.json"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := store.Token(); ok {
			t.Error("expected no token in a fresh store")
		}
	})

	t.Run("save persists and reload restores", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "maestro", "session.json")
		store, err := NewFileSessionStore(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		tok := &oauth2.Token{
			AccessToken: "tok-1",
			TokenType:   "Bearer",
			Expiry:      time.Now().Add(time.Hour),
		}
		if err := store.Save(tok); err != nil {
			t.Fatalf("failed to save token: %v", err)
		}

		reloaded, err := NewFileSessionStore(path)
		if err != nil {
			t.Fatalf("failed to reload store: %v", err)
		}
		token, ok := reloaded.Token()
		if !ok {
			t.Fatal("expected a token after reload")
		}
		if token != "tok-1" {
			t.Errorf("expected tok-1, got %s", token)
		}
	})

	t.Run("session file is only readable by the owner", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.json")
		store, err := NewFileSessionStore(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := store.Save(&oauth2.Token{AccessToken: "tok-1"}); err != nil {
			t.Fatalf("failed to save token: %v", err)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("failed to stat session file: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("expected 0600 permissions, got %o", perm)
		}
	})

	t.Run("clear removes the file and the token", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.json")
		store, err := NewFileSessionStore(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := store.Save(&oauth2.Token{AccessToken: "tok-1"}); err != nil {
			t.Fatalf("failed to save token: %v", err)
		}

		if err := store.Clear(); err != nil {
			t.Fatalf("failed to clear session: %v", err)
		}
		if _, ok := store.Token(); ok {
			t.Error("expected token to be gone after clear")
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("expected session file to be removed")
		}
	})

	t.Run("clearing an already empty store is fine", func(t *testing.T) {
		store, err := NewFileSessionStore(filepath.Join(t.TempDir(), "session.json"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := store.Clear(); err != nil {
			t.Errorf("unexpected error clearing empty store: %v", err)
		}
	})

	t.Run("corrupt session file is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.json")
		if err := os.WriteFile(path, []byte("not json"), 0600); err != nil {
			t.Fatalf("failed to seed file: %v", err)
		}
		if _, err := NewFileSessionStore(path); err == nil {
			t.Error("expected an error for a corrupt session file")
		}
	})
}
