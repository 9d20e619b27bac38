package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/maestro-studio/maestro-cli/internal/auth"
	"github.com/maestro-studio/maestro-cli/internal/shared"
)

func newTestSession(t *testing.T) *auth.FileSessionStore {
	t.Helper()
	store, err := auth.NewFileSessionStore(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("failed to create session store: %v", err)
	}
	return store
}

func TestAccountServiceLogin(t *testing.T) {
	t.Run("stores the token on success", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/v1/user/login" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			var creds map[string]string
			json.NewDecoder(r.Body).Decode(&creds)
			if creds["email"] != "ada@example.com" {
				t.Errorf("unexpected email: %s", creds["email"])
			}
			fmt.Fprint(w, `{"token":"tok-1","user":{"id":"u1","email":"ada@example.com","display_name":"Ada"}}`)
		})

		session := newTestSession(t)
		account := NewAccountService(client, session)

		user, err := account.Login(context.Background(), "ada@example.com", "hunter2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.DisplayName != "Ada" {
			t.Errorf("expected display name Ada, got %s", user.DisplayName)
		}

		token, ok := session.Token()
		if !ok || token != "tok-1" {
			t.Errorf("expected token tok-1 in the session, got %q", token)
		}
	})

	t.Run("bad credentials map to a credentials error", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"detail":"invalid credentials"}`)
		})

		account := NewAccountService(client, newTestSession(t))
		_, err := account.Login(context.Background(), "ada@example.com", "wrong")
		if !errors.Is(err, shared.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("empty credentials are rejected locally", func(t *testing.T) {
		client := NewClient("", nil, shared.NewLogger(io.Discard))
		account := NewAccountService(client, newTestSession(t))

		if _, err := account.Login(context.Background(), "", ""); !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("a response without a token is a failure", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"user":{"id":"u1"}}`)
		})

		account := NewAccountService(client, newTestSession(t))
		if _, err := account.Login(context.Background(), "ada@example.com", "hunter2"); !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", err)
		}
	})
}

func TestAccountServiceCreateAccount(t *testing.T) {
	t.Run("starts a session when the backend returns a token", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/v1/user/create" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			fmt.Fprint(w, `{"token":"tok-new","user":{"id":"u2","email":"new@example.com"}}`)
		})

		session := newTestSession(t)
		account := NewAccountService(client, session)

		user, err := account.CreateAccount(context.Background(), "new@example.com", "New User", "hunter2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.ID != "u2" {
			t.Errorf("expected user u2, got %s", user.ID)
		}
		if token, ok := session.Token(); !ok || token != "tok-new" {
			t.Errorf("expected session token tok-new, got %q", token)
		}
	})
}

func TestAccountServiceValidateToken(t *testing.T) {
	t.Run("valid token", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["token"] != "tok-1" {
				t.Errorf("expected the stored token in the payload, got %q", body["token"])
			}
			fmt.Fprint(w, `{"valid":true}`)
		})

		session := newTestSession(t)
		account := NewAccountService(client, session)
		account.SaveToken("tok-1")

		valid, err := account.ValidateToken(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !valid {
			t.Error("expected the token to be valid")
		}
	})

	t.Run("rejected token answers false without error", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"valid":false}`)
		})

		session := newTestSession(t)
		account := NewAccountService(client, session)
		account.SaveToken("tok-stale")

		valid, err := account.ValidateToken(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if valid {
			t.Error("expected the token to be invalid")
		}
	})

	t.Run("a 401 from the endpoint means invalid, not failure", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		session := newTestSession(t)
		account := NewAccountService(client, session)
		account.SaveToken("tok-stale")

		valid, err := account.ValidateToken(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if valid {
			t.Error("expected the token to be invalid")
		}
	})

	t.Run("no stored token is invalid without a request", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("expected no backend call without a token")
		})

		account := NewAccountService(client, newTestSession(t))
		valid, err := account.ValidateToken(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if valid {
			t.Error("expected invalid with no stored token")
		}
	})

	t.Run("backend outage is a real error", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		session := newTestSession(t)
		account := NewAccountService(client, session)
		account.SaveToken("tok-1")

		if _, err := account.ValidateToken(context.Background()); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}

func TestAccountServiceLogout(t *testing.T) {
	t.Run("clears the stored session", func(t *testing.T) {
		client := NewClient("", nil, shared.NewLogger(io.Discard))
		session := newTestSession(t)
		account := NewAccountService(client, session)
		account.SaveToken("tok-1")

		if err := account.Logout(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := session.Token(); ok {
			t.Error("expected the session to be empty after logout")
		}
	})
}
