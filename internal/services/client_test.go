package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/maestro-studio/maestro-cli/internal/shared"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, srv.Client(), shared.NewLogger(io.Discard)), srv
}

func TestListQuery(t *testing.T) {
	cases := []struct {
		limit, offset int
		want          string
	}{
		{0, 0, ""},
		{20, 0, "?limit=20"},
		{0, 40, "?offset=40"},
		{20, 40, "?limit=20&offset=40"},
	}

	for _, tc := range cases {
		if got := listQuery(tc.limit, tc.offset); got != tc.want {
			t.Errorf("listQuery(%d, %d) = %q, want %q", tc.limit, tc.offset, got, tc.want)
		}
	}
}

func TestClientErrorClassification(t *testing.T) {
	cases := []struct {
		name   string
		status int
		want   error
	}{
		{"401 maps to not authenticated", http.StatusUnauthorized, shared.ErrNotAuthenticated},
		{"403 maps to forbidden", http.StatusForbidden, shared.ErrForbidden},
		{"404 maps to not found", http.StatusNotFound, shared.ErrNotFound},
		{"500 maps to service unavailable", http.StatusInternalServerError, shared.ErrServiceUnavailable},
		{"503 maps to service unavailable", http.StatusServiceUnavailable, shared.ErrServiceUnavailable},
		{"422 maps to generic API error", http.StatusUnprocessableEntity, shared.ErrAPIRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				fmt.Fprint(w, `{"detail":"nope"}`)
			})

			err := client.doRequest(context.Background(), http.MethodGet, "/api/v1/songs", nil, nil)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestClientDoRequest(t *testing.T) {
	t.Run("encodes the body and decodes the response", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected JSON content type, got %q", ct)
			}
			body, _ := io.ReadAll(r.Body)
			if string(body) != `{"title":"Neon Tide"}` {
				t.Errorf("unexpected request body: %s", body)
			}
			fmt.Fprint(w, `{"id":"song-1","title":"Neon Tide"}`)
		})

		var result struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		}
		payload := map[string]string{"title": "Neon Tide"}
		if err := client.doRequest(context.Background(), http.MethodPost, "/api/v1/songs", payload, &result); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.ID != "song-1" {
			t.Errorf("expected song-1, got %s", result.ID)
		}
	})

	t.Run("surfaces the backend detail message", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			fmt.Fprint(w, `{"detail":"style is not supported"}`)
		})

		err := client.doRequest(context.Background(), http.MethodPost, "/api/v1/songs", map[string]string{}, nil)
		if err == nil || !errors.Is(err, shared.ErrAPIRequest) {
			t.Fatalf("expected API error, got %v", err)
		}
		if got := err.Error(); !strings.Contains(got, "style is not supported") {
			t.Errorf("expected detail in error, got %q", got)
		}
	})

	t.Run("nil result discards the body", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"anything":true}`)
		})

		if err := client.doRequest(context.Background(), http.MethodDelete, "/api/v1/songs/1", nil, nil); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestClientRaw(t *testing.T) {
	t.Run("get returns parsed JSON when possible", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"status":"ok"}`)
		})

		resp, err := client.Get(context.Background(), "/api/v1/status")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !resp.IsJSON {
			t.Error("expected JSON response to be detected")
		}
		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected 200, got %d", resp.StatusCode)
		}
	})

	t.Run("get keeps non-JSON bodies raw", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "plain text")
		})

		resp, err := client.Get(context.Background(), "/healthz")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.IsJSON {
			t.Error("expected non-JSON body")
		}
		if string(resp.Body) != "plain text" {
			t.Errorf("unexpected body: %s", resp.Body)
		}
	})

	t.Run("post forwards the payload", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			if string(body) != `{"n":1}` {
				t.Errorf("unexpected payload: %s", body)
			}
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{}`)
		})

		resp, err := client.Post(context.Background(), "/api/v1/anything", []byte(`{"n":1}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != http.StatusCreated {
			t.Errorf("expected 201, got %d", resp.StatusCode)
		}
	})
}

func TestClientDownload(t *testing.T) {
	t.Run("returns the asset bytes", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte{0x49, 0x44, 0x33})
		}))
		defer srv.Close()

		client := NewClient(srv.URL, srv.Client(), shared.NewLogger(io.Discard))
		data, err := client.Download(context.Background(), srv.URL+"/audio/song-1.mp3")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(data) != 3 {
			t.Errorf("expected 3 bytes, got %d", len(data))
		}
	})

	t.Run("non-2xx is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, srv.Client(), shared.NewLogger(io.Discard))
		if _, err := client.Download(context.Background(), srv.URL+"/audio/missing.mp3"); err == nil {
			t.Error("expected an error for a missing asset")
		}
	})
}
