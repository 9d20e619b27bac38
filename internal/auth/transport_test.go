package auth

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/maestro-studio/maestro-cli/internal/shared"
)

// scriptedTransport serves canned responses in order and records every
// request it sees.
type scriptedTransport struct {
	mu        sync.Mutex
	responses []*http.Response
	requests  []*http.Request
	bodies    []string
}

func (s *scriptedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	body := ""
	if req.Body != nil {
		data, _ := io.ReadAll(req.Body)
		req.Body.Close()
		body = string(data)
	}
	s.requests = append(s.requests, req)
	s.bodies = append(s.bodies, body)

	if len(s.responses) == 0 {
		return response(http.StatusOK, ""), nil
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]
	return resp, nil
}

func (s *scriptedTransport) seen() []*http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*http.Request(nil), s.requests...)
}

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newTestTransport(base http.RoundTripper, session *fakeSession, opts ...CoordinatorOption) (*Transport, *Coordinator, *fakeNotifier) {
	c, notifier, _ := newTestCoordinator(session, opts...)
	return NewTransport(base, session, c, shared.NewLogger(io.Discard)), c, notifier
}

func get(t *testing.T, path string) *http.Request {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, "https://studio.maestro.example.com"+path, nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	return req
}

func TestIsAuthEndpoint(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"/api/v1/user/login", true},
		{"/api/v1/user/create", true},
		{"/api/v1/user/validate-token", true},
		{"/backend/api/v1/user/login", true},
		{"/gateway/v2/api/v1/user/validate-token", true},
		{"/api/v1/songs", false},
		{"/api/v1/user/profile", false},
		{"/", false},
	}

	for _, tc := range cases {
		if got := IsAuthEndpoint(tc.path); got != tc.want {
			t.Errorf("IsAuthEndpoint(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestTransportBearerInjection(t *testing.T) {
	t.Run("attaches the stored token to API requests", func(t *testing.T) {
		base := &scriptedTransport{responses: []*http.Response{response(http.StatusOK, "{}")}}
		tr, _, _ := newTestTransport(base, &fakeSession{token: "tok-1"})

		resp, err := tr.RoundTrip(get(t, "/api/v1/songs"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer resp.Body.Close()

		reqs := base.seen()
		if len(reqs) != 1 {
			t.Fatalf("expected one request, got %d", len(reqs))
		}
		if got := reqs[0].Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("expected bearer header, got %q", got)
		}
	})

	t.Run("sends no header when no token is stored", func(t *testing.T) {
		base := &scriptedTransport{responses: []*http.Response{response(http.StatusOK, "{}")}}
		tr, _, _ := newTestTransport(base, &fakeSession{})

		resp, err := tr.RoundTrip(get(t, "/api/v1/songs"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer resp.Body.Close()

		if got := base.seen()[0].Header.Get("Authorization"); got != "" {
			t.Errorf("expected no Authorization header, got %q", got)
		}
	})

	t.Run("leaves the original request untouched", func(t *testing.T) {
		base := &scriptedTransport{responses: []*http.Response{response(http.StatusOK, "{}")}}
		tr, _, _ := newTestTransport(base, &fakeSession{token: "tok-1"})

		req := get(t, "/api/v1/songs")
		resp, err := tr.RoundTrip(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer resp.Body.Close()

		if got := req.Header.Get("Authorization"); got != "" {
			t.Errorf("caller's request was mutated: %q", got)
		}
	})
}

func TestTransportAuthEndpoints(t *testing.T) {
	t.Run("account endpoints bypass bearer handling", func(t *testing.T) {
		for _, path := range []string{
			"/api/v1/user/login",
			"/api/v1/user/create",
			"/api/v1/user/validate-token",
			"/backend/api/v1/user/login",
		} {
			base := &scriptedTransport{responses: []*http.Response{response(http.StatusOK, "{}")}}
			tr, _, _ := newTestTransport(base, &fakeSession{token: "tok-1"})

			resp, err := tr.RoundTrip(get(t, path))
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", path, err)
			}
			resp.Body.Close()

			if got := base.seen()[0].Header.Get("Authorization"); got != "" {
				t.Errorf("%s: expected no Authorization header, got %q", path, got)
			}
		}
	})

	t.Run("a 401 from a login attempt is not recovered", func(t *testing.T) {
		base := &scriptedTransport{responses: []*http.Response{response(http.StatusUnauthorized, "bad credentials")}}
		session := &fakeSession{token: "tok-1"}
		tr, c, notifier := newTestTransport(base, session)

		var calls atomic.Int32
		c.SetValidateFunc(func(ctx context.Context) (bool, error) {
			calls.Add(1)
			return true, nil
		})

		resp, err := tr.RoundTrip(get(t, "/api/v1/user/login"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("expected the 401 to pass through, got %d", resp.StatusCode)
		}
		if got := calls.Load(); got != 0 {
			t.Errorf("expected no validation for an auth endpoint, got %d calls", got)
		}
		if notifier.count() != 0 {
			t.Error("expected no logout side effects for an auth endpoint")
		}
		if len(base.seen()) != 1 {
			t.Errorf("expected no retry, got %d requests", len(base.seen()))
		}
	})
}

func TestTransportUnauthorized(t *testing.T) {
	t.Run("retries once after a successful validation", func(t *testing.T) {
		base := &scriptedTransport{responses: []*http.Response{
			response(http.StatusUnauthorized, ""),
			response(http.StatusOK, `{"ok":true}`),
		}}
		session := &fakeSession{token: "tok-1"}
		tr, c, _ := newTestTransport(base, session)
		c.SetValidateFunc(func(ctx context.Context) (bool, error) { return true, nil })

		resp, err := tr.RoundTrip(get(t, "/api/v1/songs"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected 200 after retry, got %d", resp.StatusCode)
		}
		reqs := base.seen()
		if len(reqs) != 2 {
			t.Fatalf("expected exactly one retry, got %d requests", len(reqs))
		}
		if got := reqs[1].Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("expected retry with bearer token, got %q", got)
		}
	})

	t.Run("replays the request body on retry", func(t *testing.T) {
		base := &scriptedTransport{responses: []*http.Response{
			response(http.StatusUnauthorized, ""),
			response(http.StatusCreated, "{}"),
		}}
		session := &fakeSession{token: "tok-1"}
		tr, c, _ := newTestTransport(base, session)
		c.SetValidateFunc(func(ctx context.Context) (bool, error) { return true, nil })

		payload := `{"title":"Neon Tide"}`
		req, err := http.NewRequestWithContext(context.Background(), http.MethodPost,
			"https://studio.maestro.example.com/api/v1/songs", bytes.NewReader([]byte(payload)))
		if err != nil {
			t.Fatalf("failed to build request: %v", err)
		}

		resp, err := tr.RoundTrip(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			t.Errorf("expected 201 after retry, got %d", resp.StatusCode)
		}
		if len(base.bodies) != 2 || base.bodies[1] != payload {
			t.Errorf("expected the retry to carry the original body, got %q", base.bodies)
		}
	})

	t.Run("returns the original 401 when the body cannot be replayed", func(t *testing.T) {
		base := &scriptedTransport{responses: []*http.Response{response(http.StatusUnauthorized, "")}}
		session := &fakeSession{token: "tok-1"}
		tr, c, _ := newTestTransport(base, session)
		c.SetValidateFunc(func(ctx context.Context) (bool, error) { return true, nil })

		req := get(t, "/api/v1/songs")
		req.Method = http.MethodPost
		req.Body = io.NopCloser(strings.NewReader("one-shot stream"))
		req.GetBody = nil

		resp, err := tr.RoundTrip(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("expected the 401 to pass through, got %d", resp.StatusCode)
		}
		if len(base.seen()) != 1 {
			t.Errorf("expected no retry, got %d requests", len(base.seen()))
		}
	})

	t.Run("returns the original 401 after a failed validation", func(t *testing.T) {
		base := &scriptedTransport{responses: []*http.Response{response(http.StatusUnauthorized, "")}}
		session := &fakeSession{token: "tok-1"}
		tr, c, notifier := newTestTransport(base, session)
		c.SetValidateFunc(func(ctx context.Context) (bool, error) { return false, nil })

		resp, err := tr.RoundTrip(get(t, "/api/v1/songs"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("expected the 401 to pass through, got %d", resp.StatusCode)
		}
		if len(base.seen()) != 1 {
			t.Errorf("expected no retry, got %d requests", len(base.seen()))
		}
		if notifier.count() != 1 {
			t.Errorf("expected one logout notification, got %d", notifier.count())
		}
		if _, ok := session.Token(); ok {
			t.Error("expected the session to be cleared")
		}
	})
}

func TestTransportForbidden(t *testing.T) {
	t.Run("logs out immediately without validating", func(t *testing.T) {
		base := &scriptedTransport{responses: []*http.Response{response(http.StatusForbidden, "")}}
		session := &fakeSession{token: "tok-1"}
		tr, c, notifier := newTestTransport(base, session)

		var calls atomic.Int32
		c.SetValidateFunc(func(ctx context.Context) (bool, error) {
			calls.Add(1)
			return true, nil
		})

		resp, err := tr.RoundTrip(get(t, "/api/v1/releases/42/publish"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("expected the 403 to pass through, got %d", resp.StatusCode)
		}
		if got := calls.Load(); got != 0 {
			t.Errorf("expected zero validation calls, got %d", got)
		}
		if notifier.count() != 1 {
			t.Errorf("expected one logout notification, got %d", notifier.count())
		}
		if _, ok := session.Token(); ok {
			t.Error("expected the session to be cleared")
		}
		if len(base.seen()) != 1 {
			t.Errorf("expected no retry, got %d requests", len(base.seen()))
		}
	})
}

func TestTransportPassThrough(t *testing.T) {
	t.Run("non-auth failures are untouched", func(t *testing.T) {
		for _, status := range []int{http.StatusOK, http.StatusNotFound, http.StatusInternalServerError} {
			base := &scriptedTransport{responses: []*http.Response{response(status, "")}}
			session := &fakeSession{token: "tok-1"}
			tr, c, notifier := newTestTransport(base, session)

			var calls atomic.Int32
			c.SetValidateFunc(func(ctx context.Context) (bool, error) {
				calls.Add(1)
				return true, nil
			})

			resp, err := tr.RoundTrip(get(t, "/api/v1/songs"))
			if err != nil {
				t.Fatalf("status %d: unexpected error: %v", status, err)
			}
			resp.Body.Close()

			if resp.StatusCode != status {
				t.Errorf("expected %d to pass through, got %d", status, resp.StatusCode)
			}
			if calls.Load() != 0 || notifier.count() != 0 {
				t.Errorf("status %d: expected no auth handling", status)
			}
		}
	})
}

func TestTransportAgainstServer(t *testing.T) {
	t.Run("expired token is refreshed and the request succeeds", func(t *testing.T) {
		var validations atomic.Int32

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case strings.Contains(r.URL.Path, "/api/v1/user/validate-token"):
				validations.Add(1)
				fmt.Fprint(w, `{"valid":true}`)
			case r.Header.Get("Authorization") == "Bearer tok-fresh":
				fmt.Fprint(w, `{"songs":[]}`)
			default:
				w.WriteHeader(http.StatusUnauthorized)
			}
		}))
		defer srv.Close()

		session := &fakeSession{token: "tok-stale"}
		tr, c, _ := newTestTransport(http.DefaultTransport, session)
		client := &http.Client{Transport: tr}

		c.SetValidateFunc(func(ctx context.Context) (bool, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/user/validate-token", nil)
			if err != nil {
				return false, err
			}
			resp, err := client.Do(req)
			if err != nil {
				return false, err
			}
			defer resp.Body.Close()

			// The backend accepted the session; swap in the refreshed token.
			session.mu.Lock()
			session.token = "tok-fresh"
			session.mu.Unlock()
			return resp.StatusCode == http.StatusOK, nil
		})

		resp, err := client.Get(srv.URL + "/api/v1/songs")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected 200 after refresh, got %d", resp.StatusCode)
		}
		if got := validations.Load(); got != 1 {
			t.Errorf("expected one validation round trip, got %d", got)
		}
	})
}
