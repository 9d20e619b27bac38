package auth

import (
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
)

// authEndpoints are account paths served without a session token. Matching
// is by substring so proxy-prefixed variants (for example
// /backend/api/v1/user/login) are covered too.
var authEndpoints = []string{
	"/api/v1/user/login",
	"/api/v1/user/create",
	"/api/v1/user/validate-token",
}

// IsAuthEndpoint reports whether path belongs to the public account
// surface that must bypass bearer handling and 401 recovery.
func IsAuthEndpoint(path string) bool {
	for _, endpoint := range authEndpoints {
		if strings.Contains(path, endpoint) {
			return true
		}
	}
	return false
}

// Transport is an [http.RoundTripper] that injects the session bearer
// token and recovers from auth failures via the [Coordinator].
type Transport struct {
	base        http.RoundTripper
	session     SessionStore
	coordinator *Coordinator
	logger      *log.Logger
}

// NewTransport wraps base with bearer handling. A nil base falls back to
// [http.DefaultTransport].
func NewTransport(base http.RoundTripper, session SessionStore, coordinator *Coordinator, logger *log.Logger) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{base: base, session: session, coordinator: coordinator, logger: logger}
}

// RoundTrip implements [http.RoundTripper].
//
// Requests to the public account endpoints pass through untouched, with no
// Authorization header and no recovery on failure. Everything else gets
// the stored bearer token. A 401 response triggers one coordinated token
// validation and at most one retry; a 403 ends the session on the spot.
// In both failure cases the backend's original response is returned so the
// caller sees the real status.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if IsAuthEndpoint(req.URL.Path) {
		return t.base.RoundTrip(req)
	}

	out := req.Clone(req.Context())
	if token, ok := t.session.Token(); ok {
		out.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.base.RoundTrip(out)
	if err != nil {
		return resp, err
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return t.recover(req, resp)
	case http.StatusForbidden:
		t.logger.Warn("request forbidden", "method", req.Method, "path", req.URL.Path)
		t.coordinator.Logout("You no longer have access to this resource. Please sign in again.")
		return resp, nil
	default:
		return resp, nil
	}
}

// recover handles a 401 by waiting for a coordinated token validation and
// retrying the request once. When validation fails, or the request body
// cannot be replayed, the original 401 response is returned unchanged.
func (t *Transport) recover(req *http.Request, resp *http.Response) (*http.Response, error) {
	t.logger.Debug("unauthorized response, validating session", "method", req.Method, "path", req.URL.Path)

	token, err := t.coordinator.AwaitValidToken(req.Context())
	if err != nil {
		t.logger.Debug("session validation failed, passing 401 through", "error", err)
		return resp, nil
	}

	retry, ok := t.replay(req, token)
	if !ok {
		return resp, nil
	}

	drain(resp)

	retried, rerr := t.base.RoundTrip(retry)
	if rerr != nil {
		return nil, rerr
	}
	return retried, nil
}

// replay builds a second attempt with a fresh bearer token. Requests with
// a consumed one-shot body cannot be replayed.
func (t *Transport) replay(req *http.Request, token string) (*http.Request, bool) {
	retry := req.Clone(req.Context())
	retry.Header.Set("Authorization", "Bearer "+token)

	if req.Body != nil && req.Body != http.NoBody {
		if req.GetBody == nil {
			t.logger.Warn("request body is not replayable, skipping retry", "method", req.Method, "path", req.URL.Path)
			return nil, false
		}
		body, err := req.GetBody()
		if err != nil {
			t.logger.Warn("failed to rewind request body", "error", err)
			return nil, false
		}
		retry.Body = body
	}

	return retry, true
}

// drain discards a response body so the underlying connection can be
// reused before the retry.
func drain(resp *http.Response) {
	if resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
