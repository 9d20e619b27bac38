package server

import (
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/oauth2"
)

// LoginResult contains the result of a browser login flow.
type LoginResult struct {
	Token *oauth2.Token
	err   error
}

func (l *LoginResult) Error() error {
	return l.err
}

// TokenHandler receives the studio's browser login callback.
//
// The web app signs the user in and redirects the browser to
// http://localhost:{port}/callback?token={bearer}&state={state}. The handler
// validates the state parameter, wraps the bearer token, and delivers it
// through the result channel. Implements the Handler interface for
// registration with a Router.
type TokenHandler struct {
	state       string
	resultChan  chan LoginResult
	once        sync.Once
	callbackHit bool
	mu          sync.Mutex
}

// NewTokenHandler creates a new login callback handler with the given state token.
// The state token should be cryptographically random for CSRF protection.
func NewTokenHandler(state string) *TokenHandler {
	return &TokenHandler{
		state:      state,
		resultChan: make(chan LoginResult, 1),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *TokenHandler) Routes() []string {
	return []string{"/callback"}
}

// ServeHTTP handles the login callback request.
//
// Validates the state parameter, extracts the bearer token, and sends the
// result through the result channel.
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Only handle the callback once
	h.mu.Lock()
	if h.callbackHit {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	h.callbackHit = true
	h.mu.Unlock()

	state := r.URL.Query().Get("state")
	if state != h.state {
		err := fmt.Errorf("invalid state parameter")
		h.Send(LoginResult{err: err})
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	token := r.URL.Query().Get("token")
	if token == "" {
		errParam := r.URL.Query().Get("error")
		errDesc := r.URL.Query().Get("error_description")
		err := fmt.Errorf("login failed: %s - %s", errParam, errDesc)
		h.Send(LoginResult{err: err})
		http.Error(w, "Login failed", http.StatusBadRequest)
		return
	}

	h.Send(LoginResult{Token: &oauth2.Token{AccessToken: token, TokenType: "Bearer"}})

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `
<!DOCTYPE html>
<html>
<head>
    <title>Signed In</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #7D56F4; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>✓ Signed In</h1>
        <p>You can close this window and return to the terminal.</p>
    </div>
</body>
</html>
`)
}

// Send sends the login result through the channel (only once).
func (h *TokenHandler) Send(result LoginResult) {
	h.once.Do(func() {
		h.resultChan <- result
		close(h.resultChan)
	})
}

// Result returns the result channel for receiving login flow completion.
//
// Channel will receive exactly one result and then be closed.
func (h *TokenHandler) Result() <-chan LoginResult {
	return h.resultChan
}
