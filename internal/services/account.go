package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/maestro-studio/maestro-cli/internal/auth"
	"github.com/maestro-studio/maestro-cli/internal/models"
	"github.com/maestro-studio/maestro-cli/internal/shared"
	"golang.org/x/oauth2"
)

// AccountService handles login, account creation, and token validation
// against the public account endpoints.
type AccountService struct {
	client  *Client
	session auth.SessionStore
}

// NewAccountService creates an account service that stores tokens in the
// given session store.
func NewAccountService(client *Client, session auth.SessionStore) *AccountService {
	return &AccountService{client: client, session: session}
}

type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login exchanges credentials for a session token and persists it.
func (a *AccountService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", shared.ErrMissingCredentials)
	}

	body := map[string]string{"email": email, "password": password}

	var resp loginResponse
	if err := a.client.doRequest(ctx, http.MethodPost, "/api/v1/user/login", body, &resp); err != nil {
		if errors.Is(err, shared.ErrNotAuthenticated) {
			return nil, fmt.Errorf("%w: %s", shared.ErrInvalidCredentials, email)
		}
		return nil, fmt.Errorf("login failed: %w", err)
	}

	if resp.Token == "" {
		return nil, fmt.Errorf("%w: backend returned no session token", shared.ErrAuthFailed)
	}

	if err := a.SaveToken(resp.Token); err != nil {
		return nil, err
	}

	return &resp.User, nil
}

// CreateAccount registers a new account. When the backend returns a token
// with the new account, the session is started immediately.
func (a *AccountService) CreateAccount(ctx context.Context, email, displayName, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", shared.ErrMissingCredentials)
	}

	body := map[string]string{
		"email":        email,
		"display_name": displayName,
		"password":     password,
	}

	var resp loginResponse
	if err := a.client.doRequest(ctx, http.MethodPost, "/api/v1/user/create", body, &resp); err != nil {
		return nil, fmt.Errorf("account creation failed: %w", err)
	}

	if resp.Token != "" {
		if err := a.SaveToken(resp.Token); err != nil {
			return nil, err
		}
	}

	return &resp.User, nil
}

// ValidateToken asks the backend whether the stored session token is still
// accepted. A missing token or a 401 from the endpoint both mean invalid;
// they are an answer, not an error.
func (a *AccountService) ValidateToken(ctx context.Context) (bool, error) {
	token, ok := a.session.Token()
	if !ok {
		return false, nil
	}

	body := map[string]string{"token": token}

	var resp struct {
		Valid bool `json:"valid"`
	}
	err := a.client.doRequest(ctx, http.MethodPost, "/api/v1/user/validate-token", body, &resp)
	if errors.Is(err, shared.ErrNotAuthenticated) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("token validation failed: %w", err)
	}

	return resp.Valid, nil
}

// Profile fetches the authenticated account. This endpoint is not
// allow-listed, so it exercises the full bearer path.
func (a *AccountService) Profile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := a.client.doRequest(ctx, http.MethodGet, "/api/v1/user/profile", nil, &user); err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return &user, nil
}

// SaveToken stores a bearer token obtained out of band, such as from the
// browser-login callback.
func (a *AccountService) SaveToken(token string) error {
	tok := &oauth2.Token{AccessToken: token, TokenType: "Bearer"}
	if err := a.session.Save(tok); err != nil {
		return fmt.Errorf("failed to store session token: %w", err)
	}
	return nil
}

// Logout drops the local session. The backend keeps no session state to
// tear down.
func (a *AccountService) Logout() error {
	if err := a.session.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
