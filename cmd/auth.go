package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/maestro-studio/maestro-cli/internal/server"
	"github.com/maestro-studio/maestro-cli/internal/shared"
	"github.com/urfave/cli/v3"
)

// browserLoginTimeout bounds how long the CLI waits for the web app callback.
const browserLoginTimeout = 5 * time.Minute

// AuthLogin signs in with email/password, through the browser, or by
// importing a bearer token from a copied cURL command.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	curlCmd := cmd.String("curl")
	curlFile := cmd.String("curl-file")

	if curlCmd != "" && curlFile != "" {
		return fmt.Errorf("%w: cannot specify both --curl and --curl-file", shared.ErrInvalidArgument)
	}
	if curlCmd != "" || curlFile != "" {
		return r.loginFromCurl(ctx, curlCmd, curlFile)
	}

	if cmd.Bool("browser") {
		return r.loginFromBrowser(ctx, cmd.Int("port"))
	}

	email := cmd.String("email")
	password := cmd.String("password")
	if email == "" || password == "" {
		return fmt.Errorf("%w: --email and --password are required (or use --browser)", shared.ErrMissingCredentials)
	}

	user, err := r.account.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	r.logger.Info("signed in", "email", user.Email)
	return r.writePlain("✓ Signed in as %s\n", user.Email)
}

// loginFromCurl extracts the bearer token from a browser request copied as
// cURL, then confirms it against the backend before keeping it.
func (r *Runner) loginFromCurl(ctx context.Context, curlCmd, curlFile string) error {
	r.logger.Info("parsing cURL command for the session token")

	var headers *shared.CurlHeaders
	var err error

	if curlFile != "" {
		headers, err = shared.ParseCurlFile(curlFile)
		if err != nil {
			return fmt.Errorf("failed to parse cURL file: %w", err)
		}
		r.logger.Info("parsed cURL from file", "file", curlFile)
	} else {
		headers, err = shared.ParseCurlCommand([]byte(curlCmd))
		if err != nil {
			return fmt.Errorf("failed to parse cURL command: %w", err)
		}
		r.logger.Info("parsed cURL command")
	}

	token, err := headers.BearerToken()
	if err != nil {
		return err
	}

	if err := r.account.SaveToken(token); err != nil {
		return fmt.Errorf("failed to store session token: %w", err)
	}

	valid, err := r.account.ValidateToken(ctx)
	if err != nil {
		return fmt.Errorf("could not confirm the token: %w", err)
	}
	if !valid {
		r.session.Clear()
		return fmt.Errorf("%w: the imported token was rejected", shared.ErrInvalidCredentials)
	}

	r.logger.Info("session token imported")
	return r.writePlain("✓ Signed in with imported token\n")
}

// loginFromBrowser runs the studio web sign-in flow with a local callback server.
func (r *Runner) loginFromBrowser(ctx context.Context, port int) error {
	state := shared.GenerateID()
	handler := server.NewTokenHandler(state)

	router := server.NewBasicRouter()
	router.Use(server.LoggingMiddleware(r.logger))
	router.Handler(handler)

	addr := fmt.Sprintf("localhost:%d", port)
	srv := &http.Server{Addr: addr, Handler: router}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			r.logger.Error("callback server failed", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	callback := fmt.Sprintf("http://%s/callback", addr)
	loginURL := fmt.Sprintf(
		"%s/login/cli?state=%s&redirect_uri=%s",
		r.config.API.BaseURL, url.QueryEscape(state), url.QueryEscape(callback),
	)

	r.writePlain("Opening the studio sign-in page...\n")
	r.writePlain("If the browser does not open, visit:\n  %s\n", loginURL)
	if err := shared.OpenBrowser(loginURL); err != nil {
		r.logger.Warn("failed to open browser", "error", err)
	}

	select {
	case result := <-handler.Result():
		if result.Error() != nil {
			return fmt.Errorf("%w: %v", shared.ErrAuthFailed, result.Error())
		}
		if err := r.session.Save(result.Token); err != nil {
			return fmt.Errorf("failed to store session token: %w", err)
		}
		r.logger.Info("browser login complete")
		return r.writePlain("✓ Signed in\n")
	case <-time.After(browserLoginTimeout):
		return fmt.Errorf("%w: timed out waiting for the browser callback", shared.ErrAuthFailed)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AuthLogout clears the stored session token.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.account.Logout(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	r.logger.Info("session cleared")
	return r.writePlain("✓ Signed out\n")
}

// AuthStatus checks the stored token against the backend and shows the profile.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("checking auth status")

	if _, ok := r.session.Token(); !ok {
		r.writePlain("Authentication: ✗ Not signed in\n")
		return r.writePlain("Run 'maestro auth login' to sign in.\n")
	}

	valid, err := r.account.ValidateToken(ctx)
	if err != nil {
		return fmt.Errorf("%w: could not reach the studio: %v", shared.ErrServiceUnavailable, err)
	}
	if !valid {
		r.writePlain("Authentication: ✗ Stored token was rejected\n")
		return r.writePlain("Run 'maestro auth login' to sign in again.\n")
	}

	r.writePlain("Authentication: ✓ Signed in\n")

	profile, err := r.account.Profile(ctx)
	if err != nil {
		r.logger.Debug("profile fetch failed", "error", err)
		return nil
	}

	r.writePlain("Account: %s", profile.Email)
	if profile.DisplayName != "" {
		r.writePlain(" (%s)", profile.DisplayName)
	}
	r.writePlain("\n")
	if profile.Plan != "" {
		r.writePlain("Plan: %s\n", profile.Plan)
	}
	return nil
}
