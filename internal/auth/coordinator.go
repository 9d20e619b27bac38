package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/maestro-studio/maestro-cli/internal/shared"
)

// DefaultValidationTimeout bounds a single token validation cycle and each
// waiter's patience for a cycle started by another request.
const DefaultValidationTimeout = 5 * time.Second

// LoginRoute is where the navigator is sent after the session ends.
const LoginRoute = "/login"

// ValidateFunc checks the current session token against the backend. It
// returns true when the token is still accepted.
type ValidateFunc func(ctx context.Context) (bool, error)

type validationResult struct {
	token string
	err   error
}

// Coordinator serializes session token validation across concurrent
// requests. The first caller of [Coordinator.AwaitValidToken] during an
// idle period runs the validation; callers arriving while it is in flight
// wait for the shared result instead of starting their own.
type Coordinator struct {
	session  SessionStore
	notifier Notifier
	nav      Navigator
	logger   *log.Logger
	timeout  time.Duration

	mu         sync.Mutex
	validate   ValidateFunc
	validating bool
	waiters    []chan validationResult
}

// CoordinatorOption configures a [Coordinator].
type CoordinatorOption func(*Coordinator)

// WithValidationTimeout overrides [DefaultValidationTimeout].
func WithValidationTimeout(d time.Duration) CoordinatorOption {
	return func(c *Coordinator) { c.timeout = d }
}

// WithNotifier sets the notifier used for session-ended messages.
func WithNotifier(n Notifier) CoordinatorOption {
	return func(c *Coordinator) { c.notifier = n }
}

// WithNavigator sets the navigator redirected to the login route on logout.
func WithNavigator(n Navigator) CoordinatorOption {
	return func(c *Coordinator) { c.nav = n }
}

// NewCoordinator creates a coordinator over the given session store.
//
// The validation callback is bound later via [Coordinator.SetValidateFunc]
// because the account service that performs validation is itself built on
// a client that carries this coordinator's [Transport].
func NewCoordinator(session SessionStore, logger *log.Logger, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		session: session,
		logger:  logger,
		timeout: DefaultValidationTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetValidateFunc binds the backend validation call.
func (c *Coordinator) SetValidateFunc(fn ValidateFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.validate = fn
}

// SetNotifier rebinds the notifier. The TUI attaches its banner link here
// once the program is running.
func (c *Coordinator) SetNotifier(n Notifier) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifier = n
}

// SetNavigator rebinds the navigator, see [SetNotifier].
func (c *Coordinator) SetNavigator(n Navigator) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nav = n
}

// AwaitValidToken resolves a 401 by validating the session token, sharing
// one validation across all concurrent callers. It returns the token to
// retry with, or a typed error when the session is over:
//   - [shared.ErrTokenInvalid] when the backend rejected the token
//   - [shared.ErrValidationTimeout] when validation or waiting timed out
//   - [context.Canceled] when the caller gave up, leaving the session alone
//
// On a failed cycle the leader ends the session exactly once: it notifies
// the user, clears the stored token, and navigates to [LoginRoute].
// Waiters never repeat those side effects.
func (c *Coordinator) AwaitValidToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.validating {
		ch := make(chan validationResult, 1)
		c.waiters = append(c.waiters, ch)
		c.mu.Unlock()
		return c.wait(ctx, ch)
	}
	c.validating = true
	fn := c.validate
	c.mu.Unlock()

	res := validationResult{err: shared.ErrTokenInvalid}
	defer func() { c.publish(res) }()

	res = c.runValidation(ctx, fn)
	return res.token, res.err
}

// Logout ends the session immediately without validating the token. Used
// for 403 responses where the backend has already made up its mind.
func (c *Coordinator) Logout(message string) {
	c.logger.Warn("ending session", "reason", message)
	c.endSession(message)
}

// wait blocks until the in-flight validation publishes a result. The
// timeout is measured from the moment this caller started waiting, so a
// late arrival gets the full window rather than the leader's remainder.
func (c *Coordinator) wait(ctx context.Context, ch chan validationResult) (string, error) {
	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		return res.token, res.err
	case <-timer.C:
		return "", shared.ErrValidationTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// runValidation executes the validation callback as the leader of the
// current cycle and performs logout side effects on failure.
func (c *Coordinator) runValidation(ctx context.Context, fn ValidateFunc) validationResult {
	if fn == nil {
		c.logger.Error("token validation requested before a validator was bound")
		c.endSession("Your session has expired. Please sign in again.")
		return validationResult{err: shared.ErrTokenInvalid}
	}

	vctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.logger.Debug("validating session token")
	ok, err := fn(vctx)

	switch {
	case err != nil && (errors.Is(err, context.Canceled) || errors.Is(vctx.Err(), context.Canceled)):
		// The caller gave up on the request; that says nothing about the
		// token, so the session stays intact.
		c.logger.Debug("token validation cancelled by the caller")
		return validationResult{err: context.Canceled}
	case err != nil && (errors.Is(err, context.DeadlineExceeded) || vctx.Err() != nil):
		c.logger.Warn("token validation timed out", "timeout", c.timeout)
		c.endSession("Could not verify your session in time. Please sign in again.")
		return validationResult{err: shared.ErrValidationTimeout}
	case err != nil:
		c.logger.Warn("token validation failed", "error", err)
		c.endSession("Your session has expired. Please sign in again.")
		return validationResult{err: shared.ErrTokenInvalid}
	case !ok:
		c.logger.Info("session token rejected by the backend")
		c.endSession("Your session has expired. Please sign in again.")
		return validationResult{err: shared.ErrTokenInvalid}
	}

	token, present := c.session.Token()
	if !present {
		c.endSession("Your session has expired. Please sign in again.")
		return validationResult{err: shared.ErrTokenInvalid}
	}

	c.logger.Debug("session token still valid")
	return validationResult{token: token}
}

// publish delivers res to every waiter and returns the coordinator to
// idle. Channels are buffered so a waiter that already timed out cannot
// block delivery to the rest.
func (c *Coordinator) publish(res validationResult) {
	c.mu.Lock()
	waiters := c.waiters
	c.waiters = nil
	c.validating = false
	c.mu.Unlock()

	for _, ch := range waiters {
		ch <- res
	}
}

// endSession performs the logout side effects once: notify, clear the
// stored token, and route to the login view.
func (c *Coordinator) endSession(message string) {
	c.mu.Lock()
	notifier, nav := c.notifier, c.nav
	c.mu.Unlock()

	if notifier != nil {
		notifier.Notify(message)
	}
	if err := c.session.Clear(); err != nil {
		c.logger.Error("failed to clear session", "error", err)
	}
	if nav != nil {
		nav.NavigateTo(LoginRoute)
	}
}
