package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/talenthub/job-board/internal/core/domain"
	"github.com/talenthub/job-board/internal/core/ports"
)

// Validation messages shown verbatim by the auth forms. They never pass
// through the controller's error channel.
var (
	ErrMissingCredentials = errors.New("Email and password are required.")
	ErrMissingFields      = errors.New("Please fill in all required fields.")
	ErrPasswordTooShort   = errors.New("Password must be at least 6 characters long.")
	ErrPasswordMismatch   = errors.New("Passwords do not match.")
)

// genericFailure is what users see when the backend is unreachable or the
// response cannot be decoded. Server-provided rejection reasons are shown
// verbatim instead.
const genericFailure = "Something went wrong. Please try again."

// SessionState is the observable auth state: the current identity (nil means
// anonymous), whether an auth operation is in flight, and the latest error
// message. Exactly one error is held at a time; it resets when a new
// operation starts.
type SessionState struct {
	Identity *domain.Identity
	Loading  bool
	Err      string
}

// Authenticated reports whether an identity is resolved.
func (s SessionState) Authenticated() bool { return s.Identity != nil }

// SessionController is the single source of truth for "who is logged in" on
// one device. It mediates every credential lifecycle transition: restore at
// startup, login, register, logout. All outcomes are observed through State
// and Subscribe; none of the operations panic or return transport errors.
//
// Overlapping operations are resolved with a generation counter: each call
// captures the generation at start and only commits its result while still
// the most recent mutation, so a stale response can never clobber state
// formed after it.
type SessionController struct {
	api   ports.AuthAPI
	store ports.CredentialStore
	log   zerolog.Logger

	mu    sync.Mutex
	gen   uint64
	state SessionState
	subs  []func(SessionState)
}

// NewSessionController returns a controller in the "unknown/loading" state.
// Call Restore once to resolve it to authenticated or anonymous.
func NewSessionController(api ports.AuthAPI, store ports.CredentialStore, log zerolog.Logger) *SessionController {
	return &SessionController{
		api:   api,
		store: store,
		log:   log,
		state: SessionState{Loading: true},
	}
}

// State returns a snapshot of the current session state.
func (c *SessionController) State() SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers a callback invoked, under the controller lock, on every
// state change. Callbacks must not call back into the controller.
func (c *SessionController) Subscribe(fn func(SessionState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

// Restore resolves the startup state from the persisted credential. With no
// stored token it settles to anonymous without a network call. Otherwise the
// token is re-verified against the backend; on any failure the stored token
// is discarded and the state settles to anonymous.
func (c *SessionController) Restore(ctx context.Context) {
	token, _, err := c.store.Load(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("credential store unreadable during restore")
	}
	if token == "" {
		c.settle(SessionState{})
		return
	}

	gen := c.begin()
	identity, err := c.api.Me(ctx, token)
	if err != nil {
		if clearErr := c.store.ClearToken(ctx); clearErr != nil {
			c.log.Warn().Err(clearErr).Msg("failed to clear rejected token")
		}
		c.commit(gen, SessionState{})
		return
	}
	c.commit(gen, SessionState{Identity: identity})
}

// Login authenticates with the backend and, on success, persists the
// credential and returns the role dashboard path to navigate to. An empty
// return means the attempt failed; the reason is in State().Err. Empty
// inputs never reach the network.
func (c *SessionController) Login(ctx context.Context, email, password string) string {
	if email == "" || password == "" {
		c.settle(SessionState{Err: ErrMissingCredentials.Error()})
		return ""
	}

	gen := c.begin()
	res, err := c.api.Login(ctx, email, password)
	if err != nil {
		c.commit(gen, SessionState{Err: failureMessage(err)})
		return ""
	}

	if !c.commit(gen, SessionState{Identity: res.Identity}) {
		// A newer operation superseded this login; its result owns the
		// credential slot now.
		return ""
	}
	if err := c.store.Save(ctx, res.Token, res.Identity); err != nil {
		c.log.Warn().Err(err).Msg("failed to persist credential")
	}
	return res.Identity.Role.DashboardPath()
}

// Register creates an account. Input validation failures are returned
// directly and never touch the session state. On success the credential is
// persisted and "/auth/login" is returned: a fresh registration routes to
// the login page rather than activating a dashboard session.
func (c *SessionController) Register(ctx context.Context, in ports.RegisterInput, confirmPassword string) (string, error) {
	if err := ValidateRegistration(in, confirmPassword); err != nil {
		return "", err
	}

	gen := c.begin()
	res, err := c.api.Register(ctx, in)
	if err != nil {
		c.commit(gen, SessionState{Err: failureMessage(err)})
		return "", nil
	}

	if !c.commit(gen, SessionState{}) {
		return "", nil
	}
	if err := c.store.Save(ctx, res.Token, res.Identity); err != nil {
		c.log.Warn().Err(err).Msg("failed to persist credential")
	}
	return "/auth/login", nil
}

// Logout clears the persisted credential and resets to anonymous. The
// server-side revocation call is best effort: its failure is logged, never
// surfaced. Safe to call repeatedly.
func (c *SessionController) Logout(ctx context.Context) {
	token, _, err := c.store.Load(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("credential store unreadable during logout")
	}
	if err := c.store.Clear(ctx); err != nil {
		c.log.Warn().Err(err).Msg("failed to clear credential store")
	}

	c.settle(SessionState{})

	if token != "" {
		if err := c.api.Logout(ctx, token); err != nil {
			c.log.Warn().Err(err).Msg("server-side logout failed")
		}
	}
}

// ValidateRegistration is the client-side pre-validation performed before any
// network call: required fields, minimum password length, confirmation match.
func ValidateRegistration(in ports.RegisterInput, confirmPassword string) error {
	if in.Email == "" || in.Password == "" || in.FirstName == "" || in.LastName == "" || !in.Role.Valid() {
		return ErrMissingFields
	}
	if len(in.Password) < 6 {
		return ErrPasswordTooShort
	}
	if in.Password != confirmPassword {
		return ErrPasswordMismatch
	}
	return nil
}

// begin starts a new mutation generation: loading on, previous error cleared.
func (c *SessionController) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.state.Loading = true
	c.state.Err = ""
	c.notifyLocked()
	return c.gen
}

// commit applies the outcome of the operation started at gen, unless a newer
// operation has begun since, in which case the stale result is dropped.
func (c *SessionController) commit(gen uint64, next SessionState) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	c.state = next
	c.notifyLocked()
	return true
}

// settle replaces the state unconditionally, superseding any in-flight
// operation.
func (c *SessionController) settle(next SessionState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.state = next
	c.notifyLocked()
}

func (c *SessionController) notifyLocked() {
	for _, fn := range c.subs {
		fn(c.state)
	}
}

func failureMessage(err error) string {
	var rejected *domain.AuthRejectedError
	if errors.As(err, &rejected) {
		return rejected.Reason
	}
	return genericFailure
}
