// Package session owns the client-side representation of the current
// authenticated identity: the in-memory state, the durable credential
// pair, and the startup validation flow that reconciles the two.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/maraki-learning/adminctl/internal/api"
	"github.com/maraki-learning/adminctl/internal/apiclient"
	"github.com/maraki-learning/adminctl/internal/credstore"
	"github.com/maraki-learning/adminctl/internal/model"
	"github.com/maraki-learning/adminctl/internal/token"
	"github.com/maraki-learning/adminctl/internal/validator"
)

// ErrValidationInFlight is returned when a profile validation is requested
// while another one is still running.
var ErrValidationInFlight = errors.New("profile validation already in flight")

// ErrNotAuthenticated is returned by operations that need a live session.
var ErrNotAuthenticated = errors.New("not authenticated")

// State is a point-in-time copy of the session. IsAuthenticated is true
// only when both a profile and a verified non-expired token are present.
type State struct {
	User            *model.UserProfile
	Token           string
	IsAuthenticated bool
	IsLoading       bool
	Err             string
}

// Session is the owned replacement for what the original design kept as an
// ambient global: it is constructed once at startup, injected into the
// HTTP client (as token source and 401 hook) and into the route guards.
type Session struct {
	mu              sync.Mutex
	user            *model.UserProfile
	token           string
	isAuthenticated bool
	isLoading       bool
	err             string
	validating      bool

	auth            *api.AuthClient
	creds           *credstore.Store
	validateTimeout time.Duration
	now             func() time.Time
	log             zerolog.Logger
}

// New creates an empty, unauthenticated Session.
func New(auth *api.AuthClient, creds *credstore.Store, validateTimeout time.Duration, log zerolog.Logger) *Session {
	return &Session{
		auth:            auth,
		creds:           creds,
		validateTimeout: validateTimeout,
		now:             time.Now,
		log:             log.With().Str("component", "session").Logger(),
	}
}

// Snapshot returns a copy of the current session state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := State{
		Token:           s.token,
		IsAuthenticated: s.isAuthenticated,
		IsLoading:       s.isLoading,
		Err:             s.err,
	}
	if s.user != nil {
		u := *s.user
		state.User = &u
	}
	return state
}

// Token returns the current bearer token, satisfying apiclient.TokenSource.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Bootstrap derives the initial session state from persisted credentials.
// An expired or undecodable token clears persisted state and yields an
// unauthenticated session. A live token yields a provisional session:
// token and cached profile are loaded, but IsAuthenticated stays false
// until ValidateProfile confirms the identity against the server.
func (s *Session) Bootstrap() {
	creds, err := s.creds.Load()
	if err != nil {
		if !errors.Is(err, credstore.ErrNotFound) {
			s.log.Warn().Err(err).Msg("Could not read stored credentials")
		}
		return
	}

	if token.IsExpired(creds.Token, s.now()) {
		s.log.Debug().Msg("Stored token expired, purging credentials")
		if err := s.creds.Clear(); err != nil {
			s.log.Warn().Err(err).Msg("Could not clear expired credentials")
		}
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = creds.Token
	user := creds.User
	s.user = &user
	s.isAuthenticated = false // Provisional until validated.
}

// Login authenticates with the backend. On success the token/profile pair
// is stored both in memory and durably; on failure only the error message
// changes and nothing is persisted.
func (s *Session) Login(ctx context.Context, email, password string) error {
	req := model.LoginRequest{Email: email, Password: password}
	if fields := validator.Struct(req); fields != nil {
		return s.fail(&apiclient.APIError{
			Code:    apiclient.ErrCodeValidation,
			Message: apiclient.GetMessage(apiclient.ErrCodeValidation),
			Fields:  fields,
		})
	}

	s.setLoading(true)
	resp, err := s.auth.Login(ctx, req)
	if err != nil {
		return s.fail(err)
	}

	if err := s.creds.Save(credstore.Credentials{Token: resp.AccessToken, User: resp.User}); err != nil {
		s.log.Warn().Err(err).Msg("Could not persist credentials; session will not survive restart")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = resp.AccessToken
	user := resp.User
	s.user = &user
	s.isAuthenticated = true
	s.isLoading = false
	s.err = ""

	s.log.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("Logged in")
	return nil
}

// Logout notifies the backend best-effort, then unconditionally clears
// in-memory and persisted state.
func (s *Session) Logout(ctx context.Context) {
	if s.Token() != "" {
		if err := s.auth.Logout(ctx); err != nil {
			s.log.Debug().Err(err).Msg("Remote logout failed, clearing local state anyway")
		}
	}
	s.clearAll()
}

// ValidateProfile confirms the stored token against the server. On success
// the stored profile is refreshed and the session becomes authenticated.
// An explicit failure (including 401) logs the user out. A timeout leaves
// credentials in place so the bootstrapper may retry; it does not count as
// proof either way.
func (s *Session) ValidateProfile(ctx context.Context) error {
	s.mu.Lock()
	if s.validating {
		s.mu.Unlock()
		return ErrValidationInFlight
	}
	if s.token == "" {
		s.mu.Unlock()
		return ErrNotAuthenticated
	}
	s.validating = true
	s.isLoading = true
	s.err = ""
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.validating = false
		s.mu.Unlock()
	}()

	vctx, cancel := context.WithTimeout(ctx, s.validateTimeout)
	defer cancel()

	profile, err := s.auth.Profile(vctx)
	if err != nil {
		if apiclient.CodeOf(err) == apiclient.ErrCodeTimeout {
			s.log.Warn().Msg("Profile validation timed out")
			s.mu.Lock()
			s.isLoading = false
			s.err = apiclient.ErrorMessage(err, "")
			s.mu.Unlock()
			return err
		}
		s.log.Warn().Err(err).Msg("Profile validation failed, logging out")
		s.clearAll()
		s.setError(apiclient.ErrorMessage(err, "Session validation failed"))
		return err
	}

	if err := s.creds.Save(credstore.Credentials{Token: s.Token(), User: *profile}); err != nil {
		s.log.Warn().Err(err).Msg("Could not refresh stored profile")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = profile
	s.isAuthenticated = true
	s.isLoading = false
	s.err = ""
	return nil
}

// Refresh exchanges the current token for a fresh one. Failure logs the
// user out, mirroring validation failure.
func (s *Session) Refresh(ctx context.Context) error {
	s.setLoading(true)
	newToken, err := s.auth.Refresh(ctx)
	if err != nil {
		s.clearAll()
		s.setError(apiclient.ErrorMessage(err, "Token refresh failed"))
		return err
	}

	s.mu.Lock()
	s.token = newToken
	s.isLoading = false
	user := s.user
	s.mu.Unlock()

	if user != nil {
		if err := s.creds.Save(credstore.Credentials{Token: newToken, User: *user}); err != nil {
			s.log.Warn().Err(err).Msg("Could not persist refreshed token")
		}
	}
	return nil
}

// ForgotPassword is a stateless pass-through; it never mutates identity
// state beyond the error message.
func (s *Session) ForgotPassword(ctx context.Context, email string) (string, error) {
	if fields := validator.Struct(model.ForgotPasswordRequest{Email: email}); fields != nil {
		return "", s.fail(&apiclient.APIError{
			Code:    apiclient.ErrCodeValidation,
			Message: "Please enter a valid email address",
			Fields:  fields,
		})
	}

	s.setLoading(true)
	resp, err := s.auth.ForgotPassword(ctx, email)
	if err != nil {
		return "", s.fail(err)
	}
	s.settle()
	return resp.Message, nil
}

// ResetPassword consumes a reset token; stateless like ForgotPassword.
func (s *Session) ResetPassword(ctx context.Context, resetToken, password string) (string, error) {
	req := model.ResetPasswordRequest{Token: resetToken, Password: password}
	if fields := validator.Struct(req); fields != nil {
		return "", s.fail(&apiclient.APIError{
			Code:    apiclient.ErrCodeValidation,
			Message: apiclient.GetMessage(apiclient.ErrCodeValidation),
			Fields:  fields,
		})
	}

	s.setLoading(true)
	resp, err := s.auth.ResetPassword(ctx, resetToken, password)
	if err != nil {
		return "", s.fail(err)
	}
	s.settle()
	return resp.Message, nil
}

// SetPassword consumes an invite token; stateless like ForgotPassword.
func (s *Session) SetPassword(ctx context.Context, inviteToken, password string) (string, error) {
	req := model.SetPasswordRequest{Token: inviteToken, Password: password}
	if fields := validator.Struct(req); fields != nil {
		return "", s.fail(&apiclient.APIError{
			Code:    apiclient.ErrCodeValidation,
			Message: apiclient.GetMessage(apiclient.ErrCodeValidation),
			Fields:  fields,
		})
	}

	s.setLoading(true)
	resp, err := s.auth.SetPassword(ctx, inviteToken, password)
	if err != nil {
		return "", s.fail(err)
	}
	s.settle()
	return resp.Message, nil
}

// ForceLogout is the 401-interception hook: it clears persisted and
// in-memory identity without a remote call.
func (s *Session) ForceLogout() {
	s.log.Info().Msg("Unauthorized response intercepted, clearing session")
	s.clearAll()
	s.setError(apiclient.GetMessage(apiclient.ErrCodeUnauthorized))
}

// ClearError resets the stored error message.
func (s *Session) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

func (s *Session) clearAll() {
	if err := s.creds.Clear(); err != nil {
		s.log.Warn().Err(err).Msg("Could not clear stored credentials")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
	s.isAuthenticated = false
	s.isLoading = false
	s.err = ""
}

func (s *Session) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoading = v
	if v {
		s.err = ""
	}
}

func (s *Session) setError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = msg
}

// settle marks a successful stateless operation: loading off, error clear.
func (s *Session) settle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoading = false
	s.err = ""
}

// fail records a user-facing error message and returns the original error.
func (s *Session) fail(err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoading = false
	s.isAuthenticated = s.isAuthenticated && apiclient.CodeOf(err) != apiclient.ErrCodeUnauthorized
	s.err = apiclient.ErrorMessage(err, "")
	return err
}
