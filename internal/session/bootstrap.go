package session

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/maraki-learning/adminctl/internal/apiclient"
)

// BootState is the bootstrapper's explicit state, replacing the flag dance
// the original startup flow used.
type BootState string

const (
	StateIdle            BootState = "idle"
	StateValidating      BootState = "validating"
	StateAuthenticated   BootState = "authenticated"
	StateUnauthenticated BootState = "unauthenticated"
	StateFailed          BootState = "failed"
)

// maxValidationAttempts caps timeout-triggered retries. The first timeout
// sends the machine back to Idle for one fresh attempt; the second lands
// in Failed. This replaces the unbounded reset-the-flag retry behavior,
// which risked a request storm against a consistently slow backend.
const maxValidationAttempts = 2

// Bootstrapper reconciles persisted credentials with server-confirmed
// identity before any protected operation runs. It fires profile
// validation at most once per run unless a timeout explicitly re-arms it.
type Bootstrapper struct {
	session  *Session
	state    BootState
	attempts int
	log      zerolog.Logger
}

// NewBootstrapper creates a Bootstrapper in the Idle state.
func NewBootstrapper(s *Session, log zerolog.Logger) *Bootstrapper {
	return &Bootstrapper{
		session: s,
		state:   StateIdle,
		log:     log.With().Str("component", "bootstrap").Logger(),
	}
}

// State returns the current machine state.
func (b *Bootstrapper) State() BootState {
	return b.state
}

// Reset re-arms the machine after a terminal state, e.g. following a fresh
// login.
func (b *Bootstrapper) Reset() {
	b.state = StateIdle
	b.attempts = 0
}

// Run drives the machine to a terminal state and returns it. Protected
// commands call Run before touching any store and refuse to proceed unless
// it lands in Authenticated.
func (b *Bootstrapper) Run(ctx context.Context) BootState {
	if b.state != StateIdle {
		return b.state
	}

	b.session.Bootstrap()

	for {
		snap := b.session.Snapshot()

		switch {
		case snap.IsAuthenticated:
			b.transition(StateAuthenticated)
			return b.state

		case snap.Token == "":
			// No token (or it was purged along the way): nothing to
			// validate.
			b.transition(StateUnauthenticated)
			return b.state

		case b.attempts >= maxValidationAttempts:
			// Repeated timeouts: abandon for good and purge, so the
			// next run starts clean instead of looping.
			b.session.ForceLogout()
			b.transition(StateFailed)
			return b.state
		}

		b.attempts++
		b.transition(StateValidating)

		err := b.session.ValidateProfile(ctx)
		switch {
		case err == nil:
			b.transition(StateAuthenticated)
			return b.state

		case apiclient.CodeOf(err) == apiclient.ErrCodeTimeout:
			// Abandon this attempt; loop back through Idle for the one
			// permitted retry.
			b.log.Warn().Int("attempt", b.attempts).Msg("Validation timed out")
			b.transition(StateIdle)

		default:
			// Explicit failure: the session has already purged itself.
			b.transition(StateUnauthenticated)
			return b.state
		}
	}
}

func (b *Bootstrapper) transition(next BootState) {
	if b.state == next {
		return
	}
	b.log.Debug().Str("from", string(b.state)).Str("to", string(next)).Msg("State transition")
	b.state = next
}
