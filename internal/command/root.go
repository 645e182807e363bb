// Package command is the console's presentation layer: a cobra command
// tree that consumes the session and resource stores. Commands never talk
// to the backend directly; they go through the stores so list state,
// loading flags and error messages behave the same everywhere.
package command

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/maraki-learning/adminctl/internal/api"
	"github.com/maraki-learning/adminctl/internal/config"
	"github.com/maraki-learning/adminctl/internal/model"
	"github.com/maraki-learning/adminctl/internal/monitor"
	"github.com/maraki-learning/adminctl/internal/session"
	"github.com/maraki-learning/adminctl/internal/store"
)

// ErrNotLoggedIn is returned by guarded commands when bootstrap does not
// end authenticated.
var ErrNotLoggedIn = errors.New("not logged in, run 'adminctl login' first")

// ErrRoleDenied is returned when the current role may not use a command.
var ErrRoleDenied = errors.New("your role does not allow this action")

// App bundles everything the command tree needs. It is assembled once in
// main and threaded through cobra via closures, not globals.
type App struct {
	Config    *config.Config
	Log       zerolog.Logger
	Session   *session.Session
	Boot      *session.Bootstrapper
	Users     *store.UsersStore
	Quizzes   *store.QuizzesStore
	Materials *store.MaterialsStore
	Monitor   *monitor.Client
	Health    *api.HealthClient
}

// NewRootCmd builds the full command tree.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "adminctl",
		Short:         "Administrator console for the Maraki learning platform",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newForgotPasswordCmd(app),
		newResetPasswordCmd(app),
		newSetPasswordCmd(app),
		newUsersCmd(app),
		newQuizzesCmd(app),
		newMaterialsCmd(app),
		newDashboardCmd(app),
		newMonitorCmd(app),
		newSettingsCmd(app),
		newHealthCmd(app),
	)

	return root
}

// requireAuth is the route guard: it drives the bootstrapper to a terminal
// state and refuses to proceed unless that state is Authenticated.
func requireAuth(app *App) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		state := app.Boot.Run(cmd.Context())
		if state != session.StateAuthenticated {
			if msg := app.Session.Snapshot().Err; msg != "" {
				return fmt.Errorf("%w (%s)", ErrNotLoggedIn, msg)
			}
			return ErrNotLoggedIn
		}
		return nil
	}
}

// requireRole layers a role gate on top of requireAuth.
func requireRole(app *App, allowed func(model.Role) bool) func(cmd *cobra.Command, args []string) error {
	auth := requireAuth(app)
	return func(cmd *cobra.Command, args []string) error {
		if err := auth(cmd, args); err != nil {
			return err
		}
		snap := app.Session.Snapshot()
		if snap.User == nil || !allowed(snap.User.Role) {
			return ErrRoleDenied
		}
		return nil
	}
}
