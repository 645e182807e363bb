package command

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/maraki-learning/adminctl/internal/model"
	"github.com/maraki-learning/adminctl/internal/monitor"
)

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Short:   "Show platform statistics",
		PreRunE: requireAuth(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			snap := app.Session.Snapshot()

			// Moderators cannot list users; their dashboard simply
			// omits the user cards.
			var users []model.User
			if snap.User.Role.CanManageUsers() {
				if err := app.Users.FetchAll(ctx); err != nil {
					return fmt.Errorf("%s", app.Users.Err())
				}
				users = app.Users.Items()
			}
			if err := app.Quizzes.FetchAll(ctx); err != nil {
				return fmt.Errorf("%s", app.Quizzes.Err())
			}
			if err := app.Materials.FetchAll(ctx); err != nil {
				return fmt.Errorf("%s", app.Materials.Err())
			}

			stats := model.ComputeDashboardStats(users, app.Quizzes.Items(), app.Materials.Items(), time.Now())

			rows := [][]string{
				{"Quizzes", fmt.Sprintf("%d", stats.TotalQuizzes), fmt.Sprintf("%d active, %d inactive", stats.ActiveQuizzes, stats.InactiveQuizzes), fmt.Sprintf("+%d this week", stats.RecentQuizzes)},
				{"Materials", fmt.Sprintf("%d", stats.TotalMaterials), "-", fmt.Sprintf("+%d this week", stats.RecentMaterials)},
			}
			if snap.User.Role.CanManageUsers() {
				rows = append([][]string{
					{"Users", fmt.Sprintf("%d", stats.TotalUsers), fmt.Sprintf("%d active", stats.ActiveUsers), fmt.Sprintf("+%d this week", stats.RecentUsers)},
				}, rows...)
			}
			table([]string{"RESOURCE", "TOTAL", "BREAKDOWN", "TREND"}, rows)
			return nil
		},
	}
}

func newMonitorCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "monitor",
		Short:   "Follow the live activity feed (Ctrl+C to stop)",
		PreRunE: requireAuth(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err := app.Monitor.Stream(ctx, func(ev monitor.ActivityEvent) {
				fmt.Printf("%s  %-8s %-11s %q by %s\n",
					ev.Timestamp.Format(time.TimeOnly), ev.EntityKind, ev.Action, ev.EntityName, ev.Actor)
			})
			if ctx.Err() != nil {
				fmt.Println("\nStream closed.")
				return nil
			}
			return err
		},
	}
}
