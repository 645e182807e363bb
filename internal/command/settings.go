package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect console settings and session",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			RunE: func(cmd *cobra.Command, args []string) error {
				table([]string{"SETTING", "VALUE"}, [][]string{
					{"API base URL", app.Config.APIBaseURL},
					{"Request timeout", app.Config.RequestTimeout.String()},
					{"Validation timeout", app.Config.ValidateTimeout.String()},
					{"Credentials file", app.Config.CredentialsFile},
					{"Log level", app.Config.LogLevel},
					{"Log format", app.Config.LogFormat},
				})
				return nil
			},
		},
		&cobra.Command{
			Use:     "refresh-token",
			Short:   "Exchange the current token for a fresh one",
			PreRunE: requireAuth(app),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.Session.Refresh(cmd.Context()); err != nil {
					return fmt.Errorf("%s", app.Session.Snapshot().Err)
				}
				fmt.Println("Token refreshed.")
				return nil
			},
		},
	)
	return cmd
}

func newHealthCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check backend availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := app.Health.Check(cmd.Context())
			if err != nil {
				return fmt.Errorf("backend unreachable: %w", err)
			}
			fmt.Printf("%s: %s (%s)\n", status.Service, status.Status, status.Timestamp.Format("2006-01-02 15:04:05"))
			return nil
		},
	}
}
