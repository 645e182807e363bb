package command

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// promptLine reads one trimmed line from stdin, showing the label first.
func promptLine(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echo.
func promptPassword(label string) (string, error) {
	fmt.Print(label)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // Newline after password input
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}

func newLoginCmd(app *App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the platform",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if email == "" {
				if email, err = promptLine("Email: "); err != nil {
					return err
				}
			}
			password, err := promptPassword("Password: ")
			if err != nil {
				return err
			}

			if err := app.Session.Login(cmd.Context(), email, password); err != nil {
				return fmt.Errorf("login failed: %s", app.Session.Snapshot().Err)
			}

			// A fresh login supersedes whatever the bootstrapper decided
			// earlier in this run.
			app.Boot.Reset()

			snap := app.Session.Snapshot()
			fmt.Printf("Logged in as %s (%s)\n", snap.User.Name, snap.User.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email (prompted when omitted)")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session and clear stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Session.Logout(cmd.Context())
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "whoami",
		Short:   "Show the authenticated identity",
		PreRunE: requireAuth(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := app.Session.Snapshot()
			fmt.Printf("%s <%s>\nRole: %s\n", snap.User.Name, snap.User.Email, snap.User.Role)
			return nil
		},
	}
}

func newForgotPasswordCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "forgot-password <email>",
		Short: "Request a password-reset email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := app.Session.ForgotPassword(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("%s", app.Session.Snapshot().Err)
			}
			if msg == "" {
				msg = "Reset instructions sent. Check your inbox."
			}
			fmt.Println(msg)
			return nil
		},
	}
}

func newResetPasswordCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-password <token>",
		Short: "Set a new password using a reset token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := promptPassword("New password: ")
			if err != nil {
				return err
			}
			confirm, err := promptPassword("Confirm password: ")
			if err != nil {
				return err
			}
			if password != confirm {
				return fmt.Errorf("passwords do not match")
			}

			msg, err := app.Session.ResetPassword(cmd.Context(), args[0], password)
			if err != nil {
				return fmt.Errorf("%s", app.Session.Snapshot().Err)
			}
			if msg == "" {
				msg = "Password updated. You can log in now."
			}
			fmt.Println(msg)
			return nil
		},
	}
}

func newSetPasswordCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-password <invite-token>",
		Short: "Choose a first password from an invitation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := promptPassword("New password: ")
			if err != nil {
				return err
			}

			msg, err := app.Session.SetPassword(cmd.Context(), args[0], password)
			if err != nil {
				return fmt.Errorf("%s", app.Session.Snapshot().Err)
			}
			if msg == "" {
				msg = "Password set. You can log in now."
			}
			fmt.Println(msg)
			return nil
		},
	}
}
