package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maraki-learning/adminctl/internal/model"
	"github.com/maraki-learning/adminctl/internal/store"
)

func newUsersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage platform users",
		// User management is gated to admin and superadmin; moderators
		// only see quizzes and materials.
		PersistentPreRunE: requireRole(app, model.Role.CanManageUsers),
	}

	cmd.AddCommand(
		newUsersListCmd(app),
		newUsersGetCmd(app),
		newUsersCreateCmd(app),
		newUsersUpdateCmd(app),
		newUsersDeleteCmd(app),
	)
	return cmd
}

func newUsersListCmd(app *App) *cobra.Command {
	var search, role, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Users.FetchAll(cmd.Context()); err != nil {
				return fmt.Errorf("%s", app.Users.Err())
			}

			app.Users.SetFilters(store.FilterPatch{Search: &search, Role: &role, Status: &status})

			rows := make([][]string, 0)
			for _, u := range app.Users.Filtered() {
				rows = append(rows, []string{u.ID, u.Name, u.Email, string(u.Role), activeLabel(u.IsActive), shortDate(u.CreatedAt)})
			}
			table([]string{"ID", "NAME", "EMAIL", "ROLE", "STATUS", "CREATED"}, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "free-text search over name and email")
	cmd.Flags().StringVar(&role, "role", "", "filter by role (admin|moderator|superadmin)")
	cmd.Flags().StringVar(&status, "status", "", "filter by status (active|inactive)")
	return cmd
}

func newUsersGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Users.FetchByID(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("%s", app.Users.Err())
			}
			u := app.Users.Selected()
			fmt.Printf("ID:      %s\nName:    %s\nEmail:   %s\nRole:    %s\nStatus:  %s\nCreated: %s\nUpdated: %s\n",
				u.ID, u.Name, u.Email, u.Role, activeLabel(u.IsActive), shortDate(u.CreatedAt), shortDate(u.UpdatedAt))
			return nil
		},
	}
}

func newUsersCreateCmd(app *App) *cobra.Command {
	var name, email, role string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if name == "" {
				if name, err = promptLine("Name: "); err != nil {
					return err
				}
			}
			if email == "" {
				if email, err = promptLine("Email: "); err != nil {
					return err
				}
			}

			req := model.CreateUserRequest{Name: name, Email: email, Role: model.Role(role)}
			created, err := app.Users.Create(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("%s", app.Users.Err())
			}
			fmt.Printf("Created user %s (%s)\n", created.Name, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "full name (prompted when omitted)")
	cmd.Flags().StringVar(&email, "email", "", "email address (prompted when omitted)")
	cmd.Flags().StringVar(&role, "role", "moderator", "role (admin|moderator|superadmin)")
	return cmd
}

func newUsersUpdateCmd(app *App) *cobra.Command {
	var name, email, role string
	var activate, deactivate bool

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := model.UpdateUserRequest{Name: name, Email: email, Role: model.Role(role)}
			if activate || deactivate {
				if activate && deactivate {
					return fmt.Errorf("--activate and --deactivate are mutually exclusive")
				}
				req.IsActive = &activate
			}

			updated, err := app.Users.Update(cmd.Context(), args[0], req)
			if err != nil {
				return fmt.Errorf("%s", app.Users.Err())
			}
			fmt.Printf("Updated user %s\n", updated.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new full name")
	cmd.Flags().StringVar(&email, "email", "", "new email address")
	cmd.Flags().StringVar(&role, "role", "", "new role (admin|moderator|superadmin)")
	cmd.Flags().BoolVar(&activate, "activate", false, "mark the account active")
	cmd.Flags().BoolVar(&deactivate, "deactivate", false, "mark the account inactive")
	return cmd
}

func newUsersDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				answer, err := promptLine(fmt.Sprintf("Delete user %s? [y/N]: ", args[0]))
				if err != nil {
					return err
				}
				if answer != "y" && answer != "Y" {
					fmt.Println("Aborted.")
					return nil
				}
			}
			if err := app.Users.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("%s", app.Users.Err())
			}
			fmt.Printf("Deleted user %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
