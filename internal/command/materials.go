package command

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/maraki-learning/adminctl/internal/model"
	"github.com/maraki-learning/adminctl/internal/store"
)

func newMaterialsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "materials",
		Short:             "Manage learning materials",
		PersistentPreRunE: requireAuth(app),
	}

	cmd.AddCommand(
		newMaterialsListCmd(app),
		newMaterialsGetCmd(app),
		newMaterialsCreateCmd(app),
		newMaterialsUpdateCmd(app),
		newMaterialsDeleteCmd(app),
		newMaterialsUploadCmd(app),
	)
	return cmd
}

func newMaterialsListCmd(app *App) *cobra.Command {
	var search, category, mtype, difficulty string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List materials",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Materials.FetchAll(cmd.Context()); err != nil {
				return fmt.Errorf("%s", app.Materials.Err())
			}

			app.Materials.SetFilters(store.FilterPatch{
				Search:     &search,
				Category:   &category,
				Type:       &mtype,
				Difficulty: &difficulty,
			})

			rows := make([][]string, 0)
			for _, m := range app.Materials.Filtered() {
				rows = append(rows, []string{
					m.ID, m.Title, string(m.Type), orDash(m.Category),
					string(m.Difficulty), fmt.Sprintf("%d", m.ViewCount), shortDate(m.CreatedAt),
				})
			}
			table([]string{"ID", "TITLE", "TYPE", "CATEGORY", "DIFFICULTY", "VIEWS", "CREATED"}, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "free-text search over title and description")
	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	cmd.Flags().StringVar(&mtype, "type", "", "filter by type (pdf|video|image|document|link|presentation)")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "filter by difficulty (easy|medium|hard)")
	return cmd
}

func newMaterialsGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one material",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Materials.FetchByID(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("%s", app.Materials.Err())
			}
			m := app.Materials.Selected()
			fmt.Printf("Title:      %s\nType:       %s\nCategory:   %s\nDifficulty: %s\nURL:        %s\nViews:      %d\nCreated:    %s\n",
				m.Title, m.Type, orDash(m.Category), m.Difficulty, orDash(m.URL), m.ViewCount, shortDate(m.CreatedAt))
			return nil
		},
	}
}

func newMaterialsCreateCmd(app *App) *cobra.Command {
	var req model.CreateMaterialRequest
	var mtype, difficulty string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a material",
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Type = model.MaterialType(mtype)
			req.Difficulty = model.Difficulty(difficulty)

			created, err := app.Materials.Create(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("%s", app.Materials.Err())
			}
			fmt.Printf("Created material %q (%s)\n", created.Title, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Title, "title", "", "material title")
	cmd.Flags().StringVar(&req.Description, "description", "", "material description")
	cmd.Flags().StringVar(&mtype, "type", "", "type (pdf|video|image|document|link|presentation)")
	cmd.Flags().StringVar(&req.URL, "url", "", "public URL, e.g. from a prior upload")
	cmd.Flags().StringVar(&req.Category, "category", "", "category")
	cmd.Flags().StringVar(&difficulty, "difficulty", "medium", "difficulty (easy|medium|hard)")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("type")
	return cmd
}

func newMaterialsUpdateCmd(app *App) *cobra.Command {
	var req model.UpdateMaterialRequest
	var mtype, difficulty string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a material",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Type = model.MaterialType(mtype)
			req.Difficulty = model.Difficulty(difficulty)

			updated, err := app.Materials.Update(cmd.Context(), args[0], req)
			if err != nil {
				return fmt.Errorf("%s", app.Materials.Err())
			}
			fmt.Printf("Updated material %s\n", updated.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Title, "title", "", "new title")
	cmd.Flags().StringVar(&req.Description, "description", "", "new description")
	cmd.Flags().StringVar(&mtype, "type", "", "new type")
	cmd.Flags().StringVar(&req.URL, "url", "", "new public URL")
	cmd.Flags().StringVar(&req.Category, "category", "", "new category")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "new difficulty")
	return cmd
}

func newMaterialsDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a material",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				answer, err := promptLine(fmt.Sprintf("Delete material %s? [y/N]: ", args[0]))
				if err != nil {
					return err
				}
				if answer != "y" && answer != "Y" {
					fmt.Println("Aborted.")
					return nil
				}
			}
			if err := app.Materials.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("%s", app.Materials.Err())
			}
			fmt.Printf("Deleted material %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newMaterialsUploadCmd(app *App) *cobra.Command {
	var mtype string

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a file and print its public URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer f.Close()

			result, err := app.Materials.Upload(cmd.Context(), filepath.Base(args[0]), f, mtype)
			if err != nil {
				return fmt.Errorf("%s", app.Materials.Err())
			}
			fmt.Printf("Uploaded %s (%d bytes)\nURL: %s\n", result.OriginalFilename, result.Bytes, result.SecureURL)
			return nil
		},
	}

	cmd.Flags().StringVar(&mtype, "type", "document", "material type hint for the object store")
	return cmd
}
