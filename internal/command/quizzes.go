package command

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/maraki-learning/adminctl/internal/model"
	"github.com/maraki-learning/adminctl/internal/store"
)

// loadJSONFile decodes a request payload from a file, rejecting unknown
// fields so typos surface before the request is sent.
func loadJSONFile(path string, dst interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func newQuizzesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "quizzes",
		Short:             "Manage quizzes",
		PersistentPreRunE: requireAuth(app),
	}

	cmd.AddCommand(
		newQuizzesListCmd(app),
		newQuizzesGetCmd(app),
		newQuizzesCreateCmd(app),
		newQuizzesUpdateCmd(app),
		newQuizzesDeleteCmd(app),
		newQuizzesActivateCmd(app, true),
		newQuizzesActivateCmd(app, false),
	)
	return cmd
}

func newQuizzesListCmd(app *App) *cobra.Command {
	var search, category, difficulty, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List quizzes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Quizzes.FetchAll(cmd.Context()); err != nil {
				return fmt.Errorf("%s", app.Quizzes.Err())
			}

			app.Quizzes.SetFilters(store.FilterPatch{
				Search:     &search,
				Category:   &category,
				Difficulty: &difficulty,
				Status:     &status,
			})

			rows := make([][]string, 0)
			for _, q := range app.Quizzes.Filtered() {
				rows = append(rows, []string{
					q.ID, q.Title, orDash(q.Category), string(q.Difficulty),
					fmt.Sprintf("%d", q.TotalQuestions), activeLabel(q.IsActive), shortDate(q.CreatedAt),
				})
			}
			table([]string{"ID", "TITLE", "CATEGORY", "DIFFICULTY", "QUESTIONS", "STATUS", "CREATED"}, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "free-text search over title and description")
	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "filter by difficulty (easy|medium|hard)")
	cmd.Flags().StringVar(&status, "status", "", "filter by status (active|inactive)")
	return cmd
}

func newQuizzesGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one quiz with its questions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Quizzes.FetchByID(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("%s", app.Quizzes.Err())
			}
			q := app.Quizzes.Selected()

			fmt.Printf("Title:      %s\nCategory:   %s\nDifficulty: %s\nDuration:   %d min\nPassing:    %d%%\nStatus:     %s\nRandomized: %s\nQuestions:  %d (%d points)\n",
				q.Title, orDash(q.Category), q.Difficulty, q.DurationMinutes,
				q.PassingScorePercentage, activeLabel(q.IsActive), yesNo(q.IsRandomized),
				q.TotalQuestions, q.TotalPoints)
			for _, question := range q.Questions {
				fmt.Printf("\n%d. [%s, %dpt] %s\n", question.OrderIndex+1, question.QuestionType, question.Points, question.QuestionText)
				for _, opt := range question.Options {
					marker := " "
					if opt.IsCorrect {
						marker = "*"
					}
					fmt.Printf("   %s %s\n", marker, opt.OptionText)
				}
			}
			return nil
		},
	}
}

func newQuizzesCreateCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "create --file quiz.json",
		Short: "Create a quiz from a JSON payload",
		RunE: func(cmd *cobra.Command, args []string) error {
			var req model.CreateQuizRequest
			if err := loadJSONFile(file, &req); err != nil {
				return err
			}

			created, err := app.Quizzes.Create(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("%s", app.Quizzes.Err())
			}
			fmt.Printf("Created quiz %q (%s) with %d questions\n", created.Title, created.ID, created.TotalQuestions)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "path to the quiz JSON payload")
	cmd.MarkFlagRequired("file")
	return cmd
}

func newQuizzesUpdateCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "update <id> --file quiz.json",
		Short: "Update a quiz from a JSON payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req model.UpdateQuizRequest
			if err := loadJSONFile(file, &req); err != nil {
				return err
			}

			updated, err := app.Quizzes.Update(cmd.Context(), args[0], req)
			if err != nil {
				return fmt.Errorf("%s", app.Quizzes.Err())
			}
			fmt.Printf("Updated quiz %s\n", updated.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "path to the quiz JSON payload")
	cmd.MarkFlagRequired("file")
	return cmd
}

func newQuizzesDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a quiz",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				answer, err := promptLine(fmt.Sprintf("Delete quiz %s? [y/N]: ", args[0]))
				if err != nil {
					return err
				}
				if answer != "y" && answer != "Y" {
					fmt.Println("Aborted.")
					return nil
				}
			}
			if err := app.Quizzes.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("%s", app.Quizzes.Err())
			}
			fmt.Printf("Deleted quiz %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newQuizzesActivateCmd(app *App, activate bool) *cobra.Command {
	use, short := "activate <id>", "Make a quiz available to learners"
	if !activate {
		use, short = "deactivate <id>", "Hide a quiz from learners"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if activate {
				_, err = app.Quizzes.Activate(cmd.Context(), args[0])
			} else {
				_, err = app.Quizzes.Deactivate(cmd.Context(), args[0])
			}
			if err != nil {
				return fmt.Errorf("%s", app.Quizzes.Err())
			}
			fmt.Printf("Quiz %s is now %s\n", args[0], activeLabel(activate))
			return nil
		},
	}
}
