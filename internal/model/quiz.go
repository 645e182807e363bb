package model

import (
	"errors"
	"fmt"
	"time"
)

// Difficulty enumerates difficulty levels shared by quizzes, questions
// and materials.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// QuestionType enumerates supported question formats.
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple-choice"
	QuestionTypeTrueFalse      QuestionType = "true-false"
)

// Quiz represents a quiz entity with its full question tree.
type Quiz struct {
	ID                     string     `json:"id"`
	Title                  string     `json:"title"`
	Description            string     `json:"description,omitempty"`
	Category               string     `json:"category,omitempty"`
	Difficulty             Difficulty `json:"difficulty"`
	DurationMinutes        int        `json:"durationMinutes"`
	PassingScorePercentage int        `json:"passingScorePercentage"`
	MaxAttempts            int        `json:"maxAttempts"`
	IsActive               bool       `json:"isActive"`
	IsRandomized           bool       `json:"isRandomized"`
	ShowCorrectAnswers     bool       `json:"showCorrectAnswers"`
	ShowExplanations       bool       `json:"showExplanations"`
	TotalQuestions         int        `json:"totalQuestions"`
	TotalPoints            int        `json:"totalPoints"`
	Questions              []Question `json:"questions"`
	CreatedAt              time.Time  `json:"createdAt"`
	UpdatedAt              time.Time  `json:"updatedAt"`
}

// EntityID implements store.Entity.
func (q Quiz) EntityID() string { return q.ID }

// Question is a single quiz question. Option order is meaningful: it is
// both the display order and the scoring order.
type Question struct {
	ID               string           `json:"id"`
	QuestionText     string           `json:"questionText"`
	Explanation      string           `json:"explanation,omitempty"`
	QuestionType     QuestionType     `json:"questionType"`
	Difficulty       Difficulty       `json:"difficulty"`
	Points           int              `json:"points"`
	OrderIndex       int              `json:"orderIndex"`
	TimeLimitSeconds int              `json:"timeLimitSeconds,omitempty"`
	Options          []QuestionOption `json:"options"`
}

// QuestionOption is one answer choice within a question.
type QuestionOption struct {
	ID         string `json:"id"`
	OptionText string `json:"optionText"`
	OrderIndex int    `json:"orderIndex"`
	IsCorrect  bool   `json:"isCorrect,omitempty"`
}

// QuestionPayload is a question as submitted on create/update (no server-
// assigned IDs yet).
type QuestionPayload struct {
	QuestionText     string          `json:"questionText" validate:"required,min=5"`
	Explanation      string          `json:"explanation,omitempty"`
	QuestionType     QuestionType    `json:"questionType" validate:"required,oneof=multiple-choice true-false"`
	Difficulty       Difficulty      `json:"difficulty" validate:"required,oneof=easy medium hard"`
	Points           int             `json:"points" validate:"required,min=1,max=10"`
	OrderIndex       int             `json:"orderIndex" validate:"min=0"`
	TimeLimitSeconds int             `json:"timeLimitSeconds,omitempty" validate:"omitempty,min=1,max=3600"`
	Options          []OptionPayload `json:"options" validate:"min=2,dive"`
}

// OptionPayload is an answer choice as submitted on create/update.
type OptionPayload struct {
	OptionText string `json:"optionText" validate:"required,min=1"`
	OrderIndex int    `json:"orderIndex" validate:"min=0"`
	IsCorrect  bool   `json:"isCorrect,omitempty"`
}

// CreateQuizRequest is the payload for creating a new quiz.
type CreateQuizRequest struct {
	Title                  string            `json:"title" validate:"required,min=3,max=200"`
	Description            string            `json:"description,omitempty" validate:"max=1000"`
	Category               string            `json:"category,omitempty" validate:"max=100"`
	Difficulty             Difficulty        `json:"difficulty" validate:"required,oneof=easy medium hard"`
	DurationMinutes        int               `json:"durationMinutes" validate:"required,min=1,max=300"`
	PassingScorePercentage int               `json:"passingScorePercentage" validate:"min=0,max=100"`
	MaxAttempts            int               `json:"maxAttempts,omitempty" validate:"min=0,max=10"`
	IsRandomized           bool              `json:"isRandomized,omitempty"`
	ShowCorrectAnswers     bool              `json:"showCorrectAnswers,omitempty"`
	ShowExplanations       bool              `json:"showExplanations,omitempty"`
	Questions              []QuestionPayload `json:"questions" validate:"min=1,dive"`
}

// UpdateQuizRequest is the payload for updating an existing quiz. A nil
// Questions slice leaves the question tree untouched.
type UpdateQuizRequest struct {
	Title                  string            `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description            string            `json:"description,omitempty" validate:"max=1000"`
	Category               string            `json:"category,omitempty" validate:"max=100"`
	Difficulty             Difficulty        `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
	DurationMinutes        int               `json:"durationMinutes,omitempty" validate:"omitempty,min=1,max=300"`
	PassingScorePercentage *int              `json:"passingScorePercentage,omitempty" validate:"omitempty,min=0,max=100"`
	MaxAttempts            *int              `json:"maxAttempts,omitempty" validate:"omitempty,min=0,max=10"`
	IsRandomized           *bool             `json:"isRandomized,omitempty"`
	ShowCorrectAnswers     *bool             `json:"showCorrectAnswers,omitempty"`
	ShowExplanations       *bool             `json:"showExplanations,omitempty"`
	Questions              []QuestionPayload `json:"questions,omitempty" validate:"omitempty,min=1,dive"`
}

// ErrCorrectOptionCount is returned when a question's marked-correct option
// count violates the policy for its question type.
var ErrCorrectOptionCount = errors.New("invalid correct option count")

// ValidateQuestions enforces the rules struct tags cannot express: every
// multiple-choice and true-false question must have exactly one option
// marked correct, and true-false questions carry exactly two options.
func ValidateQuestions(questions []QuestionPayload) error {
	for i, q := range questions {
		correct := 0
		for _, opt := range q.Options {
			if opt.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return fmt.Errorf("question %d: %w: got %d, want exactly 1", i+1, ErrCorrectOptionCount, correct)
		}
		if q.QuestionType == QuestionTypeTrueFalse && len(q.Options) != 2 {
			return fmt.Errorf("question %d: true-false questions need exactly 2 options, got %d", i+1, len(q.Options))
		}
	}
	return nil
}

// Validate runs the question-tree policy checks for a create payload.
func (r CreateQuizRequest) Validate() error {
	return ValidateQuestions(r.Questions)
}

// Validate runs the question-tree policy checks for an update payload.
// An absent question tree is valid.
func (r UpdateQuizRequest) Validate() error {
	if r.Questions == nil {
		return nil
	}
	return ValidateQuestions(r.Questions)
}
