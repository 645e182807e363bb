package model

import (
	"errors"
	"strings"
	"testing"
)

func question(qt QuestionType, correct ...bool) QuestionPayload {
	q := QuestionPayload{
		QuestionText: "Is the sky blue on a clear day?",
		QuestionType: qt,
		Difficulty:   DifficultyEasy,
		Points:       1,
	}
	for i, c := range correct {
		q.Options = append(q.Options, OptionPayload{
			OptionText: "option",
			OrderIndex: i,
			IsCorrect:  c,
		})
	}
	return q
}

func TestValidateQuestions(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		qs := []QuestionPayload{
			question(QuestionTypeMultipleChoice, false, true, false, false),
			question(QuestionTypeTrueFalse, true, false),
		}
		if err := ValidateQuestions(qs); err != nil {
			t.Errorf("ValidateQuestions: %v", err)
		}
	})

	t.Run("NoCorrectOption", func(t *testing.T) {
		err := ValidateQuestions([]QuestionPayload{question(QuestionTypeMultipleChoice, false, false)})
		if !errors.Is(err, ErrCorrectOptionCount) {
			t.Errorf("error = %v, want ErrCorrectOptionCount", err)
		}
	})

	t.Run("TwoCorrectOptions", func(t *testing.T) {
		err := ValidateQuestions([]QuestionPayload{question(QuestionTypeMultipleChoice, true, true, false)})
		if !errors.Is(err, ErrCorrectOptionCount) {
			t.Errorf("error = %v, want ErrCorrectOptionCount", err)
		}
	})

	t.Run("TrueFalseWithThreeOptions", func(t *testing.T) {
		err := ValidateQuestions([]QuestionPayload{question(QuestionTypeTrueFalse, true, false, false)})
		if err == nil || !strings.Contains(err.Error(), "exactly 2 options") {
			t.Errorf("error = %v, want option-count complaint", err)
		}
	})

	t.Run("ErrorNamesTheQuestion", func(t *testing.T) {
		qs := []QuestionPayload{
			question(QuestionTypeMultipleChoice, true, false),
			question(QuestionTypeMultipleChoice, false, false),
		}
		err := ValidateQuestions(qs)
		if err == nil || !strings.Contains(err.Error(), "question 2") {
			t.Errorf("error = %v, want the 1-based question index", err)
		}
	})
}

func TestUpdateQuizRequestValidate(t *testing.T) {
	// Absent question tree means "leave the questions alone", which is valid.
	if err := (UpdateQuizRequest{Title: "New Title"}).Validate(); err != nil {
		t.Errorf("Validate without questions: %v", err)
	}

	bad := UpdateQuizRequest{Questions: []QuestionPayload{question(QuestionTypeMultipleChoice, false, false)}}
	if err := bad.Validate(); !errors.Is(err, ErrCorrectOptionCount) {
		t.Errorf("error = %v, want ErrCorrectOptionCount", err)
	}
}

func TestRoleCanManageUsers(t *testing.T) {
	for role, want := range map[Role]bool{
		RoleAdmin:      true,
		RoleSuperAdmin: true,
		RoleModerator:  false,
		Role("viewer"): false,
	} {
		if got := role.CanManageUsers(); got != want {
			t.Errorf("%s.CanManageUsers() = %v, want %v", role, got, want)
		}
	}
}
