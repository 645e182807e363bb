package store

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/maraki-learning/adminctl/internal/api"
	"github.com/maraki-learning/adminctl/internal/apiclient"
	"github.com/maraki-learning/adminctl/internal/model"
	"github.com/maraki-learning/adminctl/internal/validator"
)

// QuizzesStore mirrors the platform's quiz collection.
type QuizzesStore struct {
	*Store[model.Quiz]
	api *api.QuizzesClient
}

// NewQuizzesStore creates a QuizzesStore bound to the quiz endpoints.
func NewQuizzesStore(client *api.QuizzesClient, log zerolog.Logger) *QuizzesStore {
	return &QuizzesStore{
		Store: newStore(matchQuiz, "quizzes", log),
		api:   client,
	}
}

func matchQuiz(q model.Quiz, f Filters) bool {
	if f.Search != "" && !containsFold(q.Title, f.Search) && !containsFold(q.Description, f.Search) {
		return false
	}
	if f.Category != "" && q.Category != f.Category {
		return false
	}
	if f.Difficulty != "" && string(q.Difficulty) != f.Difficulty {
		return false
	}
	if f.Status != "" {
		active := f.Status == "active"
		if q.IsActive != active {
			return false
		}
	}
	return true
}

// FetchAll replaces the loaded list wholesale with the server's.
func (s *QuizzesStore) FetchAll(ctx context.Context) error {
	s.begin()
	items, err := s.api.GetAll(ctx)
	if err != nil {
		return s.failOp(err, "Failed to fetch quizzes")
	}
	s.replaceAll(items)
	return nil
}

// FetchByID loads one quiz, with its question tree, into the selection.
func (s *QuizzesStore) FetchByID(ctx context.Context, id string) error {
	s.begin()
	q, err := s.api.GetByID(ctx, id)
	if err != nil {
		return s.failOp(err, "Failed to fetch quiz")
	}
	s.setSelected(*q)
	return nil
}

// Create submits a new quiz and prepends the server-confirmed entity. The
// question tree is checked locally (tag rules plus the one-correct-option
// policy) before any request is issued.
func (s *QuizzesStore) Create(ctx context.Context, req model.CreateQuizRequest) (*model.Quiz, error) {
	if fields := validator.Struct(req); fields != nil {
		err := &apiclient.APIError{Code: apiclient.ErrCodeValidation, Message: firstField(fields), Fields: fields}
		return nil, s.failOp(err, "Failed to create quiz")
	}
	if err := req.Validate(); err != nil {
		return nil, s.failOp(&apiclient.APIError{Code: apiclient.ErrCodeValidation, Message: err.Error()}, "Failed to create quiz")
	}

	s.begin()
	created, err := s.api.Create(ctx, req)
	if err != nil {
		return nil, s.failOp(err, "Failed to create quiz")
	}
	s.prepend(*created)
	return created, nil
}

// Update submits a patch and replaces the matching element in place.
func (s *QuizzesStore) Update(ctx context.Context, id string, req model.UpdateQuizRequest) (*model.Quiz, error) {
	if fields := validator.Struct(req); fields != nil {
		err := &apiclient.APIError{Code: apiclient.ErrCodeValidation, Message: firstField(fields), Fields: fields}
		return nil, s.failOp(err, "Failed to update quiz")
	}
	if err := req.Validate(); err != nil {
		return nil, s.failOp(&apiclient.APIError{Code: apiclient.ErrCodeValidation, Message: err.Error()}, "Failed to update quiz")
	}

	s.begin()
	updated, err := s.api.Update(ctx, id, req)
	if err != nil {
		return nil, s.failOp(err, "Failed to update quiz")
	}
	s.replaceByID(*updated)
	return updated, nil
}

// Delete removes the quiz after server confirmation.
func (s *QuizzesStore) Delete(ctx context.Context, id string) error {
	s.begin()
	if err := s.api.Delete(ctx, id); err != nil {
		return s.failOp(err, "Failed to delete quiz")
	}
	s.removeByID(id)
	return nil
}

// Activate publishes the quiz to learners; the server's updated entity
// replaces the local one like any update.
func (s *QuizzesStore) Activate(ctx context.Context, id string) (*model.Quiz, error) {
	s.begin()
	updated, err := s.api.Activate(ctx, id)
	if err != nil {
		return nil, s.failOp(err, "Failed to activate quiz")
	}
	s.replaceByID(*updated)
	return updated, nil
}

// Deactivate hides the quiz from learners.
func (s *QuizzesStore) Deactivate(ctx context.Context, id string) (*model.Quiz, error) {
	s.begin()
	updated, err := s.api.Deactivate(ctx, id)
	if err != nil {
		return nil, s.failOp(err, "Failed to deactivate quiz")
	}
	s.replaceByID(*updated)
	return updated, nil
}
