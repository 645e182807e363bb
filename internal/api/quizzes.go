package api

import (
	"context"

	"github.com/maraki-learning/adminctl/internal/apiclient"
	"github.com/maraki-learning/adminctl/internal/model"
)

// QuizzesClient calls the quiz management endpoints.
type QuizzesClient struct {
	client *apiclient.Client
}

// NewQuizzesClient creates a new QuizzesClient.
func NewQuizzesClient(client *apiclient.Client) *QuizzesClient {
	return &QuizzesClient{client: client}
}

// GetAll lists all quizzes.
func (c *QuizzesClient) GetAll(ctx context.Context) ([]model.Quiz, error) {
	var out []model.Quiz
	if err := c.client.Get(ctx, pathQuizzes, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a single quiz with its question tree.
func (c *QuizzesClient) GetByID(ctx context.Context, id string) (*model.Quiz, error) {
	var out model.Quiz
	if err := c.client.Get(ctx, quizPath(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create creates a quiz and returns the server-assigned entity.
func (c *QuizzesClient) Create(ctx context.Context, req model.CreateQuizRequest) (*model.Quiz, error) {
	var out model.Quiz
	if err := c.client.Post(ctx, pathQuizzes, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update patches a quiz and returns the updated entity.
func (c *QuizzesClient) Update(ctx context.Context, id string, req model.UpdateQuizRequest) (*model.Quiz, error) {
	var out model.Quiz
	if err := c.client.Put(ctx, quizPath(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a quiz.
func (c *QuizzesClient) Delete(ctx context.Context, id string) error {
	return c.client.Delete(ctx, quizPath(id))
}

// Activate makes a quiz visible to learners and returns the updated entity.
func (c *QuizzesClient) Activate(ctx context.Context, id string) (*model.Quiz, error) {
	var out model.Quiz
	if err := c.client.Patch(ctx, quizActivatePath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Deactivate hides a quiz from learners and returns the updated entity.
func (c *QuizzesClient) Deactivate(ctx context.Context, id string) (*model.Quiz, error) {
	var out model.Quiz
	if err := c.client.Patch(ctx, quizDeactivatePath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
