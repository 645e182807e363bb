package api

import (
	"context"

	"github.com/maraki-learning/adminctl/internal/apiclient"
	"github.com/maraki-learning/adminctl/internal/model"
)

// UsersClient calls the user management endpoints.
type UsersClient struct {
	client *apiclient.Client
}

// NewUsersClient creates a new UsersClient.
func NewUsersClient(client *apiclient.Client) *UsersClient {
	return &UsersClient{client: client}
}

// GetAll lists all users.
func (c *UsersClient) GetAll(ctx context.Context) ([]model.User, error) {
	var out []model.User
	if err := c.client.Get(ctx, pathUsers, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a single user.
func (c *UsersClient) GetByID(ctx context.Context, id string) (*model.User, error) {
	var out model.User
	if err := c.client.Get(ctx, userPath(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create creates a user and returns the server-assigned entity.
func (c *UsersClient) Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	var out model.User
	if err := c.client.Post(ctx, pathUsers, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update patches a user and returns the updated entity.
func (c *UsersClient) Update(ctx context.Context, id string, req model.UpdateUserRequest) (*model.User, error) {
	var out model.User
	if err := c.client.Put(ctx, userPath(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a user.
func (c *UsersClient) Delete(ctx context.Context, id string) error {
	return c.client.Delete(ctx, userPath(id))
}
