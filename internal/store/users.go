package store

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/maraki-learning/adminctl/internal/api"
	"github.com/maraki-learning/adminctl/internal/apiclient"
	"github.com/maraki-learning/adminctl/internal/model"
	"github.com/maraki-learning/adminctl/internal/validator"
)

// UsersStore mirrors the platform's user collection.
type UsersStore struct {
	*Store[model.User]
	api *api.UsersClient
}

// NewUsersStore creates a UsersStore bound to the users endpoints.
func NewUsersStore(client *api.UsersClient, log zerolog.Logger) *UsersStore {
	return &UsersStore{
		Store: newStore(matchUser, "users", log),
		api:   client,
	}
}

func matchUser(u model.User, f Filters) bool {
	if f.Search != "" && !containsFold(u.Name, f.Search) && !containsFold(u.Email, f.Search) {
		return false
	}
	if f.Role != "" && string(u.Role) != f.Role {
		return false
	}
	if f.Status != "" {
		active := f.Status == "active"
		if u.IsActive != active {
			return false
		}
	}
	return true
}

// FetchAll replaces the loaded list wholesale with the server's.
func (s *UsersStore) FetchAll(ctx context.Context) error {
	s.begin()
	items, err := s.api.GetAll(ctx)
	if err != nil {
		return s.failOp(err, "Failed to fetch users")
	}
	s.replaceAll(items)
	return nil
}

// FetchByID loads one user into the selection without touching the list.
func (s *UsersStore) FetchByID(ctx context.Context, id string) error {
	s.begin()
	u, err := s.api.GetByID(ctx, id)
	if err != nil {
		return s.failOp(err, "Failed to fetch user")
	}
	s.setSelected(*u)
	return nil
}

// Create submits a new user and prepends the server-confirmed entity.
func (s *UsersStore) Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	if fields := validator.Struct(req); fields != nil {
		err := &apiclient.APIError{Code: apiclient.ErrCodeValidation, Message: firstField(fields), Fields: fields}
		return nil, s.failOp(err, "Failed to create user")
	}

	s.begin()
	created, err := s.api.Create(ctx, req)
	if err != nil {
		return nil, s.failOp(err, "Failed to create user")
	}
	s.prepend(*created)
	return created, nil
}

// Update submits a patch and replaces the matching element in place.
func (s *UsersStore) Update(ctx context.Context, id string, req model.UpdateUserRequest) (*model.User, error) {
	if fields := validator.Struct(req); fields != nil {
		err := &apiclient.APIError{Code: apiclient.ErrCodeValidation, Message: firstField(fields), Fields: fields}
		return nil, s.failOp(err, "Failed to update user")
	}

	s.begin()
	updated, err := s.api.Update(ctx, id, req)
	if err != nil {
		return nil, s.failOp(err, "Failed to update user")
	}
	s.replaceByID(*updated)
	return updated, nil
}

// Delete removes the user after server confirmation.
func (s *UsersStore) Delete(ctx context.Context, id string) error {
	s.begin()
	if err := s.api.Delete(ctx, id); err != nil {
		return s.failOp(err, "Failed to delete user")
	}
	s.removeByID(id)
	return nil
}
