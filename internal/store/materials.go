package store

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/maraki-learning/adminctl/internal/api"
	"github.com/maraki-learning/adminctl/internal/apiclient"
	"github.com/maraki-learning/adminctl/internal/model"
	"github.com/maraki-learning/adminctl/internal/validator"
)

// MaterialsStore mirrors the platform's learning-material collection.
type MaterialsStore struct {
	*Store[model.Material]
	api *api.MaterialsClient
}

// NewMaterialsStore creates a MaterialsStore bound to the material endpoints.
func NewMaterialsStore(client *api.MaterialsClient, log zerolog.Logger) *MaterialsStore {
	return &MaterialsStore{
		Store: newStore(matchMaterial, "materials", log),
		api:   client,
	}
}

func matchMaterial(m model.Material, f Filters) bool {
	if f.Search != "" && !containsFold(m.Title, f.Search) && !containsFold(m.Description, f.Search) {
		return false
	}
	if f.Category != "" && m.Category != f.Category {
		return false
	}
	if f.Type != "" && string(m.Type) != f.Type {
		return false
	}
	if f.Difficulty != "" && string(m.Difficulty) != f.Difficulty {
		return false
	}
	return true
}

// FetchAll replaces the loaded list wholesale with the server's.
func (s *MaterialsStore) FetchAll(ctx context.Context) error {
	s.begin()
	items, err := s.api.GetAll(ctx)
	if err != nil {
		return s.failOp(err, "Failed to fetch materials")
	}
	s.replaceAll(items)
	return nil
}

// FetchByID loads one material into the selection without touching the list.
func (s *MaterialsStore) FetchByID(ctx context.Context, id string) error {
	s.begin()
	m, err := s.api.GetByID(ctx, id)
	if err != nil {
		return s.failOp(err, "Failed to fetch material")
	}
	s.setSelected(*m)
	return nil
}

// Create submits a new material and prepends the server-confirmed entity.
func (s *MaterialsStore) Create(ctx context.Context, req model.CreateMaterialRequest) (*model.Material, error) {
	if fields := validator.Struct(req); fields != nil {
		err := &apiclient.APIError{Code: apiclient.ErrCodeValidation, Message: firstField(fields), Fields: fields}
		return nil, s.failOp(err, "Failed to create material")
	}

	s.begin()
	created, err := s.api.Create(ctx, req)
	if err != nil {
		return nil, s.failOp(err, "Failed to create material")
	}
	s.prepend(*created)
	return created, nil
}

// Update submits a patch and replaces the matching element in place.
func (s *MaterialsStore) Update(ctx context.Context, id string, req model.UpdateMaterialRequest) (*model.Material, error) {
	if fields := validator.Struct(req); fields != nil {
		err := &apiclient.APIError{Code: apiclient.ErrCodeValidation, Message: firstField(fields), Fields: fields}
		return nil, s.failOp(err, "Failed to update material")
	}

	s.begin()
	updated, err := s.api.Update(ctx, id, req)
	if err != nil {
		return nil, s.failOp(err, "Failed to update material")
	}
	s.replaceByID(*updated)
	return updated, nil
}

// Delete removes the material after server confirmation.
func (s *MaterialsStore) Delete(ctx context.Context, id string) error {
	s.begin()
	if err := s.api.Delete(ctx, id); err != nil {
		return s.failOp(err, "Failed to delete material")
	}
	s.removeByID(id)
	return nil
}

// Upload streams a file to the backend's object-storage passthrough. The
// store's list is untouched: the caller typically feeds the returned URL
// into a subsequent Create.
func (s *MaterialsStore) Upload(ctx context.Context, fileName string, file io.Reader, materialType string) (*model.UploadResult, error) {
	s.begin()
	result, err := s.api.Upload(ctx, fileName, file, materialType)
	if err != nil {
		return nil, s.failOp(err, "Failed to upload file")
	}
	s.settle()
	return result, nil
}
