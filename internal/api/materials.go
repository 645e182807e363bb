package api

import (
	"context"
	"io"

	"github.com/maraki-learning/adminctl/internal/apiclient"
	"github.com/maraki-learning/adminctl/internal/model"
)

// MaterialsClient calls the learning-material endpoints.
type MaterialsClient struct {
	client *apiclient.Client
}

// NewMaterialsClient creates a new MaterialsClient.
func NewMaterialsClient(client *apiclient.Client) *MaterialsClient {
	return &MaterialsClient{client: client}
}

// GetAll lists all materials.
func (c *MaterialsClient) GetAll(ctx context.Context) ([]model.Material, error) {
	var out []model.Material
	if err := c.client.Get(ctx, pathMaterials, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a single material.
func (c *MaterialsClient) GetByID(ctx context.Context, id string) (*model.Material, error) {
	var out model.Material
	if err := c.client.Get(ctx, materialPath(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create creates a material and returns the server-assigned entity.
func (c *MaterialsClient) Create(ctx context.Context, req model.CreateMaterialRequest) (*model.Material, error) {
	var out model.Material
	if err := c.client.Post(ctx, pathMaterials, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update patches a material and returns the updated entity.
func (c *MaterialsClient) Update(ctx context.Context, id string, req model.UpdateMaterialRequest) (*model.Material, error) {
	var out model.Material
	if err := c.client.Put(ctx, materialPath(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a material.
func (c *MaterialsClient) Delete(ctx context.Context, id string) error {
	return c.client.Delete(ctx, materialPath(id))
}

// Upload streams a file through the backend to its object-storage provider
// and returns the resulting public URL and metadata. materialType travels
// as a form field alongside the file part.
func (c *MaterialsClient) Upload(ctx context.Context, fileName string, file io.Reader, materialType string) (*model.UploadResult, error) {
	var out model.UploadResult
	fields := map[string]string{"type": materialType}
	if err := c.client.Upload(ctx, pathMaterialsUpload, "file", fileName, file, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
