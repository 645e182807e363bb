package api

import (
	"context"

	"github.com/maraki-learning/adminctl/internal/apiclient"
	"github.com/maraki-learning/adminctl/internal/model"
)

// HealthClient calls the service health endpoint.
type HealthClient struct {
	client *apiclient.Client
}

// NewHealthClient creates a new HealthClient.
func NewHealthClient(client *apiclient.Client) *HealthClient {
	return &HealthClient{client: client}
}

// Check fetches the backend's health status.
func (c *HealthClient) Check(ctx context.Context) (*model.HealthStatus, error) {
	var out model.HealthStatus
	if err := c.client.Get(ctx, pathHealth, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
