package panels

import (
	"context"
	"net/http"
	"time"
)

// modelsTTL bounds how long a cached model listing is served before the
// backend is asked again.
const modelsTTL = 10 * time.Minute

// Model describes an available language model reported by the backend.
type Model struct {
	Name     string `json:"name"`
	Provider string `json:"provider"`
	Size     string `json:"size,omitempty"`
}

// Models is the client for the backend's model listing endpoint.
// Listings are cached because model discovery can be slow when the
// backend has to query a local runtime.
type Models struct {
	client *Client
}

// NewModels creates a models client on top of the shared client.
func NewModels(c *Client) *Models {
	return &Models{client: c}
}

// List returns the available models, served from cache when fresh.
// Set refresh to bypass the cache.
func (m *Models) List(ctx context.Context, refresh bool) ([]Model, error) {
	var models []Model
	err := m.client.Cached(ctx, "models", modelsTTL, refresh, &models, func() error {
		return m.client.do(ctx, http.MethodGet, "/api/models", nil, &models)
	})
	if err != nil {
		return nil, err
	}
	return models, nil
}
