package embedding

import (
	"context"
	"fmt"

	"github.com/Aleph-Alpha/connectors/v1/vectorstore"
)

// Client is the public entrypoint for computing embeddings.
//
// It hides all provider details (inference endpoints, HTTP, etc.)
// from the application layer, and satisfies vectorstore.EmbeddingGenerator
// so it can plug straight into a connector's upsert path.
type Client struct {
	provider Provider
	model    string
}

var _ vectorstore.EmbeddingGenerator = (*Client)(nil)

// NewClient constructs a Client from Config.
// It validates the config and internally constructs the inference provider.
// Application code should depend on *Client, not on Provider.
func NewClient(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("embedding: invalid config: %w", err)
	}

	p, err := newInferenceProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("embedding: failed to create provider: %w", err)
	}

	return &Client{provider: p, model: cfg.Model}, nil
}

// GenerateEmbeddings computes one embedding per input text, in input order.
func (c *Client) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	return c.provider.Create(ctx, c.model, texts...)
}

// Close allows the client to release any internal resources used by the provider.
// Currently this is a no-op unless the provider implements Close().
func (c *Client) Close() error {
	if closer, ok := c.provider.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
