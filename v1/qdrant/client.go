package qdrant

import (
	"context"
	"fmt"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"
)

// Client wraps the official Qdrant Go client. It owns connectivity concerns
// only: dialing, the startup health check, and teardown. Record mapping,
// filter translation, and collection logic live in Store and Collection.
type Client struct {
	api *qdrant.Client
	cfg *Config
	log *zap.Logger
}

// NewClient dials Qdrant and validates connectivity with an immediate
// health check, failing fast if the service is unreachable.
//
// Example:
//
//	client, err := qdrant.NewClient(qdrant.FromEndpoint("localhost"), nil)
func NewClient(cfg *Config, log *zap.Logger) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = zap.NewNop()
	}

	port := cfg.Port
	if port == 0 {
		port = 6334
	}

	api, err := qdrant.NewClient(&qdrant.Config{
		Host:                   cfg.Endpoint,
		Port:                   port,
		APIKey:                 cfg.ApiKey,
		UseTLS:                 cfg.UseTLS,
		SkipCompatibilityCheck: !cfg.CheckCompatibility,
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant: failed to initialize client: %w", err)
	}

	c := &Client{api: api, cfg: cfg, log: log}

	if err := c.healthCheck(); err != nil {
		return nil, err
	}

	log.Info("qdrant client connected", zap.String("endpoint", cfg.Endpoint), zap.Int("port", port))
	return c, nil
}

// healthCheck verifies the availability of the Qdrant service. Lightweight
// and fast, suitable for startup and readiness probes.
func (c *Client) healthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), c.connectTimeout())
	defer cancel()

	resp, err := c.api.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("qdrant: health check failed: %w", err)
	}

	c.log.Debug("qdrant health check passed",
		zap.String("title", resp.GetTitle()),
		zap.String("version", resp.GetVersion()),
	)
	return nil
}

func (c *Client) connectTimeout() time.Duration {
	if c.cfg != nil && c.cfg.ConnectTimeout > 0 {
		return c.cfg.ConnectTimeout
	}
	return DefaultConfig().ConnectTimeout
}

// API returns the underlying Qdrant SDK client for direct access to
// low-level operations.
func (c *Client) API() *qdrant.Client {
	return c.api
}

// Close tears down the underlying gRPC connection.
func (c *Client) Close() error {
	c.log.Debug("closing qdrant client")
	return c.api.Close()
}
