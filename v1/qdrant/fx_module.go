package qdrant

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// FXModule provides the Qdrant client and store to an fx application.
//
// The module:
//  1. Provides the client and store factory functions
//  2. Invokes the lifecycle registration that closes the client on shutdown
//
// Usage:
//
//	app := fx.New(
//	    qdrant.FXModule,
//	    fx.Provide(func() *qdrant.Config {
//	        return qdrant.FromEndpoint("localhost")
//	    }),
//	    // other modules...
//	)
var FXModule = fx.Module("qdrant",
	fx.Provide(
		NewClientWithDI,
		NewStoreWithDI,
	),
	fx.Invoke(RegisterLifecycle),
)

// ClientParams groups the dependencies needed to create a Client.
type ClientParams struct {
	fx.In

	Config *Config
	Logger *zap.Logger `optional:"true"`
}

// NewClientWithDI creates a Client from injected dependencies. The logger
// is optional; a no-op logger is used when none is provided.
func NewClientWithDI(params ClientParams) (*Client, error) {
	return NewClient(params.Config, params.Logger)
}

// NewStoreWithDI wraps the injected client in a Store. The store borrows
// the client; the fx lifecycle owns teardown.
func NewStoreWithDI(client *Client) *Store {
	return NewStoreWithClient(client)
}

// LifecycleParams groups the dependencies for lifecycle registration.
type LifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Client    *Client
}

// RegisterLifecycle closes the Qdrant client when the application stops.
// Connectivity is already verified at construction, so no OnStart hook is
// needed.
func RegisterLifecycle(params LifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return params.Client.Close()
		},
	})
}
