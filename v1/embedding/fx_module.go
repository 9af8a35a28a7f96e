package embedding

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/connectors/v1/vectorstore"
)

// FXModule wires the embedding system into Fx.
//
// It provides:
//   - Config                         (NewConfig)
//   - *Client                        (NewClient)
//   - vectorstore.EmbeddingGenerator (the client itself)
//   - Lifecycle hook                 (RegisterEmbeddingLifecycle)
var FXModule = fx.Module(
	"embedding",

	fx.Provide(
		NewConfig, // -> *Config
		NewClient, // -> *Client
		func(c *Client) vectorstore.EmbeddingGenerator { return c },
	),

	fx.Invoke(RegisterEmbeddingLifecycle),
)

// RegisterEmbeddingLifecycle ensures that the Client (and its provider)
// are properly cleaned up on application shutdown.
func RegisterEmbeddingLifecycle(lc fx.Lifecycle, client *Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}
