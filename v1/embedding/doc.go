// Package embedding provides a high-level API for computing text embeddings
// through an OpenAI-compatible inference service.
//
// # Overview
//
// The package exposes a single public entrypoint, Client, which hides all
// low-level HTTP details, endpoint paths, and authentication.
//
// A client is constructed using:
//
//	client, err := embedding.NewClient(cfg)
//
// Once created, the client generates embeddings via:
//
//	vectors, err := client.GenerateEmbeddings(ctx, []string{"a", "b", "c"})
//
// Client satisfies vectorstore.EmbeddingGenerator, so it can be handed
// directly to a vector store connector:
//
//	col, err := store.Collection("docs", def, qdrant.WithEmbeddingGenerator(client))
//
// # Configuration
//
// Configuration is sourced from environment variables and constructed by:
//
//	cfg := embedding.NewConfig()
//
// Required variables:
//
//   - EMBEDDING_ENDPOINT
//     Base URL of the inference service (no trailing path or slash).
//
//   - EMBEDDING_SERVICE_TOKEN
//     Service token for authentication.
//
//   - EMBEDDING_MODEL
//     Model identifier passed with every request.
//
// Optional variables:
//
//   - EMBEDDING_HTTP_TIMEOUT_SECONDS
//     Request timeout (default: 30 seconds).
//
// Configuration correctness can be verified via:
//
//	if err := cfg.Validate(); err != nil { ... }
//
// # Dependency Injection (Fx)
//
// A ready-to-use Fx module is provided:
//
//	embedding.FXModule
//
// which supplies *embedding.Config, *embedding.Client, and the
// vectorstore.EmbeddingGenerator binding, and registers a lifecycle hook to
// clean up HTTP resources on shutdown.
//
// # Design Notes
//
//   - Only a single provider implementation exists (inferenceProvider). It is
//     unexported on purpose to keep all endpoint-level complexity internal.
//
//   - The provider talks to the OpenAI-compatible /v1/embeddings endpoint and
//     expects one embedding per input, in input order.
package embedding
