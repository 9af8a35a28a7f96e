package vectorstore

import "context"

// EmbeddingGenerator computes embeddings for records upserted without a
// value for a generator-backed vector property. Implementations live
// outside this package (see v1/embedding for the inference-API client).
type EmbeddingGenerator interface {
	// GenerateEmbeddings returns one vector per input text, in order.
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

// EmbeddingGeneratorFunc adapts a function to the EmbeddingGenerator
// interface, mainly for tests.
type EmbeddingGeneratorFunc func(ctx context.Context, texts []string) ([][]float32, error)

func (f EmbeddingGeneratorFunc) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	return f(ctx, texts)
}
