package vectorstore

import "context"

// SearchOptions tunes a similarity search.
type SearchOptions struct {
	// Top is the maximum number of results. Defaults to 10 when zero.
	Top int
	// Skip offsets into the ranked result list.
	Skip int
	// Filter restricts candidates before ranking. Nil means unfiltered.
	Filter Expr
	// IncludeVectors materializes stored embeddings on the results.
	IncludeVectors bool
	// VectorProperty selects which named vector to search. Defaults to the
	// schema's first vector property; ignored for single-vector collections.
	VectorProperty string
}

// ScrollOptions tunes filter-only paged retrieval.
type ScrollOptions struct {
	// Limit is the page size. Defaults to 10 when zero.
	Limit int
	// OrderBy sorts the page by a payload property instead of id order.
	OrderBy string
	// Descending reverses the OrderBy direction.
	Descending bool
	// IncludeVectors materializes stored embeddings on the results.
	IncludeVectors bool
}

// Collection is the common record-level surface of a vector store
// collection. Implementations translate between GenericRecord and their
// storage model, and compile Expr predicates into native filters.
type Collection interface {
	// Name returns the collection name.
	Name() string

	// EnsureExists creates the collection and its payload indexes if
	// missing. Safe to call repeatedly.
	EnsureExists(ctx context.Context) error

	// Exists reports whether the collection exists.
	Exists(ctx context.Context) (bool, error)

	// EnsureDeleted drops the collection. Deleting a collection that does
	// not exist is not an error.
	EnsureDeleted(ctx context.Context) error

	// Upsert writes records, generating missing vectors for
	// generator-backed properties first. Returns the stored keys.
	Upsert(ctx context.Context, records ...*GenericRecord) ([]any, error)

	// Get retrieves a single record by key, nil if absent.
	Get(ctx context.Context, key any, opts GetOptions) (*GenericRecord, error)

	// GetBatch retrieves many records in one call; absent keys are skipped.
	GetBatch(ctx context.Context, keys []any, opts GetOptions) ([]*GenericRecord, error)

	// Delete removes records by key in one batched call. Keys that do not
	// exist are ignored.
	Delete(ctx context.Context, keys ...any) error

	// Search runs vector similarity search.
	Search(ctx context.Context, vector []float32, opts SearchOptions) ([]SearchResult, error)

	// Scroll pages through records matching a filter, without ranking.
	Scroll(ctx context.Context, filter Expr, opts ScrollOptions) ([]*GenericRecord, error)
}

// Store is the collection-lifecycle surface of a vector database.
type Store interface {
	// ListCollections returns the names of all collections.
	ListCollections(ctx context.Context) ([]string, error)

	// CollectionExists reports whether a collection exists.
	CollectionExists(ctx context.Context, name string) (bool, error)

	// EnsureCollectionDeleted drops a collection, tolerating absence.
	EnsureCollectionDeleted(ctx context.Context, name string) error

	// Close releases the transport client if this store owns it. Borrowed
	// clients are left untouched.
	Close() error
}
