package qdrant

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Aleph-Alpha/connectors/v1/vectorstore"
)

// Store is the collection-lifecycle surface over one Qdrant deployment. It
// either owns its client (NewStore) or borrows one (NewStoreWithClient);
// Close only tears down owned clients, so a shared client survives the
// stores built on top of it.
type Store struct {
	client *Client
	owned  bool
	log    *zap.Logger
}

var _ vectorstore.Store = (*Store)(nil)

// NewStore dials Qdrant and returns a store that owns the connection.
func NewStore(cfg *Config, log *zap.Logger) (*Store, error) {
	client, err := NewClient(cfg, log)
	if err != nil {
		return nil, err
	}
	return &Store{client: client, owned: true, log: client.log}, nil
}

// NewStoreWithClient wraps an existing client without taking ownership.
func NewStoreWithClient(client *Client) *Store {
	return &Store{client: client, owned: false, log: client.log}
}

// Collection builds a Collection for name with the given record definition.
func (s *Store) Collection(name string, def vectorstore.Definition, opts ...CollectionOption) (*Collection, error) {
	return NewCollection(s.client, name, def, opts...)
}

// ListCollections returns the names of all collections on the server.
func (s *Store) ListCollections(ctx context.Context) ([]string, error) {
	start := time.Now()
	names, err := s.client.api.ListCollections(ctx)
	if err != nil {
		return nil, opError("", "list_collections", err)
	}
	s.log.Debug("collections listed", zap.Int("count", len(names)), zap.Duration("took", time.Since(start)))
	return names, nil
}

// CollectionExists reports whether a collection exists by name, without
// needing a schema.
func (s *Store) CollectionExists(ctx context.Context, name string) (bool, error) {
	exists, err := s.client.api.CollectionExists(ctx, name)
	if err != nil {
		return false, opError(name, "collection_exists", err)
	}
	return exists, nil
}

// EnsureCollectionDeleted drops a collection by name, tolerating absence.
func (s *Store) EnsureCollectionDeleted(ctx context.Context, name string) error {
	if err := s.client.api.DeleteCollection(ctx, name); err != nil && !isNotFound(err) {
		return opError(name, "ensure_collection_deleted", err)
	}
	return nil
}

// Healthy reports whether the backing Qdrant service answers its health
// check. Suitable for readiness probes.
func (s *Store) Healthy(ctx context.Context) bool {
	_, err := s.client.api.HealthCheck(ctx)
	return err == nil
}

// Close releases the transport client if this store owns it.
func (s *Store) Close() error {
	if !s.owned {
		return nil
	}
	return s.client.Close()
}
