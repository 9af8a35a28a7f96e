package qdrant

import (
	"context"
	"fmt"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Aleph-Alpha/connectors/v1/vectorstore"
)

const defaultLimit = 10

// Collection binds a validated schema to one Qdrant collection and exposes
// the record-level operations. It is safe for concurrent use.
type Collection struct {
	client  *Client
	name    string
	schema  *vectorstore.Schema
	mapper  *recordMapper
	filters *filterTranslator
	gen     vectorstore.EmbeddingGenerator
	obs     Observer
	log     *zap.Logger
}

var _ vectorstore.Collection = (*Collection)(nil)

// CollectionOption customizes a Collection at construction time.
type CollectionOption func(*Collection)

// WithLogger attaches a logger. Defaults to the client's logger.
func WithLogger(log *zap.Logger) CollectionOption {
	return func(c *Collection) { c.log = log }
}

// WithEmbeddingGenerator wires the generator that fills vector properties
// declaring a SourceProperty when records arrive without them.
func WithEmbeddingGenerator(gen vectorstore.EmbeddingGenerator) CollectionOption {
	return func(c *Collection) { c.gen = gen }
}

// WithObserver attaches an operation observer, e.g. NewMetricsObserver.
func WithObserver(obs Observer) CollectionOption {
	return func(c *Collection) { c.obs = obs }
}

// WithDynamicPayload preserves payload keys outside the schema on both
// reads and writes, for schema-light workloads.
func WithDynamicPayload() CollectionOption {
	return func(c *Collection) { c.mapper.dynamic = true }
}

// NewCollection builds a Collection over an existing client. The definition
// is validated here; nothing is sent to the server until EnsureExists or the
// first data operation.
func NewCollection(client *Client, name string, def vectorstore.Definition, opts ...CollectionOption) (*Collection, error) {
	schema, err := vectorstore.BuildSchema(def)
	if err != nil {
		return nil, err
	}

	c := &Collection{
		client:  client,
		name:    name,
		schema:  schema,
		mapper:  &recordMapper{schema: schema},
		filters: newFilterTranslator(schema),
		obs:     nopObserver{},
		log:     client.log,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(zap.String("collection", name))
	return c, nil
}

// Name returns the collection name.
func (c *Collection) Name() string { return c.name }

// Schema returns the validated schema the collection was built with.
func (c *Collection) Schema() *vectorstore.Schema { return c.schema }

// finish records the operation outcome and normalizes the error shape.
func (c *Collection) finish(op string, start time.Time, err error) error {
	c.obs.ObserveOperation(c.name, op, start, err)
	if err != nil {
		c.log.Error("operation failed", zap.String("operation", op), zap.Error(err))
		return opError(c.name, op, err)
	}
	return nil
}

// ── Lifecycle ────────────────────────────────────────────────────────────────

// EnsureExists creates the collection and its payload indexes if missing.
// Concurrent creators are tolerated: a create that loses the race is
// treated as success.
func (c *Collection) EnsureExists(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { err = c.finish("ensure_exists", start, err) }()

	exists, err := c.client.api.CollectionExists(ctx, c.name)
	if err != nil {
		return err
	}
	if !exists {
		cfg, cfgErr := vectorsConfig(c.schema)
		if cfgErr != nil {
			return cfgErr
		}
		createErr := c.client.api.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: c.name,
			VectorsConfig:  cfg,
		})
		if createErr != nil && !isAlreadyExists(createErr) {
			return createErr
		}
		c.log.Info("collection created")
	}

	plan, err := payloadIndexes(c.schema)
	if err != nil {
		return err
	}
	for _, idx := range plan {
		_, idxErr := c.client.api.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
			CollectionName: c.name,
			FieldName:      idx.Field,
			FieldType:      &idx.Type,
			Wait:           qdrant.PtrOf(true),
		})
		if idxErr != nil && !isAlreadyExists(idxErr) {
			return fmt.Errorf("payload index on %q: %w", idx.Field, idxErr)
		}
	}
	return nil
}

// Exists reports whether the collection exists on the server.
func (c *Collection) Exists(ctx context.Context) (exists bool, err error) {
	start := time.Now()
	defer func() { err = c.finish("exists", start, err) }()
	return c.client.api.CollectionExists(ctx, c.name)
}

// EnsureDeleted drops the collection. Absence is not an error.
func (c *Collection) EnsureDeleted(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { err = c.finish("ensure_deleted", start, err) }()

	if delErr := c.client.api.DeleteCollection(ctx, c.name); delErr != nil && !isNotFound(delErr) {
		return delErr
	}
	return nil
}

// ── Writes ───────────────────────────────────────────────────────────────────

// Upsert writes records in one batched call, generating missing vectors for
// generator-backed properties first. Returns the stored keys in input order.
func (c *Collection) Upsert(ctx context.Context, records ...*vectorstore.GenericRecord) (keys []any, err error) {
	start := time.Now()
	defer func() { err = c.finish("upsert", start, err) }()

	if len(records) == 0 {
		return nil, nil
	}
	if err := c.generateMissingVectors(ctx, records); err != nil {
		return nil, err
	}

	points := make([]*qdrant.PointStruct, len(records))
	keys = make([]any, len(records))
	for i, rec := range records {
		point, mapErr := c.mapper.pointFromRecord(rec)
		if mapErr != nil {
			return nil, mapErr
		}
		points[i] = point
		keys[i] = rec.Key
	}

	_, err = c.client.api.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: c.name,
		Points:         points,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return nil, err
	}

	c.log.Debug("records upserted", zap.Int("count", len(points)))
	return keys, nil
}

// generateMissingVectors fills in vectors for properties that declare a
// source data property, batching one generator call per vector property and
// running the properties concurrently.
func (c *Collection) generateMissingVectors(ctx context.Context, records []*vectorstore.GenericRecord) error {
	g, ctx := errgroup.WithContext(ctx)

	for i := range c.schema.Vectors {
		p := &c.schema.Vectors[i]
		if p.SourceProperty == "" {
			continue
		}

		var targets []*vectorstore.GenericRecord
		var texts []string
		for _, rec := range records {
			if len(rec.Vectors[p.Name]) > 0 {
				continue
			}
			raw, ok := rec.Data[p.SourceProperty]
			if !ok {
				return fmt.Errorf("%w: record %v has neither vector %q nor its source property %q",
					vectorstore.ErrMapping, rec.Key, p.Name, p.SourceProperty)
			}
			text, ok := raw.(string)
			if !ok {
				return fmt.Errorf("%w: record %v source property %q is %T, generators take strings",
					vectorstore.ErrMapping, rec.Key, p.SourceProperty, raw)
			}
			targets = append(targets, rec)
			texts = append(texts, text)
		}
		if len(targets) == 0 {
			continue
		}
		if c.gen == nil {
			return fmt.Errorf("%w: vector %q needs generation but no embedding generator is configured",
				vectorstore.ErrMapping, p.Name)
		}

		g.Go(func() error {
			embeddings, genErr := c.gen.GenerateEmbeddings(ctx, texts)
			if genErr != nil {
				return fmt.Errorf("generating %q embeddings: %w", p.Name, genErr)
			}
			if len(embeddings) != len(targets) {
				return fmt.Errorf("%w: generator returned %d embeddings for %d inputs",
					vectorstore.ErrMapping, len(embeddings), len(targets))
			}
			for j, rec := range targets {
				rec.Vectors[p.Name] = embeddings[j]
			}
			return nil
		})
	}

	return g.Wait()
}

// Delete removes records by key in a single batched call. Unknown keys are
// ignored by the server.
func (c *Collection) Delete(ctx context.Context, keys ...any) (err error) {
	start := time.Now()
	defer func() { err = c.finish("delete", start, err) }()

	if len(keys) == 0 {
		return nil
	}
	ids := make([]*qdrant.PointId, len(keys))
	for i, key := range keys {
		id, mapErr := c.mapper.pointID(key)
		if mapErr != nil {
			return mapErr
		}
		ids[i] = id
	}

	_, err = c.client.api.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: c.name,
		Points:         qdrant.NewPointsSelector(ids...),
		Wait:           qdrant.PtrOf(true),
	})
	return err
}

// ── Reads ────────────────────────────────────────────────────────────────────

// Get retrieves one record by key, returning nil when it does not exist.
func (c *Collection) Get(ctx context.Context, key any, opts vectorstore.GetOptions) (rec *vectorstore.GenericRecord, err error) {
	recs, err := c.GetBatch(ctx, []any{key}, opts)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return recs[0], nil
}

// GetBatch retrieves many records in one call. Keys without a stored point
// are silently absent from the result.
func (c *Collection) GetBatch(ctx context.Context, keys []any, opts vectorstore.GetOptions) (recs []*vectorstore.GenericRecord, err error) {
	start := time.Now()
	defer func() { err = c.finish("get", start, err) }()

	if len(keys) == 0 {
		return nil, nil
	}
	ids := make([]*qdrant.PointId, len(keys))
	for i, key := range keys {
		id, mapErr := c.mapper.pointID(key)
		if mapErr != nil {
			return nil, mapErr
		}
		ids[i] = id
	}

	points, err := c.client.api.Get(ctx, &qdrant.GetPoints{
		CollectionName: c.name,
		Ids:            ids,
		WithPayload:    qdrant.NewWithPayload(true),
		WithVectors:    withVectors(opts.IncludeVectors),
	})
	if err != nil {
		return nil, err
	}

	recs = make([]*vectorstore.GenericRecord, 0, len(points))
	for _, point := range points {
		rec, mapErr := c.mapper.recordFromPoint(point.GetId(), point.GetPayload(), point.GetVectors(), opts.IncludeVectors)
		if mapErr != nil {
			return nil, mapErr
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// Search runs dense vector similarity search.
func (c *Collection) Search(ctx context.Context, vector []float32, opts vectorstore.SearchOptions) (results []vectorstore.SearchResult, err error) {
	start := time.Now()
	defer func() { err = c.finish("search", start, err) }()

	filter, err := c.filters.translate(opts.Filter)
	if err != nil {
		return nil, err
	}
	using, err := c.searchTarget(opts.VectorProperty)
	if err != nil {
		return nil, err
	}

	query := &qdrant.QueryPoints{
		CollectionName: c.name,
		Query:          qdrant.NewQuery(vector...),
		Using:          using,
		Filter:         filter,
		Limit:          qdrant.PtrOf(limitOrDefault(opts.Top)),
		WithPayload:    qdrant.NewWithPayload(true),
		WithVectors:    withVectors(opts.IncludeVectors),
	}
	if opts.Skip > 0 {
		query.Offset = qdrant.PtrOf(uint64(opts.Skip))
	}

	points, err := c.client.api.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return c.scoredResults(points, opts.IncludeVectors)
}

// HybridSearch fuses two candidate streams with reciprocal rank fusion: a
// plain dense search, and a dense search restricted to records whose
// full-text property matches any of the keywords. Records matching both
// rank higher than records matching either alone.
func (c *Collection) HybridSearch(ctx context.Context, vector []float32, keywords []string, textProperty string, opts vectorstore.SearchOptions) (results []vectorstore.SearchResult, err error) {
	start := time.Now()
	defer func() { err = c.finish("hybrid_search", start, err) }()

	if len(keywords) == 0 {
		return nil, fmt.Errorf("%w: hybrid search needs at least one keyword", vectorstore.ErrUnsupportedFilterValue)
	}
	prop, ok := c.schema.DataProperty(textProperty)
	if !ok {
		return nil, fmt.Errorf("%w: %q", vectorstore.ErrUnknownFilterProperty, textProperty)
	}

	baseFilter, err := c.filters.translate(opts.Filter)
	if err != nil {
		return nil, err
	}
	using, err := c.searchTarget(opts.VectorProperty)
	if err != nil {
		return nil, err
	}

	keywordFilter := keywordRestricted(baseFilter, prop.StorageName, keywords)

	limit := limitOrDefault(opts.Top)
	prefetch := []*qdrant.PrefetchQuery{
		{
			Query:  qdrant.NewQuery(vector...),
			Using:  using,
			Filter: baseFilter,
			Limit:  qdrant.PtrOf(limit),
		},
		{
			Query:  qdrant.NewQuery(vector...),
			Using:  using,
			Filter: keywordFilter,
			Limit:  qdrant.PtrOf(limit),
		},
	}

	query := &qdrant.QueryPoints{
		CollectionName: c.name,
		Prefetch:       prefetch,
		Query:          qdrant.NewQueryFusion(qdrant.Fusion_RRF),
		Limit:          qdrant.PtrOf(limit),
		WithPayload:    qdrant.NewWithPayload(true),
		WithVectors:    withVectors(opts.IncludeVectors),
	}
	if opts.Skip > 0 {
		query.Offset = qdrant.PtrOf(uint64(opts.Skip))
	}

	points, err := c.client.api.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return c.scoredResults(points, opts.IncludeVectors)
}

// Scroll pages through records matching a filter without similarity ranking.
func (c *Collection) Scroll(ctx context.Context, filter vectorstore.Expr, opts vectorstore.ScrollOptions) (recs []*vectorstore.GenericRecord, err error) {
	start := time.Now()
	defer func() { err = c.finish("scroll", start, err) }()

	translated, err := c.filters.translate(filter)
	if err != nil {
		return nil, err
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	req := &qdrant.ScrollPoints{
		CollectionName: c.name,
		Filter:         translated,
		Limit:          qdrant.PtrOf(uint32(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
		WithVectors:    withVectors(opts.IncludeVectors),
	}
	if opts.OrderBy != "" {
		storageName, ok := c.schema.StorageName(opts.OrderBy)
		if !ok {
			return nil, fmt.Errorf("%w: %q", vectorstore.ErrUnknownFilterProperty, opts.OrderBy)
		}
		direction := qdrant.Direction_Asc
		if opts.Descending {
			direction = qdrant.Direction_Desc
		}
		req.OrderBy = &qdrant.OrderBy{Key: storageName, Direction: &direction}
	}

	points, err := c.client.api.Scroll(ctx, req)
	if err != nil {
		return nil, err
	}

	recs = make([]*vectorstore.GenericRecord, 0, len(points))
	for _, point := range points {
		rec, mapErr := c.mapper.recordFromPoint(point.GetId(), point.GetPayload(), point.GetVectors(), opts.IncludeVectors)
		if mapErr != nil {
			return nil, mapErr
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// Describe fetches the server-side collection info: point count, status,
// index state. Useful for diagnostics and readiness checks.
func (c *Collection) Describe(ctx context.Context) (info *qdrant.CollectionInfo, err error) {
	start := time.Now()
	defer func() { err = c.finish("describe", start, err) }()
	return c.client.api.GetCollectionInfo(ctx, c.name)
}

// ── Internals ────────────────────────────────────────────────────────────────

// keywordRestricted conjoins a translated base filter with an OR-group of
// full-text keyword matches. The keyword group enters as one nested Must
// condition and the base filter goes through the same AND merge the
// translator uses, so a base carrying its own Should list keeps its meaning
// instead of being flattened away. The base filter is not mutated.
func keywordRestricted(base *qdrant.Filter, key string, keywords []string) *qdrant.Filter {
	conds := make([]*qdrant.Condition, len(keywords))
	for i, kw := range keywords {
		conds[i] = qdrant.NewMatchText(key, kw)
	}
	group := &qdrant.Filter{Must: []*qdrant.Condition{nested(&qdrant.Filter{Should: conds})}}
	if base == nil {
		return group
	}
	clone := &qdrant.Filter{
		Must:    append([]*qdrant.Condition(nil), base.Must...),
		MustNot: append([]*qdrant.Condition(nil), base.MustNot...),
		Should:  append([]*qdrant.Condition(nil), base.Should...),
	}
	return mergeAnd(clone, group)
}

// searchTarget resolves which named vector a query runs against. Single
// unnamed vector collections never pass a name.
func (c *Collection) searchTarget(property string) (*string, error) {
	if !c.schema.NamedVectors {
		return nil, nil
	}
	if property == "" {
		return qdrant.PtrOf(c.schema.FirstVector().StorageName), nil
	}
	p, ok := c.schema.VectorProperty(property)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a vector property", vectorstore.ErrUnknownFilterProperty, property)
	}
	return qdrant.PtrOf(p.StorageName), nil
}

func (c *Collection) scoredResults(points []*qdrant.ScoredPoint, includeVectors bool) ([]vectorstore.SearchResult, error) {
	results := make([]vectorstore.SearchResult, 0, len(points))
	for _, point := range points {
		rec, err := c.mapper.recordFromPoint(point.GetId(), point.GetPayload(), point.GetVectors(), includeVectors)
		if err != nil {
			return nil, err
		}
		results = append(results, vectorstore.SearchResult{Record: rec, Score: point.GetScore()})
	}
	return results, nil
}

func limitOrDefault(top int) uint64 {
	if top <= 0 {
		return defaultLimit
	}
	return uint64(top)
}

func withVectors(enable bool) *qdrant.WithVectorsSelector {
	return &qdrant.WithVectorsSelector{
		SelectorOptions: &qdrant.WithVectorsSelector_Enable{Enable: enable},
	}
}
