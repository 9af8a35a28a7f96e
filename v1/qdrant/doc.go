// Package qdrant implements the vectorstore interfaces on top of the Qdrant
// vector database, using the official gRPC client.
//
// The package is split along the same seams as the wire protocol:
//
//	qdrant/
//	├── client.go            // connection, health check, teardown
//	├── configs.go           // connection configuration
//	├── store.go             // collection lifecycle facade
//	├── collection.go        // record-level operations
//	├── mapper.go            // GenericRecord ↔ point conversion
//	├── codec.go             // native Go values ↔ payload values
//	├── translator.go        // Expr predicates → Qdrant filters
//	├── collection_schema.go // schema → CreateCollection parts
//	├── observer.go          // per-operation metrics
//	├── errors.go            // error wrapping and status classification
//	└── fx_module.go         // Fx dependency injection module
//
// # Basic Usage
//
//	store, err := qdrant.NewStore(qdrant.FromEndpoint("localhost"), logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	col, err := store.Collection("documents", vectorstore.Definition{
//	    Key: vectorstore.KeyProperty{Name: "id", Kind: vectorstore.KeyUUID},
//	    Data: []vectorstore.DataProperty{
//	        {Name: "title", Type: vectorstore.TypeString, Indexed: true},
//	        {Name: "content", Type: vectorstore.TypeString, FullTextIndexed: true},
//	        {Name: "rating", Type: vectorstore.TypeFloat64},
//	    },
//	    Vectors: []vectorstore.VectorProperty{
//	        {Name: "embedding", Dimensions: 1536, SourceProperty: "content"},
//	    },
//	}, qdrant.WithEmbeddingGenerator(gen))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := col.EnsureExists(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	rec := vectorstore.NewRecord(uuid.New())
//	rec.Data["title"] = "My Document"
//	rec.Data["content"] = "..."
//	keys, err := col.Upsert(ctx, rec)
//
//	results, err := col.Search(ctx, queryVector, vectorstore.SearchOptions{
//	    Top:    5,
//	    Filter: vectorstore.Gt("rating", 4.0),
//	})
//
// # Filtering
//
// Predicates are built from the vectorstore expression constructors (Eq, Ne,
// Gt, Gte, Lt, Lte, And, Or, Not, FieldContains, In) and compiled to Qdrant's
// Must/MustNot/Should structure by this package. Field names are logical
// property names; the translator resolves storage names from the schema and
// rejects fields the schema does not declare.
//
// # Hybrid Search
//
// Collection.HybridSearch fuses a plain dense search with a keyword-boosted
// one via reciprocal rank fusion, ranking records that match both the vector
// and the keywords above records that match only one. The keyword branch
// requires a full-text indexed property.
//
// # Keys
//
// Qdrant point ids are either unsigned integers or UUIDs; the schema's key
// kind selects which, and the mapper rejects keys of any other shape.
//
// # FX Module Integration
//
//	app := fx.New(
//	    qdrant.FXModule,
//	    fx.Provide(func() *qdrant.Config { return qdrant.DefaultConfig() }),
//	)
//	app.Run()
//
// # Thread Safety
//
// Store and Collection are safe for concurrent use by multiple goroutines.
package qdrant
