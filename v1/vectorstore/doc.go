// Package vectorstore defines the store-agnostic building blocks shared by
// the vector database connectors in this module.
//
// It contains:
//
//   - The schema model: a collection's key, data, and vector properties,
//     built once from an explicit Definition and treated as immutable
//     configuration afterwards (see BuildSchema).
//   - The predicate AST: a small expression tree (Equal, Compare, And, Or,
//     Not, Contains) over record fields that each connector compiles into
//     its native filter format.
//   - The generic record: a dictionary-backed record shape used when no
//     fixed payload schema is wanted.
//   - The error taxonomy: schema, mapping, and filter-translation sentinels
//     plus OperationError for wrapped transport failures.
//   - The EmbeddingGenerator hook invoked by connectors when a record is
//     upserted without a value for a generator-backed vector property.
//
// Connectors (e.g. the qdrant package) depend on this package; application
// code depends on both.
//
// Example:
//
//	schema, err := vectorstore.BuildSchema(vectorstore.Definition{
//	    Key: vectorstore.KeyProperty{Name: "id", Kind: vectorstore.KeyUint64},
//	    Data: []vectorstore.DataProperty{
//	        {Name: "city", Type: vectorstore.TypeString, Indexed: true},
//	        {Name: "population", Type: vectorstore.TypeInt64},
//	    },
//	    Vectors: []vectorstore.VectorProperty{
//	        {Name: "embedding", Dimensions: 1536},
//	    },
//	})
package vectorstore
