package vectorstore

// GenericRecord is the dictionary-backed application record. The key is a
// uint64 or a uuid.UUID per the schema's key kind; data values are keyed by
// logical property name, vectors by logical vector property name.
//
// Records are rebuilt on every read, never mutated in place by a connector.
type GenericRecord struct {
	Key     any                  `json:"key"`
	Data    map[string]any       `json:"data,omitempty"`
	Vectors map[string][]float32 `json:"vectors,omitempty"`
}

// NewRecord constructs an empty record with the given key.
func NewRecord(key any) *GenericRecord {
	return &GenericRecord{
		Key:     key,
		Data:    make(map[string]any),
		Vectors: make(map[string][]float32),
	}
}

// SearchResult pairs a mapped record with its similarity score.
type SearchResult struct {
	Record *GenericRecord `json:"record"`
	Score  float32        `json:"score"`
}

// GetOptions controls read-side materialization.
type GetOptions struct {
	// IncludeVectors requests the stored embeddings. Vector properties owned
	// by an embedding generator are never materialized regardless.
	IncludeVectors bool
}
