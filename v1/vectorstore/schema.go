package vectorstore

import "fmt"

// PropertyType is the logical value type of a data property. Connectors use
// it in both directions: it selects the payload index type at collection
// creation and directs narrowing/widening when values come back from the
// store's looser type system (which only knows int64/float64).
type PropertyType int

const (
	// TypeAny passes values through without schema-directed conversion.
	// Used by the generic, dictionary-backed record model.
	TypeAny PropertyType = iota
	TypeString
	TypeInt32
	TypeInt64
	TypeFloat32
	TypeFloat64
	TypeBool
	TypeTimestamp
	TypeStringList
	TypeInt64List
	TypeFloat64List
)

func (t PropertyType) String() string {
	switch t {
	case TypeAny:
		return "any"
	case TypeString:
		return "string"
	case TypeInt32:
		return "int32"
	case TypeInt64:
		return "int64"
	case TypeFloat32:
		return "float32"
	case TypeFloat64:
		return "float64"
	case TypeBool:
		return "bool"
	case TypeTimestamp:
		return "timestamp"
	case TypeStringList:
		return "[]string"
	case TypeInt64List:
		return "[]int64"
	case TypeFloat64List:
		return "[]float64"
	default:
		return fmt.Sprintf("PropertyType(%d)", int(t))
	}
}

// KeyKind restricts key properties to the id types vector databases accept.
type KeyKind int

const (
	KeyUint64 KeyKind = iota
	KeyUUID
)

// DistanceFunction selects the similarity metric of a vector property.
// The zero value is cosine, which is also the default when unset.
type DistanceFunction int

const (
	DistanceCosine DistanceFunction = iota
	DistanceDotProduct
	DistanceEuclidean
	DistanceManhattan
)

// IndexKind selects the vector index algorithm of a vector property.
// The zero value is the store's default. Connectors reject kinds their
// backend does not implement.
type IndexKind int

const (
	IndexDefault IndexKind = iota
	IndexHNSW
	IndexFlat
	IndexIVF
)

// KeyProperty describes the single key property of a record type.
type KeyProperty struct {
	// Name is the logical field name used by application code.
	Name string
	// StorageName overrides the persisted name. Defaults to Name.
	StorageName string
	// Kind is the id type, uint64 or UUID.
	Kind KeyKind
}

// DataProperty describes one non-vector payload property.
type DataProperty struct {
	Name        string
	StorageName string
	Type        PropertyType

	// Indexed requests a filterable payload index for this property.
	Indexed bool
	// FullTextIndexed requests a full-text index. String properties only.
	FullTextIndexed bool
}

// VectorProperty describes one embedding property.
type VectorProperty struct {
	Name        string
	StorageName string

	// Dimensions is the fixed vector length. Required, must be positive.
	Dimensions uint64

	// Distance is the similarity metric. Defaults to cosine.
	Distance DistanceFunction

	// Index is the index algorithm. Defaults to the store default.
	Index IndexKind

	// SourceProperty names the data property whose value feeds an
	// EmbeddingGenerator when a record is upserted without this vector.
	// Properties with a source configured are treated as generator-owned:
	// their vectors are not materialized on reads.
	SourceProperty string
}

// Definition is the explicit, builder-supplied description of a record type.
// It replaces runtime reflection: the caller lists every property once and
// BuildSchema validates the set.
type Definition struct {
	Key     KeyProperty
	Data    []DataProperty
	Vectors []VectorProperty

	// NamedVectors stores each vector property under its storage name.
	// When false the collection holds a single unnamed vector and exactly
	// one vector property must be declared.
	NamedVectors bool
}

// Schema is the validated, immutable form of a Definition. Built once per
// collection; safe for concurrent use.
type Schema struct {
	Key          KeyProperty
	Data         []DataProperty
	Vectors      []VectorProperty
	NamedVectors bool

	dataByName   map[string]*DataProperty
	vectorByName map[string]*VectorProperty
}

// BuildSchema validates def and resolves storage names. It fails with an
// error wrapping ErrInvalidSchema that names the offending property.
func BuildSchema(def Definition) (*Schema, error) {
	if def.Key.Name == "" {
		return nil, fmt.Errorf("%w: a key property is required", ErrInvalidSchema)
	}
	if def.Key.Kind != KeyUint64 && def.Key.Kind != KeyUUID {
		return nil, fmt.Errorf("%w: key property %q has unsupported kind %d (uint64 and UUID keys only)",
			ErrInvalidSchema, def.Key.Name, def.Key.Kind)
	}
	if len(def.Vectors) == 0 {
		return nil, fmt.Errorf("%w: at least one vector property is required", ErrInvalidSchema)
	}
	if !def.NamedVectors && len(def.Vectors) > 1 {
		return nil, fmt.Errorf("%w: %d vector properties declared but the collection is configured for a single unnamed vector",
			ErrInvalidSchema, len(def.Vectors))
	}

	s := &Schema{
		Key:          def.Key,
		NamedVectors: def.NamedVectors,
		dataByName:   make(map[string]*DataProperty, len(def.Data)),
		vectorByName: make(map[string]*VectorProperty, len(def.Vectors)),
	}
	if s.Key.StorageName == "" {
		s.Key.StorageName = s.Key.Name
	}

	seen := map[string]bool{s.Key.Name: true}

	s.Data = make([]DataProperty, len(def.Data))
	copy(s.Data, def.Data)
	for i := range s.Data {
		p := &s.Data[i]
		if p.Name == "" {
			return nil, fmt.Errorf("%w: data property %d has no name", ErrInvalidSchema, i)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("%w: duplicate property name %q", ErrInvalidSchema, p.Name)
		}
		seen[p.Name] = true
		if p.StorageName == "" {
			p.StorageName = p.Name
		}
		if p.FullTextIndexed && p.Type != TypeString && p.Type != TypeAny {
			return nil, fmt.Errorf("%w: property %q is full-text indexed but has type %s (string properties only)",
				ErrInvalidSchema, p.Name, p.Type)
		}
		s.dataByName[p.Name] = p
	}

	s.Vectors = make([]VectorProperty, len(def.Vectors))
	copy(s.Vectors, def.Vectors)
	for i := range s.Vectors {
		p := &s.Vectors[i]
		if p.Name == "" {
			return nil, fmt.Errorf("%w: vector property %d has no name", ErrInvalidSchema, i)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("%w: duplicate property name %q", ErrInvalidSchema, p.Name)
		}
		seen[p.Name] = true
		if p.StorageName == "" {
			p.StorageName = p.Name
		}
		if p.Dimensions == 0 {
			return nil, fmt.Errorf("%w: vector property %q needs a positive Dimensions value", ErrInvalidSchema, p.Name)
		}
		if p.SourceProperty != "" {
			if _, ok := s.dataByName[p.SourceProperty]; !ok {
				return nil, fmt.Errorf("%w: vector property %q references unknown source property %q",
					ErrInvalidSchema, p.Name, p.SourceProperty)
			}
		}
		s.vectorByName[p.Name] = p
	}

	return s, nil
}

// DataProperty looks up a data property by its logical name.
func (s *Schema) DataProperty(name string) (*DataProperty, bool) {
	p, ok := s.dataByName[name]
	return p, ok
}

// VectorProperty looks up a vector property by its logical name.
func (s *Schema) VectorProperty(name string) (*VectorProperty, bool) {
	p, ok := s.vectorByName[name]
	return p, ok
}

// FirstVector returns the sole (or first declared) vector property.
func (s *Schema) FirstVector() *VectorProperty {
	return &s.Vectors[0]
}

// StorageName resolves the persisted name of any property, key included.
// The second return is false when the name is not part of the schema.
func (s *Schema) StorageName(name string) (string, bool) {
	if name == s.Key.Name {
		return s.Key.StorageName, true
	}
	if p, ok := s.dataByName[name]; ok {
		return p.StorageName, true
	}
	if p, ok := s.vectorByName[name]; ok {
		return p.StorageName, true
	}
	return "", false
}
