package qdrant

import (
	"fmt"

	"github.com/Aleph-Alpha/connectors/v1/vectorstore"
	qdrant "github.com/qdrant/go-client/qdrant"
)

// Collection-create mapping: from a validated schema to Qdrant's
// CreateCollection request parts and the payload index plan applied after
// creation.

var distanceByFunction = map[vectorstore.DistanceFunction]qdrant.Distance{
	vectorstore.DistanceCosine:     qdrant.Distance_Cosine,
	vectorstore.DistanceDotProduct: qdrant.Distance_Dot,
	vectorstore.DistanceEuclidean:  qdrant.Distance_Euclid,
	vectorstore.DistanceManhattan:  qdrant.Distance_Manhattan,
}

// vectorsConfig builds the vector layout of a new collection: a single
// unnamed vector, or one named vector per schema vector property.
func vectorsConfig(schema *vectorstore.Schema) (*qdrant.VectorsConfig, error) {
	if !schema.NamedVectors {
		params, err := vectorParams(schema.FirstVector())
		if err != nil {
			return nil, err
		}
		return qdrant.NewVectorsConfig(params), nil
	}

	byName := make(map[string]*qdrant.VectorParams, len(schema.Vectors))
	for i := range schema.Vectors {
		p := &schema.Vectors[i]
		params, err := vectorParams(p)
		if err != nil {
			return nil, err
		}
		byName[p.StorageName] = params
	}
	return &qdrant.VectorsConfig{
		Config: &qdrant.VectorsConfig_ParamsMap{
			ParamsMap: &qdrant.VectorParamsMap{Map: byName},
		},
	}, nil
}

func vectorParams(p *vectorstore.VectorProperty) (*qdrant.VectorParams, error) {
	if p.Dimensions == 0 {
		return nil, fmt.Errorf("%w: vector property %q has no dimensions", vectorstore.ErrInvalidSchema, p.Name)
	}

	// Qdrant's only vector index is HNSW, so both the default and an
	// explicit HNSW request map to plain params. Flat and IVF have no
	// Qdrant equivalent.
	switch p.Index {
	case vectorstore.IndexDefault, vectorstore.IndexHNSW:
	default:
		return nil, fmt.Errorf("%w: vector property %q requests index kind %d",
			vectorstore.ErrUnsupportedIndexKind, p.Name, p.Index)
	}

	distance, ok := distanceByFunction[p.Distance]
	if !ok {
		return nil, fmt.Errorf("%w: vector property %q has unsupported distance function %d",
			vectorstore.ErrInvalidSchema, p.Name, p.Distance)
	}

	return &qdrant.VectorParams{
		Size:     p.Dimensions,
		Distance: distance,
		Datatype: qdrant.Datatype_Float32.Enum(),
	}, nil
}

// payloadIndex is one CreateFieldIndex call planned for a new collection.
type payloadIndex struct {
	Field string
	Type  qdrant.FieldType
}

// payloadIndexes plans the payload indexes a schema asks for. Full-text
// indexes take precedence over plain keyword indexes on the same property.
func payloadIndexes(schema *vectorstore.Schema) ([]payloadIndex, error) {
	var plan []payloadIndex
	for _, p := range schema.Data {
		if p.FullTextIndexed {
			plan = append(plan, payloadIndex{Field: p.StorageName, Type: qdrant.FieldType_FieldTypeText})
			continue
		}
		if !p.Indexed {
			continue
		}
		ft, err := payloadFieldType(p)
		if err != nil {
			return nil, err
		}
		plan = append(plan, payloadIndex{Field: p.StorageName, Type: ft})
	}
	return plan, nil
}

func payloadFieldType(p vectorstore.DataProperty) (qdrant.FieldType, error) {
	switch p.Type {
	case vectorstore.TypeString, vectorstore.TypeStringList, vectorstore.TypeAny:
		return qdrant.FieldType_FieldTypeKeyword, nil
	case vectorstore.TypeInt32, vectorstore.TypeInt64, vectorstore.TypeInt64List:
		return qdrant.FieldType_FieldTypeInteger, nil
	case vectorstore.TypeFloat32, vectorstore.TypeFloat64, vectorstore.TypeFloat64List:
		return qdrant.FieldType_FieldTypeFloat, nil
	case vectorstore.TypeBool:
		return qdrant.FieldType_FieldTypeBool, nil
	case vectorstore.TypeTimestamp:
		return qdrant.FieldType_FieldTypeDatetime, nil
	default:
		return 0, fmt.Errorf("%w: property %q has type %s, which has no payload index type",
			vectorstore.ErrInvalidSchema, p.Name, p.Type)
	}
}
