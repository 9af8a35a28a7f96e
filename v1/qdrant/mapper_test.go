package qdrant

import (
	"testing"

	"github.com/google/uuid"
	qdrant "github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/connectors/v1/vectorstore"
)

func testMapper(t *testing.T, def vectorstore.Definition) *recordMapper {
	t.Helper()
	schema, err := vectorstore.BuildSchema(def)
	require.NoError(t, err)
	return &recordMapper{schema: schema}
}

func singleVectorDef() vectorstore.Definition {
	return vectorstore.Definition{
		Key: vectorstore.KeyProperty{Name: "id", Kind: vectorstore.KeyUint64},
		Data: []vectorstore.DataProperty{
			{Name: "title", StorageName: "doc_title", Type: vectorstore.TypeString},
			{Name: "pages", Type: vectorstore.TypeInt32},
		},
		Vectors: []vectorstore.VectorProperty{
			{Name: "embedding", Dimensions: 3},
		},
	}
}

func TestMapper_RoundTripSingleVector(t *testing.T) {
	m := testMapper(t, singleVectorDef())

	rec := vectorstore.NewRecord(uint64(42))
	rec.Data["title"] = "Dune"
	rec.Data["pages"] = int32(412)
	rec.Vectors["embedding"] = []float32{0.1, 0.2, 0.3}

	point, err := m.pointFromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), point.GetId().GetNum())
	assert.Contains(t, point.GetPayload(), "doc_title")

	back, err := m.recordFromPoint(point.GetId(), point.GetPayload(), &qdrant.VectorsOutput{
		VectorsOptions: &qdrant.VectorsOutput_Vector{
			Vector: &qdrant.VectorOutput{Data: []float32{0.1, 0.2, 0.3}},
		},
	}, true)
	require.NoError(t, err)

	assert.Equal(t, rec.Key, back.Key)
	assert.Equal(t, rec.Data, back.Data)
	assert.Equal(t, rec.Vectors, back.Vectors)
}

func TestMapper_MissingVectorFails(t *testing.T) {
	m := testMapper(t, singleVectorDef())

	rec := vectorstore.NewRecord(uint64(1))
	rec.Data["title"] = "Dune"

	_, err := m.pointFromRecord(rec)
	require.Error(t, err)
	assert.True(t, vectorstore.IsMappingError(err))
	assert.Contains(t, err.Error(), "embedding")
}

func TestMapper_DimensionMismatchFails(t *testing.T) {
	m := testMapper(t, singleVectorDef())

	rec := vectorstore.NewRecord(uint64(1))
	rec.Vectors["embedding"] = []float32{0.1, 0.2}

	_, err := m.pointFromRecord(rec)
	require.Error(t, err)
	assert.True(t, vectorstore.IsMappingError(err))
}

func TestMapper_AbsentPayloadKeysStayAbsent(t *testing.T) {
	m := testMapper(t, singleVectorDef())

	rec := vectorstore.NewRecord(uint64(1))
	rec.Vectors["embedding"] = []float32{1, 2, 3}

	point, err := m.pointFromRecord(rec)
	require.NoError(t, err)
	assert.Empty(t, point.GetPayload())

	back, err := m.recordFromPoint(point.GetId(), point.GetPayload(), nil, false)
	require.NoError(t, err)
	assert.Empty(t, back.Data)
	assert.Empty(t, back.Vectors)
}

func TestMapper_UUIDKeys(t *testing.T) {
	m := testMapper(t, vectorstore.Definition{
		Key: vectorstore.KeyProperty{Name: "id", Kind: vectorstore.KeyUUID},
		Vectors: []vectorstore.VectorProperty{
			{Name: "embedding", Dimensions: 2},
		},
	})

	key := uuid.New()
	id, err := m.pointID(key)
	require.NoError(t, err)
	assert.Equal(t, key.String(), id.GetUuid())

	back, err := m.nativeKey(id)
	require.NoError(t, err)
	assert.Equal(t, key, back)
}

func TestMapper_UUIDKeyFromString(t *testing.T) {
	m := testMapper(t, vectorstore.Definition{
		Key: vectorstore.KeyProperty{Name: "id", Kind: vectorstore.KeyUUID},
		Vectors: []vectorstore.VectorProperty{
			{Name: "embedding", Dimensions: 2},
		},
	})

	_, err := m.pointID("f47ac10b-58cc-0372-8567-0e02b2c3d479")
	require.NoError(t, err)

	_, err = m.pointID("not-a-uuid")
	require.Error(t, err)
	assert.True(t, vectorstore.IsMappingError(err))
}

func TestMapper_NegativeUint64KeyRejected(t *testing.T) {
	m := testMapper(t, singleVectorDef())

	_, err := m.pointID(-5)
	require.Error(t, err)
	assert.True(t, vectorstore.IsMappingError(err))
}

func TestMapper_KeyKindMismatchOnRead(t *testing.T) {
	m := testMapper(t, singleVectorDef())

	_, err := m.nativeKey(qdrant.NewID(uuid.NewString()))
	require.Error(t, err)
	assert.True(t, vectorstore.IsMappingError(err))
}

func TestMapper_NamedVectors(t *testing.T) {
	m := testMapper(t, vectorstore.Definition{
		Key: vectorstore.KeyProperty{Name: "id", Kind: vectorstore.KeyUint64},
		Vectors: []vectorstore.VectorProperty{
			{Name: "text", StorageName: "text_vec", Dimensions: 2},
			{Name: "image", Dimensions: 2},
		},
		NamedVectors: true,
	})

	rec := vectorstore.NewRecord(uint64(9))
	rec.Vectors["text"] = []float32{0.1, 0.2}
	rec.Vectors["image"] = []float32{0.3, 0.4}

	point, err := m.pointFromRecord(rec)
	require.NoError(t, err)

	named := point.GetVectors().GetVectors().GetVectors()
	require.Len(t, named, 2)
	assert.Equal(t, []float32{0.1, 0.2}, named["text_vec"].GetData())

	back, err := m.recordFromPoint(point.GetId(), nil, &qdrant.VectorsOutput{
		VectorsOptions: &qdrant.VectorsOutput_Vectors{
			Vectors: &qdrant.NamedVectorsOutput{
				Vectors: map[string]*qdrant.VectorOutput{
					"text_vec": {Data: []float32{0.1, 0.2}},
					"image":    {Data: []float32{0.3, 0.4}},
				},
			},
		},
	}, true)
	require.NoError(t, err)
	assert.Equal(t, rec.Vectors, back.Vectors)
}

func TestMapper_GeneratorOwnedVectorNotMaterialized(t *testing.T) {
	m := testMapper(t, vectorstore.Definition{
		Key: vectorstore.KeyProperty{Name: "id", Kind: vectorstore.KeyUint64},
		Data: []vectorstore.DataProperty{
			{Name: "content", Type: vectorstore.TypeString},
		},
		Vectors: []vectorstore.VectorProperty{
			{Name: "embedding", Dimensions: 2, SourceProperty: "content"},
		},
	})

	back, err := m.recordFromPoint(qdrant.NewIDNum(1), nil, &qdrant.VectorsOutput{
		VectorsOptions: &qdrant.VectorsOutput_Vector{
			Vector: &qdrant.VectorOutput{Data: []float32{0.1, 0.2}},
		},
	}, true)
	require.NoError(t, err)
	assert.Empty(t, back.Vectors)
}

func TestMapper_DynamicPayloadPreservesUnknownKeys(t *testing.T) {
	m := testMapper(t, singleVectorDef())
	m.dynamic = true

	rec := vectorstore.NewRecord(uint64(3))
	rec.Data["title"] = "Dune"
	rec.Data["extra"] = "kept"
	rec.Vectors["embedding"] = []float32{1, 2, 3}

	point, err := m.pointFromRecord(rec)
	require.NoError(t, err)
	assert.Contains(t, point.GetPayload(), "extra")

	back, err := m.recordFromPoint(point.GetId(), point.GetPayload(), nil, false)
	require.NoError(t, err)
	assert.Equal(t, "kept", back.Data["extra"])
	assert.Equal(t, "Dune", back.Data["title"])
}

func TestMapper_TypedPayloadDropsUnknownKeys(t *testing.T) {
	m := testMapper(t, singleVectorDef())

	rec := vectorstore.NewRecord(uint64(3))
	rec.Data["title"] = "Dune"
	rec.Data["extra"] = "dropped"
	rec.Vectors["embedding"] = []float32{1, 2, 3}

	point, err := m.pointFromRecord(rec)
	require.NoError(t, err)
	assert.NotContains(t, point.GetPayload(), "extra")
}
