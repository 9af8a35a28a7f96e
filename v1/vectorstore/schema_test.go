package vectorstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDefinition() Definition {
	return Definition{
		Key: KeyProperty{Name: "id", Kind: KeyUint64},
		Data: []DataProperty{
			{Name: "title", Type: TypeString},
			{Name: "rating", Type: TypeFloat64},
		},
		Vectors: []VectorProperty{
			{Name: "embedding", Dimensions: 128},
		},
	}
}

func TestBuildSchema_Valid(t *testing.T) {
	schema, err := BuildSchema(validDefinition())
	require.NoError(t, err)

	p, ok := schema.DataProperty("title")
	require.True(t, ok)
	assert.Equal(t, "title", p.StorageName)

	v, ok := schema.VectorProperty("embedding")
	require.True(t, ok)
	assert.Equal(t, uint64(128), v.Dimensions)
	assert.Same(t, schema.FirstVector(), v)
}

func TestBuildSchema_MissingKey(t *testing.T) {
	def := validDefinition()
	def.Key = KeyProperty{}

	_, err := BuildSchema(def)
	require.Error(t, err)
	assert.True(t, IsSchemaError(err))
}

func TestBuildSchema_NoVectors(t *testing.T) {
	def := validDefinition()
	def.Vectors = nil

	_, err := BuildSchema(def)
	require.Error(t, err)
	assert.True(t, IsSchemaError(err))
}

func TestBuildSchema_MultipleVectorsNeedNamedMode(t *testing.T) {
	def := validDefinition()
	def.Vectors = append(def.Vectors, VectorProperty{Name: "second", Dimensions: 64})

	_, err := BuildSchema(def)
	require.Error(t, err)
	assert.True(t, IsSchemaError(err))

	def.NamedVectors = true
	_, err = BuildSchema(def)
	require.NoError(t, err)
}

func TestBuildSchema_ZeroDimensions(t *testing.T) {
	def := validDefinition()
	def.Vectors[0].Dimensions = 0

	_, err := BuildSchema(def)
	require.Error(t, err)
	assert.True(t, IsSchemaError(err))
	assert.Contains(t, err.Error(), "embedding")
}

func TestBuildSchema_DuplicateNames(t *testing.T) {
	def := validDefinition()
	def.Data = append(def.Data, DataProperty{Name: "title", Type: TypeString})

	_, err := BuildSchema(def)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title")
}

func TestBuildSchema_VectorNameCollidesWithData(t *testing.T) {
	def := validDefinition()
	def.Vectors[0].Name = "title"

	_, err := BuildSchema(def)
	require.Error(t, err)
	assert.True(t, IsSchemaError(err))
}

func TestBuildSchema_FullTextOnNonString(t *testing.T) {
	def := validDefinition()
	def.Data[1].FullTextIndexed = true // rating is float64

	_, err := BuildSchema(def)
	require.Error(t, err)
	assert.True(t, IsSchemaError(err))
}

func TestBuildSchema_UnknownSourceProperty(t *testing.T) {
	def := validDefinition()
	def.Vectors[0].SourceProperty = "nope"

	_, err := BuildSchema(def)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestBuildSchema_BadKeyKind(t *testing.T) {
	def := validDefinition()
	def.Key.Kind = KeyKind(99)

	_, err := BuildSchema(def)
	require.Error(t, err)
	assert.True(t, IsSchemaError(err))
}

func TestBuildSchema_StorageNameDefaultsAndOverrides(t *testing.T) {
	def := validDefinition()
	def.Key.StorageName = "pk"
	def.Data[0].StorageName = "doc_title"

	schema, err := BuildSchema(def)
	require.NoError(t, err)

	name, ok := schema.StorageName("id")
	require.True(t, ok)
	assert.Equal(t, "pk", name)

	name, ok = schema.StorageName("title")
	require.True(t, ok)
	assert.Equal(t, "doc_title", name)

	name, ok = schema.StorageName("rating")
	require.True(t, ok)
	assert.Equal(t, "rating", name)

	_, ok = schema.StorageName("unknown")
	assert.False(t, ok)
}

func TestBuildSchema_DefinitionNotAliased(t *testing.T) {
	// BuildSchema copies the property slices; mutating the definition
	// afterwards must not leak into the schema.
	def := validDefinition()
	schema, err := BuildSchema(def)
	require.NoError(t, err)

	def.Data[0].StorageName = "mutated"

	p, ok := schema.DataProperty("title")
	require.True(t, ok)
	assert.Equal(t, "title", p.StorageName)
}
