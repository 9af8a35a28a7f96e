package qdrant

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/connectors/v1/vectorstore"
)

func TestValue_RoundTripScalars(t *testing.T) {
	cases := []struct {
		name   string
		in     any
		target vectorstore.PropertyType
	}{
		{"string", "hello", vectorstore.TypeString},
		{"bool", true, vectorstore.TypeBool},
		{"int64", int64(1 << 40), vectorstore.TypeInt64},
		{"int32", int32(-7), vectorstore.TypeInt32},
		{"float64", 3.25, vectorstore.TypeFloat64},
		{"string list", []string{"a", "b"}, vectorstore.TypeStringList},
		{"int64 list", []int64{1, 2, 3}, vectorstore.TypeInt64List},
		{"float64 list", []float64{0.5, 1.5}, vectorstore.TypeFloat64List},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			encoded, err := value(tc.in)
			require.NoError(t, err)

			decoded, err := nativeValue(encoded, tc.target)
			require.NoError(t, err)
			assert.Equal(t, tc.in, decoded)
		})
	}
}

func TestValue_RoundTripTimestamp(t *testing.T) {
	in := time.Date(2024, 3, 15, 10, 30, 0, 123456789, time.UTC)

	encoded, err := value(in)
	require.NoError(t, err)

	decoded, err := nativeValue(encoded, vectorstore.TypeTimestamp)
	require.NoError(t, err)
	require.IsType(t, time.Time{}, decoded)
	assert.True(t, in.Equal(decoded.(time.Time)))
}

func TestValue_NumericWidthFidelity(t *testing.T) {
	// The store only knows int64 and float64; the declared property type
	// narrows on the way out.
	encoded, err := value(int32(12))
	require.NoError(t, err)

	asInt32, err := nativeValue(encoded, vectorstore.TypeInt32)
	require.NoError(t, err)
	assert.Equal(t, int32(12), asInt32)

	asInt64, err := nativeValue(encoded, vectorstore.TypeInt64)
	require.NoError(t, err)
	assert.Equal(t, int64(12), asInt64)

	wide, err := value(float32(1.5))
	require.NoError(t, err)

	asFloat32, err := nativeValue(wide, vectorstore.TypeFloat32)
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), asFloat32)
}

func TestValue_Int32OverflowRejected(t *testing.T) {
	encoded, err := value(int64(1 << 40))
	require.NoError(t, err)

	_, err = nativeValue(encoded, vectorstore.TypeInt32)
	require.Error(t, err)
	assert.True(t, vectorstore.IsMappingError(err))
}

func TestValue_Uint64OverflowRejected(t *testing.T) {
	_, err := value(uint64(1) << 63)
	require.Error(t, err)
	assert.True(t, vectorstore.IsMappingError(err))
}

func TestValue_KindMismatchRejected(t *testing.T) {
	encoded, err := value("not a number")
	require.NoError(t, err)

	_, err = nativeValue(encoded, vectorstore.TypeInt64)
	require.Error(t, err)
	assert.True(t, vectorstore.IsMappingError(err))
}

func TestValue_BadTimestampRejected(t *testing.T) {
	encoded, err := value("yesterday-ish")
	require.NoError(t, err)

	_, err = nativeValue(encoded, vectorstore.TypeTimestamp)
	require.Error(t, err)
	assert.True(t, vectorstore.IsMappingError(err))
}

func TestValue_NilRoundTrip(t *testing.T) {
	encoded, err := value(nil)
	require.NoError(t, err)

	decoded, err := nativeValue(encoded, vectorstore.TypeString)
	require.NoError(t, err)
	assert.Nil(t, decoded)
}

func TestValue_UnsupportedTypeRejected(t *testing.T) {
	_, err := value(struct{ X int }{X: 1})
	require.Error(t, err)
	assert.True(t, vectorstore.IsMappingError(err))
}

func TestAnyValue_GenericDecoding(t *testing.T) {
	encoded, err := value(map[string]any{
		"name":  "alpha",
		"count": int64(2),
		"inner": []any{true, 1.5},
	})
	require.NoError(t, err)

	decoded, err := nativeValue(encoded, vectorstore.TypeAny)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"name":  "alpha",
		"count": int64(2),
		"inner": []any{true, 1.5},
	}, decoded)
}

func TestAnyValue_IntegersStayInt64(t *testing.T) {
	encoded, err := value(7)
	require.NoError(t, err)

	decoded, err := nativeValue(encoded, vectorstore.TypeAny)
	require.NoError(t, err)
	assert.Equal(t, int64(7), decoded)
}
