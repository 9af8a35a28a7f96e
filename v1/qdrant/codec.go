package qdrant

import (
	"fmt"
	"math"
	"time"

	"github.com/Aleph-Alpha/connectors/v1/vectorstore"
	qdrant "github.com/qdrant/go-client/qdrant"
)

// Field value codec: bidirectional conversion between native Go values and
// Qdrant's dynamically-typed payload Value (a tagged union of null, int64,
// double, string, bool, list, and struct).
//
// Qdrant's value space is narrower than Go's — it cannot distinguish
// int32 from int64 or float32 from float64 — so decoding is directed by the
// schema's target PropertyType, not just by the wire tag. Encoding is
// source-type driven.

// value encodes a native Go value into a Qdrant payload value. Timestamps
// are stored as RFC 3339 strings, matching what the datetime payload index
// expects.
func value(v any) (*qdrant.Value, error) {
	switch val := v.(type) {
	case nil:
		return &qdrant.Value{Kind: &qdrant.Value_NullValue{}}, nil
	case bool:
		return &qdrant.Value{Kind: &qdrant.Value_BoolValue{BoolValue: val}}, nil
	case string:
		return &qdrant.Value{Kind: &qdrant.Value_StringValue{StringValue: val}}, nil
	case int:
		return intValue(int64(val)), nil
	case int8:
		return intValue(int64(val)), nil
	case int16:
		return intValue(int64(val)), nil
	case int32:
		return intValue(int64(val)), nil
	case int64:
		return intValue(val), nil
	case uint:
		return intValue(int64(val)), nil
	case uint8:
		return intValue(int64(val)), nil
	case uint16:
		return intValue(int64(val)), nil
	case uint32:
		return intValue(int64(val)), nil
	case uint64:
		if val > math.MaxInt64 {
			return nil, fmt.Errorf("%w: uint64 value %d overflows the payload integer range",
				vectorstore.ErrMapping, val)
		}
		return intValue(int64(val)), nil
	case float32:
		return doubleValue(float64(val)), nil
	case float64:
		return doubleValue(val), nil
	case time.Time:
		return &qdrant.Value{Kind: &qdrant.Value_StringValue{StringValue: val.Format(time.RFC3339Nano)}}, nil
	case []string:
		return listValue(len(val), func(i int) (*qdrant.Value, error) { return value(val[i]) })
	case []int:
		return listValue(len(val), func(i int) (*qdrant.Value, error) { return value(val[i]) })
	case []int32:
		return listValue(len(val), func(i int) (*qdrant.Value, error) { return value(val[i]) })
	case []int64:
		return listValue(len(val), func(i int) (*qdrant.Value, error) { return value(val[i]) })
	case []float32:
		return listValue(len(val), func(i int) (*qdrant.Value, error) { return value(val[i]) })
	case []float64:
		return listValue(len(val), func(i int) (*qdrant.Value, error) { return value(val[i]) })
	case []bool:
		return listValue(len(val), func(i int) (*qdrant.Value, error) { return value(val[i]) })
	case []any:
		return listValue(len(val), func(i int) (*qdrant.Value, error) { return value(val[i]) })
	case map[string]any:
		fields := make(map[string]*qdrant.Value, len(val))
		for k, elem := range val {
			encoded, err := value(elem)
			if err != nil {
				return nil, err
			}
			fields[k] = encoded
		}
		return &qdrant.Value{Kind: &qdrant.Value_StructValue{
			StructValue: &qdrant.Struct{Fields: fields},
		}}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported payload value type %T", vectorstore.ErrMapping, v)
	}
}

func intValue(v int64) *qdrant.Value {
	return &qdrant.Value{Kind: &qdrant.Value_IntegerValue{IntegerValue: v}}
}

func doubleValue(v float64) *qdrant.Value {
	return &qdrant.Value{Kind: &qdrant.Value_DoubleValue{DoubleValue: v}}
}

func listValue(n int, elem func(int) (*qdrant.Value, error)) (*qdrant.Value, error) {
	values := make([]*qdrant.Value, n)
	for i := 0; i < n; i++ {
		v, err := elem(i)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return &qdrant.Value{Kind: &qdrant.Value_ListValue{
		ListValue: &qdrant.ListValue{Values: values},
	}}, nil
}

// nativeValue decodes a Qdrant payload value into the native type the
// schema asks for. Both the wire tag and the target type participate:
// an integer decodes to int32 or int64 depending on the target, a double
// to float32 or float64, a string to string or time.Time.
func nativeValue(v *qdrant.Value, target vectorstore.PropertyType) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch kind := v.Kind.(type) {
	case *qdrant.Value_NullValue:
		return nil, nil

	case *qdrant.Value_IntegerValue:
		switch target {
		case vectorstore.TypeInt32:
			if kind.IntegerValue > math.MaxInt32 || kind.IntegerValue < math.MinInt32 {
				return nil, fmt.Errorf("%w: integer %d does not fit the declared int32 property",
					vectorstore.ErrMapping, kind.IntegerValue)
			}
			return int32(kind.IntegerValue), nil
		case vectorstore.TypeInt64, vectorstore.TypeAny:
			return kind.IntegerValue, nil
		}

	case *qdrant.Value_DoubleValue:
		switch target {
		case vectorstore.TypeFloat32:
			return float32(kind.DoubleValue), nil
		case vectorstore.TypeFloat64, vectorstore.TypeAny:
			return kind.DoubleValue, nil
		}

	case *qdrant.Value_StringValue:
		switch target {
		case vectorstore.TypeString, vectorstore.TypeAny:
			return kind.StringValue, nil
		case vectorstore.TypeTimestamp:
			t, err := time.Parse(time.RFC3339Nano, kind.StringValue)
			if err != nil {
				return nil, fmt.Errorf("%w: %q is not an RFC 3339 timestamp: %v",
					vectorstore.ErrMapping, kind.StringValue, err)
			}
			return t, nil
		}

	case *qdrant.Value_BoolValue:
		switch target {
		case vectorstore.TypeBool, vectorstore.TypeAny:
			return kind.BoolValue, nil
		}

	case *qdrant.Value_ListValue:
		elems := kind.ListValue.GetValues()
		switch target {
		case vectorstore.TypeStringList:
			out := make([]string, len(elems))
			for i, e := range elems {
				decoded, err := nativeValue(e, vectorstore.TypeString)
				if err != nil {
					return nil, err
				}
				s, ok := decoded.(string)
				if !ok {
					return nil, listElementError(i, e, target)
				}
				out[i] = s
			}
			return out, nil
		case vectorstore.TypeInt64List:
			out := make([]int64, len(elems))
			for i, e := range elems {
				decoded, err := nativeValue(e, vectorstore.TypeInt64)
				if err != nil {
					return nil, err
				}
				n, ok := decoded.(int64)
				if !ok {
					return nil, listElementError(i, e, target)
				}
				out[i] = n
			}
			return out, nil
		case vectorstore.TypeFloat64List:
			out := make([]float64, len(elems))
			for i, e := range elems {
				decoded, err := nativeValue(e, vectorstore.TypeFloat64)
				if err != nil {
					return nil, err
				}
				f, ok := decoded.(float64)
				if !ok {
					return nil, listElementError(i, e, target)
				}
				out[i] = f
			}
			return out, nil
		case vectorstore.TypeAny:
			return anyValue(v), nil
		}

	case *qdrant.Value_StructValue:
		if target == vectorstore.TypeAny {
			return anyValue(v), nil
		}

	default:
		return nil, fmt.Errorf("%w: unhandled payload value kind %T", vectorstore.ErrMapping, v.Kind)
	}

	return nil, fmt.Errorf("%w: cannot decode payload value %s into %s",
		vectorstore.ErrMapping, kindName(v), target)
}

func listElementError(i int, e *qdrant.Value, target vectorstore.PropertyType) error {
	return fmt.Errorf("%w: list element %d (%s) does not match %s",
		vectorstore.ErrMapping, i, kindName(e), target)
}

// anyValue recursively converts a Qdrant payload value to plain Go types
// without a target schema: integers stay int64, doubles float64, lists
// []any, structs map[string]any. This is the generic record model's
// JSON-like view of the payload.
func anyValue(v *qdrant.Value) any {
	if v == nil {
		return nil
	}
	switch kind := v.Kind.(type) {
	case *qdrant.Value_NullValue:
		return nil
	case *qdrant.Value_StringValue:
		return kind.StringValue
	case *qdrant.Value_IntegerValue:
		return kind.IntegerValue
	case *qdrant.Value_DoubleValue:
		return kind.DoubleValue
	case *qdrant.Value_BoolValue:
		return kind.BoolValue
	case *qdrant.Value_ListValue:
		elems := kind.ListValue.GetValues()
		items := make([]any, len(elems))
		for i, item := range elems {
			items[i] = anyValue(item)
		}
		return items
	case *qdrant.Value_StructValue:
		fields := kind.StructValue.GetFields()
		out := make(map[string]any, len(fields))
		for k, field := range fields {
			out[k] = anyValue(field)
		}
		return out
	default:
		return nil
	}
}

func kindName(v *qdrant.Value) string {
	if v == nil || v.Kind == nil {
		return "nil"
	}
	switch v.Kind.(type) {
	case *qdrant.Value_NullValue:
		return "null"
	case *qdrant.Value_StringValue:
		return "string"
	case *qdrant.Value_IntegerValue:
		return "integer"
	case *qdrant.Value_DoubleValue:
		return "double"
	case *qdrant.Value_BoolValue:
		return "bool"
	case *qdrant.Value_ListValue:
		return "list"
	case *qdrant.Value_StructValue:
		return "struct"
	default:
		return fmt.Sprintf("%T", v.Kind)
	}
}
