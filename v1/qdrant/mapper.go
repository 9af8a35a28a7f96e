package qdrant

import (
	"fmt"

	"github.com/Aleph-Alpha/connectors/v1/vectorstore"
	"github.com/google/uuid"
	qdrant "github.com/qdrant/go-client/qdrant"
)

// recordMapper converts between GenericRecord and Qdrant's point model in
// both directions. All schema knowledge (storage names, value types, which
// vector properties exist) is applied here so the facade stays free of
// per-field logic.
type recordMapper struct {
	schema *vectorstore.Schema

	// dynamic preserves payload keys that are not declared in the schema:
	// unknown keys are written verbatim and read back with generic types.
	// Typed mode only moves declared properties.
	dynamic bool
}

// ── Keys ─────────────────────────────────────────────────────────────────────

// pointID converts an application key to a Qdrant point id according to the
// schema's key kind.
func (m *recordMapper) pointID(key any) (*qdrant.PointId, error) {
	switch m.schema.Key.Kind {
	case vectorstore.KeyUint64:
		n, err := uint64Key(key)
		if err != nil {
			return nil, err
		}
		return qdrant.NewIDNum(n), nil
	case vectorstore.KeyUUID:
		s, err := uuidKey(key)
		if err != nil {
			return nil, err
		}
		return qdrant.NewID(s), nil
	}
	return nil, fmt.Errorf("%w: unsupported key kind %d", vectorstore.ErrMapping, m.schema.Key.Kind)
}

func uint64Key(key any) (uint64, error) {
	switch k := key.(type) {
	case uint64:
		return k, nil
	case uint:
		return uint64(k), nil
	case int:
		if k < 0 {
			return 0, fmt.Errorf("%w: negative key %d for a uint64 key property", vectorstore.ErrMapping, k)
		}
		return uint64(k), nil
	case int64:
		if k < 0 {
			return 0, fmt.Errorf("%w: negative key %d for a uint64 key property", vectorstore.ErrMapping, k)
		}
		return uint64(k), nil
	case uint32:
		return uint64(k), nil
	case int32:
		if k < 0 {
			return 0, fmt.Errorf("%w: negative key %d for a uint64 key property", vectorstore.ErrMapping, k)
		}
		return uint64(k), nil
	default:
		return 0, fmt.Errorf("%w: key %v (%T) does not fit a uint64 key property", vectorstore.ErrMapping, key, key)
	}
}

func uuidKey(key any) (string, error) {
	switch k := key.(type) {
	case uuid.UUID:
		return k.String(), nil
	case string:
		if _, err := uuid.Parse(k); err != nil {
			return "", fmt.Errorf("%w: key %q is not a valid UUID: %v", vectorstore.ErrMapping, k, err)
		}
		return k, nil
	default:
		return "", fmt.Errorf("%w: key %v (%T) does not fit a UUID key property", vectorstore.ErrMapping, key, key)
	}
}

// nativeKey converts a Qdrant point id back to the application key type.
func (m *recordMapper) nativeKey(id *qdrant.PointId) (any, error) {
	switch opt := id.GetPointIdOptions().(type) {
	case *qdrant.PointId_Num:
		if m.schema.Key.Kind != vectorstore.KeyUint64 {
			return nil, fmt.Errorf("%w: numeric point id %d on a UUID-keyed collection", vectorstore.ErrMapping, opt.Num)
		}
		return opt.Num, nil
	case *qdrant.PointId_Uuid:
		if m.schema.Key.Kind != vectorstore.KeyUUID {
			return nil, fmt.Errorf("%w: UUID point id %q on a uint64-keyed collection", vectorstore.ErrMapping, opt.Uuid)
		}
		parsed, err := uuid.Parse(opt.Uuid)
		if err != nil {
			return nil, fmt.Errorf("%w: stored point id %q is not a valid UUID: %v", vectorstore.ErrMapping, opt.Uuid, err)
		}
		return parsed, nil
	default:
		return nil, fmt.Errorf("%w: point id carries no value", vectorstore.ErrMapping)
	}
}

// ── Write path ───────────────────────────────────────────────────────────────

// pointFromRecord maps one record into an upsert-ready point. Every vector
// property declared by the schema must be present on the record; vectors
// owned by an embedding generator are filled in before mapping.
func (m *recordMapper) pointFromRecord(rec *vectorstore.GenericRecord) (*qdrant.PointStruct, error) {
	id, err := m.pointID(rec.Key)
	if err != nil {
		return nil, err
	}

	payload, err := m.payloadFromRecord(rec)
	if err != nil {
		return nil, err
	}

	vectors, err := m.vectorsFromRecord(rec)
	if err != nil {
		return nil, err
	}

	return &qdrant.PointStruct{Id: id, Payload: payload, Vectors: vectors}, nil
}

func (m *recordMapper) payloadFromRecord(rec *vectorstore.GenericRecord) (map[string]*qdrant.Value, error) {
	payload := make(map[string]*qdrant.Value, len(rec.Data))

	for _, p := range m.schema.Data {
		raw, ok := rec.Data[p.Name]
		if !ok {
			continue
		}
		encoded, err := value(raw)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", p.Name, err)
		}
		payload[p.StorageName] = encoded
	}

	if m.dynamic {
		for name, raw := range rec.Data {
			if _, declared := m.schema.DataProperty(name); declared {
				continue
			}
			encoded, err := value(raw)
			if err != nil {
				return nil, fmt.Errorf("property %q: %w", name, err)
			}
			payload[name] = encoded
		}
	}

	return payload, nil
}

func (m *recordMapper) vectorsFromRecord(rec *vectorstore.GenericRecord) (*qdrant.Vectors, error) {
	if !m.schema.NamedVectors {
		p := m.schema.FirstVector()
		data, ok := rec.Vectors[p.Name]
		if !ok || len(data) == 0 {
			return nil, fmt.Errorf("%w: record %v is missing vector %q", vectorstore.ErrMapping, rec.Key, p.Name)
		}
		if uint64(len(data)) != p.Dimensions {
			return nil, dimensionError(rec.Key, p, len(data))
		}
		return qdrant.NewVectors(data...), nil
	}

	named := make(map[string]*qdrant.Vector, len(m.schema.Vectors))
	for i := range m.schema.Vectors {
		p := &m.schema.Vectors[i]
		data, ok := rec.Vectors[p.Name]
		if !ok || len(data) == 0 {
			return nil, fmt.Errorf("%w: record %v is missing vector %q", vectorstore.ErrMapping, rec.Key, p.Name)
		}
		if uint64(len(data)) != p.Dimensions {
			return nil, dimensionError(rec.Key, p, len(data))
		}
		named[p.StorageName] = &qdrant.Vector{Data: data}
	}
	return &qdrant.Vectors{
		VectorsOptions: &qdrant.Vectors_Vectors{
			Vectors: &qdrant.NamedVectors{Vectors: named},
		},
	}, nil
}

func dimensionError(key any, p *vectorstore.VectorProperty, got int) error {
	return fmt.Errorf("%w: record %v vector %q has %d dimensions, schema declares %d",
		vectorstore.ErrMapping, key, p.Name, got, p.Dimensions)
}

// ── Read path ────────────────────────────────────────────────────────────────

// recordFromPoint rebuilds a GenericRecord from a retrieved point's parts.
// Vector properties backed by an embedding generator stay unmaterialized
// even when vectors are requested.
func (m *recordMapper) recordFromPoint(
	id *qdrant.PointId,
	payload map[string]*qdrant.Value,
	vectors *qdrant.VectorsOutput,
	includeVectors bool,
) (*vectorstore.GenericRecord, error) {
	key, err := m.nativeKey(id)
	if err != nil {
		return nil, err
	}

	rec := vectorstore.NewRecord(key)

	for _, p := range m.schema.Data {
		stored, ok := payload[p.StorageName]
		if !ok {
			continue
		}
		decoded, err := nativeValue(stored, p.Type)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", p.Name, err)
		}
		rec.Data[p.Name] = decoded
	}

	if m.dynamic {
		declared := make(map[string]bool, len(m.schema.Data))
		for _, p := range m.schema.Data {
			declared[p.StorageName] = true
		}
		for name, stored := range payload {
			if declared[name] {
				continue
			}
			rec.Data[name] = anyValue(stored)
		}
	}

	if includeVectors && vectors != nil {
		if err := m.readVectors(rec, vectors); err != nil {
			return nil, err
		}
	}

	return rec, nil
}

func (m *recordMapper) readVectors(rec *vectorstore.GenericRecord, vectors *qdrant.VectorsOutput) error {
	if !m.schema.NamedVectors {
		p := m.schema.FirstVector()
		if p.SourceProperty != "" {
			return nil
		}
		if v := vectors.GetVector(); v != nil {
			rec.Vectors[p.Name] = v.GetData()
		}
		return nil
	}

	named := vectors.GetVectors().GetVectors()
	for i := range m.schema.Vectors {
		p := &m.schema.Vectors[i]
		if p.SourceProperty != "" {
			continue
		}
		if v, ok := named[p.StorageName]; ok && v != nil {
			rec.Vectors[p.Name] = v.GetData()
		}
	}
	return nil
}
