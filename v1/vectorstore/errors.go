package vectorstore

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by all connectors. Connectors wrap these with
// property/collection context via fmt.Errorf("%w: ...") so callers can both
// match with errors.Is and read a usable message.
var (
	// ErrInvalidSchema is returned when a collection definition is malformed:
	// missing key, missing vector, bad dimensions, unsupported property type.
	ErrInvalidSchema = errors.New("vectorstore: invalid schema")

	// ErrMapping is returned when a specific record cannot be converted to or
	// from the storage representation.
	ErrMapping = errors.New("vectorstore: record mapping failed")

	// ErrUnsupportedFilterExpression is returned for predicate shapes a
	// connector's translator does not understand.
	ErrUnsupportedFilterExpression = errors.New("vectorstore: unsupported filter expression")

	// ErrUnknownFilterProperty is returned when a predicate references a field
	// that is not part of the collection schema.
	ErrUnknownFilterProperty = errors.New("vectorstore: unknown filter property")

	// ErrUnsupportedFilterValue is returned when a predicate compares against
	// a constant of a type the target store cannot match on.
	ErrUnsupportedFilterValue = errors.New("vectorstore: unsupported filter value type")

	// ErrUnsupportedContainsElement is returned when an inline Contains set
	// holds elements that are neither strings nor integers.
	ErrUnsupportedContainsElement = errors.New("vectorstore: unsupported contains element type")

	// ErrUnsupportedIndexKind is returned when a vector property requests an
	// index algorithm the connector does not support.
	ErrUnsupportedIndexKind = errors.New("vectorstore: unsupported index kind")
)

// IsSchemaError reports whether err originates from schema validation.
func IsSchemaError(err error) bool {
	return errors.Is(err, ErrInvalidSchema)
}

// IsMappingError reports whether err originates from record conversion.
func IsMappingError(err error) bool {
	return errors.Is(err, ErrMapping)
}

// IsFilterError reports whether err originates from filter translation.
func IsFilterError(err error) bool {
	return errors.Is(err, ErrUnsupportedFilterExpression) ||
		errors.Is(err, ErrUnknownFilterProperty) ||
		errors.Is(err, ErrUnsupportedFilterValue) ||
		errors.Is(err, ErrUnsupportedContainsElement)
}

// OperationError wraps a transport-level failure with enough context to
// diagnose it without re-running: which store, which collection, which
// operation. Connector facades are the only place allowed to catch the
// transport's native error type; everything above sees this.
type OperationError struct {
	Store      string
	Collection string
	Operation  string
	Err        error
}

func (e *OperationError) Error() string {
	if e.Collection == "" {
		return fmt.Sprintf("%s: %s failed: %v", e.Store, e.Operation, e.Err)
	}
	return fmt.Sprintf("%s: %s on collection %q failed: %v", e.Store, e.Operation, e.Collection, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }

// AsOperationError unwraps err into an *OperationError if there is one.
func AsOperationError(err error) (*OperationError, bool) {
	var oe *OperationError
	ok := errors.As(err, &oe)
	return oe, ok
}
