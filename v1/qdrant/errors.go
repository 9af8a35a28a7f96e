package qdrant

import (
	"errors"

	"github.com/Aleph-Alpha/connectors/v1/vectorstore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const storeName = "qdrant"

// opError wraps a transport failure with store/collection/operation context.
// Mapping and filter-translation failures pass through this too, so every
// error leaving the facade carries the same shape.
func opError(collection, operation string, err error) error {
	if err == nil {
		return nil
	}
	var oe *vectorstore.OperationError
	if errors.As(err, &oe) {
		return err
	}
	return &vectorstore.OperationError{
		Store:      storeName,
		Collection: collection,
		Operation:  operation,
		Err:        err,
	}
}

// isAlreadyExists matches the gRPC status Qdrant answers with when a
// collection is created twice.
func isAlreadyExists(err error) bool {
	return hasCode(err, codes.AlreadyExists)
}

// isNotFound matches the gRPC status Qdrant answers with for operations on
// missing collections.
func isNotFound(err error) bool {
	return hasCode(err, codes.NotFound)
}

func hasCode(err error, code codes.Code) bool {
	if err == nil {
		return false
	}
	s, ok := status.FromError(err)
	return ok && s.Code() == code
}
