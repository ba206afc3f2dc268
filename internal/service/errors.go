package service

import (
	"errors"
	"fmt"
)

// Common service errors
var (
	// ErrMissingDependency is returned by constructors given a nil store or emitter.
	ErrMissingDependency = errors.New("missing service dependency")

	// ErrInvalidImport is returned when an import document cannot be decoded.
	ErrInvalidImport = errors.New("invalid import document")
)

// ServiceError wraps an unexpected failure with the service and operation
// that produced it.
type ServiceError struct {
	Service string
	Op      string
	Err     error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s operation failed: %v", e.Service, e.Op, e.Err)
	}
	return fmt.Sprintf("%s service %s operation failed", e.Service, e.Op)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError wraps err, or returns nil when err is nil.
func NewServiceError(service, op string, err error) error {
	if err == nil {
		return nil
	}
	return &ServiceError{Service: service, Op: op, Err: err}
}
