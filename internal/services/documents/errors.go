package documents

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrSectionNotFound  = errors.New("section not found")
	ErrInvalidInput     = errors.New("invalid input")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       interface{}
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s with identifier %v not found", e.Resource, e.ID)
}

func (e NotFoundError) Is(target error) bool {
	switch e.Resource {
	case "section":
		return target == ErrSectionNotFound
	default:
		return target == ErrDocumentNotFound
	}
}

// StorageError represents a transactional write failure. The affected
// document's section set is rolled back entirely.
type StorageError struct {
	Operation string
	Cause     error
}

func (e StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Operation, e.Cause)
}

func (e StorageError) Unwrap() error {
	return e.Cause
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource string, id interface{}) error {
	return NotFoundError{Resource: resource, ID: id}
}

// NewStorageError creates a new StorageError
func NewStorageError(operation string, cause error) error {
	return StorageError{Operation: operation, Cause: cause}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var notFoundErr NotFoundError
	return errors.As(err, &notFoundErr) ||
		errors.Is(err, ErrDocumentNotFound) ||
		errors.Is(err, ErrSectionNotFound)
}
