package translations

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrTranslationFailed   = errors.New("translation failed")
)

// ServiceError represents a failure from the external translation service
// (rate limit, quota, network). A failure for one language/section never
// blocks translation of others.
type ServiceError struct {
	Language   string
	StatusCode int
	Cause      error
}

func (e ServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("translation to %s failed with status %d", e.Language, e.StatusCode)
	}
	return fmt.Sprintf("translation to %s failed: %v", e.Language, e.Cause)
}

func (e ServiceError) Unwrap() error {
	return e.Cause
}

func (e ServiceError) Is(target error) bool {
	return target == ErrTranslationFailed
}

// NewServiceError creates a ServiceError
func NewServiceError(language string, statusCode int, cause error) error {
	return ServiceError{Language: language, StatusCode: statusCode, Cause: cause}
}

// SyncError summarizes a partially completed translation pass. Partial
// completion is acceptable; missing pairs are retried on the next run.
type SyncError struct {
	SuccessCount int
	FailureCount int
	Errors       []error
}

func (e SyncError) Error() string {
	return fmt.Sprintf("translation sync completed with %d successes and %d failures", e.SuccessCount, e.FailureCount)
}

// NewSyncError creates a SyncError
func NewSyncError(successCount, failureCount int, errs []error) error {
	return SyncError{SuccessCount: successCount, FailureCount: failureCount, Errors: errs}
}
