package speech

import (
	"errors"
	"fmt"
)

// ErrSynthesisFailed is the sentinel for speech service failures
var ErrSynthesisFailed = errors.New("speech synthesis failed")

// ServiceError represents a failure from the external text-to-speech service
type ServiceError struct {
	Language   string
	StatusCode int
	Cause      error
}

func (e ServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("speech synthesis for %s failed with status %d", e.Language, e.StatusCode)
	}
	return fmt.Sprintf("speech synthesis for %s failed: %v", e.Language, e.Cause)
}

func (e ServiceError) Unwrap() error {
	return e.Cause
}

func (e ServiceError) Is(target error) bool {
	return target == ErrSynthesisFailed
}

// NewServiceError creates a ServiceError
func NewServiceError(language string, statusCode int, cause error) error {
	return ServiceError{Language: language, StatusCode: statusCode, Cause: cause}
}
