package scraper

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrNotModified = errors.New("document not modified")
	ErrNoContent   = errors.New("no extractable content")
)

// NetworkError represents a fetch failure (timeout, non-2xx, connection refused)
type NetworkError struct {
	URL        string
	StatusCode int
	Cause      error
}

func (e NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Cause)
}

func (e NetworkError) Unwrap() error {
	return e.Cause
}

// ParseError represents unexpected HTML structure. A ParseError fails only the
// offending document; batch runs skip and report it.
type ParseError struct {
	URL    string
	Reason string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %s", e.URL, e.Reason)
}

func (e ParseError) Is(target error) bool {
	return target == ErrNoContent
}

// NewNetworkError creates a NetworkError
func NewNetworkError(url string, statusCode int, cause error) error {
	return NetworkError{URL: url, StatusCode: statusCode, Cause: cause}
}

// NewParseError creates a ParseError
func NewParseError(url, reason string) error {
	return ParseError{URL: url, Reason: reason}
}

// IsNetworkError checks whether err is a fetch failure
func IsNetworkError(err error) bool {
	var netErr NetworkError
	return errors.As(err, &netErr)
}

// IsParseError checks whether err is a parse failure
func IsParseError(err error) bool {
	var parseErr ParseError
	return errors.As(err, &parseErr)
}
