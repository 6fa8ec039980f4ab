package ai

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure reported by a completion provider
type ErrorKind string

const (
	KindAuth       ErrorKind = "auth"
	KindBadRequest ErrorKind = "bad_request"
	KindRateLimit  ErrorKind = "rate_limit"
	KindStatus     ErrorKind = "status"
	KindConnection ErrorKind = "connection"
	KindDecode     ErrorKind = "decode"
	KindAPI        ErrorKind = "api"
)

// ErrMissingAPIKey is returned by providers constructed without credentials
var ErrMissingAPIKey = errors.New("api key not configured")

// UpstreamError is returned by completion clients
type UpstreamError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Cause      error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// NewUpstreamError builds an UpstreamError. HTTP 429 is always classified as
// a rate limit regardless of kind.
func NewUpstreamError(kind ErrorKind, status int, message string, cause error) *UpstreamError {
	if status == 429 {
		kind = KindRateLimit
	}
	return &UpstreamError{Kind: kind, StatusCode: status, Message: message, Cause: cause}
}
