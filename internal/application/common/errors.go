// Package common holds helpers shared by the application services
package common

import (
	"errors"

	"github.com/smartmealplanner/backend/internal/ports/outbound"
	apperrors "github.com/smartmealplanner/backend/pkg/errors"
)

// Pagination bounds applied when a list request leaves them unset
const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// RepositoryError converts a repository failure into an AppError. Missing
// rows become 404 for resource; anything else is a database error.
func RepositoryError(err error, resource, operation string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, outbound.ErrNotFound) {
		return apperrors.NewNotFoundError(resource)
	}
	if _, ok := apperrors.As(err); ok {
		return err
	}
	return apperrors.NewDatabaseError(operation, err)
}

// DomainError converts an entity validation failure into a 400
func DomainError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.NewBadRequestError(err.Error()).WithCause(err)
}

// Bounds normalizes skip and limit
func Bounds(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return skip, limit
}
