// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/smartmealplanner/backend/internal/domain/inventory"
	"github.com/smartmealplanner/backend/internal/domain/recipe"
	"github.com/smartmealplanner/backend/internal/domain/shoppinglist"
	"github.com/smartmealplanner/backend/internal/domain/user"
)

var (
	// ErrNotFound is returned when a record does not exist or is not owned
	// by the requesting user
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is matched by every DuplicateError
	ErrDuplicate = errors.New("duplicate record")
)

// DuplicateError reports a unique constraint violation on Field
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate value for %s", e.Field)
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Create(ctx context.Context, user *user.User) error
	Update(ctx context.Context, user *user.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	CountActive(ctx context.Context) (int64, error)
}

// InventoryRepository persists inventory items. Every lookup is scoped to
// the owning user.
type InventoryRepository interface {
	Create(ctx context.Context, item *inventory.Item) error
	Update(ctx context.Context, item *inventory.Item) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*inventory.Item, error)
	FindByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*inventory.Item, error)
	FindByNameUnit(ctx context.Context, userID uuid.UUID, name, unit string) (*inventory.Item, error)
}

// RecipeRepository defines the interface for recipe persistence
// This follows the Repository pattern for data access abstraction
type RecipeRepository interface {
	Create(ctx context.Context, recipe *recipe.Recipe) error
	Update(ctx context.Context, recipe *recipe.Recipe) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*recipe.Recipe, error)
	// FindByUser returns recipes in insertion order. A negative limit
	// returns every recipe the user owns.
	FindByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*recipe.Recipe, error)
}

// ShoppingListRepository persists shopping list items
type ShoppingListRepository interface {
	Create(ctx context.Context, item *shoppinglist.Item) error
	Update(ctx context.Context, item *shoppinglist.Item) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*shoppinglist.Item, error)
	FindByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*shoppinglist.Item, error)
	FindUnpurchasedByNameUnit(ctx context.Context, userID uuid.UUID, name, unit string) (*shoppinglist.Item, error)
}

// Transactor runs fn inside a database transaction. Repositories called with
// the context passed to fn take part in that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
