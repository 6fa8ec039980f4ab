// Package testutils provides common testing utilities and infrastructure setup
package testutils

import (
	"context"
	"testing"

	"github.com/smartmealplanner/backend/internal/domain/user"
	"github.com/smartmealplanner/backend/internal/infrastructure/config"
	"github.com/smartmealplanner/backend/internal/infrastructure/persistence/database"
	gormrepo "github.com/smartmealplanner/backend/internal/infrastructure/persistence/gorm"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewTestDB opens a migrated in-memory SQLite database that is closed when
// the test ends
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{URL: "sqlite:///:memory:"}, false, zap.NewNop())
	require.NoError(t, err, "Failed to open test database")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Repositories bundles the gorm repositories over one test database
type Repositories struct {
	DB           *gorm.DB
	Users        *gormrepo.UserRepository
	Inventory    *gormrepo.InventoryRepository
	Recipes      *gormrepo.RecipeRepository
	ShoppingList *gormrepo.ShoppingListRepository
	Transactor   *gormrepo.Transactor
}

// NewRepositories wires every repository to a fresh test database
func NewRepositories(t *testing.T) *Repositories {
	db := NewTestDB(t)
	return &Repositories{
		DB:           db,
		Users:        gormrepo.NewUserRepository(db),
		Inventory:    gormrepo.NewInventoryRepository(db),
		Recipes:      gormrepo.NewRecipeRepository(db),
		ShoppingList: gormrepo.NewShoppingListRepository(db),
		Transactor:   gormrepo.NewTransactor(db),
	}
}

// CreateUser persists a fake user and returns it
func (r *Repositories) CreateUser(t *testing.T) *user.User {
	t.Helper()
	u := NewUserFactory().Build(t)
	require.NoError(t, r.Users.Create(context.Background(), u))
	return u
}
