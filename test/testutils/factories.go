package testutils

import (
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/smartmealplanner/backend/internal/domain/inventory"
	"github.com/smartmealplanner/backend/internal/domain/recipe"
	"github.com/smartmealplanner/backend/internal/domain/shared"
	"github.com/smartmealplanner/backend/internal/domain/shoppinglist"
	"github.com/smartmealplanner/backend/internal/domain/user"
	"github.com/stretchr/testify/require"
)

// UserFactory builds users with fake but valid data
type UserFactory struct {
	faker *gofakeit.Faker
}

func NewUserFactory() *UserFactory {
	return &UserFactory{faker: gofakeit.New(time.Now().UnixNano())}
}

// Build returns an active user. The hash is not a real bcrypt hash.
func (f *UserFactory) Build(t *testing.T) *user.User {
	t.Helper()
	username := strings.ToLower(f.faker.Username()) + f.faker.DigitN(4)
	u, err := user.NewUser(username, username+"@example.com", "$2a$10$"+f.faker.LetterN(53))
	require.NoError(t, err)
	return u
}

// RecipeBuilder provides a fluent interface for building test recipes
type RecipeBuilder struct {
	userID       uuid.UUID
	name         string
	description  string
	ingredients  []recipe.Ingredient
	instructions []string
	prepTime     int
}

// NewRecipeBuilder creates a new recipe builder with default values
func NewRecipeBuilder(userID uuid.UUID) *RecipeBuilder {
	faker := gofakeit.New(time.Now().UnixNano())
	return &RecipeBuilder{
		userID:       userID,
		name:         faker.Dinner(),
		description:  faker.Sentence(8),
		instructions: []string{faker.Sentence(6), faker.Sentence(6)},
		prepTime:     faker.Number(5, 90),
	}
}

func (b *RecipeBuilder) WithName(name string) *RecipeBuilder {
	b.name = name
	return b
}

// WithIngredient appends an ingredient line
func (b *RecipeBuilder) WithIngredient(name string, quantity float64, unit string) *RecipeBuilder {
	b.ingredients = append(b.ingredients, recipe.Ingredient{Name: name, Quantity: quantity, Unit: unit})
	return b
}

func (b *RecipeBuilder) Build(t *testing.T) *recipe.Recipe {
	t.Helper()
	r, err := recipe.NewRecipe(b.userID, b.name, b.description, b.ingredients, b.instructions, b.prepTime)
	require.NoError(t, err)
	return r
}

// NewInventoryItem builds a pantry item with an expiry a week out
func NewInventoryItem(t *testing.T, userID uuid.UUID, name string, quantity float64, unit string) *inventory.Item {
	t.Helper()
	expiry := shared.NewDate(time.Now().AddDate(0, 0, 7))
	item, err := inventory.NewItem(userID, name, quantity, unit, &expiry)
	require.NoError(t, err)
	return item
}

// NewShoppingItem builds an unpurchased shopping list item
func NewShoppingItem(t *testing.T, userID uuid.UUID, name string, quantity float64, unit string) *shoppinglist.Item {
	t.Helper()
	item, err := shoppinglist.NewItem(userID, name, quantity, unit, nil)
	require.NoError(t, err)
	return item
}

// FakeIngredient returns a random food name
func FakeIngredient() string {
	return gofakeit.Vegetable()
}
