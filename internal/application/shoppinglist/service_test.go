package shoppinglist

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/smartmealplanner/backend/internal/domain/user"
	"github.com/smartmealplanner/backend/internal/ports/inbound"
	apperrors "github.com/smartmealplanner/backend/pkg/errors"
	"github.com/smartmealplanner/backend/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type ShoppingListServiceTestSuite struct {
	suite.Suite
	repos   *testutils.Repositories
	service *Service
	owner   *user.User
	ctx     context.Context
}

func (s *ShoppingListServiceTestSuite) SetupTest() {
	s.repos = testutils.NewRepositories(s.T())
	s.service = NewService(
		s.repos.ShoppingList,
		s.repos.Recipes,
		s.repos.Inventory,
		s.repos.Transactor,
		zap.NewNop(),
	)
	s.owner = s.repos.CreateUser(s.T())
	s.ctx = context.Background()
}

func (s *ShoppingListServiceTestSuite) pancakes() uuid.UUID {
	rec := testutils.NewRecipeBuilder(s.owner.ID).
		WithName("Pancakes").
		WithIngredient("flour", 200, "g").
		WithIngredient("milk", 0.5, "l").
		Build(s.T())
	require.NoError(s.T(), s.repos.Recipes.Create(s.ctx, rec))
	return rec.ID
}

func (s *ShoppingListServiceTestSuite) TestGenerateScalesByServings() {
	recipeID := s.pancakes()

	items, err := s.service.GenerateFromRecipe(s.ctx, s.owner.ID, recipeID, 2)
	require.NoError(s.T(), err)
	require.Len(s.T(), items, 2)

	byName := map[string]float64{}
	for _, it := range items {
		byName[it.Name] = it.Quantity
		require.NotNil(s.T(), it.RecipeID)
		assert.Equal(s.T(), recipeID, *it.RecipeID)
	}
	assert.InDelta(s.T(), 400, byName["flour"], 1e-9)
	assert.InDelta(s.T(), 1.0, byName["milk"], 1e-9)
}

func (s *ShoppingListServiceTestSuite) TestGenerateAccumulatesPendingItems() {
	recipeID := s.pancakes()

	_, err := s.service.GenerateFromRecipe(s.ctx, s.owner.ID, recipeID, 1)
	require.NoError(s.T(), err)
	items, err := s.service.GenerateFromRecipe(s.ctx, s.owner.ID, recipeID, 1)
	require.NoError(s.T(), err)
	require.Len(s.T(), items, 2)

	summary, err := s.service.Summary(s.ctx, s.owner.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 2, summary.TotalItems)
	for _, it := range summary.Items {
		if it.Name == "flour" {
			assert.InDelta(s.T(), 400, it.Quantity, 1e-9)
		}
	}
}

func (s *ShoppingListServiceTestSuite) TestGenerateAccumulatesPaddedIngredientNames() {
	rec := testutils.NewRecipeBuilder(s.owner.ID).
		WithName("Bread").
		WithIngredient("flour ", 100, "g").
		Build(s.T())
	require.NoError(s.T(), s.repos.Recipes.Create(s.ctx, rec))

	for i := 0; i < 2; i++ {
		_, err := s.service.GenerateFromRecipe(s.ctx, s.owner.ID, rec.ID, 1)
		require.NoError(s.T(), err)
	}

	summary, err := s.service.Summary(s.ctx, s.owner.ID)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 1, summary.TotalItems)
	assert.Equal(s.T(), "flour", summary.Items[0].Name)
	assert.InDelta(s.T(), 200, summary.Items[0].Quantity, 1e-9)
}

func (s *ShoppingListServiceTestSuite) TestGenerateValidation() {
	recipeID := s.pancakes()

	_, err := s.service.GenerateFromRecipe(s.ctx, s.owner.ID, recipeID, 0)
	appErr, ok := apperrors.As(err)
	require.True(s.T(), ok)
	assert.Equal(s.T(), http.StatusBadRequest, appErr.StatusCode())
	assert.Equal(s.T(), "Servings must be positive", appErr.Message)

	_, err = s.service.GenerateFromRecipe(s.ctx, s.owner.ID, uuid.New(), 1)
	appErr, ok = apperrors.As(err)
	require.True(s.T(), ok)
	assert.Equal(s.T(), http.StatusNotFound, appErr.StatusCode())
	assert.Equal(s.T(), "Recipe not found", appErr.Message)

	// another user's recipe is invisible
	other := s.repos.CreateUser(s.T())
	_, err = s.service.GenerateFromRecipe(s.ctx, other.ID, recipeID, 1)
	assert.True(s.T(), apperrors.Is(err, apperrors.CodeNotFound))
}

func (s *ShoppingListServiceTestSuite) TestMarkPurchasedUpdatesInventory() {
	item, err := s.service.Create(s.ctx, s.owner.ID, inbound.CreateShoppingItemCommand{
		Name: "eggs", Quantity: 6, Unit: "pcs",
	})
	require.NoError(s.T(), err)

	bought, err := s.service.MarkPurchased(s.ctx, s.owner.ID, item.ID, true)
	require.NoError(s.T(), err)
	assert.True(s.T(), bought.Purchased)

	stock, err := s.repos.Inventory.FindByNameUnit(s.ctx, s.owner.ID, "eggs", "pcs")
	require.NoError(s.T(), err)
	assert.InDelta(s.T(), 6, stock.Quantity, 1e-9)

	// a second purchase of the same name and unit adds onto the existing stock
	again, err := s.service.Create(s.ctx, s.owner.ID, inbound.CreateShoppingItemCommand{
		Name: "eggs", Quantity: 4, Unit: "pcs",
	})
	require.NoError(s.T(), err)
	_, err = s.service.MarkPurchased(s.ctx, s.owner.ID, again.ID, true)
	require.NoError(s.T(), err)

	stock, err = s.repos.Inventory.FindByNameUnit(s.ctx, s.owner.ID, "eggs", "pcs")
	require.NoError(s.T(), err)
	assert.InDelta(s.T(), 10, stock.Quantity, 1e-9)

}

func (s *ShoppingListServiceTestSuite) TestRepeatPurchaseAddsAgain() {
	item, err := s.service.Create(s.ctx, s.owner.ID, inbound.CreateShoppingItemCommand{
		Name: "rice", Quantity: 2, Unit: "kg",
	})
	require.NoError(s.T(), err)

	for i := 0; i < 2; i++ {
		bought, err := s.service.MarkPurchased(s.ctx, s.owner.ID, item.ID, true)
		require.NoError(s.T(), err)
		assert.True(s.T(), bought.Purchased)
	}

	stock, err := s.repos.Inventory.FindByNameUnit(s.ctx, s.owner.ID, "rice", "kg")
	require.NoError(s.T(), err)
	assert.InDelta(s.T(), 4, stock.Quantity, 1e-9)

	// a repeat without sync only keeps the flag
	_, err = s.service.MarkPurchased(s.ctx, s.owner.ID, item.ID, false)
	require.NoError(s.T(), err)
	stock, err = s.repos.Inventory.FindByNameUnit(s.ctx, s.owner.ID, "rice", "kg")
	require.NoError(s.T(), err)
	assert.InDelta(s.T(), 4, stock.Quantity, 1e-9)
}

func (s *ShoppingListServiceTestSuite) TestMarkPurchasedWithoutInventory() {
	item, err := s.service.Create(s.ctx, s.owner.ID, inbound.CreateShoppingItemCommand{
		Name: "rice", Quantity: 1, Unit: "kg",
	})
	require.NoError(s.T(), err)

	_, err = s.service.MarkPurchased(s.ctx, s.owner.ID, item.ID, false)
	require.NoError(s.T(), err)

	_, err = s.repos.Inventory.FindByNameUnit(s.ctx, s.owner.ID, "rice", "kg")
	assert.Error(s.T(), err)

	summary, err := s.service.Summary(s.ctx, s.owner.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 1, summary.PurchasedItems)
	assert.Equal(s.T(), 0, summary.PendingItems)
}

func (s *ShoppingListServiceTestSuite) TestCRUD() {
	item, err := s.service.Create(s.ctx, s.owner.ID, inbound.CreateShoppingItemCommand{
		Name: "butter", Quantity: 250, Unit: "g",
	})
	require.NoError(s.T(), err)

	qty := 500.0
	updated, err := s.service.Update(s.ctx, s.owner.ID, item.ID, inbound.UpdateShoppingItemCommand{Quantity: &qty})
	require.NoError(s.T(), err)
	assert.InDelta(s.T(), 500, updated.Quantity, 1e-9)
	assert.Equal(s.T(), "butter", updated.Name)

	list, err := s.service.List(s.ctx, s.owner.ID, inbound.Pagination{Limit: 10})
	require.NoError(s.T(), err)
	assert.Len(s.T(), list, 1)

	require.NoError(s.T(), s.service.Delete(s.ctx, s.owner.ID, item.ID))
	_, err = s.service.Get(s.ctx, s.owner.ID, item.ID)
	assert.True(s.T(), apperrors.Is(err, apperrors.CodeNotFound))
}

func (s *ShoppingListServiceTestSuite) TestCreateWithUnknownRecipe() {
	missing := uuid.New()
	_, err := s.service.Create(s.ctx, s.owner.ID, inbound.CreateShoppingItemCommand{
		Name: "salt", Quantity: 1, Unit: "tsp", RecipeID: &missing,
	})
	assert.True(s.T(), apperrors.Is(err, apperrors.CodeNotFound))
}

func TestShoppingListServiceSuite(t *testing.T) {
	suite.Run(t, new(ShoppingListServiceTestSuite))
}
