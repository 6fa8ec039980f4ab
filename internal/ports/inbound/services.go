// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/smartmealplanner/backend/internal/domain/ai"
	"github.com/smartmealplanner/backend/internal/domain/inventory"
	"github.com/smartmealplanner/backend/internal/domain/recipe"
	"github.com/smartmealplanner/backend/internal/domain/shared"
	"github.com/smartmealplanner/backend/internal/domain/shoppinglist"
)

// UserService covers registration, login and token authentication
type UserService interface {
	Register(ctx context.Context, cmd RegisterCommand) (*UserDTO, error)
	Login(ctx context.Context, cmd LoginCommand) (*TokenDTO, error)
	// Authenticate resolves a bearer token to an active user
	Authenticate(ctx context.Context, token string) (*UserDTO, error)
}

// InventoryService manages a user's pantry
type InventoryService interface {
	List(ctx context.Context, userID uuid.UUID, page Pagination) ([]*inventory.Item, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*inventory.Item, error)
	Create(ctx context.Context, userID uuid.UUID, cmd CreateInventoryItemCommand) (*inventory.Item, error)
	Update(ctx context.Context, userID, id uuid.UUID, cmd UpdateInventoryItemCommand) (*inventory.Item, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// RecipeService defines the use cases for recipe management
type RecipeService interface {
	List(ctx context.Context, userID uuid.UUID, page Pagination) ([]*recipe.Recipe, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*recipe.Recipe, error)
	Create(ctx context.Context, userID uuid.UUID, cmd CreateRecipeCommand) (*recipe.Recipe, error)
	Update(ctx context.Context, userID, id uuid.UUID, cmd UpdateRecipeCommand) (*recipe.Recipe, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	FindByIngredients(ctx context.Context, userID uuid.UUID, ingredients []string, limit int) ([]recipe.Match, error)
}

// ShoppingListService manages the shopping list and its reconciliation with inventory
type ShoppingListService interface {
	List(ctx context.Context, userID uuid.UUID, page Pagination) ([]*shoppinglist.Item, error)
	Summary(ctx context.Context, userID uuid.UUID) (*shoppinglist.Summary, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*shoppinglist.Item, error)
	Create(ctx context.Context, userID uuid.UUID, cmd CreateShoppingItemCommand) (*shoppinglist.Item, error)
	Update(ctx context.Context, userID, id uuid.UUID, cmd UpdateShoppingItemCommand) (*shoppinglist.Item, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	GenerateFromRecipe(ctx context.Context, userID uuid.UUID, recipeID uuid.UUID, servings float64) ([]*shoppinglist.Item, error)
	MarkPurchased(ctx context.Context, userID, id uuid.UUID, updateInventory bool) (*shoppinglist.Item, error)
}

// AIService exposes the model-backed generation operations
type AIService interface {
	SuggestRecipes(ctx context.Context, userID uuid.UUID, req ai.SuggestRequest) (*ai.SuggestResponse, error)
	GenerateMealPlan(ctx context.Context, userID uuid.UUID, req ai.MealPlanRequest) (*ai.MealPlanResponse, error)
	ScaleRecipe(ctx context.Context, req ai.ScaleRequest) (*ai.ScaleResponse, error)
	AnalyzeNutrition(ctx context.Context, req ai.NutritionRequest) (*ai.NutritionResponse, error)
	SuggestSubstitutions(ctx context.Context, req ai.SubstitutionRequest) (*ai.SubstitutionResponse, error)
	CreateFusionRecipe(ctx context.Context, req ai.FusionRequest) (*ai.FusionResponse, error)
	GenerateTechniqueTutorial(ctx context.Context, req ai.TutorialRequest) (*ai.TutorialResponse, error)
	CreateSeasonalMenu(ctx context.Context, req ai.SeasonalMenuRequest) (*ai.SeasonalMenuResponse, error)
	OptimizeMealPlan(ctx context.Context, req ai.OptimizeRequest) (*ai.OptimizeResponse, error)
	AdaptRecipeDifficulty(ctx context.Context, req ai.AdaptRequest) (*ai.AdaptResponse, error)
}

// Pagination parameters shared by list endpoints
type Pagination struct {
	Skip  int
	Limit int
}

// Command objects for operations

type RegisterCommand struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginCommand struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CreateInventoryItemCommand struct {
	Name       string       `json:"name" validate:"required"`
	Quantity   float64      `json:"quantity" validate:"gte=0"`
	Unit       string       `json:"unit" validate:"required"`
	ExpiryDate *shared.Date `json:"expiry_date"`
}

type UpdateInventoryItemCommand struct {
	Name       *string      `json:"name" validate:"omitempty,min=1"`
	Quantity   *float64     `json:"quantity" validate:"omitempty,gte=0"`
	Unit       *string      `json:"unit"`
	ExpiryDate *shared.Date `json:"expiry_date"`
}

type CreateRecipeCommand struct {
	Name         string              `json:"name" validate:"required"`
	Description  string              `json:"description"`
	Ingredients  []recipe.Ingredient `json:"ingredients" validate:"dive"`
	Instructions []string            `json:"instructions"`
	PrepTime     int                 `json:"prep_time" validate:"gte=0"`
}

type UpdateRecipeCommand struct {
	Name         *string             `json:"name" validate:"omitempty,min=1"`
	Description  *string             `json:"description"`
	Ingredients  []recipe.Ingredient `json:"ingredients" validate:"omitempty,dive"`
	Instructions []string            `json:"instructions"`
	PrepTime     *int                `json:"prep_time" validate:"omitempty,gte=0"`
}

type CreateShoppingItemCommand struct {
	Name     string     `json:"name" validate:"required"`
	Quantity float64    `json:"quantity" validate:"gte=0"`
	Unit     string     `json:"unit" validate:"required"`
	RecipeID *uuid.UUID `json:"recipe_id"`
}

type UpdateShoppingItemCommand struct {
	Name      *string    `json:"name" validate:"omitempty,min=1"`
	Quantity  *float64   `json:"quantity" validate:"omitempty,gte=0"`
	Unit      *string    `json:"unit"`
	RecipeID  *uuid.UUID `json:"recipe_id"`
	Purchased *bool      `json:"purchased"`
}

type ShoppingListFromRecipeCommand struct {
	RecipeID uuid.UUID `json:"recipe_id" validate:"required"`
	Servings float64   `json:"servings"`
}

// DTOs

type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TokenDTO struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}
