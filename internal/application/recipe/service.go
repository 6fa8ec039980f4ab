// Package recipe provides the application layer for recipe management
// This implements the use cases defined in the inbound ports
package recipe

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/smartmealplanner/backend/internal/application/common"
	"github.com/smartmealplanner/backend/internal/domain/recipe"
	"github.com/smartmealplanner/backend/internal/infrastructure/monitoring"
	"github.com/smartmealplanner/backend/internal/ports/inbound"
	"github.com/smartmealplanner/backend/internal/ports/outbound"
	"github.com/smartmealplanner/backend/pkg/errors"
	"go.uber.org/zap"
)

const (
	resource = "Recipe"

	// DefaultMatchLimit caps ingredient search results when no limit is given
	DefaultMatchLimit = 10
)

var _ inbound.RecipeService = (*RecipeService)(nil)

// RecipeService implements the recipe use cases
type RecipeService struct {
	recipeRepo outbound.RecipeRepository
	metrics    *monitoring.Metrics
	logger     *zap.Logger
}

// NewRecipeService creates a new recipe service
func NewRecipeService(
	recipeRepo outbound.RecipeRepository,
	metrics *monitoring.Metrics,
	logger *zap.Logger,
) *RecipeService {
	return &RecipeService{
		recipeRepo: recipeRepo,
		metrics:    metrics,
		logger:     logger.Named("recipe-service"),
	}
}

// List returns a page of the user's recipes, oldest first
func (s *RecipeService) List(ctx context.Context, userID uuid.UUID, page inbound.Pagination) ([]*recipe.Recipe, error) {
	skip, limit := common.Bounds(page.Skip, page.Limit)
	recipes, err := s.recipeRepo.FindByUser(ctx, userID, skip, limit)
	if err != nil {
		return nil, common.RepositoryError(err, resource, "list recipes")
	}
	return recipes, nil
}

// Get retrieves a recipe owned by the user
func (s *RecipeService) Get(ctx context.Context, userID, id uuid.UUID) (*recipe.Recipe, error) {
	rec, err := s.recipeRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, common.RepositoryError(err, resource, "get recipe")
	}
	return rec, nil
}

// Create creates a new recipe
func (s *RecipeService) Create(ctx context.Context, userID uuid.UUID, cmd inbound.CreateRecipeCommand) (*recipe.Recipe, error) {
	s.logger.Info("Creating new recipe",
		zap.String("name", cmd.Name),
		zap.String("user_id", userID.String()),
	)

	rec, err := recipe.NewRecipe(userID, cmd.Name, cmd.Description, cmd.Ingredients, cmd.Instructions, cmd.PrepTime)
	if err != nil {
		return nil, common.DomainError(err)
	}

	if err := s.recipeRepo.Create(ctx, rec); err != nil {
		return nil, common.RepositoryError(err, resource, "save recipe")
	}

	s.metrics.RecipeCreated()
	return rec, nil
}

// Update overwrites the provided fields of a recipe
func (s *RecipeService) Update(ctx context.Context, userID, id uuid.UUID, cmd inbound.UpdateRecipeCommand) (*recipe.Recipe, error) {
	rec, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := rec.Apply(recipe.Update{
		Name:         cmd.Name,
		Description:  cmd.Description,
		Ingredients:  cmd.Ingredients,
		Instructions: cmd.Instructions,
		PrepTime:     cmd.PrepTime,
	}); err != nil {
		return nil, common.DomainError(err)
	}

	if err := s.recipeRepo.Update(ctx, rec); err != nil {
		return nil, common.RepositoryError(err, resource, "update recipe")
	}
	return rec, nil
}

// Delete removes a recipe
func (s *RecipeService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.recipeRepo.Delete(ctx, userID, id); err != nil {
		return common.RepositoryError(err, resource, "delete recipe")
	}
	return nil
}

// FindByIngredients ranks the user's recipes by how many of their
// ingredients appear in the given list
func (s *RecipeService) FindByIngredients(ctx context.Context, userID uuid.UUID, ingredients []string, limit int) ([]recipe.Match, error) {
	names := make([]string, 0, len(ingredients))
	for _, name := range ingredients {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, errors.NewBadRequestError("Ingredients list cannot be empty")
	}
	if limit <= 0 {
		limit = DefaultMatchLimit
	}

	recipes, err := s.recipeRepo.FindByUser(ctx, userID, 0, -1)
	if err != nil {
		return nil, common.RepositoryError(err, resource, "list recipes")
	}

	matches := recipe.MatchByIngredients(recipes, names, limit)
	s.logger.Debug("Ingredient search",
		zap.Int("ingredients", len(names)),
		zap.Int("candidates", len(recipes)),
		zap.Int("matches", len(matches)),
	)
	return matches, nil
}
