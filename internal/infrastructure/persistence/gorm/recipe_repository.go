package gorm

import (
	"context"

	"github.com/google/uuid"
	"github.com/smartmealplanner/backend/internal/domain/recipe"
	"github.com/smartmealplanner/backend/internal/ports/outbound"
	"gorm.io/gorm"
)

// RecipeRepository implements the recipe repository interface using GORM
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

var _ outbound.RecipeRepository = (*RecipeRepository)(nil)

// Create creates a new recipe
func (r *RecipeRepository) Create(ctx context.Context, rec *recipe.Recipe) error {
	return translateError(conn(ctx, r.db).Create(RecipeToModel(rec)).Error)
}

// Update overwrites the mutable columns of an owned recipe
func (r *RecipeRepository) Update(ctx context.Context, rec *recipe.Recipe) error {
	result := conn(ctx, r.db).Model(&RecipeModel{}).
		Where("id = ? AND user_id = ?", rec.ID, rec.UserID).
		Select("name", "description", "ingredients", "instructions", "prep_time", "updated_at").
		Updates(RecipeToModel(rec))
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return outbound.ErrNotFound
	}
	return nil
}

// Delete hard-deletes a recipe
func (r *RecipeRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := conn(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).Delete(&RecipeModel{})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return outbound.ErrNotFound
	}
	return nil
}

// FindByID finds a recipe owned by userID
func (r *RecipeRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*recipe.Recipe, error) {
	var model RecipeModel
	if err := conn(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return ModelToRecipe(&model), nil
}

// FindByUser finds recipes by user ID with pagination
func (r *RecipeRepository) FindByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*recipe.Recipe, error) {
	var models []RecipeModel
	err := conn(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, translateError(err)
	}

	recipes := make([]*recipe.Recipe, len(models))
	for i := range models {
		recipes[i] = ModelToRecipe(&models[i])
	}
	return recipes, nil
}
