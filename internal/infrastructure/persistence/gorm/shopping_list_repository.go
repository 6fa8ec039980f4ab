package gorm

import (
	"context"

	"github.com/google/uuid"
	"github.com/smartmealplanner/backend/internal/domain/shoppinglist"
	"github.com/smartmealplanner/backend/internal/ports/outbound"
	"gorm.io/gorm"
)

// ShoppingListRepository implements outbound.ShoppingListRepository using GORM
type ShoppingListRepository struct {
	db *gorm.DB
}

func NewShoppingListRepository(db *gorm.DB) *ShoppingListRepository {
	return &ShoppingListRepository{db: db}
}

var _ outbound.ShoppingListRepository = (*ShoppingListRepository)(nil)

func (r *ShoppingListRepository) Create(ctx context.Context, item *shoppinglist.Item) error {
	return translateError(conn(ctx, r.db).Create(ShoppingItemToModel(item)).Error)
}

func (r *ShoppingListRepository) Update(ctx context.Context, item *shoppinglist.Item) error {
	result := conn(ctx, r.db).Model(&ShoppingListItemModel{}).
		Where("id = ? AND user_id = ?", item.ID, item.UserID).
		Select("name", "quantity", "unit", "recipe_id", "purchased", "updated_at").
		Updates(ShoppingItemToModel(item))
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return outbound.ErrNotFound
	}
	return nil
}

func (r *ShoppingListRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := conn(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).Delete(&ShoppingListItemModel{})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return outbound.ErrNotFound
	}
	return nil
}

func (r *ShoppingListRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*shoppinglist.Item, error) {
	var model ShoppingListItemModel
	if err := conn(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return ModelToShoppingItem(&model), nil
}

func (r *ShoppingListRepository) FindByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*shoppinglist.Item, error) {
	var models []ShoppingListItemModel
	err := conn(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, translateError(err)
	}

	items := make([]*shoppinglist.Item, len(models))
	for i := range models {
		items[i] = ModelToShoppingItem(&models[i])
	}
	return items, nil
}

// FindUnpurchasedByNameUnit finds the pending item a recipe ingredient accumulates into
func (r *ShoppingListRepository) FindUnpurchasedByNameUnit(ctx context.Context, userID uuid.UUID, name, unit string) (*shoppinglist.Item, error) {
	var model ShoppingListItemModel
	err := conn(ctx, r.db).
		Where("user_id = ? AND name = ? AND unit = ? AND purchased = ?", userID, name, unit, false).
		Order("created_at ASC").
		First(&model).Error
	if err != nil {
		return nil, translateError(err)
	}
	return ModelToShoppingItem(&model), nil
}
