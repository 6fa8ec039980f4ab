package gorm

import (
	"context"

	"github.com/google/uuid"
	"github.com/smartmealplanner/backend/internal/domain/inventory"
	"github.com/smartmealplanner/backend/internal/ports/outbound"
	"gorm.io/gorm"
)

// InventoryRepository implements outbound.InventoryRepository using GORM
type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

var _ outbound.InventoryRepository = (*InventoryRepository)(nil)

func (r *InventoryRepository) Create(ctx context.Context, item *inventory.Item) error {
	return translateError(conn(ctx, r.db).Create(InventoryItemToModel(item)).Error)
}

func (r *InventoryRepository) Update(ctx context.Context, item *inventory.Item) error {
	result := conn(ctx, r.db).Model(&InventoryItemModel{}).
		Where("id = ? AND user_id = ?", item.ID, item.UserID).
		Select("name", "quantity", "unit", "expiry_date", "updated_at").
		Updates(InventoryItemToModel(item))
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return outbound.ErrNotFound
	}
	return nil
}

func (r *InventoryRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := conn(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).Delete(&InventoryItemModel{})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return outbound.ErrNotFound
	}
	return nil
}

func (r *InventoryRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*inventory.Item, error) {
	var model InventoryItemModel
	if err := conn(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return ModelToInventoryItem(&model), nil
}

func (r *InventoryRepository) FindByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*inventory.Item, error) {
	var models []InventoryItemModel
	err := conn(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, translateError(err)
	}

	items := make([]*inventory.Item, len(models))
	for i := range models {
		items[i] = ModelToInventoryItem(&models[i])
	}
	return items, nil
}

// FindByNameUnit looks up the item a purchase should be merged into
func (r *InventoryRepository) FindByNameUnit(ctx context.Context, userID uuid.UUID, name, unit string) (*inventory.Item, error) {
	var model InventoryItemModel
	err := conn(ctx, r.db).
		Where("user_id = ? AND name = ? AND unit = ?", userID, name, unit).
		Order("created_at ASC").
		First(&model).Error
	if err != nil {
		return nil, translateError(err)
	}
	return ModelToInventoryItem(&model), nil
}
