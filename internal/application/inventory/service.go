// Package inventory provides the application layer for a user's pantry
package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/smartmealplanner/backend/internal/application/common"
	"github.com/smartmealplanner/backend/internal/domain/inventory"
	"github.com/smartmealplanner/backend/internal/ports/inbound"
	"github.com/smartmealplanner/backend/internal/ports/outbound"
	"go.uber.org/zap"
)

const resource = "Inventory item"

var _ inbound.InventoryService = (*Service)(nil)

// Service implements inventory use cases
type Service struct {
	repo   outbound.InventoryRepository
	logger *zap.Logger
}

// NewService creates a new inventory service
func NewService(repo outbound.InventoryRepository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger.Named("inventory-service")}
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, page inbound.Pagination) ([]*inventory.Item, error) {
	skip, limit := common.Bounds(page.Skip, page.Limit)
	items, err := s.repo.FindByUser(ctx, userID, skip, limit)
	if err != nil {
		return nil, common.RepositoryError(err, resource, "list inventory")
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*inventory.Item, error) {
	item, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, common.RepositoryError(err, resource, "get inventory item")
	}
	return item, nil
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, cmd inbound.CreateInventoryItemCommand) (*inventory.Item, error) {
	item, err := inventory.NewItem(userID, cmd.Name, cmd.Quantity, cmd.Unit, cmd.ExpiryDate)
	if err != nil {
		return nil, common.DomainError(err)
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, common.RepositoryError(err, resource, "create inventory item")
	}

	s.logger.Debug("Inventory item created",
		zap.String("user_id", userID.String()),
		zap.String("item_id", item.ID.String()),
	)
	return item, nil
}

func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, cmd inbound.UpdateInventoryItemCommand) (*inventory.Item, error) {
	item, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := item.Apply(inventory.Update{
		Name:       cmd.Name,
		Quantity:   cmd.Quantity,
		Unit:       cmd.Unit,
		ExpiryDate: cmd.ExpiryDate,
	}); err != nil {
		return nil, common.DomainError(err)
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, common.RepositoryError(err, resource, "update inventory item")
	}
	return item, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return common.RepositoryError(err, resource, "delete inventory item")
	}
	return nil
}
