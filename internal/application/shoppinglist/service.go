// Package shoppinglist provides the application layer for the shopping list
// and its reconciliation with the inventory
package shoppinglist

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/smartmealplanner/backend/internal/application/common"
	"github.com/smartmealplanner/backend/internal/domain/inventory"
	"github.com/smartmealplanner/backend/internal/domain/shoppinglist"
	"github.com/smartmealplanner/backend/internal/ports/inbound"
	"github.com/smartmealplanner/backend/internal/ports/outbound"
	apperrors "github.com/smartmealplanner/backend/pkg/errors"
	"go.uber.org/zap"
)

const resource = "Shopping list item"

var _ inbound.ShoppingListService = (*Service)(nil)

// Service implements shopping list use cases
type Service struct {
	items     outbound.ShoppingListRepository
	recipes   outbound.RecipeRepository
	inventory outbound.InventoryRepository
	tx        outbound.Transactor
	logger    *zap.Logger
}

// NewService creates a new shopping list service
func NewService(
	items outbound.ShoppingListRepository,
	recipes outbound.RecipeRepository,
	inventory outbound.InventoryRepository,
	tx outbound.Transactor,
	logger *zap.Logger,
) *Service {
	return &Service{
		items:     items,
		recipes:   recipes,
		inventory: inventory,
		tx:        tx,
		logger:    logger.Named("shopping-list-service"),
	}
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, page inbound.Pagination) ([]*shoppinglist.Item, error) {
	skip, limit := common.Bounds(page.Skip, page.Limit)
	items, err := s.items.FindByUser(ctx, userID, skip, limit)
	if err != nil {
		return nil, common.RepositoryError(err, resource, "list shopping list")
	}
	return items, nil
}

// Summary returns every item with purchased and pending counts
func (s *Service) Summary(ctx context.Context, userID uuid.UUID) (*shoppinglist.Summary, error) {
	items, err := s.items.FindByUser(ctx, userID, 0, -1)
	if err != nil {
		return nil, common.RepositoryError(err, resource, "list shopping list")
	}
	summary := shoppinglist.NewSummary(items)
	return &summary, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*shoppinglist.Item, error) {
	item, err := s.items.FindByID(ctx, userID, id)
	if err != nil {
		return nil, common.RepositoryError(err, resource, "get shopping list item")
	}
	return item, nil
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, cmd inbound.CreateShoppingItemCommand) (*shoppinglist.Item, error) {
	if cmd.RecipeID != nil {
		if _, err := s.recipes.FindByID(ctx, userID, *cmd.RecipeID); err != nil {
			return nil, common.RepositoryError(err, "Recipe", "get recipe")
		}
	}

	item, err := shoppinglist.NewItem(userID, cmd.Name, cmd.Quantity, cmd.Unit, cmd.RecipeID)
	if err != nil {
		return nil, common.DomainError(err)
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, common.RepositoryError(err, resource, "create shopping list item")
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, cmd inbound.UpdateShoppingItemCommand) (*shoppinglist.Item, error) {
	item, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := item.Apply(shoppinglist.Update{
		Name:      cmd.Name,
		Quantity:  cmd.Quantity,
		Unit:      cmd.Unit,
		RecipeID:  cmd.RecipeID,
		Purchased: cmd.Purchased,
	}); err != nil {
		return nil, common.DomainError(err)
	}

	if err := s.items.Update(ctx, item); err != nil {
		return nil, common.RepositoryError(err, resource, "update shopping list item")
	}
	return item, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.items.Delete(ctx, userID, id); err != nil {
		return common.RepositoryError(err, resource, "delete shopping list item")
	}
	return nil
}

// GenerateFromRecipe adds every ingredient of the recipe, scaled by servings.
// Ingredients matching a pending item by name and unit are added onto it.
func (s *Service) GenerateFromRecipe(ctx context.Context, userID, recipeID uuid.UUID, servings float64) ([]*shoppinglist.Item, error) {
	if servings <= 0 {
		return nil, apperrors.NewBadRequestError("Servings must be positive")
	}

	var result []*shoppinglist.Item
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		rec, err := s.recipes.FindByID(ctx, userID, recipeID)
		if err != nil {
			return common.RepositoryError(err, "Recipe", "get recipe")
		}

		seen := make(map[uuid.UUID]bool, len(rec.Ingredients))
		result = make([]*shoppinglist.Item, 0, len(rec.Ingredients))
		for _, ing := range rec.Ingredients {
			quantity := ing.Quantity * servings
			name := strings.TrimSpace(ing.Name)

			item, err := s.items.FindUnpurchasedByNameUnit(ctx, userID, name, ing.Unit)
			switch {
			case err == nil:
				if err := item.AddQuantity(quantity); err != nil {
					return common.DomainError(err)
				}
				if err := s.items.Update(ctx, item); err != nil {
					return common.RepositoryError(err, resource, "update shopping list item")
				}
			case errors.Is(err, outbound.ErrNotFound):
				id := rec.ID
				item, err = shoppinglist.NewItem(userID, name, quantity, ing.Unit, &id)
				if err != nil {
					return common.DomainError(err)
				}
				if err := s.items.Create(ctx, item); err != nil {
					return common.RepositoryError(err, resource, "create shopping list item")
				}
			default:
				return common.RepositoryError(err, resource, "find shopping list item")
			}

			if !seen[item.ID] {
				seen[item.ID] = true
				result = append(result, item)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Shopping list generated from recipe",
		zap.String("user_id", userID.String()),
		zap.String("recipe_id", recipeID.String()),
		zap.Float64("servings", servings),
		zap.Int("items", len(result)),
	)
	return result, nil
}

// MarkPurchased flags an item as bought and, when updateInventory is set,
// adds its quantity to the matching inventory item, creating it if needed.
// Every call with updateInventory adds the quantity again, including repeat
// purchases of an item already flagged as bought.
func (s *Service) MarkPurchased(ctx context.Context, userID, id uuid.UUID, updateInventory bool) (*shoppinglist.Item, error) {
	var item *shoppinglist.Item
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		item, err = s.items.FindByID(ctx, userID, id)
		if err != nil {
			return common.RepositoryError(err, resource, "get shopping list item")
		}

		item.MarkPurchased()
		if err := s.items.Update(ctx, item); err != nil {
			return common.RepositoryError(err, resource, "update shopping list item")
		}

		if !updateInventory {
			return nil
		}
		return s.addToInventory(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) addToInventory(ctx context.Context, item *shoppinglist.Item) error {
	stock, err := s.inventory.FindByNameUnit(ctx, item.UserID, item.Name, item.Unit)
	switch {
	case err == nil:
		if err := stock.AddQuantity(item.Quantity); err != nil {
			return common.DomainError(err)
		}
		if err := s.inventory.Update(ctx, stock); err != nil {
			return common.RepositoryError(err, "Inventory item", "update inventory item")
		}
	case errors.Is(err, outbound.ErrNotFound):
		stock, err = inventory.NewItem(item.UserID, item.Name, item.Quantity, item.Unit, nil)
		if err != nil {
			return common.DomainError(err)
		}
		if err := s.inventory.Create(ctx, stock); err != nil {
			return common.RepositoryError(err, "Inventory item", "create inventory item")
		}
	default:
		return common.RepositoryError(err, "Inventory item", "find inventory item")
	}

	s.logger.Debug("Inventory updated from purchase",
		zap.String("item", item.Name),
		zap.Float64("quantity", item.Quantity),
	)
	return nil
}
