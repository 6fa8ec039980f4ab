// Package shoppinglist defines the shopping list item aggregate
package shoppinglist

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName        = errors.New("item name is required")
	ErrNegativeQuantity = errors.New("quantity must not be negative")
	ErrInvalidServings  = errors.New("servings must be positive")
)

// Item is one entry on a user's shopping list. RecipeID is set when the
// item was derived from a recipe.
type Item struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Name      string     `json:"name"`
	Quantity  float64    `json:"quantity"`
	Unit      string     `json:"unit"`
	RecipeID  *uuid.UUID `json:"recipe_id"`
	Purchased bool       `json:"purchased"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Update holds the fields a partial update may overwrite; nil means unchanged
type Update struct {
	Name      *string
	Quantity  *float64
	Unit      *string
	RecipeID  *uuid.UUID
	Purchased *bool
}

// NewItem validates and creates an unpurchased item owned by userID
func NewItem(userID uuid.UUID, name string, quantity float64, unit string, recipeID *uuid.UUID) (*Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if quantity < 0 {
		return nil, ErrNegativeQuantity
	}

	now := time.Now().UTC()
	return &Item{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Quantity:  quantity,
		Unit:      unit,
		RecipeID:  recipeID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Apply overwrites the provided fields and refreshes UpdatedAt
func (i *Item) Apply(u Update) error {
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if name == "" {
			return ErrEmptyName
		}
		i.Name = name
	}
	if u.Quantity != nil {
		if *u.Quantity < 0 {
			return ErrNegativeQuantity
		}
		i.Quantity = *u.Quantity
	}
	if u.Unit != nil {
		i.Unit = *u.Unit
	}
	if u.RecipeID != nil {
		i.RecipeID = u.RecipeID
	}
	if u.Purchased != nil {
		i.Purchased = *u.Purchased
	}
	i.UpdatedAt = time.Now().UTC()
	return nil
}

// AddQuantity accumulates quantity onto an existing item
func (i *Item) AddQuantity(q float64) error {
	if i.Quantity+q < 0 {
		return ErrNegativeQuantity
	}
	i.Quantity += q
	i.UpdatedAt = time.Now().UTC()
	return nil
}

// MarkPurchased flags the item as bought
func (i *Item) MarkPurchased() {
	i.Purchased = true
	i.UpdatedAt = time.Now().UTC()
}

// Summary is the shopping list view returned to clients
type Summary struct {
	TotalItems     int     `json:"total_items"`
	PurchasedItems int     `json:"purchased_items"`
	PendingItems   int     `json:"pending_items"`
	Items          []*Item `json:"items"`
}

// NewSummary counts purchased and pending items
func NewSummary(items []*Item) Summary {
	if items == nil {
		items = []*Item{}
	}
	s := Summary{TotalItems: len(items), Items: items}
	for _, it := range items {
		if it.Purchased {
			s.PurchasedItems++
		}
	}
	s.PendingItems = s.TotalItems - s.PurchasedItems
	return s
}
