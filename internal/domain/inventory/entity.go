// Package inventory defines the pantry item aggregate
package inventory

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/smartmealplanner/backend/internal/domain/shared"
)

var (
	ErrEmptyName        = errors.New("item name is required")
	ErrNegativeQuantity = errors.New("quantity must not be negative")
)

// Item is a food item the user currently has at home
type Item struct {
	ID         uuid.UUID    `json:"id"`
	UserID     uuid.UUID    `json:"user_id"`
	Name       string       `json:"name"`
	Quantity   float64      `json:"quantity"`
	Unit       string       `json:"unit"`
	ExpiryDate *shared.Date `json:"expiry_date"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// Update holds the fields a partial update may overwrite; nil means unchanged
type Update struct {
	Name       *string
	Quantity   *float64
	Unit       *string
	ExpiryDate *shared.Date
}

// NewItem validates and creates an inventory item owned by userID
func NewItem(userID uuid.UUID, name string, quantity float64, unit string, expiry *shared.Date) (*Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if quantity < 0 {
		return nil, ErrNegativeQuantity
	}

	now := time.Now().UTC()
	return &Item{
		ID:         uuid.New(),
		UserID:     userID,
		Name:       name,
		Quantity:   quantity,
		Unit:       unit,
		ExpiryDate: expiry,
		CreatedAt:  now,
		UpdatedAt:  now,
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
	if u.ExpiryDate != nil {
		i.ExpiryDate = u.ExpiryDate
	}
	i.UpdatedAt = time.Now().UTC()
	return nil
}

// AddQuantity increases the stock, used when shopping items are purchased
func (i *Item) AddQuantity(q float64) error {
	if i.Quantity+q < 0 {
		return ErrNegativeQuantity
	}
	i.Quantity += q
	i.UpdatedAt = time.Now().UTC()
	return nil
}
