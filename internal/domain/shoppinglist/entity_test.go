package shoppinglist

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	owner := uuid.New()
	recipeID := uuid.New()

	item, err := NewItem(owner, " Milk ", 2, "l", &recipeID)
	require.NoError(t, err)
	assert.Equal(t, "Milk", item.Name)
	assert.False(t, item.Purchased)
	assert.Equal(t, recipeID, *item.RecipeID)

	_, err = NewItem(owner, "", 1, "l", nil)
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = NewItem(owner, "Milk", -1, "l", nil)
	assert.ErrorIs(t, err, ErrNegativeQuantity)
}

func TestItemLifecycle(t *testing.T) {
	item, err := NewItem(uuid.New(), "Eggs", 6, "pcs", nil)
	require.NoError(t, err)

	require.NoError(t, item.AddQuantity(6))
	assert.Equal(t, 12.0, item.Quantity)

	item.MarkPurchased()
	assert.True(t, item.Purchased)

	unit := "dozen"
	require.NoError(t, item.Apply(Update{Unit: &unit}))
	assert.Equal(t, "dozen", item.Unit)
	assert.Equal(t, 12.0, item.Quantity)
}

func TestNewSummary(t *testing.T) {
	owner := uuid.New()
	a, _ := NewItem(owner, "a", 1, "", nil)
	b, _ := NewItem(owner, "b", 1, "", nil)
	c, _ := NewItem(owner, "c", 1, "", nil)
	b.MarkPurchased()

	s := NewSummary([]*Item{a, b, c})
	assert.Equal(t, 3, s.TotalItems)
	assert.Equal(t, 1, s.PurchasedItems)
	assert.Equal(t, 2, s.PendingItems)

	empty := NewSummary(nil)
	assert.NotNil(t, empty.Items)
	assert.Zero(t, empty.TotalItems)
}
