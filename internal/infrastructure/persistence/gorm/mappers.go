package gorm

import (
	"github.com/smartmealplanner/backend/internal/domain/inventory"
	"github.com/smartmealplanner/backend/internal/domain/recipe"
	"github.com/smartmealplanner/backend/internal/domain/shared"
	"github.com/smartmealplanner/backend/internal/domain/shoppinglist"
	"github.com/smartmealplanner/backend/internal/domain/user"
)

// UserToModel converts a domain user to a GORM model
func UserToModel(u *user.User) *UserModel {
	return &UserModel{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		HashedPassword: u.HashedPassword,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

// ModelToUser converts a GORM model to a domain user
func ModelToUser(m *UserModel) *user.User {
	return &user.User{
		ID:             m.ID,
		Username:       m.Username,
		Email:          m.Email,
		HashedPassword: m.HashedPassword,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func InventoryItemToModel(i *inventory.Item) *InventoryItemModel {
	m := &InventoryItemModel{
		ID:        i.ID,
		UserID:    i.UserID,
		Name:      i.Name,
		Quantity:  i.Quantity,
		Unit:      i.Unit,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
	if i.ExpiryDate != nil && !i.ExpiryDate.IsZero() {
		t := i.ExpiryDate.Time
		m.ExpiryDate = &t
	}
	return m
}

func ModelToInventoryItem(m *InventoryItemModel) *inventory.Item {
	item := &inventory.Item{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Quantity:  m.Quantity,
		Unit:      m.Unit,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.ExpiryDate != nil {
		d := shared.NewDate(*m.ExpiryDate)
		item.ExpiryDate = &d
	}
	return item
}

// RecipeToModel converts a domain recipe to a GORM model
func RecipeToModel(r *recipe.Recipe) *RecipeModel {
	ingredients := make(IngredientList, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		ingredients[i] = IngredientEntry{Name: ing.Name, Quantity: ing.Quantity, Unit: ing.Unit}
	}

	return &RecipeModel{
		ID:           r.ID,
		UserID:       r.UserID,
		Name:         r.Name,
		Description:  r.Description,
		Ingredients:  ingredients,
		Instructions: StringSlice(r.Instructions),
		PrepTime:     r.PrepTime,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// ModelToRecipe converts a GORM model to a domain recipe
func ModelToRecipe(m *RecipeModel) *recipe.Recipe {
	ingredients := make([]recipe.Ingredient, len(m.Ingredients))
	for i, ing := range m.Ingredients {
		ingredients[i] = recipe.Ingredient{Name: ing.Name, Quantity: ing.Quantity, Unit: ing.Unit}
	}

	instructions := []string(m.Instructions)
	if instructions == nil {
		instructions = []string{}
	}

	return &recipe.Recipe{
		ID:           m.ID,
		UserID:       m.UserID,
		Name:         m.Name,
		Description:  m.Description,
		Ingredients:  ingredients,
		Instructions: instructions,
		PrepTime:     m.PrepTime,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func ShoppingItemToModel(i *shoppinglist.Item) *ShoppingListItemModel {
	return &ShoppingListItemModel{
		ID:        i.ID,
		UserID:    i.UserID,
		Name:      i.Name,
		Quantity:  i.Quantity,
		Unit:      i.Unit,
		RecipeID:  i.RecipeID,
		Purchased: i.Purchased,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

func ModelToShoppingItem(m *ShoppingListItemModel) *shoppinglist.Item {
	return &shoppinglist.Item{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Quantity:  m.Quantity,
		Unit:      m.Unit,
		RecipeID:  m.RecipeID,
		Purchased: m.Purchased,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

