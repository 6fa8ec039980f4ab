package recipe

import "errors"

// Domain errors for recipe operations

var (
	// Entity validation errors
	ErrEmptyName           = errors.New("recipe name is required")
	ErrNegativePrepTime    = errors.New("prep time must not be negative")
	ErrEmptyIngredientName = errors.New("ingredient name is required")
	ErrNegativeQuantity    = errors.New("ingredient quantity must not be negative")
)
