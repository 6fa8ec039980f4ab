// Package recipe defines the recipe aggregate and the ingredient matching rules
package recipe

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Ingredient is one line of a recipe's ingredient list
type Ingredient struct {
	Name     string  `json:"name" validate:"required"`
	Quantity float64 `json:"quantity" validate:"gte=0"`
	Unit     string  `json:"unit"`
}

// Recipe represents a user's saved recipe
type Recipe struct {
	ID           uuid.UUID    `json:"id"`
	UserID       uuid.UUID    `json:"user_id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions []string     `json:"instructions"`
	PrepTime     int          `json:"prep_time"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Update holds the fields a partial update may overwrite. Nil slices and
// pointers leave the current value untouched.
type Update struct {
	Name         *string
	Description  *string
	Ingredients  []Ingredient
	Instructions []string
	PrepTime     *int
}

// NewRecipe validates and creates a recipe owned by userID
func NewRecipe(userID uuid.UUID, name, description string, ingredients []Ingredient, instructions []string, prepTime int) (*Recipe, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if prepTime < 0 {
		return nil, ErrNegativePrepTime
	}
	ingredients, err := normalizeIngredients(ingredients)
	if err != nil {
		return nil, err
	}

	if instructions == nil {
		instructions = []string{}
	}

	now := time.Now().UTC()
	return &Recipe{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         name,
		Description:  description,
		Ingredients:  ingredients,
		Instructions: instructions,
		PrepTime:     prepTime,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Apply overwrites the provided fields and refreshes UpdatedAt
func (r *Recipe) Apply(u Update) error {
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if name == "" {
			return ErrEmptyName
		}
		r.Name = name
	}
	if u.Description != nil {
		r.Description = *u.Description
	}
	if u.Ingredients != nil {
		ingredients, err := normalizeIngredients(u.Ingredients)
		if err != nil {
			return err
		}
		r.Ingredients = ingredients
	}
	if u.Instructions != nil {
		r.Instructions = u.Instructions
	}
	if u.PrepTime != nil {
		if *u.PrepTime < 0 {
			return ErrNegativePrepTime
		}
		r.PrepTime = *u.PrepTime
	}
	r.UpdatedAt = time.Now().UTC()
	return nil
}

// IngredientNames returns the lowercased set of ingredient names
func (r *Recipe) IngredientNames() map[string]struct{} {
	names := make(map[string]struct{}, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		names[strings.ToLower(strings.TrimSpace(ing.Name))] = struct{}{}
	}
	return names
}

// normalizeIngredients returns a validated copy with names and units trimmed
func normalizeIngredients(ingredients []Ingredient) ([]Ingredient, error) {
	out := make([]Ingredient, 0, len(ingredients))
	for _, ing := range ingredients {
		ing.Name = strings.TrimSpace(ing.Name)
		ing.Unit = strings.TrimSpace(ing.Unit)
		if ing.Name == "" {
			return nil, ErrEmptyIngredientName
		}
		if ing.Quantity < 0 {
			return nil, ErrNegativeQuantity
		}
		out = append(out, ing)
	}
	return out, nil
}

// Match pairs a recipe with the share of its ingredients found in a query
type Match struct {
	Recipe          *Recipe `json:"recipe"`
	MatchPercentage float64 `json:"match_percentage"`
}

// MatchByIngredients scores every recipe by the percentage of its distinct
// ingredient names present in available (case-insensitive). Recipes with no
// overlap are dropped; the rest are ordered by score, ties keeping input order.
func MatchByIngredients(recipes []*Recipe, available []string, limit int) []Match {
	query := make(map[string]struct{}, len(available))
	for _, name := range available {
		query[strings.ToLower(strings.TrimSpace(name))] = struct{}{}
	}

	matches := make([]Match, 0, len(recipes))
	for _, r := range recipes {
		names := r.IngredientNames()
		if len(names) == 0 {
			continue
		}

		matching := 0
		for name := range names {
			if _, ok := query[name]; ok {
				matching++
			}
		}
		if matching == 0 {
			continue
		}

		matches = append(matches, Match{
			Recipe:          r,
			MatchPercentage: float64(matching) / float64(len(names)) * 100,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchPercentage > matches[j].MatchPercentage
	})

	if limit >= 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
