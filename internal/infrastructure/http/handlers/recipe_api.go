package handlers

import (
	"net/http"
	"strings"

	"github.com/smartmealplanner/backend/internal/application/recipe"
	"github.com/smartmealplanner/backend/internal/infrastructure/http/render"
	"github.com/smartmealplanner/backend/internal/infrastructure/security"
	"github.com/smartmealplanner/backend/internal/ports/inbound"
)

// RecipeAPIHandlers handles recipe CRUD and ingredient search
type RecipeAPIHandlers struct {
	base
	recipeService inbound.RecipeService
}

// NewRecipeAPIHandlers creates new recipe API handlers
func NewRecipeAPIHandlers(
	recipeService inbound.RecipeService,
	rr *render.Renderer,
	validator *security.ValidationService,
) *RecipeAPIHandlers {
	return &RecipeAPIHandlers{
		base:          base{render: rr, validator: validator},
		recipeService: recipeService,
	}
}

// List handles GET /recipes
func (h *RecipeAPIHandlers) List(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	page, err := pagination(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	recipes, err := h.recipeService.List(r.Context(), user.ID, page)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, recipes)
}

// Create handles POST /recipes
func (h *RecipeAPIHandlers) Create(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var cmd inbound.CreateRecipeCommand
	if err := h.bind(w, r, &cmd); err != nil {
		h.fail(w, r, err)
		return
	}

	created, err := h.recipeService.Create(r.Context(), user.ID, cmd)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, created)
}

// ByIngredients handles GET /recipes/by-ingredients. Ingredients may be
// repeated or comma separated.
func (h *RecipeAPIHandlers) ByIngredients(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit", recipe.DefaultMatchLimit)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var ingredients []string
	for _, value := range r.URL.Query()["ingredients"] {
		ingredients = append(ingredients, strings.Split(value, ",")...)
	}

	matches, err := h.recipeService.FindByIngredients(r.Context(), user.ID, ingredients, limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, matches)
}

// Get handles GET /recipes/{recipeID}
func (h *RecipeAPIHandlers) Get(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	id, err := pathID(r, "recipeID")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	found, err := h.recipeService.Get(r.Context(), user.ID, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, found)
}

// Update handles PUT /recipes/{recipeID}
func (h *RecipeAPIHandlers) Update(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	id, err := pathID(r, "recipeID")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var cmd inbound.UpdateRecipeCommand
	if err := h.bind(w, r, &cmd); err != nil {
		h.fail(w, r, err)
		return
	}

	updated, err := h.recipeService.Update(r.Context(), user.ID, id, cmd)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, updated)
}

// Delete handles DELETE /recipes/{recipeID}
func (h *RecipeAPIHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	id, err := pathID(r, "recipeID")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.recipeService.Delete(r.Context(), user.ID, id); err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, MessageResponse{Message: "Recipe deleted successfully"})
}
