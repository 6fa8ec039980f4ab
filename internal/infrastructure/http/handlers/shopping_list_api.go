package handlers

import (
	"net/http"

	"github.com/smartmealplanner/backend/internal/infrastructure/http/render"
	"github.com/smartmealplanner/backend/internal/infrastructure/security"
	"github.com/smartmealplanner/backend/internal/ports/inbound"
)

// ShoppingListAPIHandlers handles the shopping list endpoints
type ShoppingListAPIHandlers struct {
	base
	shoppingListService inbound.ShoppingListService
}

// NewShoppingListAPIHandlers creates new shopping list API handlers
func NewShoppingListAPIHandlers(
	shoppingListService inbound.ShoppingListService,
	rr *render.Renderer,
	validator *security.ValidationService,
) *ShoppingListAPIHandlers {
	return &ShoppingListAPIHandlers{
		base:                base{render: rr, validator: validator},
		shoppingListService: shoppingListService,
	}
}

// Summary handles GET /shopping-list
func (h *ShoppingListAPIHandlers) Summary(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	summary, err := h.shoppingListService.Summary(r.Context(), user.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, summary)
}

// Create handles POST /shopping-list
func (h *ShoppingListAPIHandlers) Create(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var cmd inbound.CreateShoppingItemCommand
	if err := h.bind(w, r, &cmd); err != nil {
		h.fail(w, r, err)
		return
	}

	item, err := h.shoppingListService.Create(r.Context(), user.ID, cmd)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, item)
}

// FromRecipe handles POST /shopping-list/recipe
func (h *ShoppingListAPIHandlers) FromRecipe(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	cmd := inbound.ShoppingListFromRecipeCommand{Servings: 1}
	if err := h.bind(w, r, &cmd); err != nil {
		h.fail(w, r, err)
		return
	}

	items, err := h.shoppingListService.GenerateFromRecipe(r.Context(), user.ID, cmd.RecipeID, cmd.Servings)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, items)
}

// Get handles GET /shopping-list/{itemID}
func (h *ShoppingListAPIHandlers) Get(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	id, err := pathID(r, "itemID")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	item, err := h.shoppingListService.Get(r.Context(), user.ID, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, item)
}

// Update handles PUT /shopping-list/{itemID}
func (h *ShoppingListAPIHandlers) Update(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	id, err := pathID(r, "itemID")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var cmd inbound.UpdateShoppingItemCommand
	if err := h.bind(w, r, &cmd); err != nil {
		h.fail(w, r, err)
		return
	}

	item, err := h.shoppingListService.Update(r.Context(), user.ID, id, cmd)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, item)
}

// Delete handles DELETE /shopping-list/{itemID}
func (h *ShoppingListAPIHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	id, err := pathID(r, "itemID")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.shoppingListService.Delete(r.Context(), user.ID, id); err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, MessageResponse{Message: "Shopping list item deleted successfully"})
}

// Purchase handles POST /shopping-list/{itemID}/purchase. The item is added
// to the inventory unless update_inventory=false.
func (h *ShoppingListAPIHandlers) Purchase(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	id, err := pathID(r, "itemID")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	updateInventory, err := queryBool(r, "update_inventory", true)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	item, err := h.shoppingListService.MarkPurchased(r.Context(), user.ID, id, updateInventory)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, item)
}
