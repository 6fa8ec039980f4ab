package handlers

import (
	"net/http"

	"github.com/smartmealplanner/backend/internal/infrastructure/http/render"
	"github.com/smartmealplanner/backend/internal/infrastructure/security"
	"github.com/smartmealplanner/backend/internal/ports/inbound"
)

// InventoryAPIHandlers handles the pantry endpoints
type InventoryAPIHandlers struct {
	base
	inventoryService inbound.InventoryService
}

// NewInventoryAPIHandlers creates new inventory API handlers
func NewInventoryAPIHandlers(
	inventoryService inbound.InventoryService,
	rr *render.Renderer,
	validator *security.ValidationService,
) *InventoryAPIHandlers {
	return &InventoryAPIHandlers{
		base:             base{render: rr, validator: validator},
		inventoryService: inventoryService,
	}
}

// List handles GET /inventory
func (h *InventoryAPIHandlers) List(w http.ResponseWriter, r *http.Request) {
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

	items, err := h.inventoryService.List(r.Context(), user.ID, page)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, items)
}

// Create handles POST /inventory
func (h *InventoryAPIHandlers) Create(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var cmd inbound.CreateInventoryItemCommand
	if err := h.bind(w, r, &cmd); err != nil {
		h.fail(w, r, err)
		return
	}

	item, err := h.inventoryService.Create(r.Context(), user.ID, cmd)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, item)
}

// Get handles GET /inventory/{itemID}
func (h *InventoryAPIHandlers) Get(w http.ResponseWriter, r *http.Request) {
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

	item, err := h.inventoryService.Get(r.Context(), user.ID, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, item)
}

// Update handles PUT /inventory/{itemID}
func (h *InventoryAPIHandlers) Update(w http.ResponseWriter, r *http.Request) {
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
	var cmd inbound.UpdateInventoryItemCommand
	if err := h.bind(w, r, &cmd); err != nil {
		h.fail(w, r, err)
		return
	}

	item, err := h.inventoryService.Update(r.Context(), user.ID, id, cmd)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, item)
}

// Delete handles DELETE /inventory/{itemID}
func (h *InventoryAPIHandlers) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.inventoryService.Delete(r.Context(), user.ID, id); err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, MessageResponse{Message: "Item deleted successfully"})
}
