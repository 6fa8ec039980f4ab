package handlers

import (
	"net/http"

	"github.com/smartmealplanner/backend/internal/infrastructure/config"
	"github.com/smartmealplanner/backend/internal/infrastructure/http/render"
)

// SystemAPIHandlers serves the unauthenticated informational endpoints
type SystemAPIHandlers struct {
	render      *render.Renderer
	name        string
	version     string
	environment string
}

// NewSystemAPIHandlers creates the root endpoint handlers
func NewSystemAPIHandlers(cfg *config.Config, rr *render.Renderer) *SystemAPIHandlers {
	return &SystemAPIHandlers{
		render:      rr,
		name:        cfg.App.Name,
		version:     cfg.App.Version,
		environment: cfg.App.Environment,
	}
}

// RootResponse is returned by GET /
type RootResponse struct {
	Message     string   `json:"message"`
	Version     string   `json:"version"`
	Environment string   `json:"environment"`
	Features    []string `json:"features"`
}

// Root handles GET /
func (h *SystemAPIHandlers) Root(w http.ResponseWriter, r *http.Request) {
	h.render.JSON(w, http.StatusOK, RootResponse{
		Message:     "Welcome to " + h.name + " API",
		Version:     h.version,
		Environment: h.environment,
		Features: []string{
			"Inventory management",
			"Recipe management",
			"Shopping list with inventory sync",
			"AI recipe suggestions and meal planning",
		},
	})
}
