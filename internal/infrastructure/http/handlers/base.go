// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/smartmealplanner/backend/internal/infrastructure/http/middleware"
	"github.com/smartmealplanner/backend/internal/infrastructure/http/render"
	"github.com/smartmealplanner/backend/internal/infrastructure/security"
	"github.com/smartmealplanner/backend/internal/ports/inbound"
	apperrors "github.com/smartmealplanner/backend/pkg/errors"
)

// maxBodyBytes bounds every JSON request body
const maxBodyBytes = 1 << 20

// MessageResponse is returned by endpoints that have nothing else to report
type MessageResponse struct {
	Message string `json:"message"`
}

// base carries what every handler group needs to read requests and write
// responses
type base struct {
	render    *render.Renderer
	validator *security.ValidationService
}

// bind decodes the JSON body into dst and validates it. dst may be
// pre-populated with defaults; fields absent from the body keep them.
func (b base) bind(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.NewValidationError("request body is required")
		}
		return apperrors.NewValidationError(fmt.Sprintf("invalid JSON body: %v", err))
	}
	return b.validator.ValidateStruct(dst)
}

func (b base) ok(w http.ResponseWriter, data interface{}) {
	b.render.JSON(w, http.StatusOK, data)
}

func (b base) fail(w http.ResponseWriter, r *http.Request, err error) {
	b.render.Error(w, r, err)
}

// currentUser returns the user set by middleware.AuthenticateAPI
func currentUser(r *http.Request) (*inbound.UserDTO, error) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		return nil, apperrors.NewUnauthorizedError("Not authenticated")
	}
	return user, nil
}

// pathID parses a UUID route parameter
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, apperrors.NewValidationErrors([]apperrors.ValidationError{{
			Field:   name,
			Tag:     "uuid",
			Message: "must be a valid UUID",
		}})
	}
	return id, nil
}

// queryInt reads an optional integer query parameter
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewValidationErrors([]apperrors.ValidationError{{
			Field:   name,
			Tag:     "int",
			Message: "must be an integer",
		}})
	}
	return n, nil
}

// queryBool reads an optional boolean query parameter
func queryBool(r *http.Request, name string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperrors.NewValidationErrors([]apperrors.ValidationError{{
			Field:   name,
			Tag:     "bool",
			Message: "must be a boolean",
		}})
	}
	return v, nil
}

// pagination reads skip and limit. Range checks happen in the services.
func pagination(r *http.Request) (inbound.Pagination, error) {
	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		return inbound.Pagination{}, err
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		return inbound.Pagination{}, err
	}
	return inbound.Pagination{Skip: skip, Limit: limit}, nil
}
