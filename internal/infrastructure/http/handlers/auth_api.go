package handlers

import (
	"mime"
	"net/http"

	"github.com/smartmealplanner/backend/internal/infrastructure/http/render"
	"github.com/smartmealplanner/backend/internal/infrastructure/security"
	"github.com/smartmealplanner/backend/internal/ports/inbound"
	apperrors "github.com/smartmealplanner/backend/pkg/errors"
	"go.uber.org/zap"
)

// AuthAPIHandlers handles registration, login and the current-user lookup
type AuthAPIHandlers struct {
	base
	userService inbound.UserService
	logger      *zap.Logger
}

// NewAuthAPIHandlers creates new authentication API handlers
func NewAuthAPIHandlers(
	userService inbound.UserService,
	rr *render.Renderer,
	validator *security.ValidationService,
	logger *zap.Logger,
) *AuthAPIHandlers {
	return &AuthAPIHandlers{
		base:        base{render: rr, validator: validator},
		userService: userService,
		logger:      logger.Named("auth-api"),
	}
}

// Register handles POST /auth/register
func (h *AuthAPIHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.RegisterCommand
	if err := h.bind(w, r, &cmd); err != nil {
		h.fail(w, r, err)
		return
	}

	user, err := h.userService.Register(r.Context(), cmd)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, user)
}

// Login handles POST /auth/login. It accepts the OAuth2 password form as well
// as a JSON body.
func (h *AuthAPIHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.LoginCommand
	if isForm(r) {
		if err := r.ParseForm(); err != nil {
			h.fail(w, r, apperrors.NewValidationError("invalid form body"))
			return
		}
		cmd.Username = r.PostForm.Get("username")
		cmd.Password = r.PostForm.Get("password")
		if err := h.validator.ValidateStruct(cmd); err != nil {
			h.fail(w, r, err)
			return
		}
	} else if err := h.bind(w, r, &cmd); err != nil {
		h.fail(w, r, err)
		return
	}

	token, err := h.userService.Login(r.Context(), cmd)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, token)
}

// Me handles GET /auth/me
func (h *AuthAPIHandlers) Me(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, user)
}

func isForm(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data"
}
