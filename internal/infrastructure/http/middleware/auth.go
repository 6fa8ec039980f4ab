package middleware

import (
	"context"
	"net/http"

	"github.com/smartmealplanner/backend/internal/infrastructure/http/render"
	"github.com/smartmealplanner/backend/internal/ports/inbound"
	apperrors "github.com/smartmealplanner/backend/pkg/errors"
)

type userContextKey struct{}

// AuthenticateAPI requires a valid bearer token and stores the resolved user
// in the request context
func AuthenticateAPI(users inbound.UserService, rr *render.Renderer) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				rr.Error(w, r, apperrors.NewUnauthorizedError("Not authenticated"))
				return
			}

			user, err := users.Authenticate(r.Context(), token)
			if err != nil {
				rr.Error(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// WithUser returns a copy of ctx carrying user
func WithUser(ctx context.Context, user *inbound.UserDTO) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext returns the authenticated user, if any
func UserFromContext(ctx context.Context) (*inbound.UserDTO, bool) {
	user, ok := ctx.Value(userContextKey{}).(*inbound.UserDTO)
	return user, ok && user != nil
}
