package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/smartmealplanner/backend/internal/infrastructure/http/render"
	"github.com/smartmealplanner/backend/internal/infrastructure/monitoring"
	"github.com/smartmealplanner/backend/internal/infrastructure/security"
	"github.com/smartmealplanner/backend/internal/ports/outbound"
	apperrors "github.com/smartmealplanner/backend/pkg/errors"
	"go.uber.org/zap"
)

// RateLimit caps requests per client over a fixed window. Clients with a
// valid bearer token are keyed by user id, everyone else by remote address.
// Store failures let the request through.
func RateLimit(
	store outbound.RateLimitStore,
	auth *security.AuthService,
	limit int,
	window time.Duration,
	metrics *monitoring.Metrics,
	rr *render.Renderer,
	logger *zap.Logger,
) func(next http.Handler) http.Handler {
	logger = logger.Named("rate-limit")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r, auth)

			result, err := store.Allow(r.Context(), key, limit, window)
			if err != nil {
				logger.Warn("Rate limit store unavailable",
					zap.String("request_id", chimiddleware.GetReqID(r.Context())),
					zap.Error(err),
				)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			if metrics != nil {
				metrics.SetRateLimitRemaining(result.Remaining)
			}

			if !result.Allowed {
				logger.Info("Rate limit exceeded", zap.String("key", key))
				rr.Error(w, r, apperrors.NewTooManyRequestsError(result.RetryAfter))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request, auth *security.AuthService) string {
	if token, ok := bearerToken(r); ok && auth != nil {
		if claims, err := auth.ValidateToken(token); err == nil {
			return "user:" + claims.UserID
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
