// Package apiserver provides the JSON API HTTP server
package apiserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/smartmealplanner/backend/internal/infrastructure/config"
	"github.com/smartmealplanner/backend/internal/infrastructure/http/handlers"
	"github.com/smartmealplanner/backend/internal/infrastructure/http/middleware"
	"github.com/smartmealplanner/backend/internal/infrastructure/http/render"
	"github.com/smartmealplanner/backend/internal/infrastructure/monitoring"
	"github.com/smartmealplanner/backend/internal/infrastructure/security"
	"github.com/smartmealplanner/backend/internal/ports/inbound"
	"github.com/smartmealplanner/backend/internal/ports/outbound"
	apperrors "github.com/smartmealplanner/backend/pkg/errors"
	"github.com/smartmealplanner/backend/pkg/healthcheck"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

var (
	notFound         = apperrors.NewAppError(apperrors.CodeNotFound, "Not Found", "")
	methodNotAllowed = apperrors.NewAppError(apperrors.CodeMethodNotAllowed, "Method Not Allowed", "")
)

// Dependencies lists everything the server routes to
type Dependencies struct {
	Config         *config.Config
	Logger         *zap.Logger
	Renderer       *render.Renderer
	Validator      *security.ValidationService
	Auth           *security.AuthService
	RateLimitStore outbound.RateLimitStore
	Metrics        *monitoring.Metrics
	Tracing        *monitoring.TracingProvider
	Reporter       *monitoring.ErrorReporter
	Health         *healthcheck.HealthCheck

	Users        inbound.UserService
	Inventory    inbound.InventoryService
	Recipes      inbound.RecipeService
	ShoppingList inbound.ShoppingListService
	AI           inbound.AIService
}

// APIServer is the JSON API HTTP server, plus the optional standalone
// metrics listener
type APIServer struct {
	deps          Dependencies
	logger        *zap.Logger
	router        *chi.Mux
	server        *http.Server
	metricsServer *http.Server
}

// NewAPIServer creates a new API server instance
func NewAPIServer(deps Dependencies) *APIServer {
	cfg := deps.Config
	s := &APIServer{
		deps:   deps,
		logger: deps.Logger.Named("api-server"),
	}

	s.router = s.setupRoutes()
	s.server = &http.Server{
		Addr:         cfg.ListenAddr(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	mon := cfg.Monitoring
	if mon.EnableMetrics && mon.MetricsPort > 0 && mon.MetricsPort != cfg.Server.Port {
		mux := http.NewServeMux()
		mux.Handle("/metrics", deps.Metrics.Handler())
		s.metricsServer = &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, mon.MetricsPort),
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
	}

	return s
}

// setupRoutes configures the middleware chain and every route
func (s *APIServer) setupRoutes() *chi.Mux {
	cfg := s.deps.Config
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.StripSlashes)
	r.Use(middleware.Recoverer(s.deps.Renderer, s.deps.Reporter, s.logger))
	r.Use(middleware.RequestContext())
	r.Use(middleware.Logger(s.deps.Logger, cfg.App.EnableRequestLogging))
	if cfg.Monitoring.EnableMetrics {
		r.Use(middleware.Metrics(s.deps.Metrics))
	}
	if cfg.RateLimit.Enable {
		r.Use(middleware.RateLimit(
			s.deps.RateLimitStore,
			s.deps.Auth,
			cfg.RateLimit.MaxRequests,
			cfg.RateLimit.Window,
			s.deps.Metrics,
			s.deps.Renderer,
			s.deps.Logger,
		))
	}
	if s.deps.Tracing != nil && s.deps.Tracing.Enabled() {
		r.Use(s.tracing)
	}
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.Security())

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		s.deps.Renderer.Error(w, req, notFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		s.deps.Renderer.Error(w, req, methodNotAllowed)
	})

	system := handlers.NewSystemAPIHandlers(cfg, s.deps.Renderer)
	r.Get("/", system.Root)
	r.Get("/health", s.deps.Health.Handler())
	if cfg.Monitoring.EnableMetrics {
		r.Handle("/metrics", s.deps.Metrics.Handler())
	}

	r.Route(cfg.App.APIV1Prefix, s.setupAPIV1Routes)

	return r
}

// setupAPIV1Routes configures the versioned API. Everything except register
// and login requires a bearer token.
func (s *APIServer) setupAPIV1Routes(r chi.Router) {
	d := s.deps
	authH := handlers.NewAuthAPIHandlers(d.Users, d.Renderer, d.Validator, d.Logger)
	inventoryH := handlers.NewInventoryAPIHandlers(d.Inventory, d.Renderer, d.Validator)
	recipeH := handlers.NewRecipeAPIHandlers(d.Recipes, d.Renderer, d.Validator)
	shoppingH := handlers.NewShoppingListAPIHandlers(d.ShoppingList, d.Renderer, d.Validator)
	aiH := handlers.NewAIAPIHandlers(d.AI, d.Renderer, d.Validator, d.Logger)

	r.Post("/auth/register", authH.Register)
	r.Post("/auth/login", authH.Login)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthenticateAPI(d.Users, d.Renderer))

		r.Get("/auth/me", authH.Me)

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", inventoryH.List)
			r.Post("/", inventoryH.Create)
			r.Get("/{itemID}", inventoryH.Get)
			r.Put("/{itemID}", inventoryH.Update)
			r.Delete("/{itemID}", inventoryH.Delete)
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", recipeH.List)
			r.Post("/", recipeH.Create)
			r.Get("/by-ingredients", recipeH.ByIngredients)
			r.Get("/{recipeID}", recipeH.Get)
			r.Put("/{recipeID}", recipeH.Update)
			r.Delete("/{recipeID}", recipeH.Delete)
		})

		r.Route("/shopping-list", func(r chi.Router) {
			r.Get("/", shoppingH.Summary)
			r.Post("/", shoppingH.Create)
			r.Post("/recipe", shoppingH.FromRecipe)
			r.Get("/{itemID}", shoppingH.Get)
			r.Put("/{itemID}", shoppingH.Update)
			r.Delete("/{itemID}", shoppingH.Delete)
			r.Post("/{itemID}/purchase", shoppingH.Purchase)
		})

		r.Route("/ai", func(r chi.Router) {
			r.Post("/recipes/suggest", aiH.SuggestRecipes)
			r.Post("/recipes/scale", aiH.ScaleRecipe)
			r.Post("/recipes/analyze", aiH.AnalyzeNutrition)
			r.Post("/recipes/substitute", aiH.SuggestSubstitutions)
			r.Post("/recipes/fusion", aiH.CreateFusionRecipe)
			r.Post("/recipes/adapt", aiH.AdaptRecipeDifficulty)
			r.Post("/meal-plan", aiH.GenerateMealPlan)
			r.Post("/meal-plan/optimize", aiH.OptimizeMealPlan)
			r.Post("/tutorials/technique", aiH.GenerateTechniqueTutorial)
			r.Post("/menu/seasonal", aiH.CreateSeasonalMenu)
		})
	})
}

// tracing opens a server span per request
func (s *APIServer) tracing(next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, "http.server",
		otelhttp.WithTracerProvider(s.deps.Tracing.TracerProvider()),
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}

// Handler returns the root handler, mainly for tests
func (s *APIServer) Handler() http.Handler {
	return s.router
}

// Start starts the API server and blocks until it stops. The metrics
// listener, if configured, runs alongside it.
func (s *APIServer) Start() error {
	if s.metricsServer != nil {
		go func() {
			s.logger.Info("Starting metrics server", zap.String("address", s.metricsServer.Addr))
			if err := s.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.logger.Error("Metrics server failed", zap.Error(err))
			}
		}()
	}

	s.logger.Info("Starting API server",
		zap.String("address", s.server.Addr),
		zap.String("api_prefix", s.deps.Config.App.APIV1Prefix),
		zap.String("environment", s.deps.Config.App.Environment),
	)
	return s.server.ListenAndServe()
}

// Server returns the underlying HTTP server instance
func (s *APIServer) Server() *http.Server {
	return s.server
}

// Shutdown gracefully shuts down the API server and the metrics listener
func (s *APIServer) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server")
	err := s.server.Shutdown(ctx)
	if s.metricsServer != nil {
		err = errors.Join(err, s.metricsServer.Shutdown(ctx))
	}
	return err
}
