// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	aiapp "github.com/smartmealplanner/backend/internal/application/ai"
	"github.com/smartmealplanner/backend/internal/application/inventory"
	"github.com/smartmealplanner/backend/internal/application/recipe"
	"github.com/smartmealplanner/backend/internal/application/shoppinglist"
	"github.com/smartmealplanner/backend/internal/application/user"
	"github.com/smartmealplanner/backend/internal/domain/ai"
	"github.com/smartmealplanner/backend/internal/infrastructure/ai/gemini"
	"github.com/smartmealplanner/backend/internal/infrastructure/ai/openai"
	"github.com/smartmealplanner/backend/internal/infrastructure/config"
	"github.com/smartmealplanner/backend/internal/infrastructure/http/apiserver"
	"github.com/smartmealplanner/backend/internal/infrastructure/http/render"
	"github.com/smartmealplanner/backend/internal/infrastructure/monitoring"
	"github.com/smartmealplanner/backend/internal/infrastructure/persistence/database"
	gormRepo "github.com/smartmealplanner/backend/internal/infrastructure/persistence/gorm"
	"github.com/smartmealplanner/backend/internal/infrastructure/security"
	"github.com/smartmealplanner/backend/internal/ports/inbound"
	"github.com/smartmealplanner/backend/internal/ports/outbound"
	"github.com/smartmealplanner/backend/pkg/healthcheck"
	"github.com/smartmealplanner/backend/pkg/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// sentryFlushTimeout bounds how long shutdown waits for queued error reports
const sentryFlushTimeout = 2 * time.Second

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	MonitoringModule,
	RepositoryModule,
	AIModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
			Service:     cfg.App.Name,
			Environment: cfg.App.Environment,
		})
	},
)

// DatabaseModule provides the gorm connection and the optional Redis client
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		return database.Open(cfg.Database, cfg.App.Debug, log)
	},
	func(db *gorm.DB) (*sql.DB, error) {
		return db.DB()
	},
	NewRedisClient,
)

// NewRedisClient connects to REDIS_URL. It returns nil when Redis is not
// configured.
func NewRedisClient(cfg *config.Config, log *zap.Logger) (redis.UniversalClient, error) {
	if cfg.Redis.URL == "" {
		log.Info("Redis not configured, rate limits are kept in memory")
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis ping failed, continuing", zap.String("addr", opts.Addr), zap.Error(err))
	} else {
		log.Info("Connected to Redis", zap.String("addr", opts.Addr))
	}
	return client, nil
}

// MonitoringModule provides metrics, tracing, error reporting and health checks
var MonitoringModule = fx.Provide(
	func(sqlDB *sql.DB, log *zap.Logger) *monitoring.Metrics {
		m := monitoring.NewMetrics()
		if err := m.RegisterDBStats(sqlDB, "main"); err != nil {
			log.Warn("Failed to register database stats collector", zap.Error(err))
		}
		return m
	},
	func(cfg *config.Config, log *zap.Logger) (*monitoring.TracingProvider, error) {
		return monitoring.NewTracingProvider(context.Background(), monitoring.TracingConfig{
			ServiceName:    cfg.App.Name,
			ServiceVersion: cfg.App.Version,
			Environment:    cfg.App.Environment,
			OTLPEndpoint:   cfg.Monitoring.OTLPEndpoint,
			SamplingRate:   cfg.Monitoring.SamplingRate,
			Enabled:        cfg.Monitoring.EnableTracing,
		}, log)
	},
	func(cfg *config.Config, log *zap.Logger) (*monitoring.ErrorReporter, error) {
		return monitoring.NewErrorReporter(monitoring.ErrorReporterConfig{
			DSN:         cfg.Monitoring.SentryDSN,
			Environment: cfg.App.Environment,
			Release:     cfg.App.Version,
			SampleRate:  cfg.Monitoring.SentrySampleRate,
		}, log)
	},
	func(cfg *config.Config, sqlDB *sql.DB, rdb redis.UniversalClient, log *zap.Logger) *healthcheck.HealthCheck {
		h := healthcheck.New(cfg.App.Version, cfg.App.Environment, log)
		h.Register("database", healthcheck.NewDatabaseChecker(sqlDB))
		if rdb != nil {
			h.Register("redis", healthcheck.NewRedisChecker(rdb))
		}
		return h
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	fx.Annotate(gormRepo.NewUserRepository, fx.As(new(outbound.UserRepository))),
	fx.Annotate(gormRepo.NewInventoryRepository, fx.As(new(outbound.InventoryRepository))),
	fx.Annotate(gormRepo.NewRecipeRepository, fx.As(new(outbound.RecipeRepository))),
	fx.Annotate(gormRepo.NewShoppingListRepository, fx.As(new(outbound.ShoppingListRepository))),
	fx.Annotate(gormRepo.NewTransactor, fx.As(new(outbound.Transactor))),
	func(rdb redis.UniversalClient) outbound.RateLimitStore {
		if rdb != nil {
			return security.NewRedisRateLimitStore(rdb)
		}
		return security.NewMemoryRateLimitStore()
	},
)

// AIModule provides the completion client for the configured provider
var AIModule = fx.Provide(NewCompletionClient)

// NewCompletionClient builds the client for AI_PROVIDER. A provider without
// credentials still yields a client; its calls fail with a configuration
// error so the rest of the API keeps serving.
func NewCompletionClient(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (outbound.CompletionClient, error) {
	switch cfg.AI.Provider {
	case "gemini":
		client, err := gemini.NewClient(context.Background(), cfg.AI.GeminiKey, cfg.AI.GeminiModel, log)
		if errors.Is(err, ai.ErrMissingAPIKey) {
			log.Warn("Gemini API key not configured, AI endpoints will fail")
			return unconfiguredClient{provider: "gemini"}, nil
		}
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{OnStop: func(context.Context) error { return client.Close() }})
		return client, nil
	default:
		return openai.NewClient(openai.Config{
			APIKey:  cfg.AI.OpenAIKey,
			BaseURL: cfg.AI.OpenAIBaseURL,
			Timeout: cfg.AI.Timeout,
		}, log), nil
	}
}

type unconfiguredClient struct {
	provider string
}

func (c unconfiguredClient) Provider() string {
	return c.provider
}

func (c unconfiguredClient) Complete(context.Context, outbound.CompletionRequest) (string, error) {
	return "", ai.ErrMissingAPIKey
}

// ServiceModule provides application services and the security helpers they use
var ServiceModule = fx.Provide(
	security.NewAuthService,
	security.NewValidationService,
	fx.Annotate(user.NewUserService, fx.As(new(inbound.UserService))),
	fx.Annotate(inventory.NewService, fx.As(new(inbound.InventoryService))),
	fx.Annotate(recipe.NewRecipeService, fx.As(new(inbound.RecipeService))),
	fx.Annotate(shoppinglist.NewService, fx.As(new(inbound.ShoppingListService))),
	func(
		client outbound.CompletionClient,
		cfg *config.Config,
		inv outbound.InventoryRepository,
		recipes outbound.RecipeRepository,
		validator *security.ValidationService,
		metrics *monitoring.Metrics,
		tracing *monitoring.TracingProvider,
		log *zap.Logger,
	) inbound.AIService {
		model := cfg.AI.Model
		if cfg.AI.Provider == "gemini" {
			model = cfg.AI.GeminiModel
		}
		return aiapp.NewService(client, model, inv, recipes, validator, metrics, tracing, log)
	},
)

// serverParams collects the API server dependencies
type serverParams struct {
	fx.In

	Config         *config.Config
	Logger         *zap.Logger
	Validator      *security.ValidationService
	Auth           *security.AuthService
	RateLimitStore outbound.RateLimitStore
	Metrics        *monitoring.Metrics
	Tracing        *monitoring.TracingProvider
	Reporter       *monitoring.ErrorReporter
	Health         *healthcheck.HealthCheck
	Users          inbound.UserService
	Inventory      inbound.InventoryService
	Recipes        inbound.RecipeService
	ShoppingList   inbound.ShoppingListService
	AI             inbound.AIService
}

// HTTPModule provides the API server
var HTTPModule = fx.Provide(
	func(p serverParams) *apiserver.APIServer {
		return apiserver.NewAPIServer(apiserver.Dependencies{
			Config:         p.Config,
			Logger:         p.Logger,
			Renderer:       render.New(p.Logger, p.Reporter),
			Validator:      p.Validator,
			Auth:           p.Auth,
			RateLimitStore: p.RateLimitStore,
			Metrics:        p.Metrics,
			Tracing:        p.Tracing,
			Reporter:       p.Reporter,
			Health:         p.Health,
			Users:          p.Users,
			Inventory:      p.Inventory,
			Recipes:        p.Recipes,
			ShoppingList:   p.ShoppingList,
			AI:             p.AI,
		})
	},
)

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(RegisterLifecycleHooks)

// lifecycleParams collects what has to be started or released
type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Config     *config.Config
	Logger     *zap.Logger
	DB         *sql.DB
	Redis      redis.UniversalClient `optional:"true"`
	Server     *apiserver.APIServer
	Tracing    *monitoring.TracingProvider
	Reporter   *monitoring.ErrorReporter
}

// RegisterLifecycleHooks starts the server and releases resources in reverse
// dependency order on stop
func RegisterLifecycleHooks(p lifecycleParams) {
	log := p.Logger

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting Smart Meal Planner API",
				zap.String("version", p.Config.App.Version),
				zap.String("environment", p.Config.App.Environment),
				zap.String("ai_provider", p.Config.AI.Provider),
			)

			go func() {
				if err := p.Server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("HTTP server failed", zap.Error(err))
					_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down Smart Meal Planner API")

			if err := p.Server.Shutdown(ctx); err != nil {
				log.Error("Failed to shut down HTTP server", zap.Error(err))
			}
			if err := p.DB.Close(); err != nil {
				log.Error("Failed to close database connection", zap.Error(err))
			}
			if p.Redis != nil {
				if err := p.Redis.Close(); err != nil {
					log.Error("Failed to close Redis client", zap.Error(err))
				}
			}
			p.Reporter.Flush(sentryFlushTimeout)
			if err := p.Tracing.Shutdown(ctx); err != nil {
				log.Error("Failed to shut down tracer", zap.Error(err))
			}

			_ = log.Sync()
			return nil
		},
	})
}
