// Package config provides centralized configuration management
// using Viper for configuration loading and validation
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration. It is built once at startup
// and passed by pointer; nothing mutates it afterwards.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Auth       AuthConfig       `mapstructure:"auth"`
	AI         AIConfig         `mapstructure:"ai"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name                 string `mapstructure:"name"`
	Version              string `mapstructure:"version"`
	Environment          string `mapstructure:"environment"`
	Debug                bool   `mapstructure:"debug"`
	LogLevel             string `mapstructure:"log_level"`
	LogFormat            string `mapstructure:"log_format"`
	EnableRequestLogging bool   `mapstructure:"enable_request_logging"`
	APIV1Prefix          string `mapstructure:"api_v1_prefix"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// DatabaseConfig contains database configuration
type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// RedisConfig contains Redis configuration. An empty URL disables Redis.
type RedisConfig struct {
	URL string `mapstructure:"url"`
}

// AuthConfig contains authentication configuration
type AuthConfig struct {
	SecretKey                string `mapstructure:"secret_key"`
	Algorithm                string `mapstructure:"algorithm"`
	AccessTokenExpireMinutes int    `mapstructure:"access_token_expire_minutes"`
	BCryptCost               int    `mapstructure:"bcrypt_cost"`
}

// AccessTokenTTL returns the configured access token lifetime
func (a AuthConfig) AccessTokenTTL() time.Duration {
	return time.Duration(a.AccessTokenExpireMinutes) * time.Minute
}

// AIConfig contains completion API configuration
type AIConfig struct {
	Provider      string        `mapstructure:"provider"`
	OpenAIKey     string        `mapstructure:"openai_key"`
	OpenAIBaseURL string        `mapstructure:"openai_base_url"`
	Model         string        `mapstructure:"model"`
	GeminiKey     string        `mapstructure:"gemini_key"`
	GeminiModel   string        `mapstructure:"gemini_model"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

// MonitoringConfig contains monitoring configuration
type MonitoringConfig struct {
	EnableMetrics    bool    `mapstructure:"enable_metrics"`
	MetricsPort      int     `mapstructure:"metrics_port"`
	EnableTracing    bool    `mapstructure:"enable_tracing"`
	OTLPEndpoint     string  `mapstructure:"otlp_endpoint"`
	SamplingRate     float64 `mapstructure:"sampling_rate"`
	SentryDSN        string  `mapstructure:"sentry_dsn"`
	SentrySampleRate float64 `mapstructure:"sentry_sample_rate"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enable      bool          `mapstructure:"enable"`
	Window      time.Duration `mapstructure:"window_duration"`
	MaxRequests int           `mapstructure:"max_requests"`
}

// envBindings maps configuration keys to the flat environment variables used
// by deployments.
var envBindings = map[string]string{
	"app.name":                         "APP_NAME",
	"app.version":                      "APP_VERSION",
	"app.environment":                  "ENVIRONMENT",
	"app.debug":                        "DEBUG",
	"app.log_level":                    "LOG_LEVEL",
	"app.log_format":                   "LOG_FORMAT",
	"app.enable_request_logging":       "ENABLE_REQUEST_LOGGING",
	"app.api_v1_prefix":                "API_V1_PREFIX",
	"server.host":                      "HOST",
	"server.port":                      "PORT",
	"server.allowed_origins":           "ALLOWED_ORIGINS",
	"server.shutdown_timeout":          "SHUTDOWN_TIMEOUT",
	"database.url":                     "DATABASE_URL",
	"redis.url":                        "REDIS_URL",
	"auth.secret_key":                  "SECRET_KEY",
	"auth.algorithm":                   "ALGORITHM",
	"auth.access_token_expire_minutes": "ACCESS_TOKEN_EXPIRE_MINUTES",
	"auth.bcrypt_cost":                 "BCRYPT_COST",
	"ai.provider":                      "AI_PROVIDER",
	"ai.openai_key":                    "OPENAI_API_KEY",
	"ai.openai_base_url":               "OPENAI_BASE_URL",
	"ai.model":                         "AI_MODEL",
	"ai.gemini_key":                    "GEMINI_API_KEY",
	"ai.gemini_model":                  "GEMINI_MODEL",
	"ai.timeout":                       "AI_TIMEOUT",
	"monitoring.enable_metrics":        "ENABLE_METRICS",
	"monitoring.metrics_port":          "METRICS_PORT",
	"monitoring.enable_tracing":        "ENABLE_TRACING",
	"monitoring.otlp_endpoint":         "OTLP_ENDPOINT",
	"monitoring.sampling_rate":         "TRACING_SAMPLE_RATE",
	"monitoring.sentry_dsn":            "SENTRY_DSN",
	"monitoring.sentry_sample_rate":    "SENTRY_SAMPLE_RATE",
	"rate_limit.enable":                "RATE_LIMIT_ENABLED",
	"rate_limit.max_requests":          "RATE_LIMIT_MAX_REQUESTS",
}

// Load loads configuration from an optional file, a .env file and environment variables
func Load(configPath string) (*Config, error) {
	// A missing .env is normal outside local development
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// RATE_LIMIT_WINDOW is expressed in seconds
	if v.IsSet("rate_limit_window_seconds") {
		config.RateLimit.Window = time.Duration(v.GetInt("rate_limit_window_seconds")) * time.Second
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "Smart Meal Planner")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "json")
	v.SetDefault("app.enable_request_logging", true)
	v.SetDefault("app.api_v1_prefix", "/api/v1")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "90s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("database.url", "sqlite:///./meal_planner.db")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")

	v.SetDefault("redis.url", "")

	v.SetDefault("auth.secret_key", "")
	v.SetDefault("auth.algorithm", "HS256")
	v.SetDefault("auth.access_token_expire_minutes", 30)
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("ai.provider", "openai")
	v.SetDefault("ai.openai_key", "")
	v.SetDefault("ai.openai_base_url", "https://api.openai.com/v1")
	v.SetDefault("ai.model", "gpt-4")
	v.SetDefault("ai.gemini_key", "")
	v.SetDefault("ai.gemini_model", "gemini-1.5-flash")
	v.SetDefault("ai.timeout", "60s")

	v.SetDefault("monitoring.enable_metrics", true)
	v.SetDefault("monitoring.metrics_port", 9090)
	v.SetDefault("monitoring.enable_tracing", false)
	v.SetDefault("monitoring.otlp_endpoint", "")
	v.SetDefault("monitoring.sampling_rate", 0.1)
	v.SetDefault("monitoring.sentry_dsn", "")
	v.SetDefault("monitoring.sentry_sample_rate", 1.0)

	v.SetDefault("rate_limit.enable", true)
	v.SetDefault("rate_limit.window_duration", "1h")
	v.SetDefault("rate_limit.max_requests", 1000)

	_ = v.BindEnv("rate_limit_window_seconds", "RATE_LIMIT_WINDOW")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}

	if !strings.HasPrefix(c.App.APIV1Prefix, "/") {
		return fmt.Errorf("API_V1_PREFIX must start with '/'")
	}

	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}

	if c.Monitoring.MetricsPort < 0 || c.Monitoring.MetricsPort > 65535 {
		return fmt.Errorf("METRICS_PORT must be between 0 and 65535")
	}

	if c.Auth.SecretKey == "" && c.IsProduction() {
		return fmt.Errorf("SECRET_KEY is required in production")
	}

	switch c.Auth.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("unsupported token algorithm %q", c.Auth.Algorithm)
	}

	if c.Auth.AccessTokenExpireMinutes <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}

	switch c.AI.Provider {
	case "openai", "gemini":
	default:
		return fmt.Errorf("unsupported AI provider %q", c.AI.Provider)
	}

	if c.RateLimit.Enable && (c.RateLimit.MaxRequests <= 0 || c.RateLimit.Window <= 0) {
		return fmt.Errorf("rate limit window and max requests must be positive")
	}

	return nil
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment returns true if running in development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// ListenAddr returns the API listen address
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
