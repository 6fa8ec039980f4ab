// Package database opens the relational store selected by DATABASE_URL and
// brings its schema up to date
package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/smartmealplanner/backend/internal/infrastructure/config"
	gormModels "github.com/smartmealplanner/backend/internal/infrastructure/persistence/gorm"
	"github.com/smartmealplanner/backend/internal/infrastructure/persistence/migrations"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Dialect identifies a supported database backend
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// ParseURL splits a DATABASE_URL into its dialect and the DSN the driver expects
func ParseURL(url string) (Dialect, string, error) {
	switch {
	case strings.HasPrefix(url, "sqlite:///"):
		return DialectSQLite, strings.TrimPrefix(url, "sqlite:///"), nil
	case strings.HasPrefix(url, "sqlite://"):
		return DialectSQLite, strings.TrimPrefix(url, "sqlite://"), nil
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return DialectPostgres, url, nil
	default:
		return "", "", fmt.Errorf("unsupported database url scheme: %q", url)
	}
}

// Open connects to the configured database, applies pool settings and
// migrates the schema. SQLite uses AutoMigrate; postgres runs the embedded
// SQL migrations.
func Open(cfg config.DatabaseConfig, debug bool, log *zap.Logger) (*gorm.DB, error) {
	dialect, dsn, err := ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	gormCfg := &gorm.Config{
		Logger:  newGormLogger(log, debug),
		NowFunc: func() time.Time { return time.Now().UTC() },
	}

	var db *gorm.DB
	switch dialect {
	case DialectSQLite:
		db, err = gorm.Open(sqlite.Open(dsn), gormCfg)
	case DialectPostgres:
		db, err = gorm.Open(postgres.Open(dsn), gormCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if dialect == DialectSQLite && isMemory(dsn) {
		// every connection to :memory: gets its own empty database
		sqlDB.SetMaxOpenConns(1)
	} else {
		if cfg.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		}
		if cfg.ConnMaxLifetime > 0 {
			sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		}
	}

	if err := migrate(db, dialect, cfg.URL, log); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	log.Info("Database connected",
		zap.String("dialect", string(dialect)),
		zap.Int("max_open_conns", sqlDB.Stats().MaxOpenConnections),
	)
	return db, nil
}

func migrate(db *gorm.DB, dialect Dialect, url string, log *zap.Logger) error {
	if dialect == DialectSQLite {
		if err := db.AutoMigrate(gormModels.AllModels()...); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		return nil
	}

	m, err := migrations.New(url, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Failed to close migrator", zap.Error(err))
		}
	}()
	return m.Up()
}

func isMemory(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
}
