// Package main applies or rolls back the postgres schema migrations
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/smartmealplanner/backend/internal/infrastructure/config"
	"github.com/smartmealplanner/backend/internal/infrastructure/persistence/database"
	"github.com/smartmealplanner/backend/internal/infrastructure/persistence/migrations"
	"github.com/smartmealplanner/backend/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "Configuration file path")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] up|down|version\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	if err := run(*configPath, command); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, command string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := logger.New(logger.Config{Level: cfg.App.LogLevel, Format: "console", Development: true})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	dialect, _, err := database.ParseURL(cfg.Database.URL)
	if err != nil {
		return err
	}
	if dialect != database.DialectPostgres {
		log.Info("SQLite schemas are created at startup, nothing to migrate")
		return nil
	}

	m, err := migrations.New(cfg.Database.URL, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Failed to close migrator", zap.Error(err))
		}
	}()

	switch command {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		log.Info("Schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return nil
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}
