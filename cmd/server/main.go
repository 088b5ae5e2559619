// Package main implements the entry point for the taskweb server, a small
// task-tracking web application serving HTML pages for creating, listing,
// viewing, updating, and deleting tasks.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"taskweb/internal/config"
	"taskweb/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run database migrations (up|down|status) and exit")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up structured logging using the configured log level
	appLogger := logger.Setup(cfg.Server.LogLevel)

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	// Establish database connection
	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Migration-only invocation: run and exit
	if *migrateCmd != "" {
		if err := runMigrations(db, *migrateCmd); err != nil {
			appLogger.Error("Migration failed", "command", *migrateCmd, "error", err)
			os.Exit(1)
		}
		if err := db.Close(); err != nil {
			appLogger.Error("Error closing database connection", "error", err)
		}
		return
	}

	// Build the application with its dependencies
	app := newApplication(cfg, appLogger, db)

	// Run until shutdown
	if err := app.Run(context.Background()); err != nil {
		appLogger.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}
