package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
)

// migrationsDir is the path to the migration files, relative to the
// directory the server is started from.
const migrationsDir = "migrations"

// slogGooseLogger adapts slog to the goose.Logger interface so migration
// output lands in the structured log stream.
type slogGooseLogger struct{}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...))
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...))
}

// runMigrations executes database migrations using goose. The command is one
// of "up", "down", or "status". A correlation ID ties together all log
// entries from a single migration run.
func runMigrations(db *sql.DB, command string) error {
	correlationID := uuid.New().String()
	migrationLogger := slog.Default().With(
		"correlation_id", correlationID,
		"component", "migrations",
	)

	migrationLogger.Info("Starting database migration", "command", command)
	start := time.Now()

	goose.SetLogger(&slogGooseLogger{})

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	var err error
	switch command {
	case "up":
		err = goose.Up(db, migrationsDir)
	case "down":
		err = goose.Down(db, migrationsDir)
	case "status":
		err = goose.Status(db, migrationsDir)
	default:
		return fmt.Errorf("unknown migration command: %q (expected up, down, or status)", command)
	}

	if err != nil {
		migrationLogger.Error("Migration failed",
			"command", command,
			"duration", time.Since(start).String(),
			"error", err)
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	migrationLogger.Info("Migration completed",
		"command", command,
		"duration", time.Since(start).String())
	return nil
}
