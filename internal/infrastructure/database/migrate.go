package database

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// zerologGooseLogger routes goose output through the global logger.
// Fatalf logs at error level and does not exit the process.
type zerologGooseLogger struct{}

func (zerologGooseLogger) Printf(format string, v ...interface{}) {
	log.Info().Str("component", "migrations").Msgf(format, v...)
}

func (zerologGooseLogger) Fatalf(format string, v ...interface{}) {
	log.Error().Str("component", "migrations").Msgf(format, v...)
}

// Migrate applies every pending embedded migration against the pool.
func (db *PostgresDB) Migrate(ctx context.Context) error {
	if db.Pool == nil {
		return ErrPoolNotInitialized
	}

	goose.SetLogger(zerologGooseLogger{})
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(db.Pool)
	defer sqlDB.Close()

	if err := goose.UpContext(ctx, sqlDB, migrationsDir); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	log.Info().Int64("version", version).Msg("[DATABASE] Migrations applied")
	return nil
}
