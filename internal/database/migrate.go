package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/store/gormstore"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// RunMigrations applies the versioned SQL migrations on Postgres and falls
// back to gorm auto-migration on SQLite.
func RunMigrations(ctx context.Context, cfg *config.Config, s *gormstore.Store) error {
	if cfg.StoreDriver == config.StoreSQLite {
		slog.Info("using gorm auto-migration for sqlite")
		return s.AutoMigrate()
	}
	return MigratePostgres(ctx, cfg.PostgresDSN(), "up")
}

// MigratePostgres runs a goose command ("up", "down" or "status") against the
// database at dsn.
func MigratePostgres(ctx context.Context, dsn, command string) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database for migrations: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	switch command {
	case "up":
		err = goose.UpContext(ctx, db, migrationsDir)
	case "down":
		err = goose.DownContext(ctx, db, migrationsDir)
	case "status":
		err = goose.StatusContext(ctx, db, migrationsDir)
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
	if err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	slog.Info("migrations applied", "command", command)
	return nil
}
