package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/store"
	"github.com/pageza/recipebox/backend/internal/store/gormstore"
	"github.com/pageza/recipebox/backend/internal/store/mongostore"
)

// gormConfig turns driver-specific unique violations into gorm.ErrDuplicatedKey.
func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}
}

// OpenGorm opens the relational database selected by cfg.StoreDriver.
func OpenGorm(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.StoreDriver {
	case config.StorePostgres:
		slog.Info("connecting to database", "host", cfg.DBHost, "port", cfg.DBPort, "user", cfg.DBUser, "name", cfg.DBName)
		dialector = postgres.Open(cfg.PostgresDSN())
	case config.StoreSQLite:
		slog.Info("opening sqlite database", "path", cfg.SQLitePath)
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("store driver %q is not relational", cfg.StoreDriver)
	}

	db, err := gorm.Open(dialector, gormConfig())
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error getting database handle: %w", err)
	}
	// Set connection pool settings
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// OpenStore connects the configured backend and, when enabled, brings its
// schema up to date.
func OpenStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if cfg.StoreDriver == config.StoreMongo {
		slog.Info("connecting to mongo", "database", cfg.MongoDatabase)
		return mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	}

	db, err := OpenGorm(cfg)
	if err != nil {
		return nil, err
	}
	s := gormstore.New(db)
	if err := s.Ping(ctx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	if cfg.AutoMigrate {
		if err := RunMigrations(ctx, cfg, s); err != nil {
			_ = s.Close()
			return nil, err
		}
	}

	slog.Info("successfully connected to database", "driver", cfg.StoreDriver)
	return s, nil
}
