package testhelpers

import (
	"context"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/database"
	"github.com/pageza/recipebox/backend/internal/store/gormstore"
)

// TestJWTSecret signs tokens in tests.
const TestJWTSecret = "test-jwt-secret-that-is-long-enough-for-hs256"

// requireDocker skips the calling test when no docker binary is on PATH.
func requireDocker(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed, skipping container-based test")
	}
}

// NewSQLiteStore opens a private in-memory SQLite database with the schema
// applied. It goes through the same open path the server uses.
func NewSQLiteStore(t *testing.T) *gormstore.Store {
	t.Helper()

	cfg := &config.Config{
		StoreDriver: config.StoreSQLite,
		SQLitePath:  fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	}
	db, err := database.OpenGorm(cfg)
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sqlite handle: %v", err)
	}
	// Shared-cache memory databases lock at table level; one connection keeps writes serial.
	sqlDB.SetMaxOpenConns(1)

	s := gormstore.New(db)
	if err := s.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// PostgresConfig starts a disposable PostgreSQL container and returns a
// config pointing at it. The schema is not created.
func PostgresConfig(t *testing.T) *config.Config {
	t.Helper()
	requireDocker(t)

	ctx := context.Background()
	const (
		user     = "postgres"
		password = "postpass"
		name     = "recipebox"
	)

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     user,
				"POSTGRES_PASSWORD": password,
				"POSTGRES_DB":       name,
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
					return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port.Port(), name)
				}),
			).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("failed to start container: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := container.Terminate(ctx); err != nil {
			t.Errorf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	mappedPort, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	return &config.Config{
		Env:         config.Test,
		StoreDriver: config.StorePostgres,
		DBHost:      host,
		DBPort:      mappedPort.Port(),
		DBUser:      user,
		DBPassword:  password,
		DBName:      name,
		DBSSLMode:   "disable",
		AutoMigrate: true,
	}
}

// NewPostgresStore returns a migrated store backed by a PostgreSQL container.
func NewPostgresStore(t *testing.T) *gormstore.Store {
	t.Helper()
	cfg := PostgresConfig(t)

	db, err := database.OpenGorm(cfg)
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	s := gormstore.New(db)
	t.Cleanup(func() { _ = s.Close() })

	if err := database.MigratePostgres(context.Background(), cfg.PostgresDSN(), "up"); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return s
}
