package config

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CI", "ENV", "SERVER_PORT", "STORE_DRIVER", "DB_HOST", "DB_PASSWORD", "JWT_SECRET",
		"TOKEN_TTL", "RATE_LIMIT_REQUESTS", "RATE_LIMIT_WINDOW", "BODY_LIMIT_BYTES",
		"CORS_ORIGINS", "AUTO_MIGRATE", "SEED_SAMPLES", "REDIS_URL", "REDIS_HOST",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv("SECRETS_DIR", t.TempDir())
}

func TestLoadConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_HOST", "db")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, http://frontend:5173")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Development, cfg.Env)
	assert.Equal(t, "db", cfg.DBHost)
	assert.Equal(t, StorePostgres, cfg.StoreDriver)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"http://localhost:5173", "http://frontend:5173"}, cfg.CORSOrigins)
	assert.True(t, cfg.AutoMigrate)
}

func TestLoadConfigWithDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 100, cfg.RateLimitRequests)
	assert.Equal(t, 10*time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, int64(10*1024), cfg.BodyLimitBytes)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.RedisConfigured())
}

func TestLoadConfigPrefersSecrets(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("SECRETS_DIR", dir)
	t.Setenv("JWT_SECRET", "from-env")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jwt_secret"), []byte("from-secret\n"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-secret", cfg.JWTSecret)
}

func TestLoadConfigRequiresSigningKey(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadConfigRejectsBadDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TOKEN_TTL", "one day")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOKEN_TTL")
}

func TestValidateConfigProduction(t *testing.T) {
	cfg := &Config{
		Env:               Production,
		ServerPort:        "5000",
		StoreDriver:       StoreSQLite,
		SQLitePath:        "x.db",
		JWTSecret:         "short",
		TokenTTL:          time.Hour,
		RateLimitRequests: 1,
		RateLimitWindow:   time.Minute,
		BodyLimitBytes:    1,
	}

	err := ValidateConfig(cfg)
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := make([]string, 0, len(verrs))
	for _, ve := range verrs {
		fields = append(fields, ve.Field)
	}
	assert.ElementsMatch(t, []string{"STORE_DRIVER", "JWT_SECRET"}, fields)
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "production")
	assert.Equal(t, Production, GetEnvironment())

	t.Setenv("ENV", "whatever")
	assert.Equal(t, Development, GetEnvironment())

	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())
}

func TestPostgresDSNEscapesCredentials(t *testing.T) {
	cfg := &Config{
		DBHost:     "db",
		DBPort:     "5432",
		DBUser:     "app user",
		DBPassword: `p@ss word'"/:?#`,
		DBName:     "recipebox",
		DBSSLMode:  "disable",
	}

	u, err := url.Parse(cfg.PostgresDSN())
	require.NoError(t, err)
	assert.Equal(t, "postgres", u.Scheme)
	assert.Equal(t, "db:5432", u.Host)
	assert.Equal(t, "/recipebox", u.Path)
	assert.Equal(t, "app user", u.User.Username())
	password, ok := u.User.Password()
	require.True(t, ok)
	assert.Equal(t, `p@ss word'"/:?#`, password)
	assert.Equal(t, "disable", u.Query().Get("sslmode"))
	assert.Equal(t, "UTC", u.Query().Get("TimeZone"))
}
