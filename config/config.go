package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Store drivers understood by the server and the CLI.
const (
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
	StoreSQLite   = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	Env Environment

	// Server configuration
	ServerPort string
	ServerHost string

	// Storage backend: postgres, mongo or sqlite
	StoreDriver string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Document store configuration
	MongoURI      string
	MongoDatabase string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Token configuration. The signing key is read once here and handed to
	// the auth service; nothing else reads it.
	JWTSecret string
	TokenTTL  time.Duration

	// Transport policies
	RateLimitRequests int
	RateLimitWindow   time.Duration
	BodyLimitBytes    int64
	CORSOrigins       []string

	// Observability
	SentryDSN string
	LogLevel  string

	// Startup behaviour
	AutoMigrate bool
	SeedSamples bool
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{Env: env}

	cfg.ServerPort = getEnv("SERVER_PORT", "5000")
	cfg.ServerHost = getEnv("SERVER_HOST", "")
	cfg.StoreDriver = strings.ToLower(getEnv("STORE_DRIVER", StorePostgres))

	cfg.DBHost = getEnv("DB_HOST", "localhost")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBUser = secretOrEnv("db_user", "DB_USER", "postgres")
	cfg.DBPassword = secretOrEnv("db_password", "DB_PASSWORD", "")
	cfg.DBName = getEnv("DB_NAME", "recipebox")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "disable")
	cfg.SQLitePath = getEnv("SQLITE_PATH", "recipebox.db")

	cfg.MongoURI = secretOrEnv("mongo_uri", "MONGO_URI", "mongodb://localhost:27017")
	cfg.MongoDatabase = getEnv("MONGO_DATABASE", "recipebox")

	cfg.RedisHost = getEnv("REDIS_HOST", "")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")
	cfg.RedisPassword = secretOrEnv("redis_password", "REDIS_PASSWORD", "")
	cfg.RedisURL = secretOrEnv("redis_url", "REDIS_URL", "")
	cfg.RedisDB = 0 // This is a constant, not a secret

	cfg.JWTSecret = secretOrEnv("jwt_secret", "JWT_SECRET", "")
	cfg.SentryDSN = secretOrEnv("sentry_dsn", "SENTRY_DSN", "")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.CORSOrigins = splitList(getEnv("CORS_ORIGINS", "*"))

	var errs []string
	var err error
	if cfg.TokenTTL, err = parseDuration("TOKEN_TTL", "24h"); err != nil {
		errs = append(errs, err.Error())
	}
	if cfg.RateLimitWindow, err = parseDuration("RATE_LIMIT_WINDOW", "10m"); err != nil {
		errs = append(errs, err.Error())
	}
	if cfg.RateLimitRequests, err = parseInt("RATE_LIMIT_REQUESTS", 100); err != nil {
		errs = append(errs, err.Error())
	}
	bodyLimit, err := parseInt("BODY_LIMIT_BYTES", 10*1024)
	if err != nil {
		errs = append(errs, err.Error())
	}
	cfg.BodyLimitBytes = int64(bodyLimit)
	if cfg.AutoMigrate, err = parseBool("AUTO_MIGRATE", env != Production); err != nil {
		errs = append(errs, err.Error())
	}
	if cfg.SeedSamples, err = parseBool("SEED_SAMPLES", false); err != nil {
		errs = append(errs, err.Error())
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("failed to load configuration:\n%s", strings.Join(errs, "\n"))
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// PostgresDSN builds a postgres:// URL; credentials are percent-encoded so
// secrets may hold any character.
func (c *Config) PostgresDSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   net.JoinHostPort(c.DBHost, c.DBPort),
		Path:   "/" + c.DBName,
		RawQuery: url.Values{
			"sslmode":  {c.DBSSLMode},
			"TimeZone": {"UTC"},
		}.Encode(),
	}
	return u.String()
}

// ListenAddr is the address the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// RedisConfigured reports whether a Redis endpoint was supplied.
func (c *Config) RedisConfigured() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// secretOrEnv prefers a Docker secret, then the environment variable, then the fallback.
func secretOrEnv(secret, key, fallback string) string {
	if val := readSecret(secret); val != "" {
		return val
	}
	return getEnv(key, fallback)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func parseDuration(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", key, raw)
	}
	return d, nil
}

func parseInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, raw)
	}
	return n, nil
}

func parseBool(key string, fallback bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", key, raw)
	}
	return b, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
