package config

import (
	"fmt"
	"strings"
)

// minProductionSecretLen is the shortest signing key accepted in production.
const minProductionSecretLen = 32

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in a configuration.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return strings.Join(msgs, "\n")
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors

	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{"SERVER_PORT", "is required"})
	}

	switch cfg.StoreDriver {
	case StorePostgres:
		if cfg.DBHost == "" || cfg.DBName == "" || cfg.DBUser == "" {
			errs = append(errs, ValidationError{"DB_HOST", "postgres store needs DB_HOST, DB_NAME and DB_USER"})
		}
		if cfg.Env == CI && cfg.DBPassword == "" {
			errs = append(errs, ValidationError{"DB_PASSWORD", "is required in CI environment"})
		}
	case StoreMongo:
		if cfg.MongoURI == "" || cfg.MongoDatabase == "" {
			errs = append(errs, ValidationError{"MONGO_URI", "mongo store needs MONGO_URI and MONGO_DATABASE"})
		}
	case StoreSQLite:
		if cfg.Env == Production {
			errs = append(errs, ValidationError{"STORE_DRIVER", "sqlite is not allowed in production"})
		}
		if cfg.SQLitePath == "" {
			errs = append(errs, ValidationError{"SQLITE_PATH", "is required for the sqlite store"})
		}
	default:
		errs = append(errs, ValidationError{"STORE_DRIVER", fmt.Sprintf("unknown driver %q", cfg.StoreDriver)})
	}

	if cfg.JWTSecret == "" {
		errs = append(errs, ValidationError{"JWT_SECRET", "jwt_secret secret or JWT_SECRET is required"})
	} else if cfg.Env == Production && len(cfg.JWTSecret) < minProductionSecretLen {
		errs = append(errs, ValidationError{"JWT_SECRET", fmt.Sprintf("must be at least %d bytes in production", minProductionSecretLen)})
	}
	if cfg.TokenTTL <= 0 {
		errs = append(errs, ValidationError{"TOKEN_TTL", "must be positive"})
	}
	if cfg.RateLimitRequests <= 0 {
		errs = append(errs, ValidationError{"RATE_LIMIT_REQUESTS", "must be positive"})
	}
	if cfg.RateLimitWindow <= 0 {
		errs = append(errs, ValidationError{"RATE_LIMIT_WINDOW", "must be positive"})
	}
	if cfg.BodyLimitBytes <= 0 {
		errs = append(errs, ValidationError{"BODY_LIMIT_BYTES", "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
