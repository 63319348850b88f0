// Package app assembles the stores, services and HTTP router from a Config.
package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/database"
	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/router"
	"github.com/pageza/recipebox/backend/internal/seed"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/store"
)

type App struct {
	Config  *config.Config
	Store   store.Store
	Auth    *service.AuthService
	Recipes *service.RecipeService
	// Redis is nil when no endpoint is configured or it could not be reached.
	Redis *redis.Client
}

// New opens the configured store and builds the services on top of it.
// Redis is optional: without it the server runs without rate limiting.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	st, err := database.OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:  cfg,
		Store:   st,
		Auth:    service.NewAuthService(st, cfg.JWTSecret, cfg.TokenTTL),
		Recipes: service.NewRecipeService(st, st),
	}

	if cfg.RedisConfigured() {
		client, err := database.NewRedisClient(cfg)
		if err != nil {
			slog.Warn("redis unavailable, rate limiting disabled", "error", err)
		} else {
			a.Redis = client
		}
	}
	return a, nil
}

// Seed inserts the sample data.
func (a *App) Seed(ctx context.Context) (seed.Result, error) {
	return seed.New(a.Store, a.Auth, a.Recipes).Run(ctx)
}

// Router builds the HTTP handler.
func (a *App) Router() *gin.Engine {
	deps := router.Deps{
		Store:   a.Store,
		Auth:    a.Auth,
		Recipes: a.Recipes,
	}
	if a.Redis != nil {
		deps.RateLimiter = middleware.NewRateLimiter(a.Redis, middleware.RateLimitConfig{
			Window: a.Config.RateLimitWindow,
			Limit:  a.Config.RateLimitRequests,
		})
	}
	return router.SetupRouter(a.Config, deps)
}

func (a *App) Close() error {
	var errs []error
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	errs = append(errs, a.Store.Close())
	return errors.Join(errs...)
}
