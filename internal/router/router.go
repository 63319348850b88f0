package router

import (
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/api"
	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/service"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Store   api.Pinger
	Auth    service.IAuthService
	Recipes service.IRecipeService
	// RateLimiter is optional; nil disables rate limiting.
	RateLimiter *middleware.RateLimiter
}

// SetupRouter configures the application routes
func SetupRouter(cfg *config.Config, deps Deps) *gin.Engine {
	router := gin.New()

	router.Use(
		gin.Recovery(),
		sentrygin.New(sentrygin.Options{Repanic: true}),
		middleware.RequestLogger(),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.CORSOrigins),
		middleware.ErrorHandler(),
	)
	if deps.RateLimiter != nil {
		router.Use(deps.RateLimiter.RateLimitMiddleware())
	}
	router.Use(middleware.BodyLimit(cfg.BodyLimitBytes))

	api.NewHealthHandler(deps.Store).RegisterRoutes(router)
	api.NewAuthHandler(deps.Auth).RegisterRoutes(router)
	api.NewRecipeHandler(deps.Recipes, deps.Auth).RegisterRoutes(router)

	router.NoRoute(middleware.NotFound)
	return router
}
