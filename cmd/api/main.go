package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/app"
	"github.com/pageza/recipebox/backend/internal/logging"
	"github.com/pageza/recipebox/backend/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	if cfg.Env.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      string(cfg.Env),
			EnableTracing:    true,
			TracesSampleRate: 0.2,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg)
	stop()
	if err != nil {
		slog.Error("server error", "error", err)
		sentry.CaptureException(err)
	}
	sentry.Flush(2 * time.Second)
	if err != nil {
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func run(ctx context.Context, cfg *config.Config) error {
	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if cfg.SeedSamples {
		res, err := a.Seed(ctx)
		if err != nil {
			return err
		}
		slog.Info("sample data loaded", "accounts", res.Accounts, "recipes", res.Recipes)
	}

	return server.New(cfg, a.Router()).Run(ctx)
}
