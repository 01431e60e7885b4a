package main

import (
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/hearthview/opsdash/internal/adapters/opsbackend"
	"github.com/hearthview/opsdash/internal/core/services"
	"github.com/hearthview/opsdash/internal/handlers"
	"github.com/hearthview/opsdash/internal/middleware"
	"github.com/hearthview/opsdash/internal/platform/config"
	"github.com/hearthview/opsdash/web"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.AllowedOrigin != "" {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = []string{cfg.AllowedOrigin}
		corsCfg.AllowCredentials = true
		r.Use(cors.New(corsCfg))
	}

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT value", slog.String("value", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(memory.NewStore(), rate)))

	r.SetHTMLTemplate(web.Templates())

	backend := opsbackend.New(cfg.BackendBaseURL, cfg.BackendTimeout)
	container := services.NewContainer(cfg.TenantID, backend)

	handlers.RegisterRoutes(r, cfg, container)

	logger.Info("Dashboard starting",
		slog.String("port", cfg.Port),
		slog.String("backend", cfg.BackendBaseURL),
		slog.String("tenant_id", cfg.TenantID),
	)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
