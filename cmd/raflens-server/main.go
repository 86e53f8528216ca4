package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/raflens/raflens/internal/config"
	"github.com/raflens/raflens/internal/domain/caremgmt"
	"github.com/raflens/raflens/internal/domain/evidence"
	"github.com/raflens/raflens/internal/domain/review"
	"github.com/raflens/raflens/internal/platform/analysis"
	"github.com/raflens/raflens/internal/platform/auth"
	"github.com/raflens/raflens/internal/platform/middleware"
	"github.com/raflens/raflens/internal/platform/session"
)

const version = "0.1.0"

func main() {
	root := &cobra.Command{
		Use:   "raflens-server",
		Short: "RAF coding-review API server",
	}
	root.AddCommand(serveCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the RAF review API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Session store; review state lives only in memory and dies with the
	// process.
	sessions, err := session.NewStore[*review.Session](cfg.SessionCacheSize)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create session store")
	}

	// Analysis service client
	analyzer := analysis.NewClient(
		cfg.AnalysisBaseURL,
		time.Duration(cfg.AnalysisTimeoutSeconds)*time.Second,
		logger,
	)

	// Domain services
	reviewSvc := review.NewService(analyzer, sessions, cfg.RAFBaseRate, logger)
	evidenceSvc := evidence.NewService(logger)
	caremgmtSvc := caremgmt.NewService(logger)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(auth.RoleMiddleware())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Content-Type", "X-Request-ID", auth.RoleHeader},
	}))

	// API group
	apiV1 := e.Group("/api/v1")

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})

	// Domain routes
	review.NewHandler(reviewSvc).RegisterRoutes(apiV1)
	evidence.NewHandler(evidenceSvc, reviewSvc).RegisterRoutes(apiV1)
	caremgmt.NewHandler(caremgmtSvc, reviewSvc).RegisterRoutes(apiV1)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
