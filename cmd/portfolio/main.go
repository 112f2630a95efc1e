// Copyright (c) 2024-2026 Will Pereira
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/wpdev/portfolio-go/internal/cache"
	"github.com/wpdev/portfolio-go/internal/config"
	"github.com/wpdev/portfolio-go/internal/geoip"
	"github.com/wpdev/portfolio-go/internal/handler/api"
	"github.com/wpdev/portfolio-go/internal/logging"
	"github.com/wpdev/portfolio-go/internal/middleware"
	"github.com/wpdev/portfolio-go/internal/scheduler"
	"github.com/wpdev/portfolio-go/internal/store"
	"github.com/wpdev/portfolio-go/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "portfolio - Personal Portfolio Content API\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_DB_PATH             SQLite database path (default: ./data/portfolio.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_SERVER_HOST         Server host (default: localhost)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_SERVER_PORT         Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_ENV                 Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_LOG_LEVEL           Log level: debug|info|warn|error (default: info)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_REDIS_URL           Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_CONTACT_RATE_LIMIT  Contact submissions per hour per IP (default: 5)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_GEOIP_DB_PATH       Path to GeoLite2-Country.mmdb (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_SCHEDULER_ENABLED   Enable scheduled post publishing (default: true)\n")
		_, _ = fmt.Fprintf(os.Stderr, "\nFor more information, see: https://github.com/wpdev/portfolio-go\n")
	}

	flag.Parse()

	// Handle -h/-help flag
	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	// Handle -v/-version flag
	if *showVersion {
		_, _ = fmt.Printf("portfolio %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Record build-time injected version info
	version.Set(version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	})

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Initialize database
	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	// Run migrations
	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the events table
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	eventLogHandler := logging.NewEventLogHandler(textHandler, db)
	logger = slog.New(eventLogHandler)
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	// Seed the bootstrap API key so a fresh install is usable
	ctx := context.Background()
	if cfg.DoSeed {
		if err := store.Seed(ctx, db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	// Seed demo content if demo mode is enabled
	if err := store.SeedDemo(ctx, db); err != nil {
		return fmt.Errorf("seeding demo content: %w", err)
	}

	// Initialize content cache (Redis when configured, memory otherwise)
	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	backend := cache.New(cache.Config{
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      cacheTTL,
		MaxSize:         cfg.CacheMaxSize,
		CleanupInterval: time.Minute,
	})
	defer func() {
		if err := backend.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()
	contentCache := cache.NewContentCache(backend, cacheTTL)
	if cfg.UseRedisCache() {
		slog.Info("content cache initialized", "backend", "redis", "url", cfg.RedisURL)
	} else {
		slog.Info("content cache initialized", "backend", "memory", "max_size", cfg.CacheMaxSize)
	}

	// Initialize GeoIP lookup for contact message country tagging
	geo := geoip.NewLookup()
	if cfg.GeoIPEnabled() {
		if err := geo.Init(cfg.GeoIPDBPath); err != nil {
			slog.Warn("geoip initialization failed, country lookup disabled", "error", err)
		} else {
			slog.Info("geoip lookup enabled", "path", cfg.GeoIPDBPath)
		}
	}
	defer func() {
		if err := geo.Close(); err != nil {
			slog.Error("error closing geoip database", "error", err)
		}
	}()

	// Start the scheduled publishing worker
	if cfg.SchedulerEnabled {
		sched := scheduler.New(db, contentCache, logger)
		if err := sched.Start(); err != nil {
			return fmt.Errorf("starting scheduler: %w", err)
		}
		defer sched.Stop()
		slog.Info("scheduler started")
	}

	// Create API handler
	apiHandler := api.NewHandler(db, contentCache, geo)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))                    // Gzip compression with level 5
	r.Use(chimw.GetHead)                        // Handle HEAD requests for uptime monitoring
	r.Use(middleware.Timeout(30 * time.Second)) // 30 second request timeout
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))

	// Health check routes (public)
	r.Get("/health", apiHandler.Health)
	r.Get("/health/live", apiHandler.Liveness)
	r.Get("/health/ready", apiHandler.Readiness)

	// REST API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Global rate limiting for API (100 requests per second with burst of 200)
		apiRateLimiter := middleware.NewGlobalRateLimiter(100, 200)
		r.Use(apiRateLimiter.Middleware())

		// Public endpoints (no authentication required)
		r.Get("/status", apiHandler.Status)
		r.Get("/health", apiHandler.Health)

		// Content - public read endpoints (optional auth reveals drafts and soft-deleted rows)
		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalAPIKeyAuth(db))
			r.Get("/projects", apiHandler.ListProjects)
			r.Get("/projects/{id}", apiHandler.GetProject)
			r.Get("/posts", apiHandler.ListPosts)
			r.Get("/posts/{id}", apiHandler.GetPost)
			r.Get("/posts/slug/{slug}", apiHandler.GetPostBySlug)
			r.Get("/timeline", apiHandler.ListTimelineEvents)
			r.Get("/timeline/{id}", apiHandler.GetTimelineEvent)
			r.Get("/gallery", apiHandler.ListGalleryImages)
			r.Get("/gallery/{id}", apiHandler.GetGalleryImage)
			r.Get("/now", apiHandler.GetActiveNowSection)
		})

		// Contact - public submission with per-IP rate limiting
		r.Group(func(r chi.Router) {
			r.Use(middleware.ContactRateLimit(cfg.ContactRateLimit))
			r.Post("/contact", apiHandler.SubmitContactMessage)
		})
		r.Get("/contact/{reference}", apiHandler.GetContactMessageByReference)

		// Protected endpoints (API key required)
		r.Group(func(r chi.Router) {
			r.Use(middleware.APIKeyAuth(db))
			r.Use(middleware.APIRateLimit(10, 20)) // 10 requests per second per API key

			// Auth info endpoint
			r.Get("/auth/info", apiHandler.AuthInfo)

			// Content - write endpoints (requires content:write permission)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission("content:write"))
				r.Post("/projects", apiHandler.CreateProject)
				r.Put("/projects/{id}", apiHandler.UpdateProject)
				r.Delete("/projects/{id}", apiHandler.DeleteProject)
				r.Post("/posts", apiHandler.CreatePost)
				r.Put("/posts/{id}", apiHandler.UpdatePost)
				r.Delete("/posts/{id}", apiHandler.DeletePost)
				r.Post("/timeline", apiHandler.CreateTimelineEvent)
				r.Put("/timeline/{id}", apiHandler.UpdateTimelineEvent)
				r.Delete("/timeline/{id}", apiHandler.DeleteTimelineEvent)
				r.Post("/gallery", apiHandler.CreateGalleryImage)
				r.Put("/gallery/{id}", apiHandler.UpdateGalleryImage)
				r.Delete("/gallery/{id}", apiHandler.DeleteGalleryImage)
				r.Post("/now/sections", apiHandler.CreateNowSection)
				r.Put("/now/sections/{id}", apiHandler.UpdateNowSection)
				r.Delete("/now/sections/{id}", apiHandler.DeleteNowSection)

				// API key management
				r.Get("/keys", apiHandler.ListAPIKeys)
				r.Post("/keys", apiHandler.CreateAPIKey)
				r.Delete("/keys/{id}", apiHandler.DeactivateAPIKey)
			})

			// Now sections - admin read endpoints (requires content:read permission)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission("content:read"))
				r.Get("/now/sections", apiHandler.ListNowSections)
				r.Get("/now/sections/{id}", apiHandler.GetNowSection)
			})

			// Contact messages - admin endpoints (requires messages:* permissions)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission("messages:read"))
				r.Get("/messages", apiHandler.ListContactMessages)
				r.Get("/messages/{id}", apiHandler.GetContactMessage)
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission("messages:write"))
				r.Put("/messages/{id}", apiHandler.UpdateContactMessage)
			})
		})
	})
	slog.Info("REST API v1 mounted at /api/v1")

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second, // Short enough to mitigate slowloris attacks
		MaxHeaderBytes:    1 << 20,          // 1MB max header size
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
