package main // Entry point package

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"    // Load .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/seatharmony/seatharmony/internal/config"     // Internal config loader
	"github.com/seatharmony/seatharmony/internal/database"   // MySQL connection for the venue catalog
	"github.com/seatharmony/seatharmony/internal/handler"    // HTTP handlers of the planning API
	"github.com/seatharmony/seatharmony/internal/model"      // Built-in venue catalog for seeding
	"github.com/seatharmony/seatharmony/internal/optimizer"  // Client for the external layout optimizer
	"github.com/seatharmony/seatharmony/internal/queue"      // Activity-event consumer
	"github.com/seatharmony/seatharmony/internal/repository" // Venue catalog sources
	"github.com/seatharmony/seatharmony/internal/router"     // Route registration
	"github.com/seatharmony/seatharmony/internal/store"      // Session state KV backends
	"github.com/seatharmony/seatharmony/pkg/logging"         // Structured logging setup
)

func main() {
	// Load a local .env file if present; in production the variables come
	// from the real environment and the missing file is not an error.
	_ = godotenv.Load()

	logging.Setup()

	cfg := config.Load() // Load environment config

	// Session state lives in Redis so it survives process restarts.  When
	// Redis is unreachable the service still runs on an in-memory store,
	// losing state on restart.
	var kv store.KV
	if rdb := config.NewRedisClient(); rdb != nil {
		kv = store.NewRedisKV(rdb, cfg.SessionTTL)
	} else {
		slog.Warn("redis unavailable, session state is in-memory only")
		kv = store.NewMemoryKV()
	}

	// The venue catalog is served from MySQL when configured, seeded from
	// the built-in catalog on first start.  Without DB_HOST the built-in
	// catalog is served directly.
	var venues repository.VenueSource = repository.CatalogSource{}
	if cfg.DBHost != "" {
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			slog.Warn("mysql unavailable, serving built-in venue catalog", "err", err)
		} else {
			repo := repository.NewVenueRepo(db)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := repo.EnsureSchema(ctx); err == nil {
				if err := repo.Seed(ctx, model.VenueLayouts); err != nil {
					slog.Warn("venue catalog seed failed", "err", err)
				}
				venues = repo
			} else {
				slog.Warn("venue schema setup failed, serving built-in catalog", "err", err)
			}
			cancel()
		}
	}

	// Consume activity events when a broker is configured; the publisher in
	// the handlers is best-effort either way.
	if os.Getenv("RABBITMQ_URL") != "" || os.Getenv("AMQP_URL") != "" {
		go queue.StartActivityConsumer()
	}

	opt := optimizer.NewClient(cfg.OptimizerBaseURL)
	h := handler.NewPlannerHandler(kv, venues, opt, cfg.JWTSecret, cfg.SessionTTL)

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	router.RegisterRoutes(e, h)                 // Health check and session creation
	router.RegisterPlanner(e, h, cfg.JWTSecret) // Session-scoped planning endpoints

	addr := ":" + cfg.Port // Address string with port
	slog.Info("listening", "addr", addr, "env", cfg.Env)

	if err := e.Start(addr); err != nil { // Start HTTP server
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
