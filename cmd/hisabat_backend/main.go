package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	cacheredis "github.com/hisabat-app/hisabat_backend/internal/adapters/cache/redis"
	storageminio "github.com/hisabat-app/hisabat_backend/internal/adapters/storage/minio"
	"github.com/hisabat-app/hisabat_backend/internal/core/events"
	portsrepo "github.com/hisabat-app/hisabat_backend/internal/core/ports/repositories"
	"github.com/hisabat-app/hisabat_backend/internal/core/services"
	"github.com/hisabat-app/hisabat_backend/internal/handlers"
	"github.com/hisabat-app/hisabat_backend/internal/middleware"
	"github.com/hisabat-app/hisabat_backend/internal/platform/config"
	"github.com/hisabat-app/hisabat_backend/internal/repositories/database/pgsql"
	"github.com/hisabat-app/hisabat_backend/pkg/database"
)

// @title Hisabat Backend API
// @version 1.0
// @description Receivables and deposits ledger for small-business financial administration.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Receipt attachments live in an S3-compatible bucket.
	attachments, err := storageminio.NewAttachmentStore(context.Background(), storageminio.Config{
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
		UseSSL:    cfg.S3UseSSL,
	})
	if err != nil {
		logger.Error("Failed to initialize attachment store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// The stats cache is optional; without Redis every dashboard read recomputes.
	var statsCache portsrepo.DashboardStatsCache
	if cfg.RedisAddress != "" {
		cache, err := cacheredis.NewStatsCache(context.Background(), cfg.RedisAddress, cfg.StatsCacheTTL)
		if err != nil {
			logger.Error("Failed to initialize stats cache", slog.String("error", err.Error()))
			os.Exit(1)
		}
		statsCache = cache
	}

	provider := pgsql.NewRepositoryProvider(dbPool)
	provider.Attachments = attachments
	provider.StatsCache = statsCache

	dispatcher := events.NewDispatcher()
	if statsCache != nil {
		dispatcher.Subscribe(services.StatsInvalidationHandler(statsCache, logger))
	}

	serviceContainer := services.NewServiceContainer(provider, dispatcher, cfg.DepositRemainderDueDays)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (CORS, logging, rate limiting, recovery)
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "Idempotency-Key")
	r.Use(cors.New(corsConfig))
	r.Use(middleware.StructuredLoggingMiddleware(logger))
	r.Use(middleware.RateLimit(newRateLimiter(logger, cfg.RateLimit)))
	r.Use(gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterCustomValidators()
	handlers.RegisterRoutes(r, cfg, serviceContainer, attachments)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Wait for interrupt, then drain in-flight requests.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Server exited.")
}

// runMigrations applies all pending "up" migrations using a temporary
// database/sql connection over the pgx stdlib driver.
func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// newRateLimiter builds an in-memory limiter from a rate string like "100-M".
func newRateLimiter(logger *slog.Logger, rateStr string) *limiter.Limiter {
	rate, err := limiter.NewRateFromFormatted(rateStr)
	if err != nil {
		logger.Warn("Invalid RATE_LIMIT, defaulting to 100 requests per minute", slog.String("value", rateStr))
		rate = limiter.Rate{Period: time.Minute, Limit: 100}
	}
	return limiter.New(memory.NewStore(), rate)
}
