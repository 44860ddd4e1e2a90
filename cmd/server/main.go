package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/free-mobile-netstat/fmns-api/internal/adapter/cache"
	"github.com/free-mobile-netstat/fmns-api/internal/adapter/http/fiber/handlers"
	"github.com/free-mobile-netstat/fmns-api/internal/adapter/http/fiber/middleware"
	"github.com/free-mobile-netstat/fmns-api/internal/adapter/queue"
	"github.com/free-mobile-netstat/fmns-api/internal/adapter/storage/postgres"
	"github.com/free-mobile-netstat/fmns-api/internal/observability/telemetry"
	"github.com/free-mobile-netstat/fmns-api/internal/ports"
	"github.com/free-mobile-netstat/fmns-api/internal/service/chart"
	"github.com/free-mobile-netstat/fmns-api/internal/service/classify"
	"github.com/free-mobile-netstat/fmns-api/internal/service/ingest"
	"github.com/free-mobile-netstat/fmns-api/internal/service/registry"
	"github.com/free-mobile-netstat/fmns-api/internal/service/summary"
	"github.com/free-mobile-netstat/fmns-api/pkg/config"
)

const (
	serviceName    = "fmns-api"
	serviceVersion = "v1.0.0"
)

func main() {
	// 1. Initialize Logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	logger.Info("Starting Free Mobile Netstat API",
		zap.String("service", serviceName),
		zap.String("version", serviceVersion),
	)

	// 2. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// 3. Reference timezone: every date boundary (acceptance window,
	// chart defaults, cache TTL decisions) is computed in this zone.
	loc, err := time.LoadLocation(cfg.Region.Timezone)
	if err != nil {
		logger.Fatal("Failed to load reference timezone",
			zap.String("timezone", cfg.Region.Timezone),
			zap.Error(err),
		)
	}

	// 4. Initialize OpenTelemetry (Distributed Tracing)
	if cfg.Tracing.Enabled {
		tracerProvider, err := telemetry.InitTracer(serviceName, serviceVersion, cfg.Tracing.JaegerEndpoint)
		if err != nil {
			logger.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := tracerProvider.Shutdown(context.Background()); err != nil {
				logger.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()
	}

	// 5. Initialize PostgreSQL Connection Pool
	db, err := postgres.NewConnection(cfg.Database.URL, cfg.Database.LogQueries, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer postgres.Close(db)

	if cfg.Database.AutoMigrate {
		if err := postgres.RunMigrations(db); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	// 6. Initialize Cache (Redis, falling back to in-memory)
	var appCache ports.Cache
	appCache, err = cache.NewRedisCache(cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to local cache", zap.Error(err))
		appCache = cache.NewLocalCache(time.Minute, logger)
	}
	defer appCache.Close()

	// 7. Initialize Message Queue (optional)
	messageQueue, err := queue.New(cfg.Queue, logger)
	if err != nil {
		logger.Fatal("Failed to initialize message queue", zap.Error(err))
	}
	if messageQueue != nil {
		defer messageQueue.Close()
	}

	// 8. Initialize Repositories
	deviceRepo := postgres.NewDeviceRepository(db, logger)
	statRepo := postgres.NewDailyStatRepository(db, logger)
	summaryRepo := postgres.NewSummaryRepository(db, logger)

	// 9. Initialize Services (Business Logic Layer)
	deviceService := registry.NewService(deviceRepo, logger)
	classifier := classify.NewService(statRepo, cfg.Stats.Is4GThresholdMs, logger)
	maintainer := summary.NewMaintainer(summaryRepo, logger)
	statService := ingest.NewService(deviceRepo, statRepo, classifier, maintainer, messageQueue, loc, logger)
	chartService := chart.NewService(summaryRepo, statRepo, appCache, loc, cfg.Cache.MutableWindowTTL, logger)

	// 10. Initialize Fiber HTTP Server
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		ServerHeader:          serviceName,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		IdleTimeout:           cfg.HTTP.IdleTimeout,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	// Global Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	if cfg.CORS.Enabled {
		app.Use(middleware.NewCORS(cfg.CORS))
	}
	if cfg.RateLimiting.Enabled {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimiting.MaxRequests,
			Expiration: cfg.RateLimiting.Window,
		}))
	}
	if cfg.CircuitBreaker.Enabled {
		app.Use(middleware.CircuitBreaker(cfg.CircuitBreaker, logger))
	}

	// Health Check Endpoints
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.Ping() != nil {
			return c.Status(fiber.StatusServiceUnavailable).SendString("Database not ready")
		}
		if err := appCache.Ping(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).SendString("Cache not ready")
		}
		return c.SendString("Ready")
	})

	// Metrics endpoint for Prometheus
	if cfg.Prometheus.Enabled {
		app.Get(cfg.Prometheus.Path, func(c *fiber.Ctx) error {
			handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
			handler(c.Context())
			return nil
		})
	}

	// API Routes. The reporting Android clients probe GET / before
	// uploading, so the root doubles as the liveness answer.
	infoHandler := handlers.NewInfoHandler()
	app.Get("/", infoHandler.Status)
	app.Head("/", infoHandler.Status)

	deviceHandler := handlers.NewDeviceHandler(deviceService, logger)
	app.Put("/device/:deviceId", deviceHandler.Register)

	statsHandler := handlers.NewStatsHandler(statService, logger)
	app.Post("/device/:deviceId/daily/:date", statsHandler.Post)

	chartHandler := handlers.NewChartHandler(chartService, loc, logger)
	app.Get("/chart/network-usage", chartHandler.Usage)
	app.Get("/chart/network-usage/daily", chartHandler.DailyUsage)

	// 11. Start HTTP Server
	go func() {
		logger.Info("Starting HTTP Server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	// 12. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}
