package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/free-mobile-netstat/fmns-api/internal/adapter/cache"
	"github.com/free-mobile-netstat/fmns-api/internal/adapter/http/fiber/handlers"
	"github.com/free-mobile-netstat/fmns-api/internal/adapter/http/fiber/middleware"
	"github.com/free-mobile-netstat/fmns-api/internal/adapter/storage/postgres"
	"github.com/free-mobile-netstat/fmns-api/internal/ports"
	"github.com/free-mobile-netstat/fmns-api/internal/service/chart"
	"github.com/free-mobile-netstat/fmns-api/internal/service/classify"
	"github.com/free-mobile-netstat/fmns-api/internal/service/ingest"
	"github.com/free-mobile-netstat/fmns-api/internal/service/registry"
	"github.com/free-mobile-netstat/fmns-api/internal/service/summary"
	"github.com/free-mobile-netstat/fmns-api/pkg/config"
)

// TestEnv holds test environment resources
type TestEnv struct {
	DB    *gorm.DB
	Redis *goredis.Client
	Cache ports.Cache

	DeviceRepo  ports.DeviceRepository
	StatRepo    ports.DailyStatRepository
	SummaryRepo ports.SummaryRepository

	PostgresContainer testcontainers.Container
	RedisContainer    testcontainers.Container
	Logger            *zap.Logger
	Location          *time.Location
	ctx               context.Context
}

var testEnv *TestEnv

// SetupTestEnvironment initializes the test environment with containers
func SetupTestEnvironment(t *testing.T) *TestEnv {
	if testEnv != nil {
		return testEnv
	}

	ctx := context.Background()

	// Check if using external services (CI environment)
	if os.Getenv("DATABASE_URL") != "" {
		return setupExternalServices(t, ctx)
	}

	// Use testcontainers for local testing
	return setupContainers(t, ctx)
}

func setupExternalServices(t *testing.T, ctx context.Context) *TestEnv {
	logger, _ := zap.NewDevelopment()

	db, err := postgres.NewConnection(os.Getenv("DATABASE_URL"), false, logger)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	testEnv = finishSetup(t, ctx, db, redisURL, logger, nil, nil)
	return testEnv
}

func setupContainers(t *testing.T, ctx context.Context) *TestEnv {
	logger, _ := zap.NewDevelopment()

	// Start Postgres container
	postgresContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		tcpostgres.WithDatabase("fmns_test"),
		tcpostgres.WithUsername("fmns"),
		tcpostgres.WithPassword("fmns_test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Skipf("Failed to start postgres container: %v", err)
	}

	pgHost, err := postgresContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get postgres host: %v", err)
	}
	pgPort, err := postgresContainer.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get postgres port: %v", err)
	}
	pgConnStr := fmt.Sprintf("postgres://fmns:fmns_test@%s:%s/fmns_test?sslmode=disable", pgHost, pgPort.Port())

	db, err := postgres.NewConnection(pgConnStr, false, logger)
	if err != nil {
		t.Fatalf("Failed to connect to postgres: %v", err)
	}

	// Start Redis container
	redisContainer, err := tcredis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("Ready to accept connections").
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Failed to start redis container: %v", err)
	}

	redisHost, err := redisContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get redis host: %v", err)
	}
	redisPort, err := redisContainer.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("Failed to get redis port: %v", err)
	}
	redisURL := fmt.Sprintf("redis://%s:%s", redisHost, redisPort.Port())

	testEnv = finishSetup(t, ctx, db, redisURL, logger, postgresContainer, redisContainer)
	return testEnv
}

func finishSetup(t *testing.T, ctx context.Context, db *gorm.DB, redisURL string, logger *zap.Logger, pgC, redisC testcontainers.Container) *TestEnv {
	if err := postgres.RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	opt, err := goredis.ParseURL(redisURL)
	if err != nil {
		t.Fatalf("Failed to parse redis url: %v", err)
	}
	redisClient := goredis.NewClient(opt)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		t.Fatalf("Failed to connect to redis: %v", err)
	}

	appCache, err := cache.NewRedisCache(config.RedisConfig{URL: redisURL}, logger)
	if err != nil {
		t.Fatalf("Failed to build redis cache adapter: %v", err)
	}

	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Fatalf("Failed to load reference timezone: %v", err)
	}

	return &TestEnv{
		DB:                db,
		Redis:             redisClient,
		Cache:             appCache,
		DeviceRepo:        postgres.NewDeviceRepository(db, logger),
		StatRepo:          postgres.NewDailyStatRepository(db, logger),
		SummaryRepo:       postgres.NewSummaryRepository(db, logger),
		PostgresContainer: pgC,
		RedisContainer:    redisC,
		Logger:            logger,
		Location:          loc,
		ctx:               ctx,
	}
}

// NewApp wires the full HTTP surface against the environment's real
// storage, mirroring the server's route table.
func (env *TestEnv) NewApp() *fiber.App {
	deviceService := registry.NewService(env.DeviceRepo, env.Logger)
	classifier := classify.NewService(env.StatRepo, 0, env.Logger)
	maintainer := summary.NewMaintainer(env.SummaryRepo, env.Logger)
	statService := ingest.NewService(env.DeviceRepo, env.StatRepo, classifier, maintainer, nil, env.Location, env.Logger)
	chartService := chart.NewService(env.SummaryRepo, env.StatRepo, env.Cache, env.Location, time.Hour, env.Logger)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(env.Logger),
	})

	info := handlers.NewInfoHandler()
	app.Get("/", info.Status)
	app.Head("/", info.Status)

	deviceHandler := handlers.NewDeviceHandler(deviceService, env.Logger)
	app.Put("/device/:deviceId", deviceHandler.Register)

	statsHandler := handlers.NewStatsHandler(statService, env.Logger)
	app.Post("/device/:deviceId/daily/:date", statsHandler.Post)

	chartHandler := handlers.NewChartHandler(chartService, env.Location, env.Logger)
	app.Get("/chart/network-usage", chartHandler.Usage)
	app.Get("/chart/network-usage/daily", chartHandler.DailyUsage)

	return app
}

// CleanDatabase truncates all tables
func CleanDatabase(t *testing.T, db *gorm.DB) {
	tables := []string{
		"daily_stat_summaries",
		"daily_device_stats",
		"devices",
	}
	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			t.Logf("Failed to truncate %s: %v", table, err)
		}
	}
}

// FlushRedis clears all Redis keys
func FlushRedis(t *testing.T, client *goredis.Client) {
	ctx := context.Background()
	if err := client.FlushAll(ctx).Err(); err != nil {
		t.Fatalf("Failed to flush redis: %v", err)
	}
}
