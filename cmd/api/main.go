package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"nutritrack/internal/advice"
	"nutritrack/internal/auth"
	"nutritrack/internal/config"
	"nutritrack/internal/database"
	"nutritrack/internal/database/migration"
	"nutritrack/internal/detect"
	handlers "nutritrack/internal/http/handler"
	"nutritrack/internal/http/middleware"
	"nutritrack/internal/imagesearch"
	"nutritrack/internal/llm"
	"nutritrack/internal/logging"
	"nutritrack/internal/otel"
	"nutritrack/internal/repository/mongodb"
	"nutritrack/internal/repository/postgres"
	"nutritrack/internal/service"
	"nutritrack/internal/storage"
)

// @title Nutritrack API
// @version 1.0
// @BasePath /
func main() {
	// .env is auto-loaded if present; real environment variables win.
	cfg := config.Load()
	level := logging.ParseLevel(cfg.LogLevel)
	logging.Setup(level, cfg.Location())
	if err := cfg.Validate(); err != nil {
		fatal("invalid configuration", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Errors are additionally persisted to PostgreSQL when a log database is configured.
	done := make(chan struct{})
	if cfg.LogDatabase.Enabled() {
		logDB, err := database.NewPostgres(cfg.LogDatabase)
		if err != nil {
			fatal("failed to connect to log database", err)
		}
		defer logDB.Close()

		if err := migration.EnsureMigrated(ctx, logDB, cfg.LogDatabase.Host); err != nil {
			fatal("failed to migrate log database", err)
		}

		logRepo := postgres.NewSystemLogPostgres(logDB)
		sink := logging.NewSinkHandler(logRepo)
		defer sink.Stop()
		logging.Setup(level, cfg.Location(), sink)
		logging.StartCleanup(logRepo, done)
	}
	defer close(done)

	shutdownTracing, err := otel.Init(ctx, "nutritrack")
	if err != nil {
		fatal("failed to initialize tracing", err)
	}

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
		}); err != nil {
			fatal("failed to initialize sentry", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	mongoClient, db, err := database.NewMongo(ctx, cfg.Mongo)
	if err != nil {
		fatal("failed to connect to mongodb", err)
	}
	if err := database.EnsureIndexes(ctx, db); err != nil {
		fatal("failed to create indexes", err)
	}

	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		fatal("failed to initialize object storage", err)
	}

	var history advice.History = advice.NewMemoryHistory(cfg.Advice.HistorySize, cfg.Advice.MaxUsers)
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			fatal("failed to connect to redis", err)
		}
		history = advice.NewRedisHistory(rdb, cfg.Advice.HistorySize)
	}

	llmClient := llm.New(cfg.LLM)

	var detectors []detect.Detector
	if cfg.Detection.AWSRegion != "" {
		rek, err := detect.NewRekognition(ctx, cfg.Detection)
		if err != nil {
			fatal("failed to initialize rekognition", err)
		}
		detectors = append(detectors, rek)
	}
	detectors = append(detectors, detect.NewVision(llmClient, cfg.LLM.VisionModel, cfg.Detection.MinConfidence))

	var searchers []imagesearch.Searcher
	if cfg.ImageSearch.UnsplashKey != "" {
		searchers = append(searchers, imagesearch.NewUnsplash(cfg.ImageSearch.UnsplashKey))
	}
	if cfg.ImageSearch.PexelsKey != "" {
		searchers = append(searchers, imagesearch.NewPexels(cfg.ImageSearch.PexelsKey))
	}
	var recipeImages imagesearch.Searcher
	if len(searchers) > 0 {
		recipeImages = imagesearch.NewChain(searchers...)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := service.NewMetrics(reg)
	httpMetrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		fatal("failed to register http metrics", err)
	}

	userRepo := mongodb.NewUserMongo(db)
	mealRepo := mongodb.NewMealMongo(db)
	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	services := handlers.Services{
		Users:      service.NewUserService(userRepo, mealRepo, objStore, tokens),
		Meals:      service.NewMealService(mealRepo),
		Foods:      service.NewFoodService(mongodb.NewFoodMongo(db), llmClient, cfg.LLM.FoodModel),
		Detection:  service.NewDetectionService(detect.NewChain(detectors...), metrics),
		Images:     service.NewImageService(objStore, mongodb.NewImageMongo(db)),
		Advice:     service.NewAdviceService(userRepo, mealRepo, llmClient, cfg.LLM.AdviceModel, history, recipeImages, metrics),
		Support:    service.NewSupportService(mongodb.NewSupportMongo(db)),
		Statistics: service.NewStatisticsService(userRepo, mealRepo),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    cfg.BodyLimitMB << 20,
	})

	app.Use(recover.New())
	// Sentry runs before RequestID so the request id lands on the scope.
	app.Use(sentryfiber.New(sentryfiber.Options{Repanic: true}))
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger())
	app.Use(httpMetrics.Handler())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins}))
	if cfg.RateLimit > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit,
			Expiration: time.Minute,
			Next: func(c *fiber.Ctx) bool {
				switch c.Path() {
				case "/health", "/healthz", "/metrics":
					return true
				}
				return false
			},
			LimitReached: func(c *fiber.Ctx) error {
				return fiber.ErrTooManyRequests
			},
		}))
	}

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))
	handlers.RegisterRoutes(app, mongoClient, services, cfg.Auth)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			fatal("failed to start server", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		slog.Error("mongodb disconnect failed", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("tracing shutdown failed", "error", err)
	}
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
