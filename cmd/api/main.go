package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cartridge-quiz/internal/adapter/analytics"
	"cartridge-quiz/internal/adapter/mailing"
	"cartridge-quiz/internal/cache"
	"cartridge-quiz/internal/config"
	"cartridge-quiz/internal/domain"
	"cartridge-quiz/internal/handler"
	"cartridge-quiz/internal/logger"
	"cartridge-quiz/internal/middleware"
	"cartridge-quiz/internal/pool"
	"cartridge-quiz/internal/quiz"
	"cartridge-quiz/internal/repository"
	"cartridge-quiz/internal/service"
	"cartridge-quiz/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Load the question pool and connect the session store in parallel; the
	// pool loader never fails (it degrades to the embedded fallback).
	var questionPool *domain.PoolDocument
	var redisClient *redis.Client

	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	g, gctx := errgroup.WithContext(startupCtx)
	g.Go(func() error {
		questionPool = pool.NewLoader(cfg.Quiz.Source).Load(gctx)
		return nil
	})
	if cfg.Session.Backend == "redis" {
		g.Go(func() error {
			var err error
			redisClient, err = cache.NewRedisClient(gctx, cfg.Redis)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		cancel()
		appLogger.Fatal("Startup failed", zap.Error(err))
	}
	cancel()

	var sessionRepo service.SessionRepository
	if redisClient != nil {
		sessionRepo = repository.NewRedisSessionRepository(redisClient, cfg.Session.TTL)
		appLogger.Info("Using redis session store", zap.String("address", cfg.Redis.Address))
	} else {
		sessionRepo = repository.NewMemorySessionRepository()
		appLogger.Info("Using in-memory session store")
	}

	var analyticsSink domain.AnalyticsSink
	if cfg.Analytics.Enabled() {
		analyticsSink = analytics.NewGA4Sink(cfg.Analytics, util.NewULID())
		appLogger.Info("GA4 analytics sink initialized")
	} else {
		analyticsSink = analytics.NewNoopSink()
		appLogger.Info("Analytics not configured, events will be dropped")
	}

	var mailingList domain.MailingList
	if cfg.Mailchimp.Enabled() {
		mailingList = mailing.NewMailchimpList(cfg.Mailchimp)
		appLogger.Info("MailChimp mailing list initialized")
	} else {
		mailingList = mailing.NewNoopList()
		appLogger.Info("MailChimp not configured, signups will be dropped")
	}

	generator := quiz.NewGenerator(questionPool, nil)
	tokens := service.NewShareTokenIssuer(cfg.Share)
	sessionService := service.NewSessionService(
		sessionRepo,
		generator,
		analyticsSink,
		mailingList,
		tokens,
		cfg.Share.BaseURL,
	)
	sessionHandler := handler.NewSessionHandler(sessionService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	sessionHandler.RegisterRoutes(app.Group("/api"))

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		appLogger.Info("Starting server", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		appLogger.Error("Server shutdown failed", zap.Error(err))
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			appLogger.Error("Redis close failed", zap.Error(err))
		}
	}
	appLogger.Info("Server exited")
}
