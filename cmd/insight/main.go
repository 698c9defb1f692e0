package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	adviceapi "insight/internal/advice"
	appamqp "insight/internal/amqp"
	"insight/internal/cache"
	"insight/internal/config"
	apphttp "insight/internal/http"
	applog "insight/internal/log"
	"insight/internal/services"
	"insight/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository",
			applog.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	// AMQP is optional. Without it reports are stored but never
	// announced to the worker.
	var events services.EventPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := appamqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		events = amqpClient
		logger.Info("AMQP publishing enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	reports := services.NewReportService(repo, events, logger)

	cacheManager := cache.NewManager()
	defer cacheManager.Stop()

	var adviceSvc *services.AdviceService
	if cfg.AdviceEnabled() {
		advisor := adviceapi.NewClient(cfg.AnthropicAPIKey, cfg.AdviceModel, cfg.AdviceBaseURL)
		adviceCache := cache.NewLRUCache[[]adviceapi.Advice](cfg.AdviceCacheSize, cfg.AdviceCacheTTL)
		cacheManager.Register(adviceCache)
		adviceSvc = services.NewAdviceService(advisor, repo, adviceCache, logger)
		logger.Info("Advice enabled")
	} else {
		logger.Info("Advice disabled - no ANTHROPIC_API_KEY provided")
	}
	cacheManager.StartCleanup(10 * time.Minute)

	anchor := time.Now
	if !cfg.Anchor.IsZero() {
		pinned := cfg.Anchor
		anchor = func() time.Time { return pinned }
		logger.Info("Anchor date pinned", applog.FieldAnchor, pinned.Format("2006-01-02"))
	}

	srv := apphttp.NewServer(apphttp.Options{
		Addr:           ":" + cfg.Port,
		MaxUploadBytes: cfg.MaxUploadBytes,
		Anchor:         anchor,
	}, reports, adviceSvc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting insight server",
			applog.FieldOperation, applog.OpStartup, "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received", applog.FieldOperation, applog.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
