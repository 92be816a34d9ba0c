package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"deal_syncer/internal/config"
	"deal_syncer/internal/domain"
	"deal_syncer/internal/fieldmap"
	"deal_syncer/internal/publisher"
	"deal_syncer/internal/scheduler"
	"deal_syncer/internal/server"
	"deal_syncer/internal/service"
	"deal_syncer/internal/source/pipedrive"
	"deal_syncer/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// Setup logger
	logger := setupLogger("info")

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	// A missing token fails here, before any run row exists.
	if cfg.CRM.APIToken == "" {
		logger.Error("crm api token is not configured")
		os.Exit(1)
	}
	if cfg.CRM.BaseURL == "" {
		logger.Error("crm base url is not configured")
		os.Exit(1)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	// Initialize RabbitMQ publisher. An empty URL runs the pipeline
	// without eventing.
	var events service.Publisher
	if cfg.RabbitMQ.URL != "" {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		events = rabbitMQ
	}

	// Initialize stores
	dealStore := postgres.NewDealStore(db)
	syncRunStore := postgres.NewSyncRunStore(db)
	txManager := postgres.NewTransactionManager(db)

	fields, err := fieldmap.New(cfg.CRM.FieldMapVersion, cfg.CRM.FieldMap)
	if err != nil {
		logger.Error("invalid field map", "error", err)
		os.Exit(1)
	}

	// Initialize CRM source
	crmSource := pipedrive.New(pipedrive.Config{
		BaseURL:        cfg.CRM.BaseURL,
		APIToken:       cfg.CRM.APIToken,
		PageSize:       cfg.CRM.PageSize,
		MaxPages:       cfg.CRM.MaxPages,
		Timeout:        cfg.CRM.Timeout,
		CallTimeout:    cfg.CRM.CallTimeout,
		MaxAttempts:    cfg.CRM.Retry.MaxAttempts,
		InitialBackoff: cfg.CRM.Retry.InitialBackoff,
		MaxBackoff:     cfg.CRM.Retry.MaxBackoff,
	}, logger)

	syncService := service.NewSyncService(
		crmSource,
		dealStore,
		syncRunStore,
		txManager,
		events,
		fields,
		logger,
		cfg.Sync,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.New(syncService, cfg.Server.CronSecret, logger).Handler(),
	}

	go func() {
		logger.Info("http server listening", "addr", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	logger.Info("starting deal syncer",
		"source", crmSource.ID(),
		"interval", cfg.Sync.Interval,
		"concurrency", cfg.Sync.Concurrency,
		"field_map_version", cfg.CRM.FieldMapVersion,
	)

	if cfg.Sync.Interval > 0 {
		sched := scheduler.NewScheduler(
			syncService,
			cfg.Sync.Interval,
			domain.SyncOptions{AllDeals: cfg.Sync.ScheduledAllDeals},
			logger,
		)
		if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("scheduler error", "error", err)
		}
	} else {
		<-ctx.Done()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", "error", err)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
