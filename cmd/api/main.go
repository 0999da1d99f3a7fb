package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/citymed/scheduling-agent/internal/admin"
	"github.com/citymed/scheduling-agent/internal/api/router"
	"github.com/citymed/scheduling-agent/internal/booking"
	appconfig "github.com/citymed/scheduling-agent/internal/config"
	"github.com/citymed/scheduling-agent/internal/conversation"
	"github.com/citymed/scheduling-agent/internal/notify"
	"github.com/citymed/scheduling-agent/internal/observability/metrics"
	"github.com/citymed/scheduling-agent/internal/patients"
	"github.com/citymed/scheduling-agent/internal/schedule"
	"github.com/citymed/scheduling-agent/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting scheduling-agent API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Clinic stores: postgres when configured, in-memory otherwise. The
	// in-memory stores start unseeded, so the pipeline reports setup
	// incomplete until data exists.
	var (
		directory     patients.Directory
		scheduleStore schedule.Store
		exportSink    booking.ExportSink
	)
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		directory = patients.NewPostgresDirectory(pool)
		scheduleStore = schedule.NewPostgresStore(pool)
		exportSink = booking.NewPostgresExportSink(pool)
		logger.Info("clinic stores backed by postgres")
	} else {
		directory = patients.NewInMemoryDirectory(nil)
		scheduleStore = schedule.NewInMemoryStore(nil)
		exportSink = booking.NewInMemoryExportSink()
		logger.Warn("DATABASE_URL not set, using unseeded in-memory clinic stores")
	}

	// Conversation state: redis when configured.
	var stateStore conversation.StateStore
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer client.Close()
		stateStore = conversation.NewRedisStateStore(client)
		logger.Info("conversation state backed by redis", "addr", cfg.RedisAddr)
	} else {
		stateStore = conversation.NewInMemoryStateStore()
	}

	// Notification senders. SendGrid needs an API key; without one the
	// stub keeps the pipeline fire-and-forget semantics intact.
	var emailSender notify.EmailSender
	if sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger); sg != nil {
		emailSender = sg
	} else {
		emailSender = notify.NewStubEmailSender(logger)
	}
	smsSender := notify.NewStubSMSSender(logger)

	registry := prometheus.NewRegistry()
	pipelineMetrics := metrics.NewPipelineMetrics(registry)

	notifySvc := notify.NewService(emailSender, smsSender, cfg.IntakeFormPath, cfg.PatientEmailDomain, logger.Component("notify"))
	bookingSvc := booking.NewService(scheduleStore, logger.Component("booking"))
	engine := conversation.NewEngine(directory, scheduleStore, bookingSvc, exportSink, notifySvc, pipelineMetrics, logger.Component("conversation"))

	conversationHandler := conversation.NewHandler(engine, stateStore, logger.Component("conversation"))
	dashboardHandler := admin.NewDashboardHandler(directory, scheduleStore, logger.Component("admin"))

	r := router.New(&router.Config{
		Logger:              logger,
		ConversationHandler: conversationHandler,
		DashboardHandler:    dashboardHandler,
		MetricsHandler:      promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
