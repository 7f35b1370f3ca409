package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/rally-stats/internal/analytics"
	"github.com/mauv0809/rally-stats/internal/club"
	"github.com/mauv0809/rally-stats/internal/config"
	"github.com/mauv0809/rally-stats/internal/database"
	server "github.com/mauv0809/rally-stats/internal/http"
	"github.com/mauv0809/rally-stats/internal/metrics"
	"github.com/mauv0809/rally-stats/internal/notifier"
	"github.com/mauv0809/rally-stats/internal/notifier/slack"
	"github.com/mauv0809/rally-stats/internal/pubsub"
	"github.com/mauv0809/rally-stats/internal/query"
	"github.com/mauv0809/rally-stats/internal/service"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()

	db, dbTeardown, err := database.InitDB(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	log.Info("Database initialization time recorded", "duration_ms", time.Since(startTime).Milliseconds())
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	dialect, err := query.DialectFor(cfg.Database.Driver)
	if err != nil {
		log.Fatalf("Failed to select SQL dialect: %s", err)
	}
	analyticsCfg, err := config.LoadAnalytics(cfg.AnalyticsConfig)
	if err != nil {
		log.Fatalf("Failed to load analytics config: %s", err)
	}

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var publisher pubsub.PubSubClient
	if cfg.ProjectID != "" {
		publisher, err = pubsub.New(ctx, cfg.ProjectID)
		if err != nil {
			log.Fatalf("Failed to create pubsub client: %s", err)
		}
		defer publisher.Close()
	} else {
		log.Warn("GCP_PROJECT not set, result events will not be published")
	}

	// Left as a nil interface when Slack is not configured.
	var resultNotifier notifier.Notifier
	if cfg.Slack.Enabled() {
		resultNotifier = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	} else {
		log.Warn("Slack not configured, result notifications are disabled")
	}

	services := service.New(service.Deps{
		Store:        club.New(db, dialect),
		Analyzer:     analytics.NewAnalyzer(analyticsCfg),
		Classifier:   analytics.NewClassifier(nil),
		Paging:       cfg.Paging,
		Metrics:      metricsSvc,
		Publisher:    publisher,
		ResultsTopic: cfg.ResultsTopic,
	})
	s := server.NewServer(services, resultNotifier, metricsHandler, cfg)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	case <-ctx.Done():
		log.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
