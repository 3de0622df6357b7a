package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/orgball2608/sentiment-trend-analyzer/internal/app"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/config"
	"github.com/orgball2608/sentiment-trend-analyzer/pkg/logger"
	"go.uber.org/fx"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg := logger.New(logger.Opts{Env: cfg.App.Env, SentryUrl: cfg.App.SentryUrl})
	defer sentry.Flush(2 * time.Second)

	application := fx.New(
		fx.Logger(logg),
		app.Module(cfg),
	)

	// Start the application
	if err := application.Start(context.Background()); err != nil {
		logg.Error("Failed to start application", "error", err)
		sentry.Flush(2 * time.Second)
		os.Exit(1)
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	// Gracefully shutdown the application
	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := application.Stop(stopCtx); err != nil {
		logg.Error("Failed to stop application", "error", err)
		sentry.Flush(2 * time.Second)
		os.Exit(1)
	}
}
