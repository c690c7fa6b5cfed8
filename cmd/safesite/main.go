package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/buildwatch/safesite/internal/config"
	"github.com/buildwatch/safesite/internal/forecast"
	"github.com/buildwatch/safesite/internal/history"
	"github.com/buildwatch/safesite/internal/logger"
	"github.com/buildwatch/safesite/internal/metrics"
	"github.com/buildwatch/safesite/internal/server"
	"github.com/buildwatch/safesite/internal/snapshot"
	"github.com/buildwatch/safesite/internal/telegram"
	"github.com/buildwatch/safesite/internal/triage"
	"github.com/buildwatch/safesite/internal/ws"
)

var configPath = flag.String("config", "configs/config.yaml", "Path to configuration file")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	rootLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	rootLog.Info().Str("path", *configPath).Msg("configuration loaded")

	metrics.Init()

	// Forecasting engine selection happens once at startup; the
	// moving-average fallback always backs the chain, so forecasting can
	// never fail a cycle.
	var primary forecast.Forecaster
	engineName := "moving-average"
	if cfg.Forecast.Engine == "trend" {
		primary = forecast.Trend{FitWindow: cfg.Forecast.FitWindow}
		engineName = "least-squares trend (moving-average fallback)"
	}
	rootLog.Info().Str("engine", engineName).Msg("forecasting engine selected")

	sess := &session{
		cfg:     cfg,
		reader:  snapshot.NewReader(cfg.Site.SnapshotPath, rootLog.With().Str("component", "snapshot").Logger()),
		history: history.New(cfg.History.Capacity),
		triage:  triage.New(cfg.Alerts.Cooldown),
		engine: forecast.Chain{
			Primary:  primary,
			Fallback: forecast.MovingAverage{Window: cfg.Forecast.Window},
			Logger:   rootLog.With().Str("component", "forecast").Logger(),
		},
		logger: rootLog.With().Str("component", "monitor").Logger(),
	}

	if cfg.Alerts.Enabled {
		tg, err := telegram.NewClient(cfg.Alerts.BotToken, cfg.Alerts.ChatID, cfg.Alerts.MaxRetries, cfg.Alerts.RetryDelayBase)
		if err != nil {
			rootLog.Fatal().Err(err).Msg("failed to initialize Telegram client")
		}
		sess.tg = tg
		rootLog.Info().Msg("Telegram alert delivery enabled")
	} else {
		rootLog.Debug().Msg("Telegram alert delivery disabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		rootLog.Info().Msg("shutdown signal received, cleaning up")
		cancel()
	}()

	if cfg.Server.Enabled {
		hub := ws.NewHub(rootLog.With().Str("component", "feed").Logger())
		go hub.Run()
		sess.hub = hub

		api := server.New(sess.reader, hub, cfg.Site.ProducerCommand, rootLog.With().Str("component", "api").Logger())
		srv := &http.Server{Addr: cfg.Server.ListenAddr, Handler: api.Router()}
		go func() {
			rootLog.Info().Str("addr", cfg.Server.ListenAddr).Msg("HTTP API listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				rootLog.Fatal().Err(err).Msg("HTTP server failed")
			}
		}()
		go func() {
			<-ctx.Done()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	rootLog.Info().
		Dur("refresh_interval", cfg.Site.RefreshInterval).
		Int("history_capacity", cfg.History.Capacity).
		Int("forecast_steps", cfg.Forecast.Steps).
		Str("snapshot_path", cfg.Site.SnapshotPath).
		Msg("starting monitoring session")

	ticker := time.NewTicker(cfg.Site.RefreshInterval)
	defer ticker.Stop()

	// Run the first cycle immediately rather than waiting one interval.
	sess.runCycle(time.Now())

	for {
		select {
		case <-ctx.Done():
			rootLog.Info().Msg("monitoring session stopped")
			return
		case tickTime := <-ticker.C:
			sess.runCycle(tickTime)
		}
	}
}
