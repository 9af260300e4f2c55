package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/StockPredictor/internal/analyze"
	"github.com/Alias1177/StockPredictor/internal/api/alphavantage"
	"github.com/Alias1177/StockPredictor/internal/classifier"
	"github.com/Alias1177/StockPredictor/internal/config"
	"github.com/Alias1177/StockPredictor/internal/database"
	"github.com/Alias1177/StockPredictor/internal/metrics"
	"github.com/Alias1177/StockPredictor/internal/server"
)

func main() {
	// Setup context with cancellation for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// 2. Configure logging
	setupLogging(cfg.LogLevel, cfg.LogFormat)
	log.Info().Msg("Starting stock direction predictor")
	printConfig(cfg)

	// 3. Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.New(reg)

	// 4. Market data client
	client := alphavantage.NewClient(alphavantage.ClientOptions{
		APIKey:            cfg.AlphaVantageAPIKey,
		BaseURL:           cfg.AlphaVantageBaseURL,
		RequestTimeout:    cfg.FetchTimeout,
		RequestsPerMinute: cfg.FetchRatePerMin,
		MaxRetries:        cfg.FetchMaxRetries,
	})
	if cfg.AlphaVantageAPIKey == "" {
		log.Warn().Msg("ALPHA_VANTAGE_API_KEY not set, predictions will use synthetic data")
	}

	// 5. Predictor
	var trainer classifier.Trainer
	if cfg.ClassifierEnabled {
		trainer = classifier.NewGBTrainer()
	} else {
		log.Warn().Msg("Classifier disabled, predictions will use the heuristic scorer")
	}

	predictor := analyze.NewPredictor(client, trainer, analyze.Options{
		FetchTimeout:  cfg.FetchTimeout,
		SyntheticRows: cfg.SyntheticRows,
		SyntheticSeed: cfg.SyntheticSeed,
	})

	handlerOpts := []server.HandlerOption{server.WithRecorder(recorder)}

	// 6. Optional prediction journal
	if cfg.DatabaseURL != "" {
		db, err := database.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer db.Close()
		handlerOpts = append(handlerOpts, server.WithJournal(db))
		log.Info().Msg("Prediction journal enabled")
	}

	// 7. HTTP server
	srv := server.NewServer(
		server.NewPredictionHandler(predictor, handlerOpts...),
		recorder,
		server.WithHost(cfg.Host),
		server.WithPort(cfg.Port),
		server.WithMetrics(reg),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutdown signal received")
	case err := <-errCh:
		if err != nil {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

// setupLogging configures the logger
func setupLogging(logLevel, logFormat string) {
	if strings.EqualFold(logFormat, "json") {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		log.Logger = log.Output(output)
	}

	// Set log level from config
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log.Logger = log.Logger.Level(level)
}

// printConfig outputs the current configuration
func printConfig(cfg *config.Config) {
	log.Info().
		Str("Host", cfg.Host).
		Int("Port", cfg.Port).
		Str("AlphaVantageBaseURL", cfg.AlphaVantageBaseURL).
		Dur("FetchTimeout", cfg.FetchTimeout).
		Int("FetchRatePerMin", cfg.FetchRatePerMin).
		Int("FetchMaxRetries", cfg.FetchMaxRetries).
		Bool("ClassifierEnabled", cfg.ClassifierEnabled).
		Int64("SyntheticSeed", cfg.SyntheticSeed).
		Int("SyntheticRows", cfg.SyntheticRows).
		Bool("JournalEnabled", cfg.DatabaseURL != "").
		Msg("Configuration loaded")
}
