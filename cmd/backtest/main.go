// Command backtest replays a daily series through the prediction pipeline and
// reports how often the predicted direction matched the next close.
//
// Usage:
//
//	go run ./cmd/backtest --symbol=AAPL --window=60 --step=1 --full
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/StockPredictor/internal/analyze"
	"github.com/Alias1177/StockPredictor/internal/api/alphavantage"
	"github.com/Alias1177/StockPredictor/internal/classifier"
	"github.com/Alias1177/StockPredictor/internal/config"
	"github.com/Alias1177/StockPredictor/internal/synthetic"
	"github.com/Alias1177/StockPredictor/internal/trading/backtest"
)

func main() {
	symbol := flag.String("symbol", "AAPL", "Ticker to backtest")
	window := flag.Int("window", 60, "Candles per prediction")
	step := flag.Int("step", 1, "Candles between predictions")
	full := flag.Bool("full", false, "Fetch the full daily history instead of the latest 100 bars")
	useSynthetic := flag.Bool("synthetic", false, "Replay a generated series instead of fetching market data")
	rows := flag.Int("rows", 300, "Generated series length with --synthetic")
	heuristic := flag.Bool("heuristic", false, "Score with the heuristic only")
	asJSON := flag.Bool("json", false, "Print results as JSON")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	setupLogging(cfg.LogLevel)

	var trainer classifier.Trainer
	if !*heuristic && cfg.ClassifierEnabled {
		trainer = classifier.NewGBTrainer()
	}
	predictor := analyze.NewPredictor(nil, trainer, analyze.Options{})
	opts := backtest.Options{Window: *window, Step: *step}

	var results *backtest.Results
	if *useSynthetic {
		series := synthetic.Generate(*rows, cfg.SyntheticSeed, time.Now())
		results, err = backtest.NewEngine(nil, predictor, opts).RunSeries(ctx, series)
	} else {
		outputSize := "compact"
		if *full {
			outputSize = "full"
		}
		client := alphavantage.NewClient(alphavantage.ClientOptions{
			APIKey:            cfg.AlphaVantageAPIKey,
			BaseURL:           cfg.AlphaVantageBaseURL,
			OutputSize:        outputSize,
			RequestTimeout:    cfg.FetchTimeout,
			RequestsPerMinute: cfg.FetchRatePerMin,
			MaxRetries:        cfg.FetchMaxRetries,
		})
		results, err = backtest.NewEngine(client, predictor, opts).Run(ctx, strings.ToUpper(*symbol))
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Backtest failed")
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			log.Fatal().Err(err).Msg("Failed to encode results")
		}
		return
	}
	fmt.Println(backtest.FormatResults(results))
}

// setupLogging configures the logger
func setupLogging(logLevel string) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(output)

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log.Logger = log.Logger.Level(level)
}
