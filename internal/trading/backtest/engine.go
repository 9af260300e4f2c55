package backtest

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/StockPredictor/internal/calculate"
	"github.com/Alias1177/StockPredictor/models"
)

// ErrInsufficientData is returned when the series is shorter than one window plus
// the candle it is validated against.
var ErrInsufficientData = errors.New("insufficient historical data for backtesting")

// Scorer predicts the direction of the candle following a window.
type Scorer interface {
	PredictSeries(candles []models.Candle) *models.Prediction
}

// Options configures the walk-forward replay.
type Options struct {
	Window       int     // candles per prediction
	Step         int     // candles between predictions
	InitialValue float64 // starting account value for the equity curve
}

// Trade is one replayed prediction and its outcome.
type Trade struct {
	Timestamp     time.Time `json:"timestamp"`
	Direction     string    `json:"direction"`
	Confidence    float64   `json:"confidence"`
	Source        string    `json:"source"`
	ActualOutcome string    `json:"actual_outcome"`
	WasCorrect    bool      `json:"was_correct"`
	Return        float64   `json:"return"`
}

// Results summarizes a backtest.
type Results struct {
	TotalTrades    int `json:"total_trades"`
	WinningTrades  int `json:"winning_trades"`
	LosingTrades   int `json:"losing_trades"`
	MaxConsecutive struct {
		Wins   int `json:"wins"`
		Losses int `json:"losses"`
	} `json:"max_consecutive"`
	WinRate        float64            `json:"win_rate"`
	AverageGain    float64            `json:"average_gain"`
	AverageLoss    float64            `json:"average_loss"`
	ProfitFactor   float64            `json:"profit_factor"`
	SharpeRatio    float64            `json:"sharpe_ratio"`
	MaxDrawdown    float64            `json:"max_drawdown"` // percent
	FinalBalance   float64            `json:"final_balance"`
	EquityCurve    []float64          `json:"equity_curve"`
	SourceAccuracy map[string]float64 `json:"source_accuracy"`
	MonthlyReturns map[string]float64 `json:"monthly_returns"` // percent
	Trades         []Trade            `json:"trades"`

	periodsPerYear float64
}

// Engine replays a candle series through a Scorer, one window at a time.
type Engine struct {
	client models.CandleClient
	scorer Scorer
	opts   Options
	logger zerolog.Logger
}

// NewEngine creates a new backtesting engine
func NewEngine(client models.CandleClient, scorer Scorer, opts Options) *Engine {
	if opts.Window == 0 {
		opts.Window = 60
	}
	if opts.Window < calculate.MinRows {
		opts.Window = calculate.MinRows
	}
	if opts.Step <= 0 {
		opts.Step = 1
	}
	if opts.InitialValue <= 0 {
		opts.InitialValue = 10000.0
	}

	return &Engine{
		client: client,
		scorer: scorer,
		opts:   opts,
		logger: log.With().Str("component", "backtest").Logger(),
	}
}

// Run fetches the series for symbol and replays it.
func (e *Engine) Run(ctx context.Context, symbol string) (*Results, error) {
	candles, err := e.client.GetCandles(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch historical data: %w", err)
	}

	return e.RunSeries(ctx, candles)
}

// RunSeries predicts every Step candles from the preceding Window candles and
// validates each prediction against the next close.
func (e *Engine) RunSeries(ctx context.Context, candles []models.Candle) (*Results, error) {
	if len(candles) < e.opts.Window+1 {
		return nil, fmt.Errorf("%w: got %d candles, need %d", ErrInsufficientData, len(candles), e.opts.Window+1)
	}

	results := &Results{
		SourceAccuracy: make(map[string]float64),
		MonthlyReturns: make(map[string]float64),
		periodsPerYear: 252.0 / float64(e.opts.Step),
	}

	consecutiveWins := 0
	consecutiveLosses := 0
	balance := e.opts.InitialValue
	results.EquityCurve = append(results.EquityCurve, balance)

	for i := e.opts.Window; i < len(candles); i += e.opts.Step {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		window := candles[i-e.opts.Window : i]
		prediction := e.scorer.PredictSeries(window)

		currentPrice := window[len(window)-1].Close
		futurePrice := candles[i].Close

		// Matches the training label: only a strictly higher close is UP
		actualOutcome := models.DirectionDown
		if futurePrice > currentPrice {
			actualOutcome = models.DirectionUp
		}

		move := 0.0
		if currentPrice != 0 {
			move = math.Abs(futurePrice-currentPrice) / currentPrice
		}

		trade := Trade{
			Timestamp:     window[len(window)-1].Timestamp,
			Direction:     prediction.Direction,
			Confidence:    prediction.Confidence,
			Source:        prediction.Source,
			ActualOutcome: actualOutcome,
			WasCorrect:    prediction.Direction == actualOutcome,
		}

		if trade.WasCorrect {
			trade.Return = move
			results.WinningTrades++
			consecutiveWins++
			consecutiveLosses = 0
		} else {
			trade.Return = -move
			results.LosingTrades++
			consecutiveLosses++
			consecutiveWins = 0
		}

		if consecutiveWins > results.MaxConsecutive.Wins {
			results.MaxConsecutive.Wins = consecutiveWins
		}
		if consecutiveLosses > results.MaxConsecutive.Losses {
			results.MaxConsecutive.Losses = consecutiveLosses
		}

		balance *= 1 + trade.Return
		results.EquityCurve = append(results.EquityCurve, balance)
		results.Trades = append(results.Trades, trade)
		results.TotalTrades++
	}

	results.FinalBalance = balance
	CalculatePerformanceMetrics(results)

	e.logger.Info().
		Int("trades", results.TotalTrades).
		Float64("win_rate", results.WinRate).
		Float64("max_drawdown", results.MaxDrawdown).
		Msg("Backtest completed")

	return results, nil
}

// FormatResults renders a human readable report.
func FormatResults(results *Results) string {
	if results == nil {
		return "No backtest results available"
	}

	var b strings.Builder
	b.WriteString("=== BACKTEST RESULTS ===\n")
	fmt.Fprintf(&b, "Total predictions: %d\n", results.TotalTrades)
	fmt.Fprintf(&b, "Correct: %d, Wrong: %d\n", results.WinningTrades, results.LosingTrades)
	fmt.Fprintf(&b, "Win rate: %.2f%%\n", results.WinRate*100)
	fmt.Fprintf(&b, "Max consecutive wins: %d, losses: %d\n", results.MaxConsecutive.Wins, results.MaxConsecutive.Losses)
	fmt.Fprintf(&b, "Average gain: %.4f%%, average loss: %.4f%%\n", results.AverageGain*100, results.AverageLoss*100)
	fmt.Fprintf(&b, "Profit factor: %.2f\n", results.ProfitFactor)
	fmt.Fprintf(&b, "Sharpe ratio: %.2f\n", results.SharpeRatio)
	fmt.Fprintf(&b, "Max drawdown: %.2f%%\n", results.MaxDrawdown)
	fmt.Fprintf(&b, "Final balance: %.2f\n", results.FinalBalance)

	if len(results.SourceAccuracy) > 0 {
		b.WriteString("\nAccuracy by probability source:\n")
		for _, source := range sortedKeys(results.SourceAccuracy) {
			fmt.Fprintf(&b, "  %s: %.2f%%\n", source, results.SourceAccuracy[source]*100)
		}
	}

	if len(results.MonthlyReturns) > 0 {
		b.WriteString("\nMonthly returns:\n")
		for _, month := range sortedKeys(results.MonthlyReturns) {
			fmt.Fprintf(&b, "  %s: %.2f%%\n", month, results.MonthlyReturns[month])
		}
	}

	return b.String()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
