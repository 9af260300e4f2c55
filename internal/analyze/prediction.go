package analyze

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/Alias1177/StockPredictor/internal/calculate"
	"github.com/Alias1177/StockPredictor/internal/classifier"
	"github.com/Alias1177/StockPredictor/internal/synthetic"
	"github.com/Alias1177/StockPredictor/models"
)

// IndicatorKeys are the indicators reported with every prediction
var IndicatorKeys = []string{
	calculate.ColMA20, calculate.ColMA50, calculate.ColRSI, calculate.ColMACD, calculate.ColATR,
	calculate.ColVolChange, calculate.ColBBUpper, calculate.ColBBLower, calculate.ColStochK,
}

// Options holds options for creating a new Predictor
type Options struct {
	FetchTimeout  time.Duration
	SyntheticRows int
	SyntheticSeed int64
	Now           func() time.Time
}

// Predictor produces next-period direction predictions. It holds no per-request state
// and is safe for concurrent use.
type Predictor struct {
	client  models.CandleClient
	trainer classifier.Trainer
	opts    Options
	logger  zerolog.Logger
}

// NewPredictor creates a Predictor. A nil client always uses synthetic data; a nil
// trainer means no classifier is available and every prediction is heuristic.
func NewPredictor(client models.CandleClient, trainer classifier.Trainer, opts Options) *Predictor {
	if opts.FetchTimeout == 0 {
		opts.FetchTimeout = 10 * time.Second
	}
	if opts.SyntheticRows == 0 {
		opts.SyntheticRows = 200
	}
	if opts.SyntheticRows < calculate.MinRows {
		opts.SyntheticRows = calculate.MinRows
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Predictor{
		client:  client,
		trainer: trainer,
		opts:    opts,
		logger:  log.With().Str("component", "predictor").Logger(),
	}
}

// Predict fetches (or synthesises) a daily series for symbol, enriches it with
// indicators and scores the latest candle. Data and training failures fall back to
// synthetic data and the heuristic scorer respectively; Predict itself never fails.
func (p *Predictor) Predict(ctx context.Context, symbol string) *models.Prediction {
	logger := p.logger.With().Str("symbol", symbol).Logger()

	candles, dataSource := p.acquire(ctx, symbol, logger)
	prediction, rows := p.score(candles, dataSource, logger)

	logger.Info().
		Str("direction", prediction.Direction).
		Float64("confidence", prediction.Confidence).
		Str("data_source", dataSource).
		Str("source", prediction.Source).
		Int("rows", rows).
		Msg("Prediction generated")

	return prediction
}

// PredictSeries scores the latest candle of an already acquired series. The
// prediction is reported as real data.
func (p *Predictor) PredictSeries(candles []models.Candle) *models.Prediction {
	prediction, _ := p.score(candles, models.DataSourceReal, p.logger)
	return prediction
}

func (p *Predictor) score(candles []models.Candle, dataSource string, logger zerolog.Logger) (*models.Prediction, int) {
	frame := calculate.Enrich(candles)
	last := frame.Last()

	source := p.selectSource(frame, last, logger)
	direction, confidence := decide(source.ProbabilityUp(last))

	return &models.Prediction{
		Direction:  direction,
		Confidence: confidence,
		Indicators: lastIndicators(frame),
		DataSource: dataSource,
		Source:     source.Name(),
	}, frame.Len()
}

// acquire returns the real series when at least calculate.MinRows candles arrive
// within the fetch timeout, and a synthetic series otherwise.
func (p *Predictor) acquire(ctx context.Context, symbol string, logger zerolog.Logger) ([]models.Candle, string) {
	if p.client != nil {
		fetchCtx, cancel := context.WithTimeout(ctx, p.opts.FetchTimeout)
		candles, err := p.client.GetCandles(fetchCtx, symbol)
		cancel()

		switch {
		case err != nil:
			logger.Warn().Err(err).Msg("Market data unavailable, using synthetic series")
		case len(candles) < calculate.MinRows:
			logger.Warn().Int("rows", len(candles)).Int("min_rows", calculate.MinRows).
				Msg("Not enough market data, using synthetic series")
		default:
			return candles, models.DataSourceReal
		}
	}

	return synthetic.Generate(p.opts.SyntheticRows, p.opts.SyntheticSeed, p.opts.Now()), models.DataSourceSynthetic
}

// selectSource trains a fresh classifier on the labelled history and falls back to the
// heuristic when no trainer is available, training fails or the latest row is not
// fully defined.
func (p *Predictor) selectSource(frame *calculate.Frame, last calculate.FeatureRow, logger zerolog.Logger) ProbabilitySource {
	if p.trainer == nil {
		logger.Debug().Msg("Classifier trainer unavailable, using heuristic")
		return HeuristicScorer{}
	}
	if !last.Defined() {
		logger.Warn().Msg("Latest row has undefined features, using heuristic")
		return HeuristicScorer{}
	}

	features, labels := calculate.TrainingSet(frame)
	model, err := p.trainer.Train(features, labels)
	if err != nil {
		logger.Warn().Err(err).Int("rows", len(features)).Msg("Classifier training failed, using heuristic")
		return HeuristicScorer{}
	}

	return modelSource{model: model}
}

// decide maps a probability of an up move to a direction and a confidence in
// [0.5, 1] rounded to 4 decimals.
func decide(proba float64) (string, float64) {
	if math.IsNaN(proba) {
		proba = 0.5
	}

	direction := models.DirectionDown
	confidence := 1 - proba
	if proba >= 0.5 {
		direction = models.DirectionUp
		confidence = proba
	}

	return direction, decimal.NewFromFloat(confidence).Round(4).InexactFloat64()
}

// lastIndicators reports the latest indicator values. Values still undefined after
// enrichment are replaced with neutral readings so the payload stays encodable.
func lastIndicators(frame *calculate.Frame) map[string]float64 {
	row := frame.Len() - 1
	closePrice := orDefault(frame.Value(calculate.ColClose, row), 0)

	indicators := make(map[string]float64, len(IndicatorKeys))
	for _, key := range IndicatorKeys {
		indicators[key] = orDefault(frame.Value(key, row), neutralValue(key, closePrice))
	}
	return indicators
}

func neutralValue(key string, closePrice float64) float64 {
	switch key {
	case calculate.ColRSI, calculate.ColStochK:
		return 50
	case calculate.ColMA20, calculate.ColMA50, calculate.ColBBUpper, calculate.ColBBLower:
		return closePrice
	default:
		return 0
	}
}
