package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/StockPredictor/internal/metrics"
	"github.com/Alias1177/StockPredictor/models"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "ml"

// Predictor produces a prediction for a ticker. It never fails.
type Predictor interface {
	Predict(ctx context.Context, symbol string) *models.Prediction
}

// Journal stores served predictions.
type Journal interface {
	SavePrediction(ctx context.Context, symbol string, p *models.Prediction) error
}

// PredictRequest is the body of POST /predict-stock.
type PredictRequest struct {
	Symbol string `json:"symbol" validate:"required,ticker"`
}

// Normalize trims and uppercases the symbol.
func (r *PredictRequest) Normalize() {
	r.Symbol = strings.ToUpper(strings.TrimSpace(r.Symbol))
}

// PredictionHandler serves the prediction and health routes.
type PredictionHandler struct {
	predictor Predictor
	journal   Journal
	recorder  *metrics.Recorder
	now       func() time.Time
	logger    zerolog.Logger
}

// HandlerOption configures PredictionHandler.
type HandlerOption func(*PredictionHandler)

// WithJournal writes every served prediction to j.
func WithJournal(j Journal) HandlerOption {
	return func(h *PredictionHandler) {
		h.journal = j
	}
}

// WithRecorder records prediction metrics on r.
func WithRecorder(r *metrics.Recorder) HandlerOption {
	return func(h *PredictionHandler) {
		h.recorder = r
	}
}

// WithClock overrides the health endpoint clock.
func WithClock(now func() time.Time) HandlerOption {
	return func(h *PredictionHandler) {
		h.now = now
	}
}

// NewPredictionHandler creates the HTTP handler for predictor.
func NewPredictionHandler(predictor Predictor, opts ...HandlerOption) *PredictionHandler {
	h := &PredictionHandler{
		predictor: predictor,
		now:       time.Now,
		logger:    log.With().Str("component", "prediction_handler").Logger(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes registers the service routes.
func (h *PredictionHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/predict-stock", h.PredictStock)
	e.GET("/health", h.Health)
}

// PredictStock handles POST /predict-stock.
func (h *PredictionHandler) PredictStock(c echo.Context) error {
	var req PredictRequest
	if errs := ReadAndValidateRequest(c, &req); errs != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Errors: errs})
	}

	ctx := c.Request().Context()
	start := time.Now()
	prediction := h.predictor.Predict(ctx, req.Symbol)
	elapsed := time.Since(start)

	if h.recorder != nil {
		h.recorder.RecordPrediction(prediction, elapsed.Seconds())
	}

	h.logger.Info().
		Str("symbol", req.Symbol).
		Str("direction", prediction.Direction).
		Float64("confidence", prediction.Confidence).
		Str("data_source", prediction.DataSource).
		Str("source", prediction.Source).
		Dur("elapsed", elapsed).
		Msg("Prediction served")

	if h.journal != nil {
		if err := h.journal.SavePrediction(ctx, req.Symbol, prediction); err != nil {
			h.logger.Error().Err(err).Str("symbol", req.Symbol).Msg("Failed to journal prediction")
			if h.recorder != nil {
				h.recorder.RecordJournalFailure()
			}
		}
	}

	return c.JSON(http.StatusOK, prediction)
}

// Health handles GET /health.
func (h *PredictionHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, models.Health{
		OK:      true,
		Service: ServiceName,
		Time:    h.now().UTC(),
	})
}
