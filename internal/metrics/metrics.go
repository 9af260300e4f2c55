package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Alias1177/StockPredictor/models"
)

// Recorder collects service metrics with Prometheus
type Recorder struct {
	predictions     *prometheus.CounterVec
	predictLatency  prometheus.Histogram
	httpRequests    *prometheus.CounterVec
	httpLatency     *prometheus.HistogramVec
	journalFailures prometheus.Counter
}

// New registers the service metrics on reg
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		predictions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "predictor_predictions_total",
				Help: "Total number of predictions served",
			},
			[]string{"direction", "data_source", "source"},
		),
		predictLatency: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "predictor_prediction_duration_seconds",
				Help:    "Duration of a prediction including the market data fetch",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
		),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route", "method", "status"},
		),
		httpLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		journalFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "predictor_journal_failures_total",
				Help: "Predictions that could not be written to the journal",
			},
		),
	}
}

// RecordPrediction records a served prediction and how long it took
func (r *Recorder) RecordPrediction(p *models.Prediction, seconds float64) {
	r.predictions.WithLabelValues(p.Direction, p.DataSource, p.Source).Inc()
	r.predictLatency.Observe(seconds)
}

// RecordHTTPRequest records one HTTP request by its route template
func (r *Recorder) RecordHTTPRequest(route, method, status string, seconds float64) {
	r.httpRequests.WithLabelValues(route, method, status).Inc()
	r.httpLatency.WithLabelValues(route, method).Observe(seconds)
}

// RecordJournalFailure records a failed journal write
func (r *Recorder) RecordJournalFailure() {
	r.journalFailures.Inc()
}
