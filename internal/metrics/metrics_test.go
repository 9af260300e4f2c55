package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Alias1177/StockPredictor/models"
)

func TestRecordPrediction(t *testing.T) {
	r := New(prometheus.NewRegistry())

	r.RecordPrediction(&models.Prediction{Direction: "UP", DataSource: "real", Source: "classifier"}, 0.2)
	r.RecordPrediction(&models.Prediction{Direction: "UP", DataSource: "real", Source: "classifier"}, 0.3)
	r.RecordPrediction(&models.Prediction{Direction: "DOWN", DataSource: "synthetic", Source: "heuristic"}, 0.1)

	if got := testutil.ToFloat64(r.predictions.WithLabelValues("UP", "real", "classifier")); got != 2 {
		t.Errorf("UP/real/classifier = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.predictions.WithLabelValues("DOWN", "synthetic", "heuristic")); got != 1 {
		t.Errorf("DOWN/synthetic/heuristic = %v, want 1", got)
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	r := New(prometheus.NewRegistry())
	r.RecordHTTPRequest("/predict-stock", "POST", "400", 0.001)
	r.RecordJournalFailure()

	if got := testutil.ToFloat64(r.httpRequests.WithLabelValues("/predict-stock", "POST", "400")); got != 1 {
		t.Errorf("http_requests_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.journalFailures); got != 1 {
		t.Errorf("journal failures = %v, want 1", got)
	}
}

func TestNewTwiceOnSeparateRegistries(t *testing.T) {
	New(prometheus.NewRegistry())
	New(prometheus.NewRegistry())
}
