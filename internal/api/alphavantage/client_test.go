package alphavantage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const dailyPayload = `{
  "Meta Data": {"2. Symbol": "IBM"},
  "Time Series (Daily)": {
    "2024-01-04": {"1. open": "161.00", "2. high": "161.50", "3. low": "159.00", "4. close": "160.10", "5. volume": "4000000"},
    "2024-01-02": {"1. open": "162.00", "2. high": "163.00", "3. low": "160.50", "4. close": "162.50", "5. volume": "3500000"},
    "2024-01-03": {"1. open": "162.50", "2. high": "162.80", "3. low": "160.00", "4. close": "161.00", "5. volume": "3800000"}
  }
}`

func newTestClient(t *testing.T, status int, body string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return NewClient(ClientOptions{
		APIKey:            "demo",
		BaseURL:           srv.URL,
		RequestTimeout:    time.Second,
		RequestsPerMinute: 600,
	})
}

func TestGetCandles(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		if r.URL.Path != "/query" {
			t.Errorf("path = %s, want /query", r.URL.Path)
		}
		_, _ = w.Write([]byte(dailyPayload))
	}))
	defer srv.Close()

	client := NewClient(ClientOptions{APIKey: "demo", BaseURL: srv.URL + "/", RequestsPerMinute: 600})
	candles, err := client.GetCandles(context.Background(), "IBM")
	if err != nil {
		t.Fatalf("GetCandles() error = %v", err)
	}

	if len(candles) != 3 {
		t.Fatalf("len = %d, want 3", len(candles))
	}
	wantCloses := []float64{162.50, 161.00, 160.10}
	for i, c := range candles {
		if c.Close != wantCloses[i] {
			t.Errorf("close[%d] = %v, want %v", i, c.Close, wantCloses[i])
		}
	}
	if first := candles[0]; first.Timestamp != time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC) ||
		first.Open != 162 || first.High != 163 || first.Low != 160.5 || first.Volume != 3500000 {
		t.Errorf("first candle = %+v", first)
	}

	for _, part := range []string{"function=TIME_SERIES_DAILY", "symbol=IBM", "apikey=demo", "outputsize=compact"} {
		if !strings.Contains(query, part) {
			t.Errorf("query %q missing %q", query, part)
		}
	}
}

func TestGetCandlesUnavailable(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: ""},
		{name: "not json", status: http.StatusOK, body: "<html>"},
		{name: "error message", status: http.StatusOK, body: `{"Error Message": "Invalid API call"}`},
		{name: "rate limit note", status: http.StatusOK, body: `{"Note": "Thank you for using Alpha Vantage!"}`},
		{name: "information", status: http.StatusOK, body: `{"Information": "premium endpoint"}`},
		{name: "empty series", status: http.StatusOK, body: `{"Time Series (Daily)": {}}`},
		{name: "bad number", status: http.StatusOK, body: `{"Time Series (Daily)": {"2024-01-02": {"1. open": "x", "2. high": "1", "3. low": "1", "4. close": "1", "5. volume": "1"}}}`},
		{name: "nan value", status: http.StatusOK, body: `{"Time Series (Daily)": {"2024-01-02": {"1. open": "NaN", "2. high": "1", "3. low": "1", "4. close": "1", "5. volume": "1"}}}`},
		{name: "bad date", status: http.StatusOK, body: `{"Time Series (Daily)": {"yesterday": {"1. open": "1", "2. high": "1", "3. low": "1", "4. close": "1", "5. volume": "1"}}}`},
		{name: "negative volume", status: http.StatusOK, body: `{"Time Series (Daily)": {"2024-01-02": {"1. open": "1", "2. high": "1", "3. low": "1", "4. close": "1", "5. volume": "-5"}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.status, tt.body)
			candles, err := client.GetCandles(context.Background(), "IBM")
			if err == nil {
				t.Fatalf("GetCandles() = %d candles, want error", len(candles))
			}
			if candles != nil {
				t.Errorf("GetCandles() returned candles alongside error")
			}
		})
	}
}

func TestGetCandlesNoAPIKey(t *testing.T) {
	client := NewClient(ClientOptions{})
	if _, err := client.GetCandles(context.Background(), "IBM"); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("GetCandles() error = %v, want ErrNoAPIKey", err)
	}
}

func TestParseDailyEmpty(t *testing.T) {
	if _, err := parseDaily([]byte(`{}`)); !errors.Is(err, ErrEmptySeries) {
		t.Errorf("parseDaily() error = %v, want ErrEmptySeries", err)
	}
}
