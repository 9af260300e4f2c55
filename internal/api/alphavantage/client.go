package alphavantage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpClient "github.com/Alias1177/StockPredictor/internal/platform/http"
	"github.com/Alias1177/StockPredictor/models"
)

// DefaultBaseURL is the public Alpha Vantage endpoint
const DefaultBaseURL = "https://www.alphavantage.co"

var (
	// ErrNoAPIKey is returned when the client has no API key configured
	ErrNoAPIKey = errors.New("alpha vantage api key not configured")
	// ErrEmptySeries is returned when the response holds no daily bars
	ErrEmptySeries = errors.New("empty data returned")
)

// Client is the Alpha Vantage daily time series client
type Client struct {
	apiKey     string
	baseURL    string
	outputSize string
	httpClient *httpClient.Client
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new Alpha Vantage client
type ClientOptions struct {
	APIKey            string
	BaseURL           string
	OutputSize        string // compact (100 bars) or full
	RequestTimeout    time.Duration
	RequestsPerMinute int
	MaxRetries        int
}

// NewClient creates a new Alpha Vantage API client
func NewClient(options ClientOptions) *Client {
	httpOpts := httpClient.ClientOptions{
		Timeout:           options.RequestTimeout,
		RequestsPerMinute: options.RequestsPerMinute,
		MaxRetries:        options.MaxRetries,
	}

	// Apply defaults if not set
	if options.BaseURL == "" {
		options.BaseURL = DefaultBaseURL
	}
	if options.OutputSize == "" {
		options.OutputSize = "compact"
	}

	return &Client{
		apiKey:     options.APIKey,
		baseURL:    strings.TrimRight(options.BaseURL, "/"),
		outputSize: options.OutputSize,
		httpClient: httpClient.NewClient(httpOpts),
		logger:     log.With().Str("component", "alphavantage_client").Logger(),
	}
}

// dailyResponse is the TIME_SERIES_DAILY payload. Failures come back with HTTP 200
// and one of the message fields set instead of the series.
type dailyResponse struct {
	TimeSeries   map[string]dailyBar `json:"Time Series (Daily)"`
	ErrorMessage string              `json:"Error Message"`
	Note         string              `json:"Note"`
	Information  string              `json:"Information"`
}

type dailyBar struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

// GetCandles fetches the daily series of symbol, oldest first
func (c *Client) GetCandles(ctx context.Context, symbol string) ([]models.Candle, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	query := url.Values{}
	query.Set("function", "TIME_SERIES_DAILY")
	query.Set("symbol", symbol)
	query.Set("outputsize", c.outputSize)
	query.Set("apikey", c.apiKey)

	c.logger.Debug().Str("symbol", symbol).Msg("Fetching daily candles")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/query?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.DoRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	candles, err := parseDaily(body)
	if err != nil {
		c.logger.Warn().Err(err).Str("symbol", symbol).Msg("Unusable Alpha Vantage response")
		return nil, err
	}

	c.logger.Debug().Int("count", len(candles)).Msg("Fetched candles")
	return candles, nil
}

func parseDaily(body []byte) ([]models.Candle, error) {
	var data dailyResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	switch {
	case data.ErrorMessage != "":
		return nil, fmt.Errorf("Alpha Vantage API error: %s", data.ErrorMessage)
	case data.Note != "":
		return nil, fmt.Errorf("Alpha Vantage API note: %s", data.Note)
	case data.Information != "":
		return nil, fmt.Errorf("Alpha Vantage API information: %s", data.Information)
	case len(data.TimeSeries) == 0:
		return nil, ErrEmptySeries
	}

	candles := make([]models.Candle, 0, len(data.TimeSeries))
	for day, bar := range data.TimeSeries {
		candle, err := bar.candle(day)
		if err != nil {
			return nil, err
		}
		candles = append(candles, candle)
	}

	// Sort candles by date (oldest first for proper calculations)
	sort.Slice(candles, func(i, j int) bool {
		return candles[i].Timestamp.Before(candles[j].Timestamp)
	})
	for i := 1; i < len(candles); i++ {
		if candles[i].Timestamp.Equal(candles[i-1].Timestamp) {
			return nil, fmt.Errorf("duplicate bar for %s", candles[i].Timestamp.Format(models.TradingDayLayout))
		}
	}

	return candles, nil
}

func (b dailyBar) candle(day string) (models.Candle, error) {
	ts, err := models.ParseTradingDay(day)
	if err != nil {
		return models.Candle{}, err
	}

	candle := models.Candle{Timestamp: ts}
	fields := []struct {
		name   string
		raw    string
		target *float64
	}{
		{name: "open", raw: b.Open, target: &candle.Open},
		{name: "high", raw: b.High, target: &candle.High},
		{name: "low", raw: b.Low, target: &candle.Low},
		{name: "close", raw: b.Close, target: &candle.Close},
		{name: "volume", raw: b.Volume, target: &candle.Volume},
	}

	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f.raw), 64)
		if err != nil {
			return models.Candle{}, fmt.Errorf("bar %s: parsing %s: %w", day, f.name, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return models.Candle{}, fmt.Errorf("bar %s: %s is not finite", day, f.name)
		}
		*f.target = v
	}
	if candle.Volume < 0 {
		return models.Candle{}, fmt.Errorf("bar %s: negative volume", day)
	}

	return candle, nil
}
