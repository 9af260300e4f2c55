package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestServer(t *testing.T, status int) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestDoRequestRetries(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		maxRetries int
		wantCalls  int32
		wantErr    bool
	}{
		{name: "success", status: http.StatusOK, maxRetries: 2, wantCalls: 1},
		{name: "single attempt by default", status: http.StatusBadGateway, maxRetries: 0, wantCalls: 1, wantErr: true},
		{name: "retries server errors", status: http.StatusServiceUnavailable, maxRetries: 2, wantCalls: 3, wantErr: true},
		{name: "client errors are permanent", status: http.StatusNotFound, maxRetries: 3, wantCalls: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, calls := newTestServer(t, tt.status)
			client := NewClient(ClientOptions{
				Timeout:           time.Second,
				RequestsPerMinute: 600,
				MaxRetries:        tt.maxRetries,
				RetryInterval:     time.Millisecond,
			})

			req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
			if err != nil {
				t.Fatal(err)
			}
			resp, err := client.DoRequest(context.Background(), req)
			if resp != nil {
				resp.Body.Close()
			}

			if (err != nil) != tt.wantErr {
				t.Fatalf("DoRequest() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got := atomic.LoadInt32(calls); got != tt.wantCalls {
				t.Errorf("server calls = %d, want %d", got, tt.wantCalls)
			}
			if tt.wantErr {
				var statusErr *HTTPStatusError
				if !errors.As(err, &statusErr) || statusErr.StatusCode != tt.status {
					t.Errorf("DoRequest() error = %v, want HTTPStatusError %d", err, tt.status)
				}
			}
		})
	}
}

func TestDoRequestCanceledContext(t *testing.T) {
	srv, calls := newTestServer(t, http.StatusOK)
	client := NewClient(ClientOptions{RequestsPerMinute: 1})

	// drain the single token so the next call has to wait
	client.Limiter.Allow()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
	if _, err := client.DoRequest(ctx, req); err == nil {
		t.Fatal("DoRequest() error = nil, want rate limiter wait error")
	}
	if got := atomic.LoadInt32(calls); got != 0 {
		t.Errorf("server calls = %d, want 0", got)
	}
}
