package market

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
	"golang.org/x/time/rate"
)

type rewriteTransport struct {
	base  string
	inner http.RoundTripper
}

func (rt *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req2 := req.Clone(req.Context())
	parsed, _ := http.NewRequest("GET", rt.base, nil)
	req2.URL.Host = parsed.URL.Host
	req2.URL.Scheme = parsed.URL.Scheme
	return rt.inner.RoundTrip(req2)
}

func newTestClient(srv *httptest.Server) *PolygonClient {
	client := &PolygonClient{
		apiKey:     "test-key",
		httpClient: srv.Client(),
		limiter:    rate.NewLimiter(rate.Inf, 1),
		now:        func() time.Time { return time.Date(2026, 1, 6, 15, 0, 0, 0, time.UTC) },
	}
	client.httpClient.Transport = &rewriteTransport{base: srv.URL, inner: http.DefaultTransport}
	return client
}

func TestPolygonQuote(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results": [
			{"c": 180.0, "v": 1000, "t": 1767571200000},
			{"c": 200.0, "v": 1200, "t": 1767657600000},
			{"c": 210.0, "v": 1500, "t": 1767744000000}
		]}`))
	}))
	defer srv.Close()

	q, err := newTestClient(srv).Quote(context.Background(), "aapl")

	assert.Equal(t, nil, err)
	assert.Equal(t, "/v2/aggs/ticker/AAPL/range/1/day/2025-12-27/2026-01-06", gotPath)
	assert.Equal(t, "AAPL", q.Ticker)
	assert.Equal(t, 210.0, q.Close)
	assert.Equal(t, 200.0, q.PreviousClose)
	assert.Equal(t, 5.0, q.ChangePercent)
	assert.Equal(t, 1500.0, q.Volume)
}

func TestPolygonQuoteNotEnoughBars(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [{"c": 180.0, "t": 1767571200000}]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Quote(context.Background(), "AAPL")

	assert.NotEqual(t, nil, err)
	assert.Equal(t, true, strings.Contains(err.Error(), "need two daily bars"))
}

func TestPolygonQuoteErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Quote(context.Background(), "AAPL")

	assert.NotEqual(t, nil, err)
}

func TestPolygonQuoteEmptyTicker(t *testing.T) {
	_, err := NewPolygonClient("k", NewLimiter(5)).Quote(context.Background(), "  ")
	assert.NotEqual(t, nil, err)
}

func TestNewLimiter(t *testing.T) {
	assert.Equal(t, rate.Inf, NewLimiter(0).Limit())
	assert.Equal(t, rate.Every(12*time.Second), NewLimiter(5).Limit())
}

func TestPolygonClientsShareLimiter(t *testing.T) {
	limiter := NewLimiter(1)
	client := NewPolygonClient("k", limiter)

	assert.Equal(t, true, client.limiter == limiter)
	assert.Equal(t, true, limiter.Allow())
	assert.Equal(t, false, client.limiter.Allow())
}
