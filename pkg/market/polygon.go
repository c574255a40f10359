package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	polygonBaseURL  = "https://api.polygon.io"
	quoteLookback   = 10 * 24 * time.Hour
	polygonDayStamp = "2006-01-02"
)

type Quote struct {
	Ticker        string
	Close         float64
	PreviousClose float64
	ChangePercent float64
	Volume        float64
	Day           time.Time
}

type QuoteClient interface {
	Quote(ctx context.Context, ticker string) (*Quote, error)
}

type PolygonClient struct {
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	now        func() time.Time
}

// NewLimiter allows requestsPerMinute calls per minute; zero or less means
// unlimited. Clients sharing an API key must share one limiter.
func NewLimiter(requestsPerMinute int) *rate.Limiter {
	limit := rate.Inf
	if requestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(requestsPerMinute))
	}
	return rate.NewLimiter(limit, 1)
}

// NewPolygonClient throttles calls with limiter. A nil limiter means unlimited.
func NewPolygonClient(apiKey string, limiter *rate.Limiter) *PolygonClient {
	if limiter == nil {
		limiter = NewLimiter(0)
	}
	return &PolygonClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    limiter,
		now:        time.Now,
	}
}

func (c *PolygonClient) Quote(ctx context.Context, ticker string) (*Quote, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, fmt.Errorf("polygon quote: empty ticker")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("polygon quote: %w", err)
	}

	to := c.now()
	from := to.Add(-quoteLookback)

	query := url.Values{}
	query.Set("adjusted", "true")
	query.Set("sort", "asc")
	query.Set("apiKey", c.apiKey)

	endpoint := fmt.Sprintf("%s/v2/aggs/ticker/%s/range/1/day/%s/%s?%s",
		polygonBaseURL, url.PathEscape(ticker), from.Format(polygonDayStamp), to.Format(polygonDayStamp), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("polygon quote: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("polygon quote: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("polygon quote: unexpected status %d: %s", resp.StatusCode, body)
	}

	var raw aggsResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("polygon quote decode: %w", err)
	}

	if len(raw.Results) < 2 {
		return nil, fmt.Errorf("polygon quote: need two daily bars for %s, got %d", ticker, len(raw.Results))
	}

	last := raw.Results[len(raw.Results)-1]
	prev := raw.Results[len(raw.Results)-2]

	q := &Quote{
		Ticker:        ticker,
		Close:         last.Close,
		PreviousClose: prev.Close,
		Volume:        last.Volume,
		Day:           time.UnixMilli(last.Timestamp).UTC(),
	}
	if prev.Close != 0 {
		q.ChangePercent = (last.Close - prev.Close) / prev.Close * 100
	}

	return q, nil
}

type aggsResponse struct {
	Results []aggBar `json:"results"`
}

type aggBar struct {
	Close     float64 `json:"c"`
	Volume    float64 `json:"v"`
	Timestamp int64   `json:"t"`
}
