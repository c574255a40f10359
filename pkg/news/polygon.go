package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

type PolygonClient struct {
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewPolygonClient waits on limiter before each call when it is non-nil.
func NewPolygonClient(apiKey string, limiter *rate.Limiter) *PolygonClient {
	return &PolygonClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    limiter,
	}
}

func (c *PolygonClient) Name() string {
	return "Polygon"
}

func (c *PolygonClient) Fetch(ctx context.Context, ticker string, limit int) ([]Article, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("polygon fetch: %w", err)
		}
	}

	query := url.Values{}
	query.Set("ticker", strings.ToUpper(ticker))
	query.Set("limit", fmt.Sprint(limit))
	query.Set("order", "desc")
	query.Set("sort", "published_utc")
	query.Set("apiKey", c.apiKey)

	var raw polygonResponse
	if err := getJSON(ctx, c.httpClient, "https://api.polygon.io/v2/reference/news?"+query.Encode(), &raw); err != nil {
		return nil, fmt.Errorf("polygon fetch: %w", err)
	}

	articles := make([]Article, 0, len(raw.Results))
	for _, item := range raw.Results {
		publishedAt, err := time.Parse(time.RFC3339, item.PublishedUTC)
		if err != nil {
			publishedAt = time.Time{}
		}

		articles = append(articles, Article{
			ExternalID:  item.ID,
			Headline:    item.Title,
			Detail:      item.Description,
			URL:         item.ArticleURL,
			Publisher:   item.Publisher.Name,
			PublishedAt: publishedAt,
			Symbols:     item.Tickers,
			Source:      c.Name(),
		})
	}

	return articles, nil
}

type polygonResponse struct {
	Results []polygonResult `json:"results"`
}

type polygonResult struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	ArticleURL   string           `json:"article_url"`
	PublishedUTC string           `json:"published_utc"`
	Tickers      []string         `json:"tickers"`
	Publisher    polygonPublisher `json:"publisher"`
}

type polygonPublisher struct {
	Name string `json:"name"`
}
