package news

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Cache stores encoded fetch results. Get reports a miss with ok == false.
type Cache interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// CachedClient serves repeated fetches for the same ticker from a Cache.
// Entries are keyed by source and ticker only and remember how many articles
// were requested, so a wide fetch serves every narrower one. Cache failures
// are logged and never fail the fetch.
type CachedClient struct {
	inner      NewsClient
	cache      Cache
	ttl        time.Duration
	fetchLimit int
}

// NewCachedClient fetches at least fetchLimit articles on a miss.
func NewCachedClient(inner NewsClient, cache Cache, ttl time.Duration, fetchLimit int) *CachedClient {
	return &CachedClient{inner: inner, cache: cache, ttl: ttl, fetchLimit: fetchLimit}
}

// cacheScoper is implemented by clients whose results depend on more than the
// ticker, such as a channel filter.
type cacheScoper interface {
	CacheScope() string
}

type cacheEntry struct {
	Limit    int       `json:"limit"`
	Articles []Article `json:"articles"`
}

func (c *CachedClient) Name() string {
	return c.inner.Name()
}

func (c *CachedClient) Fetch(ctx context.Context, ticker string, limit int) ([]Article, error) {
	var scope string
	if scoper, ok := c.inner.(cacheScoper); ok {
		scope = scoper.CacheScope()
	}
	key := cacheKey(c.inner.Name(), scope, ticker)

	cached, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("news cache read failed", "key", key, "error", err)
	}
	if ok {
		var entry cacheEntry
		switch err := json.Unmarshal([]byte(cached), &entry); {
		case err != nil:
			slog.Warn("discarding undecodable cache entry", "key", key)
		case entry.Limit >= limit:
			return firstN(entry.Articles, limit), nil
		default:
			slog.Debug("cache entry too narrow, refetching", "key", key, "cached", entry.Limit, "limit", limit)
		}
	}

	width := max(limit, c.fetchLimit)
	articles, err := c.inner.Fetch(ctx, ticker, width)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(cacheEntry{Limit: width, Articles: articles})
	if err != nil {
		slog.Warn("news cache encode failed", "key", key, "error", err)
		return firstN(articles, limit), nil
	}

	if err := c.cache.Set(ctx, key, string(encoded), c.ttl); err != nil {
		slog.Warn("news cache write failed", "key", key, "error", err)
	}

	return firstN(articles, limit), nil
}

func firstN(articles []Article, n int) []Article {
	if n > 0 && len(articles) > n {
		return articles[:n]
	}
	return articles
}

func cacheKey(source, scope, ticker string) string {
	source = strings.ToLower(source)
	if scope != "" {
		source += "/" + strings.ReplaceAll(strings.ToLower(scope), " ", "-")
	}
	return fmt.Sprintf("storydesk:news:%s:%s", source, strings.ToUpper(ticker))
}
