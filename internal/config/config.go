package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Sources holds the API keys for the upstream data providers. An empty key
// disables that provider.
type Sources struct {
	PolygonKey      string
	BenzingaKey     string
	FinnhubKey      string
	AlphaVantageKey string
	PolygonRPM      int
	NewsLimit       int
}

// Cache configures the optional Redis response cache.
type Cache struct {
	RedisURL string
	TTL      time.Duration
}

// API describes the HTTP service.
type API struct {
	Sources
	Cache
	BindAddr       string
	AllowedOrigins []string
	LLMProvider    string
	LLMKey         string
}

// Fetcher configures the cache warming worker.
type Fetcher struct {
	Sources
	Cache
	Watchlist  []string
	PopTimeout time.Duration
}

func LoadAPI() (*API, error) {
	c := &API{
		Sources:     loadSources(),
		Cache:       loadCache(),
		BindAddr:    getEnv("API_BIND_ADDR", ":8080"),
		LLMProvider: strings.ToLower(getEnv("LLM_PROVIDER", "openai")),
	}

	c.AllowedOrigins = []string{"http://localhost:3000"}
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		c.AllowedOrigins = append(c.AllowedOrigins, splitAndTrim(frontendURL)...)
	}

	switch c.LLMProvider {
	case "openai":
		c.LLMKey = os.Getenv("OPENAI_API_KEY")
	case "anthropic":
		c.LLMKey = os.Getenv("ANTHROPIC_API_KEY")
	case "gemini":
		c.LLMKey = os.Getenv("GEMINI_API_KEY")
	default:
		return nil, fmt.Errorf("LLM_PROVIDER must be one of openai, anthropic, gemini")
	}

	if err := c.Sources.validate(); err != nil {
		return nil, err
	}
	if err := c.Cache.validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func LoadFetcher() (*Fetcher, error) {
	c := &Fetcher{
		Sources:    loadSources(),
		Cache:      loadCache(),
		Watchlist:  splitAndTrim(strings.ToUpper(getEnv("WATCHLIST", ""))),
		PopTimeout: getDuration("FETCHER_POP_TIMEOUT", "5s"),
	}

	if c.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required for the fetcher")
	}
	if err := c.Sources.validate(); err != nil {
		return nil, err
	}
	if err := c.Cache.validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func loadSources() Sources {
	return Sources{
		PolygonKey:      os.Getenv("POLYGON_API_KEY"),
		BenzingaKey:     os.Getenv("BENZINGA_API_KEY"),
		FinnhubKey:      os.Getenv("FINNHUB_API_KEY"),
		AlphaVantageKey: os.Getenv("ALPHA_VANTAGE_API_KEY"),
		PolygonRPM:      getInt("POLYGON_RPM", 5),
		NewsLimit:       getInt("NEWS_LIMIT", 10),
	}
}

func loadCache() Cache {
	return Cache{
		RedisURL: os.Getenv("REDIS_URL"),
		TTL:      getDuration("CACHE_TTL", "10m"),
	}
}

func (s Sources) validate() error {
	if s.PolygonKey == "" && s.BenzingaKey == "" && s.FinnhubKey == "" && s.AlphaVantageKey == "" {
		return fmt.Errorf("no news source API keys configured")
	}
	if s.PolygonRPM < 0 {
		return fmt.Errorf("POLYGON_RPM cannot be negative")
	}
	if s.NewsLimit <= 0 {
		return fmt.Errorf("NEWS_LIMIT must be positive")
	}
	return nil
}

func (c Cache) validate() error {
	if c.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key, fallback string) time.Duration {
	d, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		fd, ferr := time.ParseDuration(fallback)
		if ferr != nil {
			panic(fmt.Sprintf("invalid fallback duration %q: %v", fallback, ferr))
		}
		return fd
	}
	return d
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
