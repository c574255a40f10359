package config

import (
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestLoadAPIDefaults(t *testing.T) {
	t.Setenv("POLYGON_API_KEY", "poly")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("FRONTEND_URL", "")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("POLYGON_RPM", "")
	t.Setenv("NEWS_LIMIT", "")
	t.Setenv("API_BIND_ADDR", "")

	c, err := LoadAPI()

	assert.Equal(t, nil, err)
	assert.Equal(t, ":8080", c.BindAddr)
	assert.Equal(t, "openai", c.LLMProvider)
	assert.Equal(t, "sk-test", c.LLMKey)
	assert.Equal(t, []string{"http://localhost:3000"}, c.AllowedOrigins)
	assert.Equal(t, 10*time.Minute, c.TTL)
	assert.Equal(t, 5, c.PolygonRPM)
	assert.Equal(t, 10, c.NewsLimit)
}

func TestLoadAPIOverrides(t *testing.T) {
	t.Setenv("BENZINGA_API_KEY", "bz")
	t.Setenv("LLM_PROVIDER", "Anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "ak")
	t.Setenv("FRONTEND_URL", "https://desk.example.com, https://staging.example.com")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("POLYGON_RPM", "not-a-number")

	c, err := LoadAPI()

	assert.Equal(t, nil, err)
	assert.Equal(t, "anthropic", c.LLMProvider)
	assert.Equal(t, "ak", c.LLMKey)
	assert.Equal(t, []string{"http://localhost:3000", "https://desk.example.com", "https://staging.example.com"}, c.AllowedOrigins)
	assert.Equal(t, 90*time.Second, c.TTL)
	assert.Equal(t, 5, c.PolygonRPM)
}

func TestLoadAPIValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown provider", env: map[string]string{"POLYGON_API_KEY": "p", "LLM_PROVIDER": "mystery"}},
		{name: "no sources", env: map[string]string{"POLYGON_API_KEY": "", "BENZINGA_API_KEY": "", "FINNHUB_API_KEY": "", "ALPHA_VANTAGE_API_KEY": ""}},
		{name: "bad news limit", env: map[string]string{"POLYGON_API_KEY": "p", "NEWS_LIMIT": "0"}},
		{name: "negative rpm", env: map[string]string{"POLYGON_API_KEY": "p", "POLYGON_RPM": "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadAPI()
			assert.NotEqual(t, nil, err)
		})
	}
}

func TestLoadFetcher(t *testing.T) {
	t.Setenv("FINNHUB_API_KEY", "fh")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("WATCHLIST", "aapl, msft,,nvda")
	t.Setenv("CACHE_TTL", "")

	c, err := LoadFetcher()

	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"AAPL", "MSFT", "NVDA"}, c.Watchlist)
	assert.Equal(t, 5*time.Second, c.PopTimeout)
}

func TestLoadFetcherRequiresRedis(t *testing.T) {
	t.Setenv("FINNHUB_API_KEY", "fh")
	t.Setenv("REDIS_URL", "")

	_, err := LoadFetcher()
	assert.NotEqual(t, nil, err)
}
