package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"storydesk/db"
	"storydesk/internal/config"
	"storydesk/internal/logger"
	"storydesk/pkg/market"
	"storydesk/pkg/news"
)

func main() {

	godotenv.Load()

	slog.SetDefault(logger.New("fetcher"))

	cfg, err := config.LoadFetcher()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	ctx := context.Background()

	redisClient, err := db.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer redisClient.Close()

	cache := db.NewRedisCache(redisClient)

	var sources []news.NewsClient
	if cfg.BenzingaKey != "" {
		sources = append(sources, news.NewBenzingaClient(cfg.BenzingaKey, news.PressReleasesChannel))
	}
	if cfg.PolygonKey != "" {
		sources = append(sources, news.NewPolygonClient(cfg.PolygonKey, market.NewLimiter(cfg.PolygonRPM)))
	}
	if cfg.FinnhubKey != "" {
		sources = append(sources, news.NewFinnHubClient(cfg.FinnhubKey))
	}
	if cfg.AlphaVantageKey != "" {
		sources = append(sources, news.NewAlphaVantageClient(cfg.AlphaVantageKey))
	}

	// The API reads the same entries with limits up to NEWS_LIMIT.
	var clients []news.NewsClient
	for _, source := range sources {
		clients = append(clients, news.NewCachedClient(source, cache, cfg.TTL, cfg.NewsLimit))
	}

	for _, ticker := range cfg.Watchlist {
		if err := db.PushToQueue(ctx, redisClient, db.WarmQueueKey, ticker); err != nil {
			slog.Error("error pushing to Redis queue", "ticker", ticker, "error", err)
		}
	}

	var warmed, errors int
	for {
		ticker, err := db.PopFromQueue(ctx, redisClient, db.WarmQueueKey, cfg.PopTimeout)
		if err == redis.Nil {
			break
		}
		if err != nil {
			slog.Error("error popping from Redis queue", "error", err)
			break
		}

		for _, client := range clients {
			articles, err := client.Fetch(ctx, ticker, cfg.NewsLimit)
			if err != nil {
				slog.Error("error fetching articles", "source", client.Name(), "ticker", ticker, "error", err)
				errors++
				continue
			}
			slog.Info("cache warmed", "source", client.Name(), "ticker", ticker, "articles", len(articles))
			warmed++
		}
	}

	slog.Info("fetch complete", "warmed", warmed, "errors", errors)
}
