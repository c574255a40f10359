package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"storydesk/db"
	"storydesk/internal/config"
	"storydesk/internal/handler"
	"storydesk/internal/logger"
	"storydesk/internal/story"
	"storydesk/pkg/llm"
	"storydesk/pkg/market"
	"storydesk/pkg/news"
)

func main() {

	godotenv.Load()

	slog.SetDefault(logger.New("api"))

	cfg, err := config.LoadAPI()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	ctx := context.Background()

	llmClient, err := llm.New(ctx, cfg.LLMProvider, cfg.LLMKey)
	if err != nil {
		log.Fatalf("error creating LLM client: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = db.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			slog.Warn("redis unavailable, news cache disabled", "error", err)
		} else {
			defer redisClient.Close()
		}
	}

	cached := func(client news.NewsClient) news.NewsClient {
		if redisClient == nil {
			return client
		}
		return news.NewCachedClient(client, db.NewRedisCache(redisClient), cfg.TTL, cfg.NewsLimit)
	}

	deps := story.Deps{LLM: llmClient}

	var benzinga *news.BenzingaClient
	if cfg.BenzingaKey != "" {
		benzinga = news.NewBenzingaClient(cfg.BenzingaKey, news.PressReleasesChannel)
		deps.Sources = append(deps.Sources, cached(benzinga))
		deps.Ratings = benzinga
	}
	if cfg.PolygonKey != "" {
		limiter := market.NewLimiter(cfg.PolygonRPM)
		polygon := cached(news.NewPolygonClient(cfg.PolygonKey, limiter))
		deps.Sources = append(deps.Sources, polygon)
		deps.Related = polygon
		deps.Quotes = market.NewPolygonClient(cfg.PolygonKey, limiter)
	}
	if cfg.FinnhubKey != "" {
		deps.Sources = append(deps.Sources, cached(news.NewFinnHubClient(cfg.FinnhubKey)))
	}
	if cfg.AlphaVantageKey != "" {
		deps.Sources = append(deps.Sources, cached(news.NewAlphaVantageClient(cfg.AlphaVantageKey)))
	}
	if deps.Related == nil && benzinga != nil {
		deps.Related = cached(news.NewBenzingaClient(cfg.BenzingaKey))
	}
	if deps.Related == nil {
		deps.Related = deps.Sources[0]
	}

	var ping handler.PingFunc
	if redisClient != nil {
		ping = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	textHandler := handler.NewTextHandler()
	storyHandler := handler.NewStoryHandler(story.NewAssembler(deps), deps.Related)
	healthHandler := handler.NewHealthHandler(ping)

	r := gin.Default()

	slog.Info("AllowOrigins URL:", "urls", cfg.AllowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.AllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", handler.RequestIDHeader},
		ExposeHeaders: []string{handler.RequestIDHeader},
	}))
	r.Use(handler.RequestID())

	r.GET("/health", healthHandler.GetHealth)

	text := r.Group("/text")
	text.POST("/outlet", textHandler.Outlet)
	text.POST("/hyperlink/reported", textHandler.ReportedLink)
	text.POST("/hyperlink/lead", textHandler.LeadLink)
	text.POST("/hyperlink/middle", textHandler.MiddleLink)
	text.POST("/also-read", textHandler.AlsoRead)
	text.POST("/price-action", textHandler.PriceAction)
	text.POST("/preserve", textHandler.Preserve)

	r.POST("/stories", storyHandler.CreateStory)
	r.POST("/stories/rewrite", storyHandler.RewriteStory)
	r.GET("/news/:ticker", storyHandler.GetNews)

	err = r.Run(cfg.BindAddr)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
