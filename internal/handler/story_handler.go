package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"storydesk/internal/model"
	"storydesk/internal/story"
	"storydesk/internal/storytext"
	"storydesk/pkg/news"
)

type StoryService interface {
	Generate(ctx context.Context, req model.StoryRequest) (*model.Story, error)
	Rewrite(ctx context.Context, existing, instructions string) (string, bool, error)
}

type StoryHandler struct {
	stories StoryService
	news    news.NewsClient
}

func NewStoryHandler(stories StoryService, newsClient news.NewsClient) *StoryHandler {
	return &StoryHandler{stories: stories, news: newsClient}
}

func (h *StoryHandler) CreateStory(c *gin.Context) {
	var req StoryRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.stories.Generate(c.Request.Context(), req.toModel())
	switch {
	case errors.Is(err, story.ErrMissingTicker):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, story.ErrNoSourceMaterial):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case err != nil:
		slog.Error("error generating story", "ticker", req.Ticker, "error", err, "request_id", c.GetString(requestIDKey))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Story generation failed"})
		return
	}

	c.JSON(http.StatusOK, toStoryResponse(s))
}

func (h *StoryHandler) RewriteStory(c *gin.Context) {
	var req RewriteRequest
	if !bindJSON(c, &req) {
		return
	}

	result, preserved, err := h.stories.Rewrite(c.Request.Context(), req.Story, req.Instructions)
	if err != nil {
		slog.Error("error rewriting story", "error", err, "request_id", c.GetString(requestIDKey))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Story rewrite failed"})
		return
	}

	c.JSON(http.StatusOK, RewriteResponse{Story: result, Preserved: preserved})
}

func (h *StoryHandler) GetNews(c *gin.Context) {
	ticker := strings.ToUpper(strings.TrimSpace(c.Param("ticker")))
	if ticker == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ticker is required"})
		return
	}
	if h.news == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No news source configured"})
		return
	}

	limit := getQueryLimit(c)

	articles, err := h.news.Fetch(c.Request.Context(), ticker, limit)
	if err != nil {
		slog.Error("error fetching news", "source", h.news.Name(), "ticker", ticker, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "News source error"})
		return
	}

	res := NewsResponse{Ticker: ticker, Limit: limit, Articles: []ArticleResponse{}}
	for _, a := range articles {
		res.Articles = append(res.Articles, toArticleResponse(a, storytext.OutletNameFromURL(a.URL)))
	}

	c.JSON(http.StatusOK, res)
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", raw, "error", err)
		return defaultValue
	}
	return parsed
}

func getQueryLimit(c *gin.Context) int {
	const (
		defaultLimit = 10
		maxLimit     = 50
	)

	limit := getQueryInt("limit", defaultLimit, c)
	if limit < 1 {
		slog.Warn("invalid query parameter, using default", "param", "limit", "value", limit, "default", defaultLimit)
		return defaultLimit
	}
	if limit > maxLimit {
		slog.Warn("query parameter exceeds max, clamping", "param", "limit", "value", limit, "max", maxLimit)
		return maxLimit
	}
	return limit
}
