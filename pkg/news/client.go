package news

import (
	"context"
	"time"
)

type Article struct {
	ExternalID  string
	Headline    string
	Detail      string
	Body        string
	URL         string
	Source      string
	PublishedAt time.Time
	Symbols     []string
	Publisher   string
}

type Rating struct {
	Ticker        string
	Firm          string
	Action        string
	RatingPrior   string
	RatingCurrent string
	PriceTarget   string
	PriorTarget   string
	Date          string
}

type NewsClient interface {
	Fetch(ctx context.Context, ticker string, limit int) ([]Article, error)
	Name() string
}

type RatingsClient interface {
	Ratings(ctx context.Context, ticker string, limit int) ([]Rating, error)
}
