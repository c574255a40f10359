package model

import "time"

type StoryRequest struct {
	Ticker       string
	Company      string
	Angle        string
	SourceURL    string
	WithRatings  bool
	WithPrice    bool
	SourceLimit  int
	RelatedLimit int
}

type Story struct {
	Ticker        string
	Text          string
	Lead          string
	Outlet        string
	SourceURL     string
	PriceAction   string
	AlsoRead      string
	ReadNext      string
	LinkCount     int
	ModelUsed     string
	PromptVersion string
	GeneratedAt   time.Time
}
