package handler

import (
	"time"

	"storydesk/internal/model"
	"storydesk/pkg/news"
)

type OutletRequest struct {
	URL string `json:"url" binding:"required"`
}

type OutletResponse struct {
	Outlet string `json:"outlet"`
}

type ReportedLinkRequest struct {
	Text   string `json:"text" binding:"required"`
	URL    string `json:"url" binding:"required"`
	Outlet string `json:"outlet"`
}

type PhraseLinkRequest struct {
	Text string `json:"text" binding:"required"`
	URL  string `json:"url" binding:"required"`
}

type AlsoReadRequest struct {
	Text     string `json:"text" binding:"required"`
	AlsoRead string `json:"also_read"`
}

type TextResponse struct {
	Text string `json:"text"`
}

type PriceActionRequest struct {
	Story       string `json:"story" binding:"required"`
	PriceAction string `json:"price_action"`
	ReadNext    string `json:"read_next"`
}

type PreserveRequest struct {
	Existing  string `json:"existing" binding:"required"`
	Candidate string `json:"candidate"`
}

type PreserveResponse struct {
	Story          string `json:"story"`
	Preserved      bool   `json:"preserved"`
	ExistingLinks  int    `json:"existing_links"`
	CandidateLinks int    `json:"candidate_links"`
}

type StoryRequest struct {
	Ticker       string `json:"ticker" binding:"required"`
	Company      string `json:"company"`
	Angle        string `json:"angle"`
	SourceURL    string `json:"source_url"`
	WithRatings  bool   `json:"with_ratings"`
	WithPrice    bool   `json:"with_price"`
	SourceLimit  int    `json:"source_limit"`
	RelatedLimit int    `json:"related_limit"`
}

func (r StoryRequest) toModel() model.StoryRequest {
	return model.StoryRequest{
		Ticker:       r.Ticker,
		Company:      r.Company,
		Angle:        r.Angle,
		SourceURL:    r.SourceURL,
		WithRatings:  r.WithRatings,
		WithPrice:    r.WithPrice,
		SourceLimit:  r.SourceLimit,
		RelatedLimit: r.RelatedLimit,
	}
}

type StoryResponse struct {
	Ticker        string `json:"ticker"`
	Story         string `json:"story"`
	Lead          string `json:"lead"`
	Outlet        string `json:"outlet"`
	SourceURL     string `json:"source_url"`
	PriceAction   string `json:"price_action,omitempty"`
	AlsoRead      string `json:"also_read,omitempty"`
	ReadNext      string `json:"read_next,omitempty"`
	LinkCount     int    `json:"link_count"`
	ModelUsed     string `json:"model_used"`
	PromptVersion string `json:"prompt_version"`
	GeneratedAt   string `json:"generated_at"`
}

func toStoryResponse(s *model.Story) StoryResponse {
	return StoryResponse{
		Ticker:        s.Ticker,
		Story:         s.Text,
		Lead:          s.Lead,
		Outlet:        s.Outlet,
		SourceURL:     s.SourceURL,
		PriceAction:   s.PriceAction,
		AlsoRead:      s.AlsoRead,
		ReadNext:      s.ReadNext,
		LinkCount:     s.LinkCount,
		ModelUsed:     s.ModelUsed,
		PromptVersion: s.PromptVersion,
		GeneratedAt:   s.GeneratedAt.Format(time.RFC3339),
	}
}

type RewriteRequest struct {
	Story        string `json:"story" binding:"required"`
	Instructions string `json:"instructions"`
}

type RewriteResponse struct {
	Story     string `json:"story"`
	Preserved bool   `json:"preserved"`
}

type ArticleResponse struct {
	Headline    string   `json:"headline"`
	Detail      string   `json:"detail"`
	Publisher   string   `json:"publisher"`
	PublishedAt string   `json:"published_at"`
	URL         string   `json:"url"`
	Source      string   `json:"source"`
	Outlet      string   `json:"outlet"`
	Symbols     []string `json:"symbols"`
}

type NewsResponse struct {
	Ticker   string            `json:"ticker"`
	Articles []ArticleResponse `json:"articles"`
	Limit    int               `json:"limit"`
}

func toArticleResponse(a news.Article, outlet string) ArticleResponse {
	return ArticleResponse{
		Headline:    a.Headline,
		Detail:      a.Detail,
		Publisher:   a.Publisher,
		PublishedAt: a.PublishedAt.Format(time.RFC3339),
		URL:         a.URL,
		Source:      a.Source,
		Outlet:      outlet,
		Symbols:     a.Symbols,
	}
}
