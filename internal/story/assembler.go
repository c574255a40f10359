package story

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"storydesk/internal/model"
	"storydesk/internal/storytext"
	"storydesk/pkg/llm"
	"storydesk/pkg/market"
	"storydesk/pkg/news"
)

var (
	ErrMissingTicker    = errors.New("ticker is required")
	ErrNoSourceMaterial = errors.New("no source material found for ticker")
)

const (
	defaultSourceLimit  = 3
	defaultRelatedLimit = 6
	ratingsLimit        = 3
)

type Deps struct {
	// Sources are tried in order; the first article found becomes the
	// primary source unless the request names one.
	Sources []news.NewsClient
	Related news.NewsClient
	Ratings news.RatingsClient
	Quotes  market.QuoteClient
	LLM     llm.Client
}

type Assembler struct {
	deps Deps
	now  func() time.Time
}

func NewAssembler(deps Deps) *Assembler {
	return &Assembler{deps: deps, now: time.Now}
}

// Generate drafts a story for req.Ticker and runs it through the hyperlink
// and section placement passes.
func (a *Assembler) Generate(ctx context.Context, req model.StoryRequest) (*model.Story, error) {
	ticker := strings.ToUpper(strings.TrimSpace(req.Ticker))
	if ticker == "" {
		return nil, ErrMissingTicker
	}
	if a.deps.LLM == nil {
		return nil, fmt.Errorf("no llm client configured")
	}

	sourceLimit := req.SourceLimit
	if sourceLimit <= 0 {
		sourceLimit = defaultSourceLimit
	}

	sources := a.fetchSources(ctx, ticker, sourceLimit)
	primary, ok := pickPrimary(sources, req.SourceURL)
	if !ok {
		return nil, ErrNoSourceMaterial
	}
	sourceURL := req.SourceURL
	if sourceURL == "" {
		sourceURL = primary.URL
	}

	input := llm.StoryInput{
		Ticker:  ticker,
		Company: req.Company,
		Angle:   req.Angle,
	}
	for _, s := range sources {
		body := s.Body
		if body == "" {
			body = s.Detail
		}
		input.Sources = append(input.Sources, llm.SourceArticle{
			Headline:    s.Headline,
			Body:        body,
			URL:         s.URL,
			Publisher:   s.Publisher,
			PublishedAt: s.PublishedAt,
		})
	}

	if req.WithRatings && a.deps.Ratings != nil {
		ratings, err := a.deps.Ratings.Ratings(ctx, ticker, ratingsLimit)
		if err != nil {
			slog.Warn("skipping analyst ratings", "ticker", ticker, "error", err)
		}
		for _, r := range ratings {
			input.Ratings = append(input.Ratings, RatingSummary(r))
		}
	}

	now := a.now()

	var priceAction string
	if req.WithPrice && a.deps.Quotes != nil {
		quote, err := a.deps.Quotes.Quote(ctx, ticker)
		if err != nil {
			slog.Warn("skipping price action", "ticker", ticker, "error", err)
		} else {
			priceAction = PriceActionLine(*quote, req.Company, now)
			input.PriceSummary = fmt.Sprintf("%s at $%.2f", direction(quote.ChangePercent), quote.Close)
		}
	}

	completion, err := a.deps.LLM.Complete(ctx, llm.StorySystemPrompt, llm.BuildStoryPrompt(input))
	if err != nil {
		return nil, fmt.Errorf("generate story: %w", err)
	}

	text := completion.Text
	lead := leadParagraph(text)

	outlet := storytext.OutletNameFromURL(sourceURL)
	text = storytext.InsertLinkOnReported(text, outlet, sourceURL)

	related := a.fetchRelated(ctx, ticker, req.RelatedLimit, sourceURL)

	var alsoRead, readNext string
	if len(related) > 0 {
		alsoRead = AlsoReadLine(related[0])
	}
	if len(related) > 1 {
		readNext = ReadNextLine(related[1])
	}
	if len(related) > 2 {
		text = storytext.InsertLeadHyperlink(text, related[2].URL)
	}
	if len(related) > 3 {
		text = storytext.InsertMiddleHyperlink(text, related[3].URL)
	}

	text = storytext.FixAlsoReadPlacement(text, alsoRead)
	text = storytext.EnsureProperPriceActionPlacement(text, priceAction, readNext)

	slog.Info("story generated", "ticker", ticker, "model", completion.ModelUsed, "links", storytext.CountLinks(text))

	return &model.Story{
		Ticker:        ticker,
		Text:          text,
		Lead:          lead,
		Outlet:        outlet,
		SourceURL:     sourceURL,
		PriceAction:   priceAction,
		AlsoRead:      alsoRead,
		ReadNext:      readNext,
		LinkCount:     storytext.CountLinks(text),
		ModelUsed:     completion.ModelUsed,
		PromptVersion: llm.PromptVersion,
		GeneratedAt:   now,
	}, nil
}

// Rewrite asks the model to revise existing and keeps the original when the
// revision lost hyperlinks. preserved reports that the revision was discarded.
func (a *Assembler) Rewrite(ctx context.Context, existing, instructions string) (result string, preserved bool, err error) {
	if a.deps.LLM == nil {
		return "", false, fmt.Errorf("no llm client configured")
	}

	completion, err := a.deps.LLM.Complete(ctx, llm.RewriteSystemPrompt, llm.BuildRewritePrompt(existing, instructions))
	if err != nil {
		return "", false, fmt.Errorf("rewrite story: %w", err)
	}

	candidate := completion.Text
	result = storytext.PreserveHyperlinks(existing, candidate)
	if result == existing && candidate != existing {
		slog.Warn("rewrite dropped hyperlinks, keeping original",
			"existing_links", storytext.CountLinks(existing),
			"candidate_links", storytext.CountLinks(candidate))
		return existing, true, nil
	}

	result = storytext.FixAlsoReadPlacement(result, "")
	result = storytext.EnsureProperPriceActionPlacement(result, "", "")
	return result, false, nil
}

func (a *Assembler) fetchSources(ctx context.Context, ticker string, limit int) []news.Article {
	var articles []news.Article
	for _, client := range a.deps.Sources {
		fetched, err := client.Fetch(ctx, ticker, limit)
		if err != nil {
			slog.Warn("source fetch failed", "source", client.Name(), "ticker", ticker, "error", err)
			continue
		}
		articles = append(articles, fetched...)
		if len(articles) >= limit {
			return articles[:limit]
		}
	}
	return articles
}

func (a *Assembler) fetchRelated(ctx context.Context, ticker string, limit int, exclude string) []news.Article {
	if a.deps.Related == nil {
		return nil
	}
	if limit <= 0 {
		limit = defaultRelatedLimit
	}

	fetched, err := a.deps.Related.Fetch(ctx, ticker, limit)
	if err != nil {
		slog.Warn("related fetch failed", "source", a.deps.Related.Name(), "ticker", ticker, "error", err)
		return nil
	}

	seen := map[string]bool{exclude: true}
	var related []news.Article
	for _, art := range fetched {
		if art.URL == "" || strings.TrimSpace(art.Headline) == "" || seen[art.URL] {
			continue
		}
		seen[art.URL] = true
		related = append(related, art)
	}
	return related
}

func pickPrimary(articles []news.Article, sourceURL string) (news.Article, bool) {
	if len(articles) == 0 {
		return news.Article{}, false
	}
	for _, art := range articles {
		if sourceURL != "" && art.URL == sourceURL {
			return art, true
		}
	}
	return articles[0], true
}

func leadParagraph(text string) string {
	lead, _, _ := strings.Cut(strings.TrimSpace(text), "\n\n")
	return strings.TrimSpace(lead)
}
