package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const benzingaBaseURL = "https://api.benzinga.com/api"

// PressReleasesChannel restricts Benzinga news to press releases.
const PressReleasesChannel = "Press Releases"

type BenzingaClient struct {
	apiKey     string
	channels   []string
	httpClient *http.Client
}

func NewBenzingaClient(apiKey string, channels ...string) *BenzingaClient {
	return &BenzingaClient{
		apiKey:     apiKey,
		channels:   channels,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *BenzingaClient) Name() string {
	return "Benzinga"
}

// CacheScope separates cached results per channel filter.
func (c *BenzingaClient) CacheScope() string {
	return strings.Join(c.channels, ",")
}

func (c *BenzingaClient) Fetch(ctx context.Context, ticker string, limit int) ([]Article, error) {
	query := url.Values{}
	query.Set("token", c.apiKey)
	query.Set("tickers", strings.ToUpper(ticker))
	query.Set("pageSize", fmt.Sprint(limit))
	query.Set("displayOutput", "full")
	query.Set("sort", "created:desc")
	if len(c.channels) > 0 {
		query.Set("channels", strings.Join(c.channels, ","))
	}

	var raw []benzingaNews
	if err := getJSON(ctx, c.httpClient, benzingaBaseURL+"/v2/news?"+query.Encode(), &raw); err != nil {
		return nil, fmt.Errorf("benzinga fetch: %w", err)
	}

	articles := make([]Article, 0, len(raw))
	for _, item := range raw {
		publishedAt, err := time.Parse(time.RFC1123Z, item.Created)
		if err != nil {
			publishedAt = time.Time{}
		}

		symbols := make([]string, 0, len(item.Stocks))
		for _, s := range item.Stocks {
			if s.Name != "" {
				symbols = append(symbols, s.Name)
			}
		}

		articles = append(articles, Article{
			ExternalID:  strconv.FormatInt(item.ID, 10),
			Headline:    item.Title,
			Detail:      item.Teaser,
			Body:        htmlToText(item.Body),
			URL:         item.URL,
			Publisher:   c.Name(),
			PublishedAt: publishedAt,
			Symbols:     symbols,
			Source:      c.Name(),
		})
	}

	return articles, nil
}

func (c *BenzingaClient) Ratings(ctx context.Context, ticker string, limit int) ([]Rating, error) {
	query := url.Values{}
	query.Set("token", c.apiKey)
	query.Set("parameters[tickers]", strings.ToUpper(ticker))
	query.Set("pagesize", fmt.Sprint(limit))

	var raw benzingaRatingsResponse
	if err := getJSON(ctx, c.httpClient, benzingaBaseURL+"/v2.1/calendar/ratings?"+query.Encode(), &raw); err != nil {
		return nil, fmt.Errorf("benzinga ratings: %w", err)
	}

	ratings := make([]Rating, 0, len(raw.Ratings))
	for _, r := range raw.Ratings {
		ratings = append(ratings, Rating{
			Ticker:        r.Ticker,
			Firm:          r.AnalystName,
			Action:        r.ActionCompany,
			RatingPrior:   r.RatingPrior,
			RatingCurrent: r.RatingCurrent,
			PriceTarget:   r.PTCurrent,
			PriorTarget:   r.PTPrior,
			Date:          r.Date,
		})
	}

	return ratings, nil
}

// htmlToText flattens a Benzinga HTML body into paragraphs separated by a
// blank line.
func htmlToText(body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return strings.TrimSpace(body)
	}

	var paragraphs []string
	doc.Find("p, li").Each(func(_ int, s *goquery.Selection) {
		if text := strings.Join(strings.Fields(s.Text()), " "); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	if len(paragraphs) == 0 {
		return strings.Join(strings.Fields(doc.Text()), " ")
	}
	return strings.Join(paragraphs, "\n\n")
}

type benzingaNews struct {
	ID      int64           `json:"id"`
	Created string          `json:"created"`
	Title   string          `json:"title"`
	Teaser  string          `json:"teaser"`
	Body    string          `json:"body"`
	URL     string          `json:"url"`
	Stocks  []benzingaStock `json:"stocks"`
}

type benzingaStock struct {
	Name string `json:"name"`
}

type benzingaRatingsResponse struct {
	Ratings []benzingaRating `json:"ratings"`
}

type benzingaRating struct {
	Date          string `json:"date"`
	Ticker        string `json:"ticker"`
	ActionCompany string `json:"action_company"`
	RatingCurrent string `json:"rating_current"`
	RatingPrior   string `json:"rating_prior"`
	PTCurrent     string `json:"pt_current"`
	PTPrior       string `json:"pt_prior"`
	AnalystName   string `json:"analyst_name"`
}
