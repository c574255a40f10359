package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func newTestBenzingaClient(srv *httptest.Server, channels ...string) *BenzingaClient {
	client := &BenzingaClient{
		apiKey:     "test-token",
		channels:   channels,
		httpClient: srv.Client(),
	}
	client.httpClient.Transport = &rewriteTransport{base: srv.URL, inner: http.DefaultTransport}
	return client
}

func TestBenzingaFetch(t *testing.T) {
	var gotPath, gotTickers, gotChannels string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotTickers = r.URL.Query().Get("tickers")
		gotChannels = r.URL.Query().Get("channels")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{
			"id": 40123456,
			"created": "Mon, 05 Jan 2026 09:00:00 -0500",
			"title": "Acme Announces Record Quarter",
			"teaser": "Acme posted record revenue.",
			"body": "<p>Acme posted   record revenue.</p><p>CEO Jane Doe said demand was strong.</p>",
			"url": "https://www.benzinga.com/pressreleases/26/01/40123456/acme",
			"stocks": [{"name": "ACME"}]
		}]`))
	}))
	defer srv.Close()

	client := newTestBenzingaClient(srv, PressReleasesChannel)

	articles, err := client.Fetch(context.Background(), "acme", 5)

	assert.Equal(t, nil, err)
	assert.Equal(t, "/api/v2/news", gotPath)
	assert.Equal(t, "ACME", gotTickers)
	assert.Equal(t, PressReleasesChannel, gotChannels)
	assert.Equal(t, 1, len(articles))

	a := articles[0]
	assert.Equal(t, "40123456", a.ExternalID)
	assert.Equal(t, "Acme Announces Record Quarter", a.Headline)
	assert.Equal(t, "Acme posted record revenue.\n\nCEO Jane Doe said demand was strong.", a.Body)
	assert.Equal(t, []string{"ACME"}, a.Symbols)
	assert.Equal(t, "Benzinga", a.Source)
	assert.Equal(t, time.January, a.PublishedAt.Month())
}

func TestBenzingaRatings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2.1/calendar/ratings", r.URL.Path)
		assert.Equal(t, "ACME", r.URL.Query().Get("parameters[tickers]"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ratings": [{
			"date": "2026-01-05",
			"ticker": "ACME",
			"action_company": "Upgrades",
			"rating_current": "Buy",
			"rating_prior": "Hold",
			"pt_current": "210.00",
			"pt_prior": "180.00",
			"analyst_name": "Morgan Stanley"
		}]}`))
	}))
	defer srv.Close()

	ratings, err := newTestBenzingaClient(srv).Ratings(context.Background(), "ACME", 3)

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(ratings))
	assert.Equal(t, "Morgan Stanley", ratings[0].Firm)
	assert.Equal(t, "Upgrades", ratings[0].Action)
	assert.Equal(t, "Buy", ratings[0].RatingCurrent)
	assert.Equal(t, "210.00", ratings[0].PriceTarget)
}

func TestHTMLToText(t *testing.T) {
	assert.Equal(t, "", htmlToText("  "))
	assert.Equal(t, "one\n\ntwo", htmlToText("<ul><li>one</li><li> two </li></ul>"))
	assert.Equal(t, "plain words here", htmlToText("<div>plain  words\nhere</div>"))
}
