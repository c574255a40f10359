package story

import (
	"fmt"
	"html"
	"math"
	"strings"
	"time"

	"storydesk/internal/storytext"
	"storydesk/pkg/market"
	"storydesk/pkg/news"
)

var newYork = loadNewYork()

func loadNewYork() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return time.FixedZone("EST", -5*60*60)
	}
	return loc
}

// marketOpen reports whether now falls inside regular US trading hours.
func marketOpen(now time.Time) bool {
	local := now.In(newYork)
	if local.Weekday() == time.Saturday || local.Weekday() == time.Sunday {
		return false
	}
	minutes := local.Hour()*60 + local.Minute()
	return minutes >= 9*60+30 && minutes < 16*60
}

func direction(changePercent float64) string {
	rounded := math.Round(changePercent*100) / 100
	switch {
	case rounded > 0:
		return fmt.Sprintf("up %.2f%%", rounded)
	case rounded < 0:
		return fmt.Sprintf("down %.2f%%", -rounded)
	default:
		return "unchanged"
	}
}

// PriceActionLine renders the closing price action paragraph for q.
func PriceActionLine(q market.Quote, company string, now time.Time) string {
	name := strings.TrimSpace(company)
	if name == "" {
		name = q.Ticker
	}

	if marketOpen(now) {
		return fmt.Sprintf("%s %s %s shares were %s at $%.2f at the time of publication on %s, according to Benzinga Pro.",
			q.Ticker, storytext.PriceActionMarker, name, direction(q.ChangePercent), q.Close, now.In(newYork).Weekday())
	}

	day := q.Day
	if day.IsZero() {
		day = now
	}
	return fmt.Sprintf("%s %s %s shares closed %s at $%.2f on %s, according to Benzinga Pro.",
		q.Ticker, storytext.PriceActionMarker, name, direction(q.ChangePercent), q.Close, day.UTC().Weekday())
}

func linkLine(marker string, a news.Article) string {
	return fmt.Sprintf(`%s <a href="%s">%s</a>`, marker, html.EscapeString(a.URL), html.EscapeString(strings.TrimSpace(a.Headline)))
}

func AlsoReadLine(a news.Article) string {
	return linkLine(storytext.AlsoReadMarker, a)
}

func ReadNextLine(a news.Article) string {
	return linkLine(storytext.ReadNextMarker, a)
}

// RatingSummary renders an analyst action as a single prompt line.
func RatingSummary(r news.Rating) string {
	var sb strings.Builder
	sb.WriteString(r.Firm)
	if r.Action != "" {
		sb.WriteString(" " + strings.ToLower(r.Action))
	}
	switch {
	case r.RatingPrior != "" && r.RatingCurrent != "" && r.RatingPrior != r.RatingCurrent:
		sb.WriteString(fmt.Sprintf(" from %s to %s", r.RatingPrior, r.RatingCurrent))
	case r.RatingCurrent != "":
		sb.WriteString(fmt.Sprintf(" with a %s rating", r.RatingCurrent))
	}
	switch {
	case r.PriceTarget != "" && r.PriorTarget != "" && r.PriceTarget != r.PriorTarget:
		sb.WriteString(fmt.Sprintf(", price target $%s from $%s", r.PriceTarget, r.PriorTarget))
	case r.PriceTarget != "":
		sb.WriteString(fmt.Sprintf(", price target $%s", r.PriceTarget))
	}
	if r.Date != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", r.Date))
	}
	return sb.String()
}
