package storytext

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

const FallbackOutlet = "Primary Source"

var outletNames = map[string]string{
	"cnbc":          "CNBC",
	"reuters":       "Reuters",
	"bloomberg":     "Bloomberg",
	"wsj":           "The Wall Street Journal",
	"ft":            "Financial Times",
	"nytimes":       "The New York Times",
	"marketwatch":   "MarketWatch",
	"barrons":       "Barron's",
	"benzinga":      "Benzinga",
	"cnn":           "CNN",
	"bbc":           "BBC",
	"apnews":        "AP News",
	"businesswire":  "Business Wire",
	"prnewswire":    "PR Newswire",
	"globenewswire": "GlobeNewswire",
	"seekingalpha":  "Seeking Alpha",
	"techcrunch":    "TechCrunch",
	"theverge":      "The Verge",
	"foxbusiness":   "Fox Business",
	"investopedia":  "Investopedia",
}

// OutletNameFromURL returns a display name for the outlet that published raw.
// Unparseable input or a URL without a host yields FallbackOutlet.
func OutletNameFromURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Hostname() == "" {
		return FallbackOutlet
	}

	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")

	label, _, _ := strings.Cut(host, ".")
	if label == "" {
		return FallbackOutlet
	}

	if name, ok := outletNames[label]; ok {
		return name
	}

	first, size := utf8.DecodeRuneInString(label)
	return string(unicode.ToUpper(first)) + label[size:]
}
