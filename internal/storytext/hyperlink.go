package storytext

import (
	"fmt"
	"regexp"
	"strings"
)

const linkPrefix = "<a href="

var anchorPattern = regexp.MustCompile(`(?is)<a\s[^>]*>.*?</a>`)

func anchor(url, label string) string {
	return fmt.Sprintf(`<a href="%s">%s</a>`, url, label)
}

func hasHref(text, url string) bool {
	return strings.Contains(text, `href="`+url+`"`)
}

// anchorSpans returns the byte ranges of every anchor element in text.
func anchorSpans(text string) [][]int {
	return anchorPattern.FindAllStringIndex(text, -1)
}

func overlapsAny(start, end int, spans [][]int) bool {
	for _, s := range spans {
		if start < s[1] && end > s[0] {
			return true
		}
	}
	return false
}

// InsertLinkOnReported links the word "reported" to url, preferring the
// occurrence that follows the outlet name.
func InsertLinkOnReported(text, outlet, url string) string {
	return InsertLinkOnKeyword(text, outlet, url, "reported")
}

// InsertLinkOnKeyword wraps keyword in an anchor pointing at url. In order of
// preference it links the keyword right after "<outlet> ", the first bare
// occurrence of the keyword, or prepends an attribution line. Text that already
// carries the url or a linked keyword is returned unchanged.
func InsertLinkOnKeyword(text, outlet, url, keyword string) string {
	url = strings.TrimSpace(url)
	keyword = strings.TrimSpace(keyword)
	if url == "" || keyword == "" || hasHref(text, url) {
		return text
	}

	quoted := regexp.QuoteMeta(keyword)

	linked := regexp.MustCompile(`(?is)<a\s[^>]*>\s*` + quoted + `\s*</a>`)
	if linked.MatchString(text) {
		return text
	}

	spans := anchorSpans(text)

	if outlet = strings.TrimSpace(outlet); outlet != "" {
		afterOutlet := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(outlet) + `\s+(` + quoted + `)\b`)
		for _, loc := range afterOutlet.FindAllStringSubmatchIndex(text, -1) {
			if overlapsAny(loc[0], loc[1], spans) {
				continue
			}
			return text[:loc[2]] + anchor(url, text[loc[2]:loc[3]]) + text[loc[3]:]
		}
	}

	bare := regexp.MustCompile(`(?i)\b` + quoted + `\b`)
	for _, loc := range bare.FindAllStringIndex(text, -1) {
		if overlapsAny(loc[0], loc[1], spans) {
			continue
		}
		return text[:loc[0]] + anchor(url, text[loc[0]:loc[1]]) + text[loc[1]:]
	}

	if outlet == "" {
		outlet = FallbackOutlet
	}
	attribution := fmt.Sprintf("%s %s the news.", outlet, anchor(url, keyword))
	if strings.TrimSpace(text) == "" {
		return attribution
	}
	return attribution + "\n\n" + text
}
