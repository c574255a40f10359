package storytext

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const phraseWords = 3

var (
	wordPattern      = regexp.MustCompile(`\S+`)
	paragraphPattern = regexp.MustCompile(`\n[ \t]*\n`)

	// Markers that end the lead.
	leadStopMarkers = []string{WhatToKnowMarker, AlsoReadMarker, PriceActionMarker, ReadNextMarker}
	// Markers that open and close the middle of a story.
	middleStartMarkers = []string{AlsoReadMarker, WhatToKnowMarker}
	middleEndMarkers   = []string{PriceActionMarker, ReadNextMarker}
)

// InsertLeadHyperlink links the first clean three-word phrase of the lead to
// url. The lead is the text before the first section marker, or the first
// paragraph when the story has no markers. Best effort: when no phrase
// qualifies the text is returned unchanged.
func InsertLeadHyperlink(text, url string) string {
	start, end := leadRegion(text)
	return linkPhraseIn(text, url, start, end)
}

// InsertMiddleHyperlink links the first clean three-word phrase found between
// the Also Read / What To Know line and the Price Action / Read Next line.
// Without those markers it falls back to the inner paragraphs of the story.
func InsertMiddleHyperlink(text, url string) string {
	start, end := middleRegion(text)
	return linkPhraseIn(text, url, start, end)
}

func linkPhraseIn(text, url string, start, end int) string {
	url = strings.TrimSpace(url)
	if url == "" || hasHref(text, url) || start >= end {
		return text
	}

	region := text[start:end]
	spans := anchorSpans(text)
	words := wordPattern.FindAllStringIndex(region, -1)

	for i := 0; i+phraseWords <= len(words); i++ {
		first, last := words[i], words[i+phraseWords-1]
		from, to := start+first[0], start+last[1]

		if overlapsAny(from, to, spans) {
			continue
		}

		phraseText := text[from:to]
		if hasMarkup(phraseText) || strings.ContainsAny(phraseText, ":\n") {
			continue
		}

		if !wordBounded(phraseText) {
			continue
		}

		return text[:from] + anchor(url, phraseText) + text[to:]
	}

	return text
}

// wordBounded reports whether s starts and ends on a word character.
func wordBounded(s string) bool {
	first, _ := utf8.DecodeRuneInString(s)
	last, _ := utf8.DecodeLastRuneInString(s)
	return isWordRune(first) && isWordRune(last)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func hasMarkup(s string) bool {
	return strings.ContainsAny(s, "<>[](){}\"=*#|")
}

func leadRegion(text string) (int, int) {
	if idx := firstMarkerLineStart(text, leadStopMarkers); idx >= 0 {
		return 0, idx
	}
	if loc := paragraphPattern.FindStringIndex(text); loc != nil {
		return 0, loc[0]
	}
	return 0, len(text)
}

func middleRegion(text string) (int, int) {
	startLine := lastMarkerLineEnd(text, middleStartMarkers)
	endLine := firstMarkerLineStart(text, middleEndMarkers)
	if startLine >= 0 && endLine > startLine {
		return startLine, endLine
	}
	if startLine >= 0 {
		return startLine, len(text)
	}

	end := len(text)
	if endLine >= 0 {
		end = endLine
	}
	return middleFallback(text[:end])
}

// middleFallback skips the first and last paragraphs, or takes the second
// half of the words when there are too few paragraphs.
func middleFallback(text string) (int, int) {
	breaks := paragraphPattern.FindAllStringIndex(text, -1)
	switch {
	case len(breaks) >= 2:
		return breaks[0][1], breaks[len(breaks)-1][0]
	case len(breaks) == 1:
		return breaks[0][1], len(text)
	}

	words := wordPattern.FindAllStringIndex(text, -1)
	if len(words) < phraseWords*2 {
		return 0, 0
	}
	return words[len(words)/2][0], len(text)
}

// firstMarkerLineStart returns the offset of the start of the first line
// containing any of markers, or -1.
func firstMarkerLineStart(text string, markers []string) int {
	best := -1
	for _, m := range markers {
		idx := strings.Index(text, m)
		if idx < 0 {
			continue
		}
		lineStart := strings.LastIndex(text[:idx], "\n") + 1
		if best < 0 || lineStart < best {
			best = lineStart
		}
	}
	return best
}

// lastMarkerLineEnd looks up the first line for each marker and returns the
// offset just past the latest of those lines, or -1.
func lastMarkerLineEnd(text string, markers []string) int {
	best := -1
	for _, m := range markers {
		idx := strings.Index(text, m)
		if idx < 0 {
			continue
		}
		end := len(text)
		if nl := strings.Index(text[idx:], "\n"); nl >= 0 {
			end = idx + nl + 1
		}
		if end > best {
			best = end
		}
	}
	return best
}
