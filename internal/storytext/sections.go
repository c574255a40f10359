package storytext

import (
	"regexp"
	"strings"
)

// Section markers recognised at the start of a story line.
const (
	WhatToKnowMarker  = "What To Know:"
	AlsoReadMarker    = "Also Read:"
	PriceActionMarker = "Price Action:"
	ReadNextMarker    = "Read Next:"
)

// Leading markup tolerated before a marker: whitespace, tags and emphasis.
const linePrefix = `^(?:\s|<[^>]+>|\*|_)*`

var (
	priceActionLine = regexp.MustCompile(linePrefix + `[A-Z][A-Z0-9.\-]* ` + regexp.QuoteMeta(PriceActionMarker))
	readNextLine    = regexp.MustCompile(linePrefix + regexp.QuoteMeta(ReadNextMarker))
)

func firstLineContaining(lines []string, marker string) int {
	for i, line := range lines {
		if strings.Contains(line, marker) {
			return i
		}
	}
	return -1
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// removeLines drops every line for which match returns true and returns the
// removed lines in order. A removed line sitting between two blank lines takes
// one of them with it so paragraphs stay separated by a single blank line.
func removeLines(lines []string, match func(i int, line string) bool) ([]string, []string) {
	var kept, removed []string
	for i, line := range lines {
		if !match(i, line) {
			kept = append(kept, line)
			continue
		}
		removed = append(removed, line)
		next := i + 1
		for next < len(lines) && match(next, lines[next]) {
			next++
		}
		if len(kept) > 0 && isBlank(kept[len(kept)-1]) && next < len(lines) && isBlank(lines[next]) {
			kept = kept[:len(kept)-1]
		}
	}
	return kept, removed
}

func insertAt(lines []string, i int, line string) []string {
	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:i]...)
	out = append(out, line)
	return append(out, lines[i:]...)
}

// FixAlsoReadPlacement moves the "Also Read:" line so that it directly follows
// the "What To Know:" line, inserting alsoReadLine when the story has none.
// Duplicate Also Read lines are dropped; the first one wins. Stories without a
// What To Know line are returned unchanged.
func FixAlsoReadPlacement(text, alsoReadLine string) string {
	lines := strings.Split(text, "\n")

	anchorIdx := firstLineContaining(lines, WhatToKnowMarker)
	if anchorIdx < 0 {
		return text
	}

	lines, removed := removeLines(lines, func(i int, line string) bool {
		return i != anchorIdx && strings.Contains(line, AlsoReadMarker)
	})

	line := strings.TrimSpace(alsoReadLine)
	if len(removed) > 0 {
		line = removed[0]
	}
	if line == "" {
		return text
	}

	anchorIdx = firstLineContaining(lines, WhatToKnowMarker)
	return strings.Join(insertAt(lines, anchorIdx+1, line), "\n")
}

// EnsureProperPriceActionPlacement rebuilds the story tail so the price action
// line follows the body and the read next line closes the story. Existing
// price action and read next lines are removed first, along with any line
// equal to one of the arguments; an empty argument reuses the first line that
// was removed for that section.
func EnsureProperPriceActionPlacement(story, priceAction, readNext string) string {
	lines := strings.Split(story, "\n")

	priceAction = strings.TrimSpace(priceAction)
	readNext = strings.TrimSpace(readNext)

	var oldPrice, oldReadNext string
	lines, _ = removeLines(lines, func(_ int, line string) bool {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed != "" && (trimmed == priceAction || trimmed == readNext):
			return true
		case priceActionLine.MatchString(line):
			if oldPrice == "" {
				oldPrice = line
			}
			return true
		case readNextLine.MatchString(line):
			if oldReadNext == "" {
				oldReadNext = line
			}
			return true
		}
		return false
	})

	if priceAction == "" {
		priceAction = strings.TrimSpace(oldPrice)
	}
	if readNext == "" {
		readNext = strings.TrimSpace(oldReadNext)
	}

	for len(lines) > 0 && isBlank(lines[0]) {
		lines = lines[1:]
	}
	body := strings.TrimRight(strings.Join(lines, "\n"), " \t\r\n")

	parts := make([]string, 0, 3)
	if body != "" {
		parts = append(parts, body)
	}
	if priceAction != "" {
		parts = append(parts, priceAction)
	}
	if readNext != "" {
		parts = append(parts, readNext)
	}
	return strings.Join(parts, "\n\n")
}

// IsPriceActionLine reports whether line opens a "TICKER Price Action:" section.
func IsPriceActionLine(line string) bool {
	return priceActionLine.MatchString(line)
}

// IsReadNextLine reports whether line opens a "Read Next:" section.
func IsReadNextLine(line string) bool {
	return readNextLine.MatchString(line)
}
