package storytext

import "strings"

// CountLinks counts anchor openings of the form `<a href=` in text.
func CountLinks(text string) int {
	return strings.Count(text, linkPrefix)
}

// PreserveHyperlinks keeps existing when candidate dropped any links,
// otherwise it returns candidate. Link targets are not compared.
func PreserveHyperlinks(existing, candidate string) string {
	if CountLinks(candidate) < CountLinks(existing) {
		return existing
	}
	return candidate
}
