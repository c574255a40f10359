package llm

import (
	"strings"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestBuildStoryPrompt(t *testing.T) {
	prompt := BuildStoryPrompt(StoryInput{
		Ticker:  "ACME",
		Company: "Acme Corp",
		Sources: []SourceArticle{
			{
				Headline:    "Acme Announces Record Quarter",
				Body:        strings.Repeat("x", maxSourceChars+10),
				Publisher:   "Benzinga",
				PublishedAt: time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC),
			},
		},
		Ratings:      []string{"Morgan Stanley upgrades to Buy"},
		PriceSummary: "up 1.20% at $45.10",
	})

	assert.Equal(t, true, strings.HasPrefix(prompt, "Ticker: ACME\nCompany: Acme Corp\n"))
	assert.Equal(t, true, strings.Contains(prompt, "[0] Headline: Acme Announces Record Quarter"))
	assert.Equal(t, true, strings.Contains(prompt, "Published: 2026-01-05 09:30"))
	assert.Equal(t, true, strings.Contains(prompt, strings.Repeat("x", maxSourceChars)+"..."))
	assert.Equal(t, true, strings.Contains(prompt, "- Morgan Stanley upgrades to Buy"))
	assert.Equal(t, true, strings.Contains(prompt, "Latest trading: up 1.20% at $45.10"))
}

func TestBuildRewritePromptDefaultsInstructions(t *testing.T) {
	prompt := BuildRewritePrompt("Story text.", "  ")
	assert.Equal(t, "Instructions: Tighten the copy and fix grammar without changing meaning.\n\nStory:\nStory text.", prompt)
}
