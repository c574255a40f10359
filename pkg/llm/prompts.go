package llm

import (
	"fmt"
	"strings"
	"time"
)

const PromptVersion = "v1"

const StorySystemPrompt = `You are a financial journalist writing for a markets news desk. Write a concise news story about the given stock ticker from the source material provided.

Rules:
1. Open with a two or three sentence lead that states what happened and why it matters to investors
2. After the lead, add a line that starts with "What To Know:" followed by the single most important fact
3. Follow with two to four short paragraphs covering details, management commentary and analyst views
4. Keep all facts: numbers, names, dates, percentages. Do not invent figures
5. Use a neutral tone. No hype words, no predictions stated as facts
6. Write plain paragraphs separated by a blank line. Do not use headings or bullet lists
7. Do not write a price action section, a "Read Next" line or an "Also Read" line. They are added later
8. Keep any HTML anchor tags from the source material exactly as given`

const RewriteSystemPrompt = `You are an editor on a markets news desk. Revise the story according to the editor's instructions.

Rules:
1. Keep every HTML anchor tag (<a href="...">...</a>) exactly as written, including its link text
2. Keep lines starting with "What To Know:", "Also Read:", "Price Action:" or "Read Next:" unchanged
3. Keep all facts: numbers, names, dates, percentages
4. Return only the revised story, no commentary`

type SourceArticle struct {
	Headline    string
	Body        string
	URL         string
	Publisher   string
	PublishedAt time.Time
}

type StoryInput struct {
	Ticker       string
	Company      string
	Angle        string
	Sources      []SourceArticle
	Ratings      []string
	PriceSummary string
}

const maxSourceChars = 6000

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

func BuildStoryPrompt(input StoryInput) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Ticker: %s\n", input.Ticker))
	if input.Company != "" {
		sb.WriteString(fmt.Sprintf("Company: %s\n", input.Company))
	}
	if input.Angle != "" {
		sb.WriteString(fmt.Sprintf("Angle: %s\n", input.Angle))
	}
	sb.WriteString("\n")

	for i, a := range input.Sources {
		sb.WriteString(fmt.Sprintf("[%d] Headline: %s\n", i, a.Headline))
		sb.WriteString(fmt.Sprintf("    Publisher: %s\n", a.Publisher))
		if !a.PublishedAt.IsZero() {
			sb.WriteString(fmt.Sprintf("    Published: %s\n", a.PublishedAt.Format("2006-01-02 15:04")))
		}
		sb.WriteString(fmt.Sprintf("    Text: %s\n\n", truncate(a.Body, maxSourceChars)))
	}

	if len(input.Ratings) > 0 {
		sb.WriteString("Recent analyst ratings:\n")
		for _, r := range input.Ratings {
			sb.WriteString(fmt.Sprintf("- %s\n", r))
		}
		sb.WriteString("\n")
	}

	if input.PriceSummary != "" {
		sb.WriteString(fmt.Sprintf("Latest trading: %s\n", input.PriceSummary))
	}

	return sb.String()
}

func BuildRewritePrompt(story, instructions string) string {
	if strings.TrimSpace(instructions) == "" {
		instructions = "Tighten the copy and fix grammar without changing meaning."
	}
	return fmt.Sprintf("Instructions: %s\n\nStory:\n%s", instructions, story)
}
