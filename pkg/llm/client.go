package llm

import (
	"context"
	"fmt"
	"strings"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

type Completion struct {
	Text      string
	ModelUsed string
}

type Client interface {
	Complete(ctx context.Context, system, user string) (*Completion, error)
}

// New builds the client for provider. An empty provider selects OpenAI.
func New(ctx context.Context, provider, apiKey string) (Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("missing api key for llm provider %q", provider)
	}

	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", ProviderOpenAI:
		return NewOpenAIClient(apiKey), nil
	case ProviderAnthropic:
		return NewAnthropicClient(apiKey), nil
	case ProviderGemini:
		return NewGeminiClient(ctx, apiKey)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", provider)
	}
}

// cleanTextResponse strips code fences and surrounding whitespace that models
// tend to wrap around generated copy.
func cleanTextResponse(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	content = strings.TrimPrefix(content, "```")
	if nl := strings.Index(content, "\n"); nl >= 0 && !strings.Contains(content[:nl], " ") {
		// drop the language tag, e.g. ```markdown or ```html
		content = content[nl+1:]
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}
