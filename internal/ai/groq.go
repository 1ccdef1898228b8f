package ai

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const groqChatURL = "https://api.groq.com/openai/v1/chat/completions"

// GroqClient targets Groq's OpenAI-compatible endpoint. Used as the fast
// fallback when OpenAI is unavailable.
type GroqClient struct {
	apiKey    string
	model     string
	maxTokens int
	baseURL   string
	client    *http.Client
}

func NewGroqClient(apiKey, model string, maxTokens int, timeout time.Duration) *GroqClient {
	return &GroqClient{
		apiKey:    apiKey,
		model:     model,
		maxTokens: maxTokens,
		baseURL:   groqChatURL,
		client:    &http.Client{Timeout: timeout},
	}
}

func (c *GroqClient) Name() string { return "groq" }

func (c *GroqClient) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("groq api key not set: %w", ErrProviderUnavailable)
	}
	return chatComplete(ctx, c.client, c.baseURL, c.apiKey, chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:   c.maxTokens,
		Temperature: 0.7,
	})
}
