package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"
)

// GeminiConfig holds the settings for the Gemini-backed provider
type GeminiConfig struct {
	APIKey string
	Model  string
}

// GeminiProvider completes prompts against the Google Gemini API. The
// underlying client is created lazily on first use so a provider with a
// missing key can still be constructed and simply fail when called. A
// failed construction is not cached; the next call retries it.
type GeminiProvider struct {
	config    GeminiConfig
	newClient func(ctx context.Context, cfg *genai.ClientConfig) (*genai.Client, error)

	mu     sync.Mutex
	client *genai.Client
}

// NewGeminiProvider creates a Gemini provider
func NewGeminiProvider(config GeminiConfig) *GeminiProvider {
	if config.Model == "" {
		config.Model = "gemini-2.0-flash"
	}
	return &GeminiProvider{config: config, newClient: genai.NewClient}
}

// Name implements Provider
func (p *GeminiProvider) Name() string { return "gemini" }

// Complete implements Provider
func (p *GeminiProvider) Complete(ctx context.Context, prompt string) (string, error) {
	if p.config.APIKey == "" {
		return "", fmt.Errorf("gemini: API key not configured")
	}

	client, err := p.getClient(ctx)
	if err != nil {
		return "", err
	}

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	result, err := client.Models.GenerateContent(ctx, p.config.Model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini: request failed: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", fmt.Errorf("gemini: response contained no text")
	}
	return text, nil
}

func (p *GeminiProvider) getClient(ctx context.Context) (*genai.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		return p.client, nil
	}

	client, err := p.newClient(ctx, &genai.ClientConfig{
		APIKey: p.config.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to create client: %w", err)
	}
	p.client = client
	return client, nil
}
