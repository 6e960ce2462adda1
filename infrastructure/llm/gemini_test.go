package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiProviderClientConstruction(t *testing.T) {
	ctx := context.Background()

	t.Run("missing key fails before constructing a client", func(t *testing.T) {
		provider := NewGeminiProvider(GeminiConfig{})
		constructed := false
		provider.newClient = func(ctx context.Context, cfg *genai.ClientConfig) (*genai.Client, error) {
			constructed = true
			return nil, nil
		}

		_, err := provider.Complete(ctx, "prompt")
		require.Error(t, err)
		assert.False(t, constructed)
	})

	t.Run("failed construction is retried on the next call", func(t *testing.T) {
		provider := NewGeminiProvider(GeminiConfig{APIKey: "key"})
		attempts := 0
		provider.newClient = func(ctx context.Context, cfg *genai.ClientConfig) (*genai.Client, error) {
			attempts++
			return nil, errors.New("connection refused")
		}

		_, err := provider.Complete(ctx, "prompt")
		require.Error(t, err)
		_, err = provider.Complete(ctx, "prompt")
		require.Error(t, err)

		assert.Equal(t, 2, attempts)
	})

	t.Run("defaults the model", func(t *testing.T) {
		provider := NewGeminiProvider(GeminiConfig{APIKey: "key"})
		assert.Equal(t, "gemini-2.0-flash", provider.config.Model)
	})
}
