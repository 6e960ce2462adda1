package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "conceptcraft-backend/pkg/errors"
)

type stubProvider struct {
	name  string
	text  string
	err   error
	calls int
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Complete(_ context.Context, _ string) (string, error) {
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	return p.text, nil
}

func TestGatewayGenerateText(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("primary success skips fallback", func(t *testing.T) {
		primary := &stubProvider{name: "openai", text: "from primary"}
		fallback := &stubProvider{name: "gemini", text: "from fallback"}
		gateway := NewGateway(primary, fallback, nil, nil, logger)

		text, err := gateway.GenerateText(ctx, "prompt")
		require.NoError(t, err)
		assert.Equal(t, "from primary", text)
		assert.Equal(t, 1, primary.calls)
		assert.Zero(t, fallback.calls)
	})

	t.Run("primary failure falls through once", func(t *testing.T) {
		primary := &stubProvider{name: "openai", err: errors.New("rate limited")}
		fallback := &stubProvider{name: "gemini", text: "from fallback"}
		gateway := NewGateway(primary, fallback, nil, nil, logger)

		text, err := gateway.GenerateText(ctx, "prompt")
		require.NoError(t, err)
		assert.Equal(t, "from fallback", text)
		assert.Equal(t, 1, primary.calls)
		assert.Equal(t, 1, fallback.calls)
	})

	t.Run("both failing is terminal", func(t *testing.T) {
		primary := &stubProvider{name: "openai", err: errors.New("timeout")}
		fallback := &stubProvider{name: "gemini", err: errors.New("invalid key")}
		gateway := NewGateway(primary, fallback, nil, nil, logger)

		_, err := gateway.GenerateText(ctx, "prompt")
		require.Error(t, err)
		assert.True(t, apperrors.IsGenerationUnavailable(err))
		assert.Equal(t, 1, primary.calls)
		assert.Equal(t, 1, fallback.calls)
	})

	t.Run("providers called once per prompt", func(t *testing.T) {
		primary := &stubProvider{name: "openai", text: "ok"}
		fallback := &stubProvider{name: "gemini"}
		gateway := NewGateway(primary, fallback, nil, nil, logger)

		for i := 0; i < 3; i++ {
			_, err := gateway.GenerateText(ctx, "prompt")
			require.NoError(t, err)
		}
		assert.Equal(t, 3, primary.calls)
		assert.Zero(t, fallback.calls)
	})
}

func TestOpenAIProviderRequiresKey(t *testing.T) {
	provider := NewOpenAIProvider(OpenAIConfig{})

	_, err := provider.Complete(context.Background(), "prompt")
	require.Error(t, err)
}
