package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"conceptcraft-backend/domain/content"
)

func newGenerator(gateway *fakeGateway) (*ConceptGenerationService, *fakePublisher) {
	publisher := &fakePublisher{}
	return NewConceptGenerationService(gateway, publisher, zap.NewNop()), publisher
}

func TestGenerateDraftWithFailingGateway(t *testing.T) {
	ctx := context.Background()

	t.Run("always returns a complete draft", func(t *testing.T) {
		svc, _ := newGenerator(&fakeGateway{failAll: true})

		draft := svc.GenerateDraft(ctx, "Signals", "Angular")

		assert.Equal(t, "Signals", draft.Title)
		assert.Equal(t, "Angular", draft.Framework)
		assert.NotEmpty(t, draft.Description)
		assert.NotEmpty(t, draft.Metaphor)
		require.NotNil(t, draft.Story)
		assert.NotEmpty(t, draft.EstimatedTime)
	})

	t.Run("serves the canned angular content", func(t *testing.T) {
		svc, _ := newGenerator(&fakeGateway{failAll: true})

		draft := svc.GenerateDraft(ctx, "Signals", "Angular")

		assert.Equal(t, cannedMetaphors["angular"], draft.Metaphor)
		require.NotNil(t, draft.Story)
		assert.Equal(t, cannedStories["angular"].Title, draft.Story.Title)
	})

	t.Run("unknown framework gets templated content", func(t *testing.T) {
		svc, _ := newGenerator(&fakeGateway{failAll: true})

		draft := svc.GenerateDraft(ctx, "Channels", "Gleam")

		assert.Contains(t, draft.Metaphor, "Channels")
		assert.Contains(t, draft.Metaphor, "Gleam")
		require.NotNil(t, draft.Story)
		assert.Equal(t, "The Channels Workshop", draft.Story.Title)
	})

	t.Run("difficulty falls back to the concept name alone", func(t *testing.T) {
		svc, _ := newGenerator(&fakeGateway{failAll: true})

		draft := svc.GenerateDraft(ctx, "Advanced Change Detection", "Angular")

		assert.Equal(t, content.DifficultyAdvanced, draft.Difficulty)
		assert.Equal(t, "40 min", draft.EstimatedTime)
	})
}

func TestGenerateDraftWithModelResponses(t *testing.T) {
	ctx := context.Background()

	t.Run("uses parsed description, metaphor, and story", func(t *testing.T) {
		gateway := &fakeGateway{responses: []string{
			`Here it is: {"description": "Signals are reactive primitives.", "features": ["fine-grained updates", "standard change tracking"]}`,
			"Signals are like a doorbell: you only look up when it rings.",
			`{"title": "The Doorbell", "scene": "A quiet street", "problem": "Checking the door constantly", "solution": "Install a bell", "characters": {"Ana": "homeowner"}, "mapping": {"bell": "signal"}, "realWorld": "UI updates on demand"}`,
		}}
		svc, publisher := newGenerator(gateway)

		draft := svc.GenerateDraft(ctx, "Signals", "Angular")

		assert.Equal(t, "Signals are reactive primitives.", draft.Description)
		assert.Equal(t, "Signals are like a doorbell: you only look up when it rings.", draft.Metaphor)
		require.NotNil(t, draft.Story)
		assert.Equal(t, "The Doorbell", draft.Story.Title)
		assert.Equal(t, "signal", draft.Story.Mapping["bell"])

		// "standard" in the feature list classifies as intermediate
		assert.Equal(t, content.DifficultyIntermediate, draft.Difficulty)
		assert.Equal(t, "25 min", draft.EstimatedTime)

		assert.Contains(t, publisher.eventTypes(), "concept.generated")
	})

	t.Run("unparseable story degrades to canned story only", func(t *testing.T) {
		gateway := &fakeGateway{responses: []string{
			`{"description": "A real description.", "features": []}`,
			"A real metaphor.",
			"Sorry, I cannot produce JSON today.",
		}}
		svc, _ := newGenerator(gateway)

		draft := svc.GenerateDraft(ctx, "Hooks", "React")

		assert.Equal(t, "A real description.", draft.Description)
		assert.Equal(t, "A real metaphor.", draft.Metaphor)
		require.NotNil(t, draft.Story)
		assert.Equal(t, cannedStories["react"].Title, draft.Story.Title)
	})

	t.Run("story fields are filled from the template when missing", func(t *testing.T) {
		gateway := &fakeGateway{responses: []string{
			`{"description": "Desc.", "features": []}`,
			"Metaphor.",
			`{"title": "Partial Story", "characters": "not-a-map"}`,
		}}
		svc, _ := newGenerator(gateway)

		draft := svc.GenerateDraft(ctx, "Hooks", "React")

		require.NotNil(t, draft.Story)
		assert.Equal(t, "Partial Story", draft.Story.Title)
		// Everything the model omitted or mistyped comes from the template
		assert.Equal(t, cannedStories["react"].Scene, draft.Story.Scene)
		assert.Equal(t, cannedStories["react"].Characters, draft.Story.Characters)
	})

	t.Run("every call re-invokes the gateway", func(t *testing.T) {
		gateway := &fakeGateway{failAll: true}
		svc, _ := newGenerator(gateway)

		svc.GenerateDraft(ctx, "Hooks", "React")
		svc.GenerateDraft(ctx, "Hooks", "React")

		// Three prompts per generation, none cached
		assert.Equal(t, 6, gateway.calls)
	})
}
