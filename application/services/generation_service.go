package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"conceptcraft-backend/application/ports"
	"conceptcraft-backend/domain/content"
	"conceptcraft-backend/domain/events"
	"conceptcraft-backend/pkg/utils"
)

// ConceptGenerationService produces structured concept drafts from a
// concept name and a framework name. Every step degrades to deterministic
// canned content on gateway or parse failure, so GenerateDraft never
// returns an error for valid string inputs. Drafts are never cached:
// every call re-invokes the gateway.
type ConceptGenerationService struct {
	gateway   ports.TextGateway
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewConceptGenerationService creates a new generation service
func NewConceptGenerationService(
	gateway ports.TextGateway,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *ConceptGenerationService {
	return &ConceptGenerationService{
		gateway:   gateway,
		publisher: publisher,
		logger:    logger,
	}
}

// GenerateDraft builds a complete concept draft in five steps: structured
// description, metaphor, interactive story, difficulty classification,
// and estimated study time.
func (s *ConceptGenerationService) GenerateDraft(ctx context.Context, conceptName, frameworkName string) content.ConceptDraft {
	usedModel := true

	description, features, ok := s.requestDescription(ctx, conceptName, frameworkName)
	if !ok {
		description = fallbackDescription(conceptName, frameworkName)
		usedModel = false
	}

	metaphor, ok := s.requestMetaphor(ctx, conceptName, frameworkName)
	if !ok {
		metaphor = fallbackMetaphor(conceptName, frameworkName)
		usedModel = false
	}

	story := s.requestStory(ctx, conceptName, frameworkName, features)

	difficulty := content.DeriveDifficulty(conceptName + " " + strings.Join(features, " "))

	draft := content.ConceptDraft{
		Title:         conceptName,
		Description:   description,
		Metaphor:      metaphor,
		Difficulty:    difficulty,
		EstimatedTime: content.EstimateTime(difficulty),
		Framework:     frameworkName,
		Story:         &story,
	}

	if s.publisher != nil {
		event := events.NewConceptGenerated(utils.Slugify(conceptName), conceptName, frameworkName, string(difficulty), usedModel, time.Now())
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish generation event",
				zap.String("concept", conceptName),
				zap.Error(err))
		}
	}

	return draft
}

// requestDescription asks for a structured JSON description and returns
// the description text plus the feature list used for difficulty
// classification and story seeding.
func (s *ConceptGenerationService) requestDescription(ctx context.Context, conceptName, frameworkName string) (string, []string, bool) {
	prompt := fmt.Sprintf(`Describe the %s concept "%s" for a learning platform.
Respond with a JSON object of this exact shape:
{"description": "two or three sentences", "features": ["feature", ...], "useCases": ["use case", ...]}`,
		frameworkName, conceptName)

	raw, err := s.gateway.GenerateText(ctx, prompt)
	if err != nil {
		s.logger.Debug("description request failed, using canned description",
			zap.String("concept", conceptName),
			zap.Error(err))
		return "", nil, false
	}

	obj, parsed := utils.ExtractJSONObject(raw)
	if !parsed {
		s.logger.Debug("description response had no parseable JSON",
			zap.String("concept", conceptName))
		return "", nil, false
	}

	description, _ := obj["description"].(string)
	description = strings.TrimSpace(description)
	if description == "" {
		return "", nil, false
	}

	return description, stringSlice(obj["features"]), true
}

// requestMetaphor asks for a one-paragraph metaphor in plain prose. The
// response is used directly after trimming, no JSON involved.
func (s *ConceptGenerationService) requestMetaphor(ctx context.Context, conceptName, frameworkName string) (string, bool) {
	prompt := fmt.Sprintf(`Write a single-paragraph everyday-life metaphor that explains the %s concept "%s" to a beginner. Respond with the paragraph only, no preamble.`,
		frameworkName, conceptName)

	raw, err := s.gateway.GenerateText(ctx, prompt)
	if err != nil {
		s.logger.Debug("metaphor request failed, using canned metaphor",
			zap.String("concept", conceptName),
			zap.Error(err))
		return "", false
	}

	metaphor := strings.TrimSpace(raw)
	if metaphor == "" {
		return "", false
	}
	return metaphor, true
}

// requestStory asks for a structured interactive story seeded with the
// features from the description step. The parsed object is treated as
// untrusted input: each field is validated individually and missing
// fields are filled from the canned template.
func (s *ConceptGenerationService) requestStory(ctx context.Context, conceptName, frameworkName string, features []string) content.Story {
	canned := fallbackStory(conceptName, frameworkName)

	prompt := fmt.Sprintf(`Write an interactive learning story for the %s concept "%s".`, frameworkName, conceptName)
	if len(features) > 0 {
		prompt += fmt.Sprintf(" Weave in these features: %s.", strings.Join(features, ", "))
	}
	prompt += `
Respond with a JSON object of this exact shape:
{"title": "...", "scene": "...", "problem": "...", "solution": "...", "characters": {"name": "role"}, "mapping": {"story term": "technical term"}, "realWorld": "..."}`

	raw, err := s.gateway.GenerateText(ctx, prompt)
	if err != nil {
		s.logger.Debug("story request failed, using canned story",
			zap.String("concept", conceptName),
			zap.Error(err))
		return canned
	}

	obj, parsed := utils.ExtractJSONObject(raw)
	if !parsed {
		s.logger.Debug("story response had no parseable JSON",
			zap.String("concept", conceptName))
		return canned
	}

	return content.StoryFromMap(obj, canned)
}

// stringSlice extracts the string elements from a decoded JSON value
func stringSlice(v interface{}) []string {
	arr, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, isString := item.(string); isString && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}
