package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"conceptcraft-backend/application/ports"
	"conceptcraft-backend/pkg/utils"
)

// PopularConceptsService suggests trending concept names for a framework.
// On gateway or parse failure it serves a hand-maintained static list, so
// Find never returns an error. The service does not deduplicate against
// concepts already attached to the framework; callers filter if needed.
type PopularConceptsService struct {
	gateway ports.TextGateway
	logger  *zap.Logger
}

// NewPopularConceptsService creates a new popular-concepts service
func NewPopularConceptsService(gateway ports.TextGateway, logger *zap.Logger) *PopularConceptsService {
	return &PopularConceptsService{
		gateway: gateway,
		logger:  logger,
	}
}

// Find returns trending concept names for a framework, optionally
// narrowed by a freeform search refinement.
func (s *PopularConceptsService) Find(ctx context.Context, frameworkName, searchRefinement string) []string {
	prompt := fmt.Sprintf(`List the most important and trending concepts a developer should learn in %s right now.`, frameworkName)
	if searchRefinement != "" {
		prompt += fmt.Sprintf(" Focus on concepts related to: %s.", searchRefinement)
	}
	prompt += `
Respond with a JSON array of concept name strings only, for example ["Concept One", "Concept Two"].`

	raw, err := s.gateway.GenerateText(ctx, prompt)
	if err != nil {
		s.logger.Debug("popular-concepts request failed, using static list",
			zap.String("framework", frameworkName),
			zap.Error(err))
		return fallbackPopularConcepts(frameworkName)
	}

	names, ok := utils.ExtractStringArray(raw)
	if !ok {
		s.logger.Debug("popular-concepts response had no parseable array",
			zap.String("framework", frameworkName))
		return fallbackPopularConcepts(frameworkName)
	}

	return names
}
