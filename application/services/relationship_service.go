package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"conceptcraft-backend/application/ports"
	"conceptcraft-backend/domain/content"
	"conceptcraft-backend/domain/events"
	apperrors "conceptcraft-backend/pkg/errors"
)

// RelationshipService maintains the many-to-many association between
// frameworks and concepts. Validation errors (NotFound, AlreadyLinked,
// NotLinked, HasConcepts) propagate to the HTTP layer as typed failures;
// they are never swallowed. Audit events are published best-effort and
// never fail the operation.
type RelationshipService struct {
	frameworkRepo ports.FrameworkRepository
	conceptRepo   ports.ConceptRepository
	publisher     ports.EventPublisher
	logger        *zap.Logger
}

// NewRelationshipService creates a new relationship service
func NewRelationshipService(
	frameworkRepo ports.FrameworkRepository,
	conceptRepo ports.ConceptRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *RelationshipService {
	return &RelationshipService{
		frameworkRepo: frameworkRepo,
		conceptRepo:   conceptRepo,
		publisher:     publisher,
		logger:        logger,
	}
}

// AddConcept links a concept to a framework. Both entities must exist and
// the pair must not already be linked. Only the framework document is
// written, so no cross-entity rollback is needed on failure.
func (s *RelationshipService) AddConcept(ctx context.Context, frameworkID, conceptID string) error {
	framework, err := s.frameworkRepo.GetByID(ctx, frameworkID)
	if err != nil {
		return err
	}

	if _, err := s.conceptRepo.GetByID(ctx, conceptID); err != nil {
		return err
	}

	if err := framework.LinkConcept(conceptID); err != nil {
		return err
	}

	if err := s.frameworkRepo.Save(ctx, framework); err != nil {
		return apperrors.Wrap(err, "failed to persist concept link")
	}

	s.publish(ctx, events.NewConceptLinked(frameworkID, conceptID, time.Now()))

	s.logger.Info("concept linked to framework",
		zap.String("frameworkID", frameworkID),
		zap.String("conceptID", conceptID))
	return nil
}

// RemoveConcept unlinks a concept from a framework. The concept record
// itself is not deleted.
func (s *RelationshipService) RemoveConcept(ctx context.Context, frameworkID, conceptID string) error {
	framework, err := s.frameworkRepo.GetByID(ctx, frameworkID)
	if err != nil {
		return err
	}

	if err := framework.UnlinkConcept(conceptID); err != nil {
		return err
	}

	if err := s.frameworkRepo.Save(ctx, framework); err != nil {
		return apperrors.Wrap(err, "failed to persist concept unlink")
	}

	s.publish(ctx, events.NewConceptUnlinked(frameworkID, conceptID, time.Now()))

	s.logger.Info("concept unlinked from framework",
		zap.String("frameworkID", frameworkID),
		zap.String("conceptID", conceptID))
	return nil
}

// DeleteFramework removes a framework. It fails with HasConcepts while
// any concept is still linked; the underlying delete is additionally
// conditional on the stored item being empty, so a concurrent link cannot
// slip past this check.
func (s *RelationshipService) DeleteFramework(ctx context.Context, frameworkID string) error {
	framework, err := s.frameworkRepo.GetByID(ctx, frameworkID)
	if err != nil {
		return err
	}

	if !framework.IsEmpty() {
		return apperrors.NewHasConceptsError(frameworkID, len(framework.ConceptRefs))
	}

	if err := s.frameworkRepo.Delete(ctx, frameworkID); err != nil {
		return err
	}

	s.publish(ctx, events.NewFrameworkDeleted(frameworkID, framework.Name, time.Now()))

	s.logger.Info("framework deleted", zap.String("frameworkID", frameworkID))
	return nil
}

// Reassign moves a concept to the target framework: it is removed from
// every framework currently linking it and added to the target, persisted
// as one atomic multi-document write. A crash can therefore never leave
// the concept unlinked from all frameworks.
func (s *RelationshipService) Reassign(ctx context.Context, conceptID, targetFrameworkID string) error {
	if _, err := s.conceptRepo.GetByID(ctx, conceptID); err != nil {
		return err
	}

	target, err := s.frameworkRepo.GetByID(ctx, targetFrameworkID)
	if err != nil {
		return err
	}

	frameworks, err := s.frameworkRepo.List(ctx)
	if err != nil {
		return apperrors.Wrap(err, "failed to list frameworks for reassign")
	}

	var changed []*content.Framework
	var removedFrom []string
	for _, fw := range frameworks {
		if fw.ID == target.ID || !fw.HasConcept(conceptID) {
			continue
		}
		if err := fw.UnlinkConcept(conceptID); err != nil {
			return err
		}
		changed = append(changed, fw)
		removedFrom = append(removedFrom, fw.ID)
	}

	if !target.HasConcept(conceptID) {
		if err := target.LinkConcept(conceptID); err != nil {
			return err
		}
		changed = append(changed, target)
	}

	if len(changed) == 0 {
		// Already linked to the target and nowhere else
		return nil
	}

	if err := s.frameworkRepo.SaveMany(ctx, changed); err != nil {
		return apperrors.Wrap(err, "failed to persist reassign")
	}

	s.publish(ctx, events.NewConceptReassigned(conceptID, targetFrameworkID, removedFrom, time.Now()))

	s.logger.Info("concept reassigned",
		zap.String("conceptID", conceptID),
		zap.String("targetFrameworkID", targetFrameworkID),
		zap.Strings("removedFrom", removedFrom))
	return nil
}

func (s *RelationshipService) publish(ctx context.Context, event events.DomainEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish relationship event",
			zap.String("eventType", event.GetEventType()),
			zap.Error(err))
	}
}
