package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"conceptcraft-backend/application/ports"
	"conceptcraft-backend/domain/content"
	"conceptcraft-backend/domain/events"
	apperrors "conceptcraft-backend/pkg/errors"
	"conceptcraft-backend/pkg/utils"
)

const (
	catalogCacheKey = "catalog:frameworks"
	catalogCacheTTL = 60 // seconds
)

// ContentService handles framework and concept curation: CRUD, AI-backed
// auto-creation, and the public read-side catalog. Relationship edits are
// delegated to the RelationshipService so the membership rules live in
// one place.
type ContentService struct {
	frameworkRepo ports.FrameworkRepository
	conceptRepo   ports.ConceptRepository
	generator     *ConceptGenerationService
	relationships *RelationshipService
	publisher     ports.EventPublisher
	cache         ports.Cache
	logger        *zap.Logger
}

// NewContentService creates a new content service
func NewContentService(
	frameworkRepo ports.FrameworkRepository,
	conceptRepo ports.ConceptRepository,
	generator *ConceptGenerationService,
	relationships *RelationshipService,
	publisher ports.EventPublisher,
	cache ports.Cache,
	logger *zap.Logger,
) *ContentService {
	return &ContentService{
		frameworkRepo: frameworkRepo,
		conceptRepo:   conceptRepo,
		generator:     generator,
		relationships: relationships,
		publisher:     publisher,
		cache:         cache,
		logger:        logger,
	}
}

// CreateFramework registers a new framework under a human-chosen slug.
// The slug is immutable once created.
func (s *ContentService) CreateFramework(ctx context.Context, id, name string) (*content.Framework, error) {
	framework, err := content.NewFramework(id, name)
	if err != nil {
		return nil, err
	}

	if existing, err := s.frameworkRepo.GetByID(ctx, id); err == nil && existing != nil {
		return nil, apperrors.NewConflictError("framework already exists: " + id)
	} else if err != nil && !apperrors.IsNotFound(err) {
		return nil, err
	}

	if err := s.frameworkRepo.Save(ctx, framework); err != nil {
		return nil, apperrors.Wrap(err, "failed to persist framework")
	}

	s.publishEvent(ctx, events.NewFrameworkCreated(framework.ID, framework.Name, time.Now()))
	s.invalidateCatalog(ctx)

	s.logger.Info("framework created", zap.String("frameworkID", framework.ID))
	return framework, nil
}

// RenameFramework updates a framework's display name; the slug stays fixed
func (s *ContentService) RenameFramework(ctx context.Context, id, name string) (*content.Framework, error) {
	framework, err := s.frameworkRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := framework.Rename(name); err != nil {
		return nil, err
	}

	if err := s.frameworkRepo.Save(ctx, framework); err != nil {
		return nil, apperrors.Wrap(err, "failed to persist framework rename")
	}

	s.invalidateCatalog(ctx)
	return framework, nil
}

// ListFrameworks returns all frameworks without their concept bodies
func (s *ContentService) ListFrameworks(ctx context.Context) ([]*content.Framework, error) {
	return s.frameworkRepo.List(ctx)
}

// GetFramework returns a single framework by slug
func (s *ContentService) GetFramework(ctx context.Context, id string) (*content.Framework, error) {
	return s.frameworkRepo.GetByID(ctx, id)
}

// GetConcept returns a single concept by ID
func (s *ContentService) GetConcept(ctx context.Context, id string) (*content.Concept, error) {
	return s.conceptRepo.GetByID(ctx, id)
}

// ListConcepts returns all concepts
func (s *ContentService) ListConcepts(ctx context.Context) ([]*content.Concept, error) {
	return s.conceptRepo.List(ctx)
}

// CreateConcept persists a manually authored concept. The identifier is
// derived from the title when not supplied.
func (s *ContentService) CreateConcept(ctx context.Context, id string, draft content.ConceptDraft) (*content.Concept, error) {
	if id == "" {
		id = utils.Slugify(draft.Title)
	}

	if existing, err := s.conceptRepo.GetByID(ctx, id); err == nil && existing != nil {
		return nil, apperrors.NewConflictError("concept already exists: " + id)
	} else if err != nil && !apperrors.IsNotFound(err) {
		return nil, err
	}

	concept, err := content.NewConcept(id, draft)
	if err != nil {
		return nil, err
	}

	if err := s.conceptRepo.Save(ctx, concept); err != nil {
		return nil, apperrors.Wrap(err, "failed to persist concept")
	}

	s.invalidateCatalog(ctx)
	s.logger.Info("concept created", zap.String("conceptID", concept.ID))
	return concept, nil
}

// AutoCreateConcept generates a draft for the named concept, persists it,
// and links it to the named framework. The framework must already exist;
// generation itself never fails, so the only error sources are lookup and
// storage.
func (s *ContentService) AutoCreateConcept(ctx context.Context, conceptName, frameworkName string) (*content.Concept, error) {
	framework, err := s.resolveFramework(ctx, frameworkName)
	if err != nil {
		return nil, err
	}

	draft := s.generator.GenerateDraft(ctx, conceptName, frameworkName)

	concept, err := s.CreateConcept(ctx, utils.Slugify(conceptName), draft)
	if err != nil {
		return nil, err
	}

	if err := s.relationships.AddConcept(ctx, framework.ID, concept.ID); err != nil {
		return nil, err
	}

	return concept, nil
}

// resolveFramework accepts either a framework slug or its display name.
// Admin requests carry whichever label the UI had on hand, so "Vue.js"
// must find the framework stored under "vue".
func (s *ContentService) resolveFramework(ctx context.Context, label string) (*content.Framework, error) {
	framework, err := s.frameworkRepo.GetByID(ctx, utils.Slugify(label))
	if err == nil {
		return framework, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, err
	}

	frameworks, err := s.frameworkRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, fw := range frameworks {
		if strings.EqualFold(fw.Name, label) {
			return fw, nil
		}
	}
	return nil, apperrors.NewNotFoundError("Framework").WithDetails(map[string]interface{}{"label": label})
}

// UpdateConcept applies an in-place update. A non-nil Framework label in
// the update reassigns the concept to that framework before the concept
// document itself is written.
func (s *ContentService) UpdateConcept(ctx context.Context, id string, update content.ConceptUpdate) (*content.Concept, error) {
	concept, err := s.conceptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Framework != nil {
		target, err := s.resolveFramework(ctx, *update.Framework)
		if err != nil {
			return nil, err
		}
		if err := s.relationships.Reassign(ctx, id, target.ID); err != nil {
			return nil, err
		}
	}

	if err := concept.Apply(update); err != nil {
		return nil, err
	}

	if err := s.conceptRepo.Save(ctx, concept); err != nil {
		return nil, apperrors.Wrap(err, "failed to persist concept update")
	}

	s.invalidateCatalog(ctx)
	return concept, nil
}

// DeleteConcept removes a concept record. References from frameworks are
// not cascaded here; the catalog read side skips dangling references and
// admins are expected to unlink first.
func (s *ContentService) DeleteConcept(ctx context.Context, id string) error {
	if _, err := s.conceptRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.conceptRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	s.logger.Info("concept deleted", zap.String("conceptID", id))
	return nil
}

// CatalogEntry pairs a framework with its resolved concept records for
// the public read API.
type CatalogEntry struct {
	Framework *content.Framework
	Concepts  []*content.Concept
}

// Catalog returns every framework with its linked concepts resolved.
// Results are cached briefly; relationship edits appear within the cache
// TTL. Dangling concept references are skipped and logged, never surfaced
// to readers.
func (s *ContentService) Catalog(ctx context.Context) ([]*CatalogEntry, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, catalogCacheKey); ok {
			if entries, isEntries := cached.([]*CatalogEntry); isEntries {
				return entries, nil
			}
		}
	}

	frameworks, err := s.frameworkRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]*CatalogEntry, 0, len(frameworks))
	for _, fw := range frameworks {
		concepts, err := s.conceptRepo.GetByIDs(ctx, fw.ConceptRefs)
		if err != nil {
			return nil, err
		}
		if len(concepts) < len(fw.ConceptRefs) {
			s.logger.Warn("framework has dangling concept references",
				zap.String("frameworkID", fw.ID),
				zap.Int("referenced", len(fw.ConceptRefs)),
				zap.Int("resolved", len(concepts)))
		}
		entries = append(entries, &CatalogEntry{Framework: fw, Concepts: concepts})
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, catalogCacheKey, entries, catalogCacheTTL); err != nil {
			s.logger.Warn("failed to cache catalog", zap.Error(err))
		}
	}

	return entries, nil
}

func (s *ContentService) publishEvent(ctx context.Context, event events.DomainEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish content event",
			zap.String("eventType", event.GetEventType()),
			zap.Error(err))
	}
}

func (s *ContentService) invalidateCatalog(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, catalogCacheKey); err != nil {
		s.logger.Warn("failed to invalidate catalog cache", zap.Error(err))
	}
}
