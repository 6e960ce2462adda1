package ports

import (
	"context"

	"conceptcraft-backend/domain/content"
	"conceptcraft-backend/domain/events"
)

// FrameworkRepository defines the interface for framework persistence
// This is a port in hexagonal architecture - the domain doesn't know about the implementation
type FrameworkRepository interface {
	// Save persists a framework (create or update)
	Save(ctx context.Context, framework *content.Framework) error

	// GetByID retrieves a framework by its slug identifier
	GetByID(ctx context.Context, id string) (*content.Framework, error)

	// List retrieves all frameworks
	List(ctx context.Context) ([]*content.Framework, error)

	// Delete removes a framework. The write is conditional on the stored
	// item still having no concept references, so a concurrent link cannot
	// race past the emptiness check.
	Delete(ctx context.Context, id string) error

	// SaveMany persists multiple frameworks atomically
	SaveMany(ctx context.Context, frameworks []*content.Framework) error
}

// ConceptRepository defines the interface for concept persistence
type ConceptRepository interface {
	// Save persists a concept (create or update)
	Save(ctx context.Context, concept *content.Concept) error

	// GetByID retrieves a concept by its ID
	GetByID(ctx context.Context, id string) (*content.Concept, error)

	// GetByIDs retrieves multiple concepts, skipping missing IDs
	GetByIDs(ctx context.Context, ids []string) ([]*content.Concept, error)

	// List retrieves all concepts
	List(ctx context.Context) ([]*content.Concept, error)

	// Delete removes a concept
	Delete(ctx context.Context, id string) error
}

// TextGateway produces freeform text from a prompt. Implementations are
// expected to handle provider selection and failover internally and to
// return ErrGenerationUnavailable-typed errors when no provider can serve
// the request.
type TextGateway interface {
	// GenerateText sends a prompt and returns the raw model output
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish sends a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch sends multiple events
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}

// Cache defines the interface for caching read-side responses
type Cache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) (interface{}, bool)

	// Set stores a value in cache with TTL in seconds
	Set(ctx context.Context, key string, value interface{}, ttl int) error

	// Delete removes a value from cache
	Delete(ctx context.Context, key string) error

	// Clear removes all values from cache
	Clear(ctx context.Context) error
}
