package events

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	EventID     string    `json:"event_id"`
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func newBaseEvent(aggregateID, eventType string, timestamp time.Time) BaseEvent {
	return BaseEvent{
		EventID:     uuid.NewString(),
		AggregateID: aggregateID,
		EventType:   eventType,
		Timestamp:   timestamp,
		Version:     1,
	}
}

func (e BaseEvent) GetEventID() string      { return e.EventID }
func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// Concept Events

// ConceptGenerated is raised when a concept draft is produced by the
// generation pipeline, whether model-backed or canned.
type ConceptGenerated struct {
	BaseEvent
	ConceptID  string `json:"concept_id"`
	Title      string `json:"title"`
	Framework  string `json:"framework"`
	Difficulty string `json:"difficulty"`
	UsedModel  bool   `json:"used_model"`
}

// NewConceptGenerated creates a ConceptGenerated event
func NewConceptGenerated(conceptID, title, framework, difficulty string, usedModel bool, timestamp time.Time) ConceptGenerated {
	return ConceptGenerated{
		BaseEvent: newBaseEvent(conceptID, "concept.generated", timestamp),
		ConceptID:  conceptID,
		Title:      title,
		Framework:  framework,
		Difficulty: difficulty,
		UsedModel:  usedModel,
	}
}

// ConceptLinked is raised when a concept is attached to a framework
type ConceptLinked struct {
	BaseEvent
	FrameworkID string `json:"framework_id"`
	ConceptID   string `json:"concept_id"`
}

// NewConceptLinked creates a ConceptLinked event
func NewConceptLinked(frameworkID, conceptID string, timestamp time.Time) ConceptLinked {
	return ConceptLinked{
		BaseEvent: newBaseEvent(frameworkID, "concept.linked", timestamp),
		FrameworkID: frameworkID,
		ConceptID:   conceptID,
	}
}

// ConceptUnlinked is raised when a concept is detached from a framework
type ConceptUnlinked struct {
	BaseEvent
	FrameworkID string `json:"framework_id"`
	ConceptID   string `json:"concept_id"`
}

// NewConceptUnlinked creates a ConceptUnlinked event
func NewConceptUnlinked(frameworkID, conceptID string, timestamp time.Time) ConceptUnlinked {
	return ConceptUnlinked{
		BaseEvent: newBaseEvent(frameworkID, "concept.unlinked", timestamp),
		FrameworkID: frameworkID,
		ConceptID:   conceptID,
	}
}

// ConceptReassigned is raised when a concept is moved to a different
// framework, after being detached from every framework it was linked to.
type ConceptReassigned struct {
	BaseEvent
	ConceptID      string   `json:"concept_id"`
	ToFrameworkID  string   `json:"to_framework_id"`
	FromFrameworks []string `json:"from_frameworks"`
}

// NewConceptReassigned creates a ConceptReassigned event
func NewConceptReassigned(conceptID, toFrameworkID string, fromFrameworks []string, timestamp time.Time) ConceptReassigned {
	return ConceptReassigned{
		BaseEvent: newBaseEvent(conceptID, "concept.reassigned", timestamp),
		ConceptID:      conceptID,
		ToFrameworkID:  toFrameworkID,
		FromFrameworks: fromFrameworks,
	}
}

// Framework Events

// FrameworkCreated is raised when a new framework is registered
type FrameworkCreated struct {
	BaseEvent
	FrameworkID string `json:"framework_id"`
	Name        string `json:"name"`
}

// NewFrameworkCreated creates a FrameworkCreated event
func NewFrameworkCreated(frameworkID, name string, timestamp time.Time) FrameworkCreated {
	return FrameworkCreated{
		BaseEvent: newBaseEvent(frameworkID, "framework.created", timestamp),
		FrameworkID: frameworkID,
		Name:        name,
	}
}

// FrameworkDeleted is raised when an empty framework is removed
type FrameworkDeleted struct {
	BaseEvent
	FrameworkID string `json:"framework_id"`
	Name        string `json:"name"`
}

// NewFrameworkDeleted creates a FrameworkDeleted event
func NewFrameworkDeleted(frameworkID, name string, timestamp time.Time) FrameworkDeleted {
	return FrameworkDeleted{
		BaseEvent: newBaseEvent(frameworkID, "framework.deleted", timestamp),
		FrameworkID: frameworkID,
		Name:        name,
	}
}
