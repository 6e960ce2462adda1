package content

import (
	"time"

	pkgerrors "conceptcraft-backend/pkg/errors"
)

// Difficulty classifies how demanding a concept is for a learner.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// IsValid reports whether d is one of the known difficulty levels.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// Concept is a single educational record: a technical concept explained
// through a plain description, a visual metaphor and an optional
// interactive story. The Framework field is a denormalized display label;
// the authoritative relationship lives in Framework.ConceptRefs.
type Concept struct {
	ID            string
	Title         string
	Description   string
	Metaphor      string
	Difficulty    Difficulty
	EstimatedTime string
	Framework     string
	Story         *Story
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewConcept creates a concept record from a draft produced by the
// generation service or from manual admin input.
func NewConcept(id string, draft ConceptDraft) (*Concept, error) {
	if !slugPattern.MatchString(id) {
		return nil, pkgerrors.NewValidationError("concept id must be a lowercase slug")
	}
	if draft.Title == "" {
		return nil, pkgerrors.NewValidationError("concept title cannot be empty")
	}
	if !draft.Difficulty.IsValid() {
		return nil, pkgerrors.NewValidationError("unknown difficulty: " + string(draft.Difficulty))
	}

	now := time.Now()
	return &Concept{
		ID:            id,
		Title:         draft.Title,
		Description:   draft.Description,
		Metaphor:      draft.Metaphor,
		Difficulty:    draft.Difficulty,
		EstimatedTime: draft.EstimatedTime,
		Framework:     draft.Framework,
		Story:         draft.Story,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// ConceptDraft is the not-yet-persisted output of the generation service.
type ConceptDraft struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Metaphor      string     `json:"metaphor"`
	Difficulty    Difficulty `json:"difficulty"`
	EstimatedTime string     `json:"estimatedTime"`
	Framework     string     `json:"framework"`
	Story         *Story     `json:"story,omitempty"`
}

// ConceptUpdate carries the mutable fields of a concept for in-place
// updates. Nil pointers mean "leave unchanged". A non-nil Framework label
// triggers a reassign of the concept's framework membership.
type ConceptUpdate struct {
	Title         *string
	Description   *string
	Metaphor      *string
	Difficulty    *Difficulty
	EstimatedTime *string
	Framework     *string
	Story         *Story
}

// Apply copies the set fields of the update onto the concept.
func (c *Concept) Apply(u ConceptUpdate) error {
	if u.Title != nil {
		if *u.Title == "" {
			return pkgerrors.NewValidationError("concept title cannot be empty")
		}
		c.Title = *u.Title
	}
	if u.Description != nil {
		c.Description = *u.Description
	}
	if u.Metaphor != nil {
		c.Metaphor = *u.Metaphor
	}
	if u.Difficulty != nil {
		if !u.Difficulty.IsValid() {
			return pkgerrors.NewValidationError("unknown difficulty: " + string(*u.Difficulty))
		}
		c.Difficulty = *u.Difficulty
	}
	if u.EstimatedTime != nil {
		c.EstimatedTime = *u.EstimatedTime
	}
	if u.Framework != nil {
		c.Framework = *u.Framework
	}
	if u.Story != nil {
		c.Story = u.Story
	}
	c.UpdatedAt = time.Now()
	return nil
}
