package content

import (
	"regexp"
	"time"

	pkgerrors "conceptcraft-backend/pkg/errors"
)

// slugPattern constrains identifiers to lowercase URL-safe slugs like "react"
// or "spring-boot". Identifiers are human-chosen and immutable once created.
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Framework is a curated technology entry (e.g. React, Vue) that groups
// concepts via an ordered list of concept identifiers. The list is a
// relationship, not ownership: a concept may be referenced by any number
// of frameworks.
type Framework struct {
	ID          string
	Name        string
	ConceptRefs []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewFramework creates a framework with an empty concept list.
func NewFramework(id, name string) (*Framework, error) {
	if !slugPattern.MatchString(id) {
		return nil, pkgerrors.NewValidationError("framework id must be a lowercase slug")
	}
	if name == "" {
		return nil, pkgerrors.NewValidationError("framework name cannot be empty")
	}

	now := time.Now()
	return &Framework{
		ID:          id,
		Name:        name,
		ConceptRefs: []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// HasConcept reports whether the framework already references the concept.
func (f *Framework) HasConcept(conceptID string) bool {
	for _, ref := range f.ConceptRefs {
		if ref == conceptID {
			return true
		}
	}
	return false
}

// LinkConcept appends a concept reference, rejecting duplicates.
func (f *Framework) LinkConcept(conceptID string) error {
	if f.HasConcept(conceptID) {
		return pkgerrors.NewAlreadyLinkedError(f.ID, conceptID)
	}
	f.ConceptRefs = append(f.ConceptRefs, conceptID)
	f.UpdatedAt = time.Now()
	return nil
}

// UnlinkConcept removes a concept reference. The concept record itself is
// untouched.
func (f *Framework) UnlinkConcept(conceptID string) error {
	if !f.HasConcept(conceptID) {
		return pkgerrors.NewNotLinkedError(f.ID, conceptID)
	}

	refs := make([]string, 0, len(f.ConceptRefs)-1)
	for _, ref := range f.ConceptRefs {
		if ref != conceptID {
			refs = append(refs, ref)
		}
	}
	f.ConceptRefs = refs
	f.UpdatedAt = time.Now()
	return nil
}

// Rename updates the display name. The slug identifier never changes.
func (f *Framework) Rename(name string) error {
	if name == "" {
		return pkgerrors.NewValidationError("framework name cannot be empty")
	}
	f.Name = name
	f.UpdatedAt = time.Now()
	return nil
}

// IsEmpty reports whether the framework references no concepts. A framework
// may only be deleted when empty.
func (f *Framework) IsEmpty() bool {
	return len(f.ConceptRefs) == 0
}

// IsValidSlug reports whether s is usable as a framework or concept identifier.
func IsValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}
