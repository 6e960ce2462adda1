package services

import (
	"context"
	"errors"
	"sync"

	"conceptcraft-backend/domain/content"
	"conceptcraft-backend/domain/events"
	apperrors "conceptcraft-backend/pkg/errors"
)

// fakeGateway serves scripted responses in order; once the script is
// exhausted, or when failAll is set, every call fails.
type fakeGateway struct {
	mu        sync.Mutex
	responses []string
	failAll   bool
	calls     int
}

func (g *fakeGateway) GenerateText(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.failAll || len(g.responses) == 0 {
		return "", apperrors.NewGenerationUnavailableError(errors.New("all providers failed"))
	}
	resp := g.responses[0]
	g.responses = g.responses[1:]
	return resp, nil
}

// fakeFrameworkRepo is an in-memory FrameworkRepository. It stores deep
// copies so mutations only become visible through Save, like a real store.
type fakeFrameworkRepo struct {
	mu            sync.Mutex
	items         map[string]*content.Framework
	saveManyCalls [][]string
	failSaveMany  bool
}

func newFakeFrameworkRepo() *fakeFrameworkRepo {
	return &fakeFrameworkRepo{items: map[string]*content.Framework{}}
}

func copyFramework(fw *content.Framework) *content.Framework {
	cp := *fw
	cp.ConceptRefs = append([]string{}, fw.ConceptRefs...)
	return &cp
}

func (r *fakeFrameworkRepo) Save(ctx context.Context, fw *content.Framework) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[fw.ID] = copyFramework(fw)
	return nil
}

func (r *fakeFrameworkRepo) GetByID(ctx context.Context, id string) (*content.Framework, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fw, ok := r.items[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("Framework")
	}
	return copyFramework(fw), nil
}

func (r *fakeFrameworkRepo) List(ctx context.Context) ([]*content.Framework, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*content.Framework, 0, len(r.items))
	for _, fw := range r.items {
		out = append(out, copyFramework(fw))
	}
	return out, nil
}

func (r *fakeFrameworkRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	fw, ok := r.items[id]
	if !ok || len(fw.ConceptRefs) > 0 {
		return apperrors.NewConflictError("framework is missing or still has concepts: " + id)
	}
	delete(r.items, id)
	return nil
}

func (r *fakeFrameworkRepo) SaveMany(ctx context.Context, frameworks []*content.Framework) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSaveMany {
		return apperrors.NewDatabaseError("transactional framework save", errors.New("transaction canceled"))
	}
	ids := make([]string, 0, len(frameworks))
	for _, fw := range frameworks {
		r.items[fw.ID] = copyFramework(fw)
		ids = append(ids, fw.ID)
	}
	r.saveManyCalls = append(r.saveManyCalls, ids)
	return nil
}

// fakeConceptRepo is an in-memory ConceptRepository
type fakeConceptRepo struct {
	mu    sync.Mutex
	items map[string]*content.Concept
}

func newFakeConceptRepo() *fakeConceptRepo {
	return &fakeConceptRepo{items: map[string]*content.Concept{}}
}

func (r *fakeConceptRepo) Save(ctx context.Context, c *content.Concept) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *fakeConceptRepo) GetByID(ctx context.Context, id string) (*content.Concept, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("Concept")
	}
	cp := *c
	return &cp, nil
}

func (r *fakeConceptRepo) GetByIDs(ctx context.Context, ids []string) ([]*content.Concept, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*content.Concept, 0, len(ids))
	for _, id := range ids {
		if c, ok := r.items[id]; ok {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeConceptRepo) List(ctx context.Context) ([]*content.Concept, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*content.Concept, 0, len(r.items))
	for _, c := range r.items {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeConceptRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

// fakePublisher records published events
type fakePublisher struct {
	mu     sync.Mutex
	events []events.DomainEvent
}

func (p *fakePublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	return p.PublishBatch(ctx, []events.DomainEvent{event})
}

func (p *fakePublisher) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, batch...)
	return nil
}

func (p *fakePublisher) eventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.GetEventType())
	}
	return types
}
