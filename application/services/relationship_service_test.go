package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"conceptcraft-backend/domain/content"
	apperrors "conceptcraft-backend/pkg/errors"
)

type relationshipFixture struct {
	svc           *RelationshipService
	frameworkRepo *fakeFrameworkRepo
	conceptRepo   *fakeConceptRepo
	publisher     *fakePublisher
}

func newRelationshipFixture(t *testing.T) *relationshipFixture {
	t.Helper()
	frameworkRepo := newFakeFrameworkRepo()
	conceptRepo := newFakeConceptRepo()
	publisher := &fakePublisher{}
	return &relationshipFixture{
		svc:           NewRelationshipService(frameworkRepo, conceptRepo, publisher, zap.NewNop()),
		frameworkRepo: frameworkRepo,
		conceptRepo:   conceptRepo,
		publisher:     publisher,
	}
}

func (f *relationshipFixture) seedFramework(t *testing.T, id, name string, conceptIDs ...string) {
	t.Helper()
	fw, err := content.NewFramework(id, name)
	require.NoError(t, err)
	for _, cid := range conceptIDs {
		require.NoError(t, fw.LinkConcept(cid))
	}
	require.NoError(t, f.frameworkRepo.Save(context.Background(), fw))
}

func (f *relationshipFixture) seedConcept(t *testing.T, id, title string) {
	t.Helper()
	c, err := content.NewConcept(id, content.ConceptDraft{
		Title:         title,
		Description:   title + " description",
		Metaphor:      "a metaphor",
		Difficulty:    content.DifficultyBeginner,
		EstimatedTime: "15 min",
	})
	require.NoError(t, err)
	require.NoError(t, f.conceptRepo.Save(context.Background(), c))
}

func (f *relationshipFixture) refs(t *testing.T, frameworkID string) []string {
	t.Helper()
	fw, err := f.frameworkRepo.GetByID(context.Background(), frameworkID)
	require.NoError(t, err)
	return fw.ConceptRefs
}

func TestAddConcept(t *testing.T) {
	ctx := context.Background()

	t.Run("links an existing pair", func(t *testing.T) {
		f := newRelationshipFixture(t)
		f.seedFramework(t, "react", "React")
		f.seedConcept(t, "hooks", "Hooks")

		require.NoError(t, f.svc.AddConcept(ctx, "react", "hooks"))
		assert.Equal(t, []string{"hooks"}, f.refs(t, "react"))
		assert.Contains(t, f.publisher.eventTypes(), "concept.linked")
	})

	t.Run("missing framework", func(t *testing.T) {
		f := newRelationshipFixture(t)
		f.seedConcept(t, "hooks", "Hooks")

		err := f.svc.AddConcept(ctx, "react", "hooks")
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("missing concept", func(t *testing.T) {
		f := newRelationshipFixture(t)
		f.seedFramework(t, "react", "React")

		err := f.svc.AddConcept(ctx, "react", "hooks")
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("second add fails and does not duplicate", func(t *testing.T) {
		f := newRelationshipFixture(t)
		f.seedFramework(t, "react", "React")
		f.seedConcept(t, "hooks", "Hooks")

		require.NoError(t, f.svc.AddConcept(ctx, "react", "hooks"))
		err := f.svc.AddConcept(ctx, "react", "hooks")
		assert.True(t, apperrors.IsAlreadyLinked(err))
		assert.Equal(t, []string{"hooks"}, f.refs(t, "react"))
	})
}

func TestRemoveConcept(t *testing.T) {
	ctx := context.Background()

	t.Run("unlinks without deleting the concept", func(t *testing.T) {
		f := newRelationshipFixture(t)
		f.seedConcept(t, "hooks", "Hooks")
		f.seedFramework(t, "react", "React", "hooks")

		require.NoError(t, f.svc.RemoveConcept(ctx, "react", "hooks"))
		assert.Empty(t, f.refs(t, "react"))

		_, err := f.conceptRepo.GetByID(ctx, "hooks")
		assert.NoError(t, err)
	})

	t.Run("not linked", func(t *testing.T) {
		f := newRelationshipFixture(t)
		f.seedFramework(t, "react", "React")

		err := f.svc.RemoveConcept(ctx, "react", "hooks")
		assert.True(t, apperrors.IsNotLinked(err))
	})

	t.Run("remove then add restores membership", func(t *testing.T) {
		f := newRelationshipFixture(t)
		f.seedConcept(t, "hooks", "Hooks")
		f.seedFramework(t, "react", "React", "hooks")

		require.NoError(t, f.svc.RemoveConcept(ctx, "react", "hooks"))
		require.NoError(t, f.svc.AddConcept(ctx, "react", "hooks"))
		assert.Equal(t, []string{"hooks"}, f.refs(t, "react"))
	})
}

func TestDeleteFramework(t *testing.T) {
	ctx := context.Background()

	t.Run("full lifecycle", func(t *testing.T) {
		f := newRelationshipFixture(t)
		f.seedFramework(t, "vue", "Vue.js")
		f.seedConcept(t, "reactivity", "Reactivity")

		// Empty framework deletes cleanly
		require.NoError(t, f.svc.DeleteFramework(ctx, "vue"))

		// Recreate, link, and the delete is now rejected
		f.seedFramework(t, "vue", "Vue.js")
		require.NoError(t, f.svc.AddConcept(ctx, "vue", "reactivity"))

		err := f.svc.DeleteFramework(ctx, "vue")
		require.Error(t, err)
		assert.True(t, apperrors.IsHasConcepts(err))

		// Unlink and the delete goes through
		require.NoError(t, f.svc.RemoveConcept(ctx, "vue", "reactivity"))
		require.NoError(t, f.svc.DeleteFramework(ctx, "vue"))

		_, err = f.frameworkRepo.GetByID(ctx, "vue")
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("missing framework", func(t *testing.T) {
		f := newRelationshipFixture(t)
		err := f.svc.DeleteFramework(ctx, "ghost")
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestReassign(t *testing.T) {
	ctx := context.Background()

	t.Run("moves the concept out of every linking framework", func(t *testing.T) {
		f := newRelationshipFixture(t)
		f.seedConcept(t, "routing", "Routing")
		f.seedFramework(t, "react", "React", "routing")
		f.seedFramework(t, "vue", "Vue.js", "routing")
		f.seedFramework(t, "angular", "Angular")

		require.NoError(t, f.svc.Reassign(ctx, "routing", "angular"))

		assert.Empty(t, f.refs(t, "react"))
		assert.Empty(t, f.refs(t, "vue"))
		assert.Equal(t, []string{"routing"}, f.refs(t, "angular"))
		assert.Contains(t, f.publisher.eventTypes(), "concept.reassigned")
	})

	t.Run("persists all affected frameworks in one write", func(t *testing.T) {
		f := newRelationshipFixture(t)
		f.seedConcept(t, "routing", "Routing")
		f.seedFramework(t, "react", "React", "routing")
		f.seedFramework(t, "angular", "Angular")

		require.NoError(t, f.svc.Reassign(ctx, "routing", "angular"))

		require.Len(t, f.frameworkRepo.saveManyCalls, 1)
		assert.ElementsMatch(t, []string{"react", "angular"}, f.frameworkRepo.saveManyCalls[0])
	})

	t.Run("failed transaction leaves memberships untouched", func(t *testing.T) {
		f := newRelationshipFixture(t)
		f.seedConcept(t, "routing", "Routing")
		f.seedFramework(t, "react", "React", "routing")
		f.seedFramework(t, "angular", "Angular")
		f.frameworkRepo.failSaveMany = true

		err := f.svc.Reassign(ctx, "routing", "angular")
		require.Error(t, err)

		assert.Equal(t, []string{"routing"}, f.refs(t, "react"))
		assert.Empty(t, f.refs(t, "angular"))
	})

	t.Run("no-op when already only linked to the target", func(t *testing.T) {
		f := newRelationshipFixture(t)
		f.seedConcept(t, "routing", "Routing")
		f.seedFramework(t, "angular", "Angular", "routing")

		require.NoError(t, f.svc.Reassign(ctx, "routing", "angular"))
		assert.Empty(t, f.frameworkRepo.saveManyCalls)
		assert.Equal(t, []string{"routing"}, f.refs(t, "angular"))
	})

	t.Run("missing target framework", func(t *testing.T) {
		f := newRelationshipFixture(t)
		f.seedConcept(t, "routing", "Routing")
		f.seedFramework(t, "react", "React", "routing")

		err := f.svc.Reassign(ctx, "routing", "ghost")
		assert.True(t, apperrors.IsNotFound(err))
		assert.Equal(t, []string{"routing"}, f.refs(t, "react"))
	})

	t.Run("missing concept", func(t *testing.T) {
		f := newRelationshipFixture(t)
		f.seedFramework(t, "angular", "Angular")

		err := f.svc.Reassign(ctx, "ghost", "angular")
		assert.True(t, apperrors.IsNotFound(err))
	})
}
