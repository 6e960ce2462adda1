package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "conceptcraft-backend/pkg/errors"
)

func TestNewFramework(t *testing.T) {
	t.Run("valid slug and name", func(t *testing.T) {
		fw, err := NewFramework("spring-boot", "Spring Boot")
		require.NoError(t, err)
		assert.Equal(t, "spring-boot", fw.ID)
		assert.Empty(t, fw.ConceptRefs)
		assert.True(t, fw.IsEmpty())
	})

	t.Run("rejects invalid slugs", func(t *testing.T) {
		for _, id := range []string{"", "React", "has space", "-leading", "trailing-", "dot.js"} {
			_, err := NewFramework(id, "Name")
			assert.Error(t, err, "id %q", id)
		}
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewFramework("react", "")
		assert.Error(t, err)
	})
}

func TestFrameworkLinking(t *testing.T) {
	fw, err := NewFramework("vue", "Vue.js")
	require.NoError(t, err)

	t.Run("link appends reference", func(t *testing.T) {
		require.NoError(t, fw.LinkConcept("reactivity"))
		assert.True(t, fw.HasConcept("reactivity"))
		assert.False(t, fw.IsEmpty())
	})

	t.Run("duplicate link rejected without duplicating the entry", func(t *testing.T) {
		err := fw.LinkConcept("reactivity")
		require.Error(t, err)
		assert.True(t, apperrors.IsAlreadyLinked(err))
		assert.Equal(t, []string{"reactivity"}, fw.ConceptRefs)
	})

	t.Run("unlink of missing concept rejected", func(t *testing.T) {
		err := fw.UnlinkConcept("teleport")
		require.Error(t, err)
		assert.True(t, apperrors.IsNotLinked(err))
	})

	t.Run("remove then add restores membership", func(t *testing.T) {
		require.NoError(t, fw.LinkConcept("composition-api"))
		before := append([]string(nil), fw.ConceptRefs...)

		require.NoError(t, fw.UnlinkConcept("composition-api"))
		assert.False(t, fw.HasConcept("composition-api"))

		require.NoError(t, fw.LinkConcept("composition-api"))
		assert.Equal(t, before, fw.ConceptRefs)
	})

	t.Run("unlink preserves order of remaining refs", func(t *testing.T) {
		fw2, err := NewFramework("react", "React")
		require.NoError(t, err)
		for _, id := range []string{"hooks", "suspense", "context"} {
			require.NoError(t, fw2.LinkConcept(id))
		}
		require.NoError(t, fw2.UnlinkConcept("suspense"))
		assert.Equal(t, []string{"hooks", "context"}, fw2.ConceptRefs)
	})
}

func TestFrameworkRename(t *testing.T) {
	fw, err := NewFramework("angular", "Angular")
	require.NoError(t, err)

	require.NoError(t, fw.Rename("Angular 19"))
	assert.Equal(t, "Angular 19", fw.Name)
	assert.Equal(t, "angular", fw.ID)

	assert.Error(t, fw.Rename(""))
}
