package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveDifficulty(t *testing.T) {
	t.Run("advanced keywords", func(t *testing.T) {
		for _, text := range []string{
			"Advanced Patterns",
			"handles complex state",
			"enterprise deployment",
			"scalable architecture",
			"query optimization",
		} {
			assert.Equal(t, DifficultyAdvanced, DeriveDifficulty(text), "text %q", text)
		}
	})

	t.Run("intermediate keywords", func(t *testing.T) {
		for _, text := range []string{
			"Intermediate routing",
			"moderate learning curve",
			"the standard approach",
			"a common pattern",
		} {
			assert.Equal(t, DifficultyIntermediate, DeriveDifficulty(text), "text %q", text)
		}
	})

	t.Run("defaults to beginner", func(t *testing.T) {
		assert.Equal(t, DifficultyBeginner, DeriveDifficulty("Signals two-way binding"))
		assert.Equal(t, DifficultyBeginner, DeriveDifficulty(""))
	})

	t.Run("advanced wins over intermediate", func(t *testing.T) {
		got := DeriveDifficulty("covers intermediate and advanced usage")
		assert.Equal(t, DifficultyAdvanced, got)
	})

	t.Run("case insensitive", func(t *testing.T) {
		assert.Equal(t, DifficultyAdvanced, DeriveDifficulty("ENTERPRISE grade"))
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		text := "Signals standard reactivity"
		first := DeriveDifficulty(text)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, DeriveDifficulty(text))
		}
	})
}

func TestEstimateTime(t *testing.T) {
	assert.Equal(t, "15 min", EstimateTime(DifficultyBeginner))
	assert.Equal(t, "25 min", EstimateTime(DifficultyIntermediate))
	assert.Equal(t, "40 min", EstimateTime(DifficultyAdvanced))
	assert.Equal(t, "20 min", EstimateTime(Difficulty("expert")))
}
