package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseRFC3339(t *testing.T) {
	t.Run("round trips a formatted time", func(t *testing.T) {
		original := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

		parsed := ParseRFC3339(FormatRFC3339(original))
		assert.True(t, parsed.Equal(original))
	})

	t.Run("empty input yields zero time", func(t *testing.T) {
		assert.True(t, ParseRFC3339("").IsZero())
	})

	t.Run("malformed input yields zero time", func(t *testing.T) {
		assert.True(t, ParseRFC3339("yesterday-ish").IsZero())
		assert.True(t, ParseRFC3339("2026-03-14").IsZero())
	})
}
