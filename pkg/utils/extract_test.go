package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	t.Run("object embedded in prose", func(t *testing.T) {
		obj, ok := ExtractJSONObject(`blah {"a":1} blah`)
		require.True(t, ok)
		assert.Equal(t, float64(1), obj["a"])
	})

	t.Run("no json present", func(t *testing.T) {
		obj, ok := ExtractJSONObject("no json here")
		assert.False(t, ok)
		assert.Nil(t, obj)
	})

	t.Run("nested objects", func(t *testing.T) {
		obj, ok := ExtractJSONObject(`Here you go: {"story": {"title": "The Cache"}, "n": 2}`)
		require.True(t, ok)
		story, isMap := obj["story"].(map[string]interface{})
		require.True(t, isMap)
		assert.Equal(t, "The Cache", story["title"])
	})

	t.Run("code fence wrapping", func(t *testing.T) {
		text := "```json\n{\"difficulty\": \"advanced\"}\n```"
		obj, ok := ExtractJSONObject(text)
		require.True(t, ok)
		assert.Equal(t, "advanced", obj["difficulty"])
	})

	t.Run("braces inside string values", func(t *testing.T) {
		obj, ok := ExtractJSONObject(`{"code": "func() { return }"}`)
		require.True(t, ok)
		assert.Equal(t, "func() { return }", obj["code"])
	})

	t.Run("unbalanced braces", func(t *testing.T) {
		_, ok := ExtractJSONObject(`{"a": 1`)
		assert.False(t, ok)
	})

	t.Run("balanced but invalid json", func(t *testing.T) {
		_, ok := ExtractJSONObject(`{not valid}`)
		assert.False(t, ok)
	})
}

func TestExtractJSONArray(t *testing.T) {
	t.Run("array embedded in prose", func(t *testing.T) {
		arr, ok := ExtractJSONArray(`Sure! ["Hooks", "Suspense"]`)
		require.True(t, ok)
		assert.Len(t, arr, 2)
	})

	t.Run("no array present", func(t *testing.T) {
		_, ok := ExtractJSONArray("nothing to see")
		assert.False(t, ok)
	})
}

func TestExtractStringArray(t *testing.T) {
	t.Run("keeps strings, drops other types", func(t *testing.T) {
		names, ok := ExtractStringArray(`["Signals", 42, " Standalone Components ", null]`)
		require.True(t, ok)
		assert.Equal(t, []string{"Signals", "Standalone Components"}, names)
	})

	t.Run("array with no strings", func(t *testing.T) {
		_, ok := ExtractStringArray(`[1, 2, 3]`)
		assert.False(t, ok)
	})
}
