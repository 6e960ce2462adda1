package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"React Hooks & State", "react-hooks-state"},
		{"Signals", "signals"},
		{"  Dependency   Injection  ", "dependency-injection"},
		{"Vue.js", "vue-js"},
		{"HTTP/2 Push", "http-2-push"},
		{"already-a-slug", "already-a-slug"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.title), "title %q", tc.title)
	}
}
