package utils

import (
	"strings"
	"unicode"
)

// Slugify derives a URL-safe identifier from a free-form title:
// lowercase, non-alphanumeric runs collapse to single hyphens, leading
// and trailing hyphens stripped. "React Hooks & State" -> "react-hooks-state".
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen

	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
