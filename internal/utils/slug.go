package utils

import (
	"strings"
)

// Slugify builds a URL slug from a title: lowercase latin letters, digits,
// hyphens and underscores only, truncated to maxLen. Runs of spaces and
// hyphens collapse into a single hyphen.
func Slugify(title string, maxLen int) string {
	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
			hyphen = false
		case r == '-', r == ' ':
			if !hyphen && b.Len() > 0 {
				b.WriteByte('-')
				hyphen = true
			}
		}
	}
	s := strings.TrimRight(b.String(), "-")
	if maxLen > 0 && len(s) > maxLen {
		s = strings.TrimRight(s[:maxLen], "-")
	}
	return s
}
