package service

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// MakeSlug lowercases the input and collapses every non-alphanumeric run
// into a single dash. Bengali letters pass through untouched.
func MakeSlug(input string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(input)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteRune('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// slugWithSuffix appends a short random suffix for collision recovery.
func slugWithSuffix(slug string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	if slug == "" {
		return suffix
	}
	return slug + "-" + suffix
}

// MakeExcerpt strips markup and truncates on a rune boundary.
func MakeExcerpt(content string, max int) string {
	if max <= 0 {
		max = 200
	}
	plain := strings.Join(strings.Fields(StripHTML(content)), " ")
	runes := []rune(plain)
	if len(runes) <= max {
		return plain
	}
	return strings.TrimSpace(string(runes[:max])) + "…"
}
