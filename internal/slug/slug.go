package slug

import (
	"regexp"
	"strings"
)

var (
	invalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespace   = regexp.MustCompile(`\s+`)
	hyphenRuns   = regexp.MustCompile(`-+`)
)

// Make converts an arbitrary display string into a URL-safe identifier:
// lowercased, trimmed, stripped of everything outside [a-z0-9\s-], with
// whitespace runs turned into single hyphens and hyphen runs collapsed.
// It provides no uniqueness guarantee; callers that need unique slugs must
// enforce that themselves. An empty input yields an empty slug.
func Make(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = invalidChars.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return s
}
