package utils

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	slugStripRe    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapseRe = regexp.MustCompile(`[\s_-]+`)
	slugTrimRe     = regexp.MustCompile(`^-+|-+$`)
)

// GenerateSlug derives a URL slug from a title: lowercase, strip anything
// outside word characters/spaces/hyphens, collapse runs of whitespace,
// underscores and hyphens into a single hyphen, trim edge hyphens.
// Idempotent: GenerateSlug(GenerateSlug(s)) == GenerateSlug(s).
func GenerateSlug(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStripRe.ReplaceAllString(s, "")
	s = slugCollapseRe.ReplaceAllString(s, "-")
	return slugTrimRe.ReplaceAllString(s, "")
}

const wordsPerMinute = 200

// ReadTime estimates reading time for a body of text, rounded up, with a
// one-minute floor so empty drafts still render a sensible label.
func ReadTime(content string) string {
	words := len(strings.Fields(content))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return strconv.Itoa(minutes) + " min read"
}

// MatchesQuery reports whether any of the fields contains the query,
// case-insensitively. An empty query matches everything.
func MatchesQuery(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
