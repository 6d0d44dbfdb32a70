// Package sanitize is the shared content-policy gate for posts, replies,
// reviews and feedback. It is a user-facing policy signal only: actual
// injection safety comes from parameterized queries at the storage layer.
// All functions are pure; there is no shared state between calls.
package sanitize

import (
	"fmt"
	"regexp"
	"strings"
)

const minLength = 5

var (
	keywordPattern = regexp.MustCompile(`(?i)\b(union|select|insert|update|delete|drop|alter|create|execute|shutdown)\b`)
	trailingTail   = regexp.MustCompile(`(?i)(;--|union--)\s*$`)
	strippedChars  = `"'#;()*/`
	markerSeqs     = []string{"--", ";", "/*", "*/"}
)

// Validate returns a list of human-readable problems with the text. An empty
// list means the text is acceptable as-is.
func Validate(text string) []string {
	var problems []string

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		problems = append(problems, "content must not be empty")
	} else if len([]rune(trimmed)) < minLength {
		problems = append(problems, fmt.Sprintf("content must be at least %d characters", minLength))
	}

	if Suspicious(text) {
		problems = append(problems, "content contains disallowed control sequences")
	}

	return problems
}

// Suspicious reports whether the text trips the blocklist: SQL-ish keywords
// or comment/statement markers.
func Suspicious(text string) bool {
	if keywordPattern.MatchString(text) {
		return true
	}
	for _, seq := range markerSeqs {
		if strings.Contains(text, seq) {
			return true
		}
	}
	return false
}

// Sanitize is the lossy best-effort cleanup applied before storage when
// Suspicious trips. It never fails: a trailing `;--` or `UNION--` tail is
// collapsed to a bare `;`, blocklisted keywords are removed on word
// boundaries, and the marker characters are stripped.
func Sanitize(text string) string {
	t := strings.TrimSpace(text)

	// Collapse the tail before the character strip eats it.
	hadTail := trailingTail.MatchString(t)
	if hadTail {
		t = trailingTail.ReplaceAllString(t, "")
	}

	t = keywordPattern.ReplaceAllString(t, "")

	t = strings.Map(func(r rune) rune {
		if strings.ContainsRune(strippedChars, r) {
			return -1
		}
		return r
	}, t)

	t = strings.TrimSpace(t)
	if hadTail {
		t += ";"
	}
	return t
}
