package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAcceptsPlainText(t *testing.T) {
	assert.Empty(t, Validate("This answer needs more detail."))
}

func TestValidateEmpty(t *testing.T) {
	for _, text := range []string{"", "   ", "\t\n"} {
		problems := Validate(text)
		assert.Len(t, problems, 1, "text %q", text)
		assert.Contains(t, problems[0], "empty")
	}
}

func TestValidateTooShort(t *testing.T) {
	problems := Validate("hey ")
	assert.Len(t, problems, 1)
	assert.Contains(t, problems[0], "at least 5")
}

func TestValidateSuspiciousKeywords(t *testing.T) {
	for _, text := range []string{
		"please DROP table students",
		"union all the things",
		"I will SeLeCt the best answer",
		"shutdown everything now",
	} {
		assert.True(t, Suspicious(text), "text %q", text)
		assert.NotEmpty(t, Validate(text), "text %q", text)
	}
}

func TestValidateSuspiciousMarkers(t *testing.T) {
	for _, text := range []string{
		"totally fine -- or is it",
		"first; second",
		"opening /* hidden",
		"closing */ sequence",
	} {
		assert.True(t, Suspicious(text), "text %q", text)
	}
}

func TestKeywordNeedsWordBoundary(t *testing.T) {
	// "created" and "selection" embed blocked words but are not matches.
	assert.False(t, Suspicious("I created a selection of updates_"))
}

func TestSanitizeStripsCharsAndKeywords(t *testing.T) {
	got := Sanitize(`Robert"); DROP TABLE students`)
	assert.NotContains(t, got, `"`)
	assert.NotContains(t, got, ")")
	assert.NotContains(t, got, ";")
	assert.NotContains(t, got, "DROP")
	assert.Contains(t, got, "Robert")
	assert.Contains(t, got, "students")
}

func TestSanitizeCollapsesTrailingTail(t *testing.T) {
	assert.Equal(t, "1=1;", Sanitize("1=1;--"))
	assert.Equal(t, "payload;", Sanitize("payload UNION--"))
}

func TestSanitizeLeavesCleanTextAlone(t *testing.T) {
	text := "Needs more detail and examples."
	assert.Equal(t, text, Sanitize(text))
}
