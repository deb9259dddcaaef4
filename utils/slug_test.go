package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"strips punctuation", "Custom Software Development!", "custom-software-development"},
		{"collapses runs", "Rapid   MVP __ Builds", "rapid-mvp-builds"},
		{"trims edge hyphens", "--Hello World--", "hello-world"},
		{"lowercases and trims", "  AI Workflow Automation  ", "ai-workflow-automation"},
		{"keeps existing hyphens", "sales-operations-systems", "sales-operations-systems"},
		{"drops non-word characters entirely", "100% Uptime & SLAs", "100-uptime-slas"},
		{"empty title", "", ""},
		{"punctuation only", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.title))
		})
	}
}

func TestGenerateSlugIdempotent(t *testing.T) {
	titles := []string{
		"Custom Software Development!",
		"Web Application Development",
		"  Spaced   Out  Title ",
	}
	for _, title := range titles {
		once := GenerateSlug(title)
		assert.Equal(t, once, GenerateSlug(once), "slug derivation must be idempotent for %q", title)
	}
}

func TestReadTime(t *testing.T) {
	word := "word "

	tests := []struct {
		name  string
		words int
		want  string
	}{
		{"zero words floors at one minute", 0, "1 min read"},
		{"one word", 1, "1 min read"},
		{"exact multiple", 400, "2 min read"},
		{"rounds up", 201, "2 min read"},
		{"one page", 200, "1 min read"},
		{"long body", 1999, "10 min read"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := ""
			for i := 0; i < tt.words; i++ {
				content += word
			}
			assert.Equal(t, tt.want, ReadTime(content))
		})
	}
}

func TestMatchesQuery(t *testing.T) {
	assert.True(t, MatchesQuery("", "anything"))
	assert.True(t, MatchesQuery("ada", "Ada Lovelace", "ada@example.com"))
	assert.True(t, MatchesQuery("EXAMPLE.COM", "Ada Lovelace", "ada@example.com"))
	assert.False(t, MatchesQuery("babbage", "Ada Lovelace", "ada@example.com"))
	assert.False(t, MatchesQuery("x"))
}
