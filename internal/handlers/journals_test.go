package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"moodlog/internal/models"
)

func TestWordCount(t *testing.T) {
	tests := []struct {
		content  string
		expected int
	}{
		{"", 0},
		{"   ", 0},
		{"one", 1},
		{"slept well, went for a run", 6},
		{"line\nbreaks\tand   extra  spaces", 5},
	}
	for _, tt := range tests {
		if got := wordCount(tt.content); got != tt.expected {
			t.Errorf("wordCount(%q) = %d, want %d", tt.content, got, tt.expected)
		}
	}
}

func TestReadingTime(t *testing.T) {
	tests := []struct {
		words    int
		expected int
	}{
		{0, 0},
		{1, 1},
		{199, 1},
		{200, 1},
		{201, 2},
		{1000, 5},
	}
	for _, tt := range tests {
		if got := readingTime(tt.words); got != tt.expected {
			t.Errorf("readingTime(%d) = %d, want %d", tt.words, got, tt.expected)
		}
	}
}

func TestJoinTags(t *testing.T) {
	assert.Equal(t, "", joinTags(nil))
	assert.Equal(t, "gratitude,sleep", joinTags([]string{" gratitude ", "", "sleep"}))
}

func TestJournalEntryDTOTags(t *testing.T) {
	tags := "gratitude,sleep"
	dto := toJournalEntryDTO(models.JournalEntry{Tags: &tags})
	assert.Equal(t, []string{"gratitude", "sleep"}, dto.Tags)

	dto = toJournalEntryDTO(models.JournalEntry{})
	assert.Equal(t, []string{}, dto.Tags)
}
