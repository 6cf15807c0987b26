package chatbot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moodlog/internal/analytics"
)

func TestRespondKeywordMatch(t *testing.T) {
	reply := Respond("I can't sleep", nil)

	require.Equal(t, keywordGroups[0].response, reply.Response)
	require.Equal(t, keywordGroups[0].suggestions, reply.Suggestions)
	assert.Len(t, reply.Suggestions, 3)
}

func TestRespondCaseInsensitive(t *testing.T) {
	lower := Respond("help me with my WORKOUT routine", nil)
	mixed := Respond("Help Me With My Workout Routine", nil)
	assert.Equal(t, lower, mixed)
	assert.Equal(t, keywordGroups[2].response, lower.Response)
}

func TestRespondGroupOrder(t *testing.T) {
	// "tired" (sleep group) appears before "sad" (mood group) in the table,
	// so the sleep group wins even when both match.
	reply := Respond("I'm tired and sad", nil)
	assert.Equal(t, keywordGroups[0].response, reply.Response)
}

func TestRespondFallbackEmptyHistory(t *testing.T) {
	reply := Respond("tell me something", nil)

	assert.Contains(t, reply.Response, "don't have any logged days")
	assert.Equal(t, genericSuggestions, reply.Suggestions)
}

func TestRespondFallbackSummary(t *testing.T) {
	recent := []analytics.Metrics{
		{Mood: "excellent", SleepHours: 8, ExerciseMinutes: 60},
		{Mood: "good", SleepHours: 7.5, ExerciseMinutes: 60},
		{Mood: "excellent", SleepHours: 7, ExerciseMinutes: 45},
	}
	reply := Respond("hello there", recent)

	// avg mood 4.67, avg sleep 7.5, total exercise 165
	assert.Contains(t, reply.Response, "genuinely good")
	assert.Contains(t, reply.Response, "7.5 hours")
	assert.Contains(t, reply.Response, "165 minutes")
	assert.Equal(t, genericSuggestions, reply.Suggestions)
}

func TestRespondFallbackLowThresholds(t *testing.T) {
	recent := []analytics.Metrics{
		{Mood: "terrible", SleepHours: 4, ExerciseMinutes: 10},
		{Mood: "poor", SleepHours: 5, ExerciseMinutes: 20},
	}
	reply := Respond("hmm", recent)

	assert.Contains(t, reply.Response, "on the low side")
	assert.Contains(t, strings.ToLower(reply.Response), "sleep")
	assert.Contains(t, reply.Response, "30 minutes")
}

func TestRespondSummaryWindowCap(t *testing.T) {
	var recent []analytics.Metrics
	for i := 0; i < 30; i++ {
		recent = append(recent, analytics.Metrics{Mood: "neutral", SleepHours: 7, ExerciseMinutes: 10})
	}
	reply := Respond("anything new?", recent)

	// Only the first 7 entries count: 7 * 10 minutes of exercise.
	assert.Contains(t, reply.Response, "last 7 logged day(s)")
	assert.Contains(t, reply.Response, "70 minutes")
}

func TestRespondIdempotent(t *testing.T) {
	recent := []analytics.Metrics{{Mood: "good", SleepHours: 6, ExerciseMinutes: 90}}
	first := Respond("how am I doing", recent)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Respond("how am I doing", recent))
	}
}
