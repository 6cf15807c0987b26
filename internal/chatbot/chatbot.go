// Package chatbot picks the companion bot's reply to a user message. There
// is no model behind it: the input is matched against an ordered list of
// keyword groups, and when nothing matches the bot falls back to a short
// summary of the user's last week of logged metrics.
package chatbot

import (
	"fmt"
	"strings"

	"moodlog/internal/analytics"
)

// Reply is a bot turn: the response text and a fixed set of follow-up
// suggestions the client renders as quick-reply chips.
type Reply struct {
	Response    string   `json:"response"`
	Suggestions []string `json:"suggestions"`
}

// summaryWindow bounds how many recent entries feed the fallback summary.
const summaryWindow = 7

type keywordGroup struct {
	triggers    []string
	response    string
	suggestions []string
}

// Groups are checked in order; the first one with any substring hit wins.
var keywordGroups = []keywordGroup{
	{
		triggers: []string{"sleep", "tired", "insomnia", "rest", "awake"},
		response: "Sleep matters more than almost anything else you track. Most adults do best with 7-9 hours. Try keeping a consistent bedtime, and log your hours here so we can spot patterns together.",
		suggestions: []string{
			"How much sleep did I get this week?",
			"Tips for falling asleep faster",
			"Does exercise affect my sleep?",
		},
	},
	{
		triggers: []string{"mood", "sad", "down", "anxious", "stress", "happy", "feeling"},
		response: "Moods shift, and writing them down is already a step toward understanding them. Your logged moods help me notice what tends to precede the good days and the hard ones.",
		suggestions: []string{
			"Show my mood trend",
			"What helps on low-mood days?",
			"How does sleep affect mood?",
		},
	},
	{
		triggers: []string{"exercise", "workout", "run", "gym", "active", "walk"},
		response: "Movement is one of the most reliable mood levers there is. Even a 20-minute walk counts. Aim for around 150 minutes a week and log it so your streak reflects the effort.",
		suggestions: []string{
			"How active was I this week?",
			"Easy ways to move more",
			"Best time of day to exercise?",
		},
	},
	{
		triggers: []string{"water", "drink", "hydrat", "nutrition", "eat", "food", "diet"},
		response: "Hydration and food quietly drive energy and focus. Around 8 glasses of water a day is a good baseline. Log your intake and we can see whether dry days line up with low-energy days.",
		suggestions: []string{
			"How much water should I drink?",
			"Show my hydration this week",
			"Snacks that keep energy steady",
		},
	},
}

var genericSuggestions = []string{
	"How am I doing this week?",
	"Show my current streak",
	"What should I focus on?",
	"Tips for better sleep",
}

// Respond selects the bot's reply for a user message. recent should be the
// user's most recent daily entries, newest or oldest first; only the first
// summaryWindow of them feed the fallback summary. Pure function: the same
// inputs always produce the same reply.
func Respond(text string, recent []analytics.Metrics) Reply {
	lowered := strings.ToLower(text)
	for _, g := range keywordGroups {
		for _, trigger := range g.triggers {
			if strings.Contains(lowered, trigger) {
				return Reply{Response: g.response, Suggestions: g.suggestions}
			}
		}
	}
	return Reply{Response: summarize(recent), Suggestions: genericSuggestions}
}

// summarize builds the no-match fallback from up to summaryWindow entries:
// average mood value, average sleep, and total exercise, each mapped to a
// canned phrase by threshold.
func summarize(recent []analytics.Metrics) string {
	if len(recent) == 0 {
		return "I don't have any logged days to look at yet. Once you start logging your mood, sleep, water, and exercise, I can tell you how your week is going."
	}
	if len(recent) > summaryWindow {
		recent = recent[:summaryWindow]
	}

	var moodSum, sleepSum float64
	var exerciseTotal int
	for _, m := range recent {
		moodSum += float64(analytics.MoodValue(m.Mood))
		sleepSum += m.SleepHours
		exerciseTotal += m.ExerciseMinutes
	}
	avgMood := moodSum / float64(len(recent))
	avgSleep := sleepSum / float64(len(recent))

	var b strings.Builder
	fmt.Fprintf(&b, "Here's what your last %d logged day(s) look like. ", len(recent))

	switch {
	case avgMood >= 4:
		b.WriteString("Your mood has been genuinely good lately, keep doing whatever you're doing. ")
	case avgMood <= 2:
		b.WriteString("Your mood has been on the low side. Be gentle with yourself, and consider talking to someone you trust. ")
	default:
		b.WriteString("Your mood has been holding steady. ")
	}

	switch {
	case avgSleep >= 7:
		fmt.Fprintf(&b, "You're averaging %.1f hours of sleep, which is right where you want to be. ", avgSleep)
	case avgSleep < 6:
		fmt.Fprintf(&b, "You're averaging only %.1f hours of sleep; getting closer to 7-8 would likely lift everything else. ", avgSleep)
	default:
		fmt.Fprintf(&b, "You're averaging %.1f hours of sleep, a little more wouldn't hurt. ", avgSleep)
	}

	switch {
	case exerciseTotal > 150:
		fmt.Fprintf(&b, "With %d minutes of exercise logged, you're comfortably past the weekly target. Nice work.", exerciseTotal)
	case exerciseTotal < 60:
		fmt.Fprintf(&b, "You've logged %d minutes of exercise; even short walks would move that number in the right direction.", exerciseTotal)
	default:
		fmt.Fprintf(&b, "You've logged %d minutes of exercise, a solid base to build on.", exerciseTotal)
	}

	return b.String()
}
