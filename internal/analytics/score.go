// Package analytics contains the pure computations behind the dashboard:
// the composite health score, the consecutive-day streak, and percentage
// trends over a recent window of entries. Nothing in this package touches
// the database or the clock; callers pass in whatever data and reference
// date they have.
package analytics

import "math"

// Component weights. They sum to 100, and each input is capped at its
// target before weighting, so the total can never leave [0, 100].
const (
	moodWeight     = 30.0
	sleepWeight    = 25.0
	exerciseWeight = 25.0
	waterWeight    = 20.0

	sleepTargetHours      = 8.0
	exerciseTargetMinutes = 120.0
	waterTargetGlasses    = 8.0
)

var moodValues = map[string]int{
	"excellent": 5,
	"good":      4,
	"neutral":   3,
	"poor":      2,
	"terrible":  1,
}

// Metrics is a snapshot of the four scored fields of a daily entry.
// Mood may be empty or unrecognized; it then counts as neutral.
type Metrics struct {
	Mood            string
	SleepHours      float64
	WaterIntake     float64
	ExerciseMinutes int
}

// MoodValue maps a mood label to its 1..5 weight, defaulting to neutral.
func MoodValue(mood string) int {
	if v, ok := moodValues[mood]; ok {
		return v
	}
	return 3
}

// Score computes the 0..100 composite health score for one day's metrics.
// The score is derived on demand and never persisted; stored rows only
// carry the raw metrics.
func Score(m Metrics) int {
	total := float64(MoodValue(m.Mood)) / 5 * moodWeight
	total += capRatio(m.SleepHours/sleepTargetHours) * sleepWeight
	total += capRatio(float64(m.ExerciseMinutes)/exerciseTargetMinutes) * exerciseWeight
	total += capRatio(m.WaterIntake/waterTargetGlasses) * waterWeight
	return int(math.Round(total))
}

func capRatio(r float64) float64 {
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}
