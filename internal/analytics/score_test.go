package analytics

import "testing"

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		metrics  Metrics
		expected int
	}{
		{"all targets met", Metrics{Mood: "excellent", SleepHours: 8, ExerciseMinutes: 120, WaterIntake: 8}, 100},
		{"zero value defaults to neutral mood only", Metrics{}, 18},
		{"excess inputs are capped", Metrics{Mood: "excellent", SleepHours: 14, ExerciseMinutes: 600, WaterIntake: 20}, 100},
		{"unrecognized mood counts as neutral", Metrics{Mood: "fantastic"}, 18},
		{"terrible mood only", Metrics{Mood: "terrible"}, 6},
		{"half sleep half water", Metrics{Mood: "neutral", SleepHours: 4, WaterIntake: 4}, 41},
		{"good mood with full sleep", Metrics{Mood: "good", SleepHours: 8}, 49},
		{"negative inputs coerced to zero", Metrics{SleepHours: -3, WaterIntake: -1, ExerciseMinutes: -10}, 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.metrics); got != tt.expected {
				t.Errorf("Score(%+v) = %d, want %d", tt.metrics, got, tt.expected)
			}
		})
	}
}

func TestScoreBounds(t *testing.T) {
	moods := []string{"excellent", "good", "neutral", "poor", "terrible", "", "???"}
	sleeps := []float64{0, 4, 8, 16, 24}
	exercises := []int{0, 30, 120, 1000}
	waters := []float64{0, 2, 8, 15}

	for _, mood := range moods {
		for _, sleep := range sleeps {
			for _, ex := range exercises {
				for _, water := range waters {
					m := Metrics{Mood: mood, SleepHours: sleep, ExerciseMinutes: ex, WaterIntake: water}
					got := Score(m)
					if got < 0 || got > 100 {
						t.Fatalf("Score(%+v) = %d, out of [0, 100]", m, got)
					}
				}
			}
		}
	}
}

func TestScoreIdempotent(t *testing.T) {
	m := Metrics{Mood: "good", SleepHours: 6.5, ExerciseMinutes: 45, WaterIntake: 5}
	first := Score(m)
	for i := 0; i < 10; i++ {
		if got := Score(m); got != first {
			t.Fatalf("Score not stable: first %d, then %d", first, got)
		}
	}
}

func TestMoodValue(t *testing.T) {
	tests := []struct {
		mood     string
		expected int
	}{
		{"excellent", 5},
		{"good", 4},
		{"neutral", 3},
		{"poor", 2},
		{"terrible", 1},
		{"", 3},
		{"meh", 3},
	}
	for _, tt := range tests {
		if got := MoodValue(tt.mood); got != tt.expected {
			t.Errorf("MoodValue(%q) = %d, want %d", tt.mood, got, tt.expected)
		}
	}
}
