package analytics

import (
	"math"
	"testing"
)

func TestTrend(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"empty series", nil, 0},
		{"single point", []float64{7}, 0},
		{"doubling", []float64{1, 1, 2, 2}, 100},
		{"decline", []float64{4, 4, 2, 2}, -50},
		{"flat", []float64{3, 3, 3, 3}, 0},
		{"odd length splits at midpoint", []float64{2, 2, 4, 4, 4}, 100},
		{"earlier half all zero", []float64{0, 0, 5, 5}, 0},
		{"two points", []float64{5, 10}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Trend(tt.values)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Trend(%v) = %v, want %v", tt.values, got, tt.expected)
			}
		})
	}
}

func TestDirection(t *testing.T) {
	tests := []struct {
		trend    float64
		expected string
	}{
		{10, "up"},
		{5.01, "up"},
		{5, "flat"},
		{0, "flat"},
		{-5, "flat"},
		{-5.01, "down"},
		{-40, "down"},
	}
	for _, tt := range tests {
		if got := Direction(tt.trend); got != tt.expected {
			t.Errorf("Direction(%v) = %q, want %q", tt.trend, got, tt.expected)
		}
	}
}
