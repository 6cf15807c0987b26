package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"moodlog/internal/models"
)

func TestHealthEntryDTOScore(t *testing.T) {
	mood := "excellent"
	e := models.HealthEntry{
		EntryDate:       time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Mood:            &mood,
		SleepHours:      8,
		WaterIntake:     8,
		ExerciseMinutes: 120,
		UpdatedAt:       time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}
	dto := toHealthEntryDTO(e)

	assert.Equal(t, "2026-09-01", dto.EntryDate)
	assert.Equal(t, 100, dto.HealthScore)
}

func TestHealthEntryDTONilMood(t *testing.T) {
	dto := toHealthEntryDTO(models.HealthEntry{
		EntryDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	})
	// Absent mood scores as neutral: 3/5 of the 30-point mood weight.
	assert.Equal(t, 18, dto.HealthScore)
	assert.Nil(t, dto.Mood)
}
