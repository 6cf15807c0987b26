package handlers

import (
	"strings"
	"time"

	"moodlog/internal/analytics"
	"moodlog/internal/models"
)

type userDTO struct {
	ID        int     `json:"id"`
	Email     string  `json:"email"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Timezone  *string `json:"timezone,omitempty"`
	IsAdmin   bool    `json:"is_admin"`
	CreatedAt string  `json:"created_at"`
}

func toUserDTO(u models.User) userDTO {
	return userDTO{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Timezone:  u.Timezone,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// healthEntryDTO carries the stored metrics plus the derived score. The
// score is recomputed from raw fields on every read and never persisted.
type healthEntryDTO struct {
	EntryDate       string  `json:"entry_date"`
	Mood            *string `json:"mood,omitempty"`
	SleepHours      float64 `json:"sleep_hours"`
	WaterIntake     float64 `json:"water_intake"`
	ExerciseMinutes int     `json:"exercise_minutes"`
	EnergyLevel     *int    `json:"energy_level,omitempty"`
	StressLevel     *int    `json:"stress_level,omitempty"`
	Symptoms        *string `json:"symptoms,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	HealthScore     int     `json:"health_score"`
	UpdatedAt       string  `json:"updated_at"`
}

func toHealthEntryDTO(e models.HealthEntry) healthEntryDTO {
	return healthEntryDTO{
		EntryDate:       e.EntryDate.Format("2006-01-02"),
		Mood:            e.Mood,
		SleepHours:      e.SleepHours,
		WaterIntake:     e.WaterIntake,
		ExerciseMinutes: e.ExerciseMinutes,
		EnergyLevel:     e.EnergyLevel,
		StressLevel:     e.StressLevel,
		Symptoms:        e.Symptoms,
		Notes:           e.Notes,
		HealthScore:     analytics.Score(entryMetrics(e)),
		UpdatedAt:       e.UpdatedAt.Format(time.RFC3339),
	}
}

func entryMetrics(e models.HealthEntry) analytics.Metrics {
	m := analytics.Metrics{
		SleepHours:      e.SleepHours,
		WaterIntake:     e.WaterIntake,
		ExerciseMinutes: e.ExerciseMinutes,
	}
	if e.Mood != nil {
		m.Mood = *e.Mood
	}
	return m
}

type journalEntryDTO struct {
	ID          int      `json:"id"`
	JournalID   int      `json:"journal_id"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Mood        *string  `json:"mood,omitempty"`
	Tags        []string `json:"tags"`
	WordCount   int      `json:"word_count"`
	ReadingTime int      `json:"reading_time"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

func toJournalEntryDTO(e models.JournalEntry) journalEntryDTO {
	var tags []string
	if e.Tags != nil && *e.Tags != "" {
		tags = strings.Split(*e.Tags, ",")
	}
	if tags == nil {
		tags = []string{}
	}
	return journalEntryDTO{
		ID:          e.ID,
		JournalID:   e.JournalID,
		Title:       e.Title,
		Content:     e.Content,
		Mood:        e.Mood,
		Tags:        tags,
		WordCount:   e.WordCount,
		ReadingTime: e.ReadingTime,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   e.UpdatedAt.Format(time.RFC3339),
	}
}
