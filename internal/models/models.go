package models

import "time"

type User struct {
	ID              int       `db:"id" json:"id"`
	Email           string    `db:"email" json:"email"`         // Encrypted in DB
	EmailBlindIndex string    `db:"email_blind_index" json:"-"` // HMAC hash for lookup
	PasswordHash    string    `db:"password_hash" json:"-"`
	FirstName       *string   `db:"first_name" json:"first_name,omitempty"`
	LastName        *string   `db:"last_name" json:"last_name,omitempty"`
	Timezone        *string   `db:"timezone" json:"timezone,omitempty"`
	IsAdmin         bool      `db:"is_admin" json:"is_admin"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// HealthEntry holds one user's logged metrics for a single calendar day.
// At most one row exists per (user_id, entry_date); saving again for the
// same date updates the row in place.
type HealthEntry struct {
	ID              int       `db:"id" json:"id"`
	UserID          int       `db:"user_id" json:"user_id"`
	EntryDate       time.Time `db:"entry_date" json:"entry_date"`
	Mood            *string   `db:"mood" json:"mood,omitempty"`
	SleepHours      float64   `db:"sleep_hours" json:"sleep_hours"`
	WaterIntake     float64   `db:"water_intake" json:"water_intake"`
	ExerciseMinutes int       `db:"exercise_minutes" json:"exercise_minutes"`
	EnergyLevel     *int      `db:"energy_level" json:"energy_level,omitempty"`
	StressLevel     *int      `db:"stress_level" json:"stress_level,omitempty"`
	Symptoms        *string   `db:"symptoms" json:"symptoms,omitempty"` // Encrypted in DB
	Notes           *string   `db:"notes" json:"notes,omitempty"`       // Encrypted in DB
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// Journal is a named container grouping a user's journal entries.
type Journal struct {
	ID          int       `db:"id" json:"id"`
	UserID      int       `db:"user_id" json:"user_id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type JournalEntry struct {
	ID          int       `db:"id" json:"id"`
	JournalID   int       `db:"journal_id" json:"journal_id"`
	UserID      int       `db:"user_id" json:"user_id"`
	Title       string    `db:"title" json:"title"`
	Content     string    `db:"content" json:"content"` // Encrypted in DB
	Mood        *string   `db:"mood" json:"mood,omitempty"`
	Tags        *string   `db:"tags" json:"tags,omitempty"` // comma-separated
	WordCount   int       `db:"word_count" json:"word_count"`
	ReadingTime int       `db:"reading_time" json:"reading_time"` // minutes
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ChatMessage is one turn in a user's conversation with the companion bot.
// The log is append-only; rows are never updated or deleted.
type ChatMessage struct {
	ID            int       `db:"id" json:"id"`
	UserID        int       `db:"user_id" json:"user_id"`
	SessionID     string    `db:"session_id" json:"session_id"`
	IsUserMessage bool      `db:"is_user_message" json:"is_user_message"`
	Content       string    `db:"content" json:"content"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
