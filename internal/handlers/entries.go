package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"

	"moodlog/internal/models"
	"moodlog/internal/services"
)

type EntriesHandler struct {
	db     *sqlx.DB
	encSvc *services.EncryptionService
}

func NewEntriesHandler(db *sqlx.DB, encSvc *services.EncryptionService) *EntriesHandler {
	return &EntriesHandler{db: db, encSvc: encSvc}
}

var validMoods = map[string]bool{
	"excellent": true,
	"good":      true,
	"neutral":   true,
	"poor":      true,
	"terrible":  true,
}

type entryRequest struct {
	EntryDate       string  `json:"entry_date"` // YYYY-MM-DD provided by frontend
	Mood            *string `json:"mood"`
	SleepHours      float64 `json:"sleep_hours"`
	WaterIntake     float64 `json:"water_intake"`
	ExerciseMinutes int     `json:"exercise_minutes"`
	EnergyLevel     *int    `json:"energy_level"`
	StressLevel     *int    `json:"stress_level"`
	Symptoms        *string `json:"symptoms"`
	Notes           *string `json:"notes"`
}

// validate checks field domains at the ingestion boundary and returns the
// parsed entry date. A non-empty second return is the client error message.
func (req *entryRequest) validate() (time.Time, string) {
	if req.EntryDate == "" {
		return time.Time{}, "entry_date is required"
	}
	date, err := time.Parse("2006-01-02", req.EntryDate)
	if err != nil {
		return time.Time{}, "invalid entry_date format; expected YYYY-MM-DD"
	}
	if req.Mood != nil && !validMoods[*req.Mood] {
		return time.Time{}, "invalid mood; expected one of excellent, good, neutral, poor, terrible"
	}
	if req.SleepHours < 0 || req.SleepHours > 24 {
		return time.Time{}, "sleep_hours must be between 0 and 24"
	}
	if req.WaterIntake < 0 {
		return time.Time{}, "water_intake must be non-negative"
	}
	if req.ExerciseMinutes < 0 {
		return time.Time{}, "exercise_minutes must be non-negative"
	}
	if req.EnergyLevel != nil && (*req.EnergyLevel < 1 || *req.EnergyLevel > 10) {
		return time.Time{}, "energy_level must be between 1 and 10"
	}
	if req.StressLevel != nil && (*req.StressLevel < 1 || *req.StressLevel > 10) {
		return time.Time{}, "stress_level must be between 1 and 10"
	}
	return date, ""
}

// UpsertEntry creates the day's entry or updates it in place when one
// already exists for (user, entry_date). There is no history: the row for
// a date always holds the latest save.
func (h *EntriesHandler) UpsertEntry(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	entryDate, errMsg := req.validate()
	if errMsg != "" {
		http.Error(w, errMsg, http.StatusBadRequest)
		return
	}

	entry := models.HealthEntry{Symptoms: req.Symptoms, Notes: req.Notes}
	if err := h.encSvc.EncryptHealthEntry(&entry); err != nil {
		http.Error(w, "could not encrypt entry", http.StatusInternalServerError)
		return
	}

	var isInsert bool
	err := h.db.QueryRow(`INSERT INTO health_entries (user_id, entry_date, mood, sleep_hours, water_intake, exercise_minutes, energy_level, stress_level, symptoms, notes, updated_at)
	                       VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
	                       ON CONFLICT (user_id, entry_date)
	                       DO UPDATE SET
	                         mood = EXCLUDED.mood,
	                         sleep_hours = EXCLUDED.sleep_hours,
	                         water_intake = EXCLUDED.water_intake,
	                         exercise_minutes = EXCLUDED.exercise_minutes,
	                         energy_level = EXCLUDED.energy_level,
	                         stress_level = EXCLUDED.stress_level,
	                         symptoms = EXCLUDED.symptoms,
	                         notes = EXCLUDED.notes,
	                         updated_at = NOW()
	                       RETURNING (xmax = 0)`,
		userID, entryDate, req.Mood, req.SleepHours, req.WaterIntake, req.ExerciseMinutes,
		req.EnergyLevel, req.StressLevel, entry.Symptoms, entry.Notes).Scan(&isInsert)
	if err != nil {
		http.Error(w, "could not save", http.StatusInternalServerError)
		return
	}

	saved := models.HealthEntry{
		EntryDate:       entryDate,
		Mood:            req.Mood,
		SleepHours:      req.SleepHours,
		WaterIntake:     req.WaterIntake,
		ExerciseMinutes: req.ExerciseMinutes,
		EnergyLevel:     req.EnergyLevel,
		StressLevel:     req.StressLevel,
		Symptoms:        req.Symptoms,
		Notes:           req.Notes,
		UpdatedAt:       time.Now().UTC(),
	}
	response := map[string]interface{}{
		"message":   "Entry saved successfully",
		"is_update": !isInsert,
		"entry":     toHealthEntryDTO(saved),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *EntriesHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	// Optional query params: start_date, end_date (YYYY-MM-DD)
	q := r.URL.Query()
	startDateStr := q.Get("start_date")
	endDateStr := q.Get("end_date")

	where := "WHERE user_id=$1"
	args := []interface{}{userID}

	if startDateStr != "" {
		startDate, err := time.Parse("2006-01-02", startDateStr)
		if err != nil {
			http.Error(w, "invalid start_date format; expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		args = append(args, startDate)
		where += fmt.Sprintf(" AND entry_date >= $%d", len(args))
	}

	if endDateStr != "" {
		endDate, err := time.Parse("2006-01-02", endDateStr)
		if err != nil {
			http.Error(w, "invalid end_date format; expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		args = append(args, endDate)
		where += fmt.Sprintf(" AND entry_date <= $%d", len(args))
	}

	query := `SELECT id, user_id, entry_date, mood, sleep_hours, water_intake, exercise_minutes, energy_level, stress_level, symptoms, notes, created_at, updated_at
	          FROM health_entries ` + where + ` ORDER BY entry_date DESC LIMIT 100`
	rows, err := h.db.Queryx(query, args...)
	if err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	defer rows.Close()
	out := []healthEntryDTO{}
	for rows.Next() {
		var e models.HealthEntry
		if err := rows.StructScan(&e); err != nil {
			continue
		}
		if err := h.encSvc.DecryptHealthEntry(&e); err != nil {
			continue
		}
		out = append(out, toHealthEntryDTO(e))
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// GetByDate returns the single entry for a date, 404 when none exists.
func (h *EntriesHandler) GetByDate(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	date, err := time.Parse("2006-01-02", chi.URLParam(r, "date"))
	if err != nil {
		http.Error(w, "invalid date format; expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	var e models.HealthEntry
	err = h.db.Get(&e, `SELECT id, user_id, entry_date, mood, sleep_hours, water_intake, exercise_minutes, energy_level, stress_level, symptoms, notes, created_at, updated_at
	                    FROM health_entries WHERE user_id=$1 AND entry_date=$2`, userID, date)
	if err != nil {
		if err == sql.ErrNoRows {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	if err := h.encSvc.DecryptHealthEntry(&e); err != nil {
		http.Error(w, "could not decrypt entry", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toHealthEntryDTO(e))
}

// Delete removes the entry for a date (YYYY-MM-DD)
func (h *EntriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	date, err := time.Parse("2006-01-02", chi.URLParam(r, "date"))
	if err != nil {
		http.Error(w, "invalid date format; expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	res, err := h.db.Exec(`DELETE FROM health_entries WHERE user_id = $1 AND entry_date = $2`, userID, date)
	if err != nil {
		http.Error(w, "could not delete", http.StatusInternalServerError)
		return
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
