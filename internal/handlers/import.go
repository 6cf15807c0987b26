package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"

	"moodlog/internal/models"
	"moodlog/internal/services"
)

type ImportHandler struct {
	db     *sqlx.DB
	encSvc *services.EncryptionService
}

func NewImportHandler(db *sqlx.DB, encSvc *services.EncryptionService) *ImportHandler {
	return &ImportHandler{db: db, encSvc: encSvc}
}

type importProfile struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Timezone  *string `json:"timezone"`
}

type importRequest struct {
	Entries []entryRequest `json:"entries"`
	Profile *importProfile `json:"profile"`
}

// ImportData bulk-upserts health entries (and optionally profile fields)
// for the authenticated user, e.g. when migrating from the app's offline
// guest mode. All-or-nothing: any invalid entry aborts the transaction.
func (h *ImportHandler) ImportData(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)

	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if len(req.Entries) == 0 && req.Profile == nil {
		http.Error(w, "no entries or profile data provided", http.StatusBadRequest)
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		http.Error(w, "could not start transaction", http.StatusInternalServerError)
		return
	}
	defer tx.Rollback() // Rollback on any error.

	if req.Profile != nil {
		setClauses := []string{}
		args := []interface{}{}
		argIdx := 1

		if req.Profile.FirstName != nil {
			setClauses = append(setClauses, fmt.Sprintf("first_name=$%d", argIdx))
			args = append(args, *req.Profile.FirstName)
			argIdx++
		}
		if req.Profile.LastName != nil {
			setClauses = append(setClauses, fmt.Sprintf("last_name=$%d", argIdx))
			args = append(args, *req.Profile.LastName)
			argIdx++
		}
		if req.Profile.Timezone != nil {
			setClauses = append(setClauses, fmt.Sprintf("timezone=$%d", argIdx))
			args = append(args, *req.Profile.Timezone)
			argIdx++
		}

		if len(setClauses) > 0 {
			query := "UPDATE users SET " + strings.Join(setClauses, ", ") + fmt.Sprintf(" WHERE id=$%d", argIdx)
			args = append(args, userID)
			if _, err := tx.Exec(query, args...); err != nil {
				http.Error(w, "could not update user profile", http.StatusInternalServerError)
				return
			}
		}
	}

	imported := 0
	if len(req.Entries) > 0 {
		stmt, err := tx.Prepare(`INSERT INTO health_entries (user_id, entry_date, mood, sleep_hours, water_intake, exercise_minutes, energy_level, stress_level, symptoms, notes, updated_at)
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
								   updated_at = NOW()`)
		if err != nil {
			http.Error(w, "could not prepare statement", http.StatusInternalServerError)
			return
		}
		defer stmt.Close()

		for i := range req.Entries {
			entry := &req.Entries[i]
			entryDate, errMsg := entry.validate()
			if errMsg != "" {
				http.Error(w, fmt.Sprintf("entry %s: %s", entry.EntryDate, errMsg), http.StatusBadRequest)
				return
			}

			enc := models.HealthEntry{Symptoms: entry.Symptoms, Notes: entry.Notes}
			if err := h.encSvc.EncryptHealthEntry(&enc); err != nil {
				http.Error(w, "could not encrypt entry", http.StatusInternalServerError)
				return
			}

			if _, err := stmt.Exec(userID, entryDate, entry.Mood, entry.SleepHours, entry.WaterIntake,
				entry.ExerciseMinutes, entry.EnergyLevel, entry.StressLevel, enc.Symptoms, enc.Notes); err != nil {
				http.Error(w, "could not save entry", http.StatusInternalServerError)
				return
			}
			imported++
		}
	}

	if err := tx.Commit(); err != nil {
		http.Error(w, "could not commit transaction", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":          "Data imported successfully",
		"entries_imported": imported,
	})
}
