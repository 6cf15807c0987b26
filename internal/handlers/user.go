package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"

	"moodlog/internal/models"
	"moodlog/internal/services"
)

type UserHandler struct {
	db     *sqlx.DB
	encSvc *services.EncryptionService
}

func NewUserHandler(db *sqlx.DB, encSvc *services.EncryptionService) *UserHandler {
	return &UserHandler{db: db, encSvc: encSvc}
}

// GetMe returns the current user's profile
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	var u models.User
	if err := h.db.Get(&u, `SELECT id, email, email_blind_index, password_hash, first_name, last_name, timezone, is_admin, created_at FROM users WHERE id=$1`, userID); err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err := h.encSvc.DecryptUser(&u); err != nil {
		http.Error(w, "could not decrypt user data", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toUserDTO(u))
}

// UpdateMe updates provided fields on the current user's profile
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	var body struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Timezone  *string `json:"timezone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	// Build dynamic update
	setClauses := []string{}
	args := []interface{}{}
	argIdx := 1
	if body.FirstName != nil {
		setClauses = append(setClauses, "first_name=$"+itoa(argIdx))
		args = append(args, *body.FirstName)
		argIdx++
	}
	if body.LastName != nil {
		setClauses = append(setClauses, "last_name=$"+itoa(argIdx))
		args = append(args, *body.LastName)
		argIdx++
	}
	if body.Timezone != nil {
		setClauses = append(setClauses, "timezone=$"+itoa(argIdx))
		args = append(args, *body.Timezone)
		argIdx++
	}
	if len(setClauses) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	query := "UPDATE users SET " + join(setClauses, ", ") + " WHERE id=$" + itoa(argIdx)
	args = append(args, userID)
	if _, err := h.db.Exec(query, args...); err != nil {
		http.Error(w, "could not update", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Minimal helpers to avoid bringing another package just for this
func itoa(i int) string { return fmt.Sprintf("%d", i) }
func join(parts []string, sep string) string {
	if len(parts) == 0 {
		return ""
	}
	out := parts[0]
	for i := 1; i < len(parts); i++ {
		out += sep + parts[i]
	}
	return out
}
