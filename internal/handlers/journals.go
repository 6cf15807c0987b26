package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"

	"moodlog/internal/models"
	"moodlog/internal/services"
)

// readingWPM is the assumed reading speed for the derived reading_time.
const readingWPM = 200

type JournalsHandler struct {
	db     *sqlx.DB
	encSvc *services.EncryptionService
}

func NewJournalsHandler(db *sqlx.DB, encSvc *services.EncryptionService) *JournalsHandler {
	return &JournalsHandler{db: db, encSvc: encSvc}
}

type createJournalRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (h *JournalsHandler) CreateJournal(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	var req createJournalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		http.Error(w, "invalid body; name is required", http.StatusBadRequest)
		return
	}

	var j models.Journal
	err := h.db.QueryRowx(`INSERT INTO journals (user_id, name, description) VALUES ($1, $2, $3)
	                       RETURNING id, user_id, name, description, created_at`,
		userID, strings.TrimSpace(req.Name), req.Description).StructScan(&j)
	if err != nil {
		http.Error(w, "could not create journal", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(j)
}

type journalListItem struct {
	models.Journal
	EntryCount int `db:"entry_count" json:"entry_count"`
}

func (h *JournalsHandler) ListJournals(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	rows, err := h.db.Queryx(`SELECT j.id, j.user_id, j.name, j.description, j.created_at, COUNT(e.id) AS entry_count
	                          FROM journals j
	                          LEFT JOIN journal_entries e ON e.journal_id = j.id
	                          WHERE j.user_id=$1
	                          GROUP BY j.id
	                          ORDER BY j.created_at DESC`, userID)
	if err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	defer rows.Close()
	out := []journalListItem{}
	for rows.Next() {
		var item journalListItem
		if err := rows.StructScan(&item); err == nil {
			out = append(out, item)
		}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func (h *JournalsHandler) DeleteJournal(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	journalID, err := strconv.Atoi(chi.URLParam(r, "journalID"))
	if err != nil {
		http.Error(w, "invalid journal id", http.StatusBadRequest)
		return
	}

	res, err := h.db.Exec(`DELETE FROM journals WHERE id=$1 AND user_id=$2`, journalID, userID)
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

type createJournalEntryRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Mood    *string  `json:"mood"`
	Tags    []string `json:"tags"`
}

// CreateEntry adds an entry to one of the user's journals. word_count and
// reading_time are derived here, not trusted from the client.
func (h *JournalsHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	journalID, ok := h.ownedJournal(w, r, userID)
	if !ok {
		return
	}

	var req createJournalEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		http.Error(w, "invalid body; content is required", http.StatusBadRequest)
		return
	}
	if req.Mood != nil && !validMoods[*req.Mood] {
		http.Error(w, "invalid mood; expected one of excellent, good, neutral, poor, terrible", http.StatusBadRequest)
		return
	}

	words := wordCount(req.Content)
	entry := models.JournalEntry{
		JournalID:   journalID,
		UserID:      userID,
		Title:       strings.TrimSpace(req.Title),
		Content:     req.Content,
		Mood:        req.Mood,
		WordCount:   words,
		ReadingTime: readingTime(words),
	}
	if tags := joinTags(req.Tags); tags != "" {
		entry.Tags = &tags
	}

	plaintext := entry.Content
	if err := h.encSvc.EncryptJournalEntry(&entry); err != nil {
		http.Error(w, "could not encrypt content", http.StatusInternalServerError)
		return
	}

	err := h.db.QueryRowx(`INSERT INTO journal_entries (journal_id, user_id, title, content, mood, tags, word_count, reading_time)
	                       VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	                       RETURNING id, created_at, updated_at`,
		entry.JournalID, entry.UserID, entry.Title, entry.Content, entry.Mood, entry.Tags,
		entry.WordCount, entry.ReadingTime).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		http.Error(w, "could not save entry", http.StatusInternalServerError)
		return
	}

	entry.Content = plaintext
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toJournalEntryDTO(entry))
}

func (h *JournalsHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	journalID, ok := h.ownedJournal(w, r, userID)
	if !ok {
		return
	}

	rows, err := h.db.Queryx(`SELECT id, journal_id, user_id, title, content, mood, tags, word_count, reading_time, created_at, updated_at
	                          FROM journal_entries WHERE journal_id=$1 AND user_id=$2
	                          ORDER BY created_at DESC LIMIT 100`, journalID, userID)
	if err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	defer rows.Close()
	out := []journalEntryDTO{}
	for rows.Next() {
		var e models.JournalEntry
		if err := rows.StructScan(&e); err != nil {
			continue
		}
		if err := h.encSvc.DecryptJournalEntry(&e); err != nil {
			continue
		}
		out = append(out, toJournalEntryDTO(e))
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func (h *JournalsHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	journalID, ok := h.ownedJournal(w, r, userID)
	if !ok {
		return
	}
	entryID, err := strconv.Atoi(chi.URLParam(r, "entryID"))
	if err != nil {
		http.Error(w, "invalid entry id", http.StatusBadRequest)
		return
	}

	var e models.JournalEntry
	err = h.db.Get(&e, `SELECT id, journal_id, user_id, title, content, mood, tags, word_count, reading_time, created_at, updated_at
	                    FROM journal_entries WHERE id=$1 AND journal_id=$2 AND user_id=$3`, entryID, journalID, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	if err := h.encSvc.DecryptJournalEntry(&e); err != nil {
		http.Error(w, "could not decrypt entry", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toJournalEntryDTO(e))
}

// ownedJournal parses {journalID} and verifies it belongs to the user.
// Writes the error response itself when the check fails.
func (h *JournalsHandler) ownedJournal(w http.ResponseWriter, r *http.Request, userID int) (int, bool) {
	journalID, err := strconv.Atoi(chi.URLParam(r, "journalID"))
	if err != nil {
		http.Error(w, "invalid journal id", http.StatusBadRequest)
		return 0, false
	}
	var exists bool
	if err := h.db.QueryRowx(`SELECT EXISTS (SELECT 1 FROM journals WHERE id=$1 AND user_id=$2)`, journalID, userID).Scan(&exists); err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return 0, false
	}
	if !exists {
		http.Error(w, "not found", http.StatusNotFound)
		return 0, false
	}
	return journalID, true
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

// readingTime is whole minutes at readingWPM, at least 1 for any content.
func readingTime(words int) int {
	if words == 0 {
		return 0
	}
	minutes := (words + readingWPM - 1) / readingWPM
	return minutes
}

func joinTags(tags []string) string {
	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			cleaned = append(cleaned, t)
		}
	}
	return strings.Join(cleaned, ",")
}
