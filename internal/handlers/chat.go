package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"moodlog/internal/analytics"
	"moodlog/internal/chatbot"
	"moodlog/internal/models"
)

// maxChatMessageLen caps a single user turn.
const maxChatMessageLen = 2000

type ChatHandler struct {
	db *sqlx.DB
}

func NewChatHandler(db *sqlx.DB) *ChatHandler {
	return &ChatHandler{db: db}
}

type sendMessageRequest struct {
	SessionID string `json:"session_id"` // optional; a new session is started when absent
	Message   string `json:"message"`
}

type sendMessageResponse struct {
	SessionID   string   `json:"session_id"`
	Response    string   `json:"response"`
	Suggestions []string `json:"suggestions"`
}

// SendMessage appends the user's turn, selects the bot's reply from the
// user's recent entries, appends the bot's turn, and returns the reply.
// Both turns land in the append-only chat_messages log.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}
	if len(req.Message) > maxChatMessageLen {
		http.Error(w, "message too long", http.StatusBadRequest)
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	} else if _, err := uuid.Parse(sessionID); err != nil {
		http.Error(w, "invalid session_id", http.StatusBadRequest)
		return
	}

	if _, err := h.db.Exec(`INSERT INTO chat_messages (user_id, session_id, is_user_message, content) VALUES ($1, $2, true, $3)`,
		userID, sessionID, req.Message); err != nil {
		http.Error(w, "could not save message", http.StatusInternalServerError)
		return
	}

	recent, err := h.recentMetrics(userID)
	if err != nil {
		http.Error(w, "could not load recent entries", http.StatusInternalServerError)
		return
	}
	reply := chatbot.Respond(req.Message, recent)

	if _, err := h.db.Exec(`INSERT INTO chat_messages (user_id, session_id, is_user_message, content) VALUES ($1, $2, false, $3)`,
		userID, sessionID, reply.Response); err != nil {
		http.Error(w, "could not save reply", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sendMessageResponse{
		SessionID:   sessionID,
		Response:    reply.Response,
		Suggestions: reply.Suggestions,
	})
}

// History returns a session's messages oldest first, the order the client
// renders them on load.
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}
	if _, err := uuid.Parse(sessionID); err != nil {
		http.Error(w, "invalid session_id", http.StatusBadRequest)
		return
	}

	rows, err := h.db.Queryx(`SELECT id, user_id, session_id, is_user_message, content, created_at
	                          FROM chat_messages WHERE user_id=$1 AND session_id=$2
	                          ORDER BY created_at ASC, id ASC LIMIT 200`, userID, sessionID)
	if err != nil {
		http.Error(w, "could not fetch", http.StatusInternalServerError)
		return
	}
	defer rows.Close()
	out := []models.ChatMessage{}
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.StructScan(&m); err == nil {
			out = append(out, m)
		}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// recentMetrics loads the user's last 7 daily entries, newest first, for
// the bot's fallback summary.
func (h *ChatHandler) recentMetrics(userID int) ([]analytics.Metrics, error) {
	rows, err := h.db.Queryx(`SELECT mood, sleep_hours, water_intake, exercise_minutes
	                          FROM health_entries WHERE user_id=$1
	                          ORDER BY entry_date DESC LIMIT 7`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []analytics.Metrics
	for rows.Next() {
		var mood *string
		var m analytics.Metrics
		if err := rows.Scan(&mood, &m.SleepHours, &m.WaterIntake, &m.ExerciseMinutes); err != nil {
			return nil, err
		}
		if mood != nil {
			m.Mood = *mood
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
