package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSendMessageRejectsEmptyMessage(t *testing.T) {
	h := NewChatHandler(nil)

	rec := httptest.NewRecorder()
	h.SendMessage(rec, authedRequest(http.MethodPost, "/api/chat/messages", `{"message":"  "}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "message is required")
}

func TestSendMessageRejectsOversizedMessage(t *testing.T) {
	h := NewChatHandler(nil)

	body := `{"message":"` + strings.Repeat("a", maxChatMessageLen+1) + `"}`
	rec := httptest.NewRecorder()
	h.SendMessage(rec, authedRequest(http.MethodPost, "/api/chat/messages", body))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "message too long")
}

func TestSendMessageRejectsBadSessionID(t *testing.T) {
	h := NewChatHandler(nil)

	rec := httptest.NewRecorder()
	h.SendMessage(rec, authedRequest(http.MethodPost, "/api/chat/messages", `{"message":"hi","session_id":"not-a-uuid"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid session_id")
}

func TestHistoryRequiresSessionID(t *testing.T) {
	h := NewChatHandler(nil)

	rec := httptest.NewRecorder()
	h.History(rec, authedRequest(http.MethodGet, "/api/chat/messages", ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.History(rec, authedRequest(http.MethodGet, "/api/chat/messages?session_id=garbage", ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
