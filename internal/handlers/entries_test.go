package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moodlog/internal/services"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func testEncSvc(t *testing.T) *services.EncryptionService {
	t.Helper()
	svc, err := services.NewEncryptionService([]byte(strings.Repeat("e", 32)), []byte(strings.Repeat("b", 32)))
	require.NoError(t, err)
	return svc
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(context.WithValue(req.Context(), "userID", 1))
}

func TestEntryRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     entryRequest
		wantErr string
	}{
		{"valid minimal", entryRequest{EntryDate: "2026-09-01"}, ""},
		{"valid full", entryRequest{EntryDate: "2026-09-01", Mood: strPtr("good"), SleepHours: 7.5, WaterIntake: 6, ExerciseMinutes: 45, EnergyLevel: intPtr(7), StressLevel: intPtr(3)}, ""},
		{"missing date", entryRequest{}, "entry_date is required"},
		{"bad date format", entryRequest{EntryDate: "09/01/2026"}, "invalid entry_date format; expected YYYY-MM-DD"},
		{"unknown mood", entryRequest{EntryDate: "2026-09-01", Mood: strPtr("meh")}, "invalid mood; expected one of excellent, good, neutral, poor, terrible"},
		{"sleep too high", entryRequest{EntryDate: "2026-09-01", SleepHours: 25}, "sleep_hours must be between 0 and 24"},
		{"negative sleep", entryRequest{EntryDate: "2026-09-01", SleepHours: -1}, "sleep_hours must be between 0 and 24"},
		{"negative water", entryRequest{EntryDate: "2026-09-01", WaterIntake: -2}, "water_intake must be non-negative"},
		{"negative exercise", entryRequest{EntryDate: "2026-09-01", ExerciseMinutes: -5}, "exercise_minutes must be non-negative"},
		{"energy out of range", entryRequest{EntryDate: "2026-09-01", EnergyLevel: intPtr(11)}, "energy_level must be between 1 and 10"},
		{"stress out of range", entryRequest{EntryDate: "2026-09-01", StressLevel: intPtr(0)}, "stress_level must be between 1 and 10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, errMsg := tt.req.validate()
			assert.Equal(t, tt.wantErr, errMsg)
			if tt.wantErr == "" {
				assert.Equal(t, tt.req.EntryDate, date.Format("2006-01-02"))
			}
		})
	}
}

func TestUpsertEntryRejectsInvalidBody(t *testing.T) {
	h := NewEntriesHandler(nil, testEncSvc(t))

	rec := httptest.NewRecorder()
	h.UpsertEntry(rec, authedRequest(http.MethodPut, "/api/entries", "{not json"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.UpsertEntry(rec, authedRequest(http.MethodPut, "/api/entries", `{"entry_date":"2026-09-01","mood":"meh"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid mood")
}

func TestListRejectsBadDateFilters(t *testing.T) {
	h := NewEntriesHandler(nil, testEncSvc(t))

	rec := httptest.NewRecorder()
	h.List(rec, authedRequest(http.MethodGet, "/api/entries?start_date=nope", ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.List(rec, authedRequest(http.MethodGet, "/api/entries?end_date=2026-13-99", ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
