package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"moodlog/internal/analytics"
)

type StatsHandler struct {
	db *sqlx.DB
}

func NewStatsHandler(db *sqlx.DB) *StatsHandler { return &StatsHandler{db: db} }

type metricTrend struct {
	Percent   float64 `json:"percent"`
	Direction string  `json:"direction"`
}

type scorePoint struct {
	EntryDate string `json:"entry_date"`
	Score     int    `json:"score"`
}

type statsResponse struct {
	ReferenceDate      string                 `json:"reference_date"`
	HasTodayEntry      bool                   `json:"has_today_entry"`
	TodayScore         int                    `json:"today_score"`
	WeekAverageScore   float64                `json:"week_average_score"`
	CurrentStreakDays  int                    `json:"current_streak_days"`
	EntriesThisWeek    int                    `json:"entries_this_week"`
	EntriesThisMonth   int                    `json:"entries_this_month"`
	AvgSleepHours      float64                `json:"avg_sleep_hours"`
	AvgWaterIntake     float64                `json:"avg_water_intake"`
	AvgExerciseMinutes float64                `json:"avg_exercise_minutes"`
	Trends             map[string]metricTrend `json:"trends"`
	Last7DaysScores    []scorePoint           `json:"last7_days_scores"`
}

// statsWindowDays bounds the history feeding averages and trends.
const statsWindowDays = 30

// Get aggregates everything the dashboard shows. Scores and trends are
// recomputed from raw metrics on every call; nothing derived is stored.
// Accepts optional query param: local_date=YYYY-MM-DD to use as the user's
// "today" so clients in other timezones see their own day boundaries.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int)

	refDateStr := r.URL.Query().Get("local_date")
	var refDate time.Time
	var err error
	if refDateStr == "" {
		// Use database's CURRENT_DATE as canonical reference by reading it
		if err = h.db.QueryRowx("SELECT CURRENT_DATE").Scan(&refDate); err != nil {
			http.Error(w, "could not determine current date", http.StatusInternalServerError)
			return
		}
	} else {
		refDate, err = time.Parse("2006-01-02", refDateStr)
		if err != nil {
			http.Error(w, "invalid local_date format; expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}

	// 1) Counts and raw-metric averages in a single query using FILTER
	aggQuery := `
		SELECT
			COALESCE(COUNT(*) FILTER (WHERE entry_date >= date_trunc('week', $2::timestamp)::date AND entry_date <= $2), 0) AS entries_this_week,
			COALESCE(COUNT(*) FILTER (WHERE date_trunc('month', entry_date) = date_trunc('month', $2::date)), 0) AS entries_this_month,
			COALESCE(AVG(sleep_hours) FILTER (WHERE entry_date > $2::date - 30 AND entry_date <= $2), 0) AS avg_sleep,
			COALESCE(AVG(water_intake) FILTER (WHERE entry_date > $2::date - 30 AND entry_date <= $2), 0) AS avg_water,
			COALESCE(AVG(exercise_minutes) FILTER (WHERE entry_date > $2::date - 30 AND entry_date <= $2), 0) AS avg_exercise
		FROM health_entries
		WHERE user_id = $1`

	var entriesWeek, entriesMonth int
	var avgSleep, avgWater, avgExercise float64
	if err := h.db.QueryRowx(aggQuery, userID, refDate).Scan(&entriesWeek, &entriesMonth, &avgSleep, &avgWater, &avgExercise); err != nil {
		http.Error(w, "could not fetch aggregates", http.StatusInternalServerError)
		return
	}

	// 2) Streak over all logged dates up to the reference date
	var dates []time.Time
	if err := h.db.Select(&dates, `SELECT entry_date FROM health_entries WHERE user_id=$1 AND entry_date <= $2 ORDER BY entry_date DESC LIMIT 365`, userID, refDate); err != nil {
		http.Error(w, "could not compute streak", http.StatusInternalServerError)
		return
	}
	streak := analytics.DayStreak(dates, refDate)

	// 3) Recent window, oldest first, for scores and per-metric trends
	rows, err := h.db.Queryx(`
		SELECT entry_date, mood, sleep_hours, water_intake, exercise_minutes
		FROM health_entries
		WHERE user_id=$1 AND entry_date > $2::date - $3 AND entry_date <= $2
		ORDER BY entry_date ASC`, userID, refDate, statsWindowDays)
	if err != nil {
		http.Error(w, "could not fetch recent entries", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var sleepSeries, waterSeries, exerciseSeries, moodSeries, scoreSeries []float64
	scoreByDay := map[string]int{}
	hasToday := false
	todayScore := 0
	refKey := refDate.Format("2006-01-02")
	for rows.Next() {
		var day time.Time
		var mood *string
		var m analytics.Metrics
		if err := rows.Scan(&day, &mood, &m.SleepHours, &m.WaterIntake, &m.ExerciseMinutes); err != nil {
			http.Error(w, "could not scan entries", http.StatusInternalServerError)
			return
		}
		if mood != nil {
			m.Mood = *mood
		}
		score := analytics.Score(m)

		sleepSeries = append(sleepSeries, m.SleepHours)
		waterSeries = append(waterSeries, m.WaterIntake)
		exerciseSeries = append(exerciseSeries, float64(m.ExerciseMinutes))
		moodSeries = append(moodSeries, float64(analytics.MoodValue(m.Mood)))
		scoreSeries = append(scoreSeries, float64(score))

		key := day.Format("2006-01-02")
		scoreByDay[key] = score
		if key == refKey {
			hasToday = true
			todayScore = score
		}
	}
	if err := rows.Err(); err != nil {
		http.Error(w, "could not fetch recent entries", http.StatusInternalServerError)
		return
	}

	// 4) Last 7 calendar days ending at the reference date, gap-filled
	//    with zero scores so the chart has a point per day.
	last7 := make([]scorePoint, 0, 7)
	var weekScores []float64
	for i := 6; i >= 0; i-- {
		day := refDate.AddDate(0, 0, -i)
		key := day.Format("2006-01-02")
		score, ok := scoreByDay[key]
		last7 = append(last7, scorePoint{EntryDate: key, Score: score})
		if ok {
			weekScores = append(weekScores, float64(score))
		}
	}
	weekAvg := 0.0
	if len(weekScores) > 0 {
		var sum float64
		for _, s := range weekScores {
			sum += s
		}
		weekAvg = sum / float64(len(weekScores))
	}

	trends := map[string]metricTrend{
		"sleep":    toMetricTrend(sleepSeries),
		"water":    toMetricTrend(waterSeries),
		"exercise": toMetricTrend(exerciseSeries),
		"mood":     toMetricTrend(moodSeries),
		"score":    toMetricTrend(scoreSeries),
	}

	resp := statsResponse{
		ReferenceDate:      refKey,
		HasTodayEntry:      hasToday,
		TodayScore:         todayScore,
		WeekAverageScore:   weekAvg,
		CurrentStreakDays:  streak,
		EntriesThisWeek:    entriesWeek,
		EntriesThisMonth:   entriesMonth,
		AvgSleepHours:      avgSleep,
		AvgWaterIntake:     avgWater,
		AvgExerciseMinutes: avgExercise,
		Trends:             trends,
		Last7DaysScores:    last7,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func toMetricTrend(series []float64) metricTrend {
	pct := analytics.Trend(series)
	return metricTrend{Percent: pct, Direction: analytics.Direction(pct)}
}
