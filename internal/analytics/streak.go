package analytics

import (
	"sort"
	"time"
)

// DayStreak counts consecutive logged calendar days ending at today or
// yesterday. Dates are normalized to midnight UTC and deduplicated, so
// multiple timestamps on the same day collapse to one. Entries dated after
// today are dropped rather than counted; a skewed client clock should not
// manufacture a streak.
func DayStreak(dates []time.Time, today time.Time) int {
	today = midnight(today)

	seen := make(map[time.Time]struct{}, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		d = midnight(d)
		if d.After(today) {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}
	if len(days) == 0 {
		return 0
	}

	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	// A streak is only alive if the user logged today or yesterday.
	if daysBetween(days[0], today) > 1 {
		return 0
	}

	streak := 0
	expected := days[0]
	for _, d := range days {
		if !d.Equal(expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak
}

func midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(earlier, later time.Time) int {
	return int(later.Sub(earlier).Hours() / 24)
}
