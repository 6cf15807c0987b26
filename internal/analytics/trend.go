package analytics

// Trend compares the mean of the later half of a series against the mean
// of the earlier half and returns the change as a signed percentage.
// Values must be in chronological order (oldest first), so a positive
// result always means the metric moved up recently. Fewer than two points,
// or an earlier-half mean of zero, yields 0.
func Trend(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mid := len(values) / 2
	earlier := mean(values[:mid])
	recent := mean(values[mid:])
	if earlier == 0 {
		return 0
	}
	return (recent - earlier) / earlier * 100
}

// Direction classifies a trend percentage for display.
func Direction(trend float64) string {
	switch {
	case trend > 5:
		return "up"
	case trend < -5:
		return "down"
	default:
		return "flat"
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
