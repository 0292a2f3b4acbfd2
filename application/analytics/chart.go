// Package analytics converts raw timestamped records into the derived
// numbers the admin dashboards are built from: fixed-length monthly
// series, period-over-period percentages, and ratio splits.
package analytics

import (
	"math"
	"time"
)

// TimePoint is a single timestamped contribution to a monthly series.
type TimePoint struct {
	CreatedAt time.Time
	Value     float64
}

// MonthlySeries buckets points into a trailing window of calendar
// months. Index window-1 is the month of today, index 0 is window-1
// months earlier. Points older than the window (by month-of-year
// distance) are dropped silently.
//
// Bucketing uses month-of-year only: two points exactly twelve months
// apart alias to the same bucket. Callers are expected to pre-filter
// the input to [today - window months, today] at the store layer.
func MonthlySeries(points []TimePoint, window int, today time.Time) []float64 {
	series := make([]float64, window)
	for _, p := range points {
		delta := (int(today.Month()) - int(p.CreatedAt.Month()) + 12) % 12
		if delta < window {
			series[window-delta-1] += p.Value
		}
	}
	return series
}

// CountSeries buckets bare timestamps into a trailing window of
// calendar months, counting one per record.
func CountSeries(times []time.Time, window int, today time.Time) []float64 {
	points := make([]TimePoint, len(times))
	for i, t := range times {
		points[i] = TimePoint{CreatedAt: t, Value: 1}
	}
	return MonthlySeries(points, window, today)
}

// Percentage computes the period-over-period change of curr relative to
// prev. A zero baseline is treated as a curr*100 jump rather than a
// division error; otherwise the ratio is rounded to the nearest whole
// percent.
func Percentage(curr, prev float64) float64 {
	if prev == 0 {
		return curr * 100
	}
	return math.Round(curr / prev * 100)
}

// Share computes part as a whole percentage of total, rounded. A zero
// total yields 0 rather than an invalid number.
func Share(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
