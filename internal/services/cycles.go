package services

import (
	"sort"
	"time"
)

const isoDateLayout = "2006-01-02"

// CycleLengths returns the day difference between each date and its predecessor.
// Dates must already be sorted ascending.
func CycleLengths(sortedDates []time.Time) []int {
	if len(sortedDates) < 2 {
		return []int{}
	}

	lengths := make([]int, 0, len(sortedDates)-1)
	for i := 1; i < len(sortedDates); i++ {
		lengths = append(lengths, daysBetween(sortedDates[i-1], sortedDates[i]))
	}
	return lengths
}

func PositiveCycleLengths(lengths []int) []int {
	positive := make([]int, 0, len(lengths))
	for _, length := range lengths {
		if length > 0 {
			positive = append(positive, length)
		}
	}
	return positive
}

func SortDates(dates []time.Time) []time.Time {
	sorted := make([]time.Time, 0, len(dates))
	sorted = append(sorted, dates...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Before(sorted[j])
	})
	return sorted
}

func ParsePeriodDate(raw string) (time.Time, error) {
	parsed, err := time.ParseInLocation(isoDateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return dateOnly(parsed), nil
}

func FormatPeriodDate(value time.Time) string {
	return value.Format(isoDateLayout)
}

const secondsPerDay = 24 * 60 * 60

// daysBetween counts calendar days on Unix seconds; time.Duration saturates near 292 years.
func daysBetween(from time.Time, to time.Time) int {
	return int((dateOnly(to).Unix() - dateOnly(from).Unix()) / secondsPerDay)
}

func addDays(value time.Time, days int) time.Time {
	return dateOnly(value.AddDate(0, 0, days))
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
