package services

import (
	"fmt"
	"strings"
	"time"
)

type CycleHistoryEntry struct {
	StartDate string
	// CycleLength is the gap to the previous start; zero for the first entry.
	CycleLength int
	First       bool
}

// BuildCycleHistory orders stored dates chronologically and pairs each with
// the length of the cycle that ended on it.
func BuildCycleHistory(dates []string) ([]CycleHistoryEntry, error) {
	parsed := make([]time.Time, 0, len(dates))
	for _, raw := range StripHeaderRow(dates) {
		day, err := ParsePeriodDate(strings.TrimSpace(raw))
		if err != nil {
			return nil, &StoreError{Op: "parse", Err: fmt.Errorf("stored date %q: %w", raw, err)}
		}
		parsed = append(parsed, day)
	}

	sorted := SortDates(parsed)
	lengths := CycleLengths(sorted)

	entries := make([]CycleHistoryEntry, 0, len(sorted))
	for i, day := range sorted {
		entry := CycleHistoryEntry{StartDate: FormatPeriodDate(day), First: i == 0}
		if i > 0 {
			entry.CycleLength = lengths[i-1]
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
