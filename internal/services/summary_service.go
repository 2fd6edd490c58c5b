package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type ChartPayload struct {
	Labels []string `json:"labels" yaml:"labels"`
	Values []int    `json:"values" yaml:"values"`
}

type Summary struct {
	Dates          []string           `json:"dates" yaml:"dates"`
	Today          string             `json:"today" yaml:"today"`
	LatestRecorded string             `json:"latest_recorded,omitempty" yaml:"latest_recorded,omitempty"`
	WindowAnchor   string             `json:"window_anchor,omitempty" yaml:"window_anchor,omitempty"`
	PredictedNext  *string            `json:"predicted_next" yaml:"predicted_next"`
	AverageCycle   *int               `json:"average_cycle" yaml:"average_cycle"`
	Windows        *CycleWindows      `json:"windows" yaml:"windows"`
	Alert          *IrregularityAlert `json:"irregularity_alert" yaml:"irregularity_alert"`
	Chart          ChartPayload       `json:"chart" yaml:"chart"`
}

type SummaryService struct {
	store PeriodStore
}

func NewSummaryService(store PeriodStore) *SummaryService {
	return &SummaryService{store: store}
}

// Record validates raw as a calendar date and appends its canonical form.
func (service *SummaryService) Record(ctx context.Context, raw string) (string, error) {
	day, err := ParsePeriodDate(strings.TrimSpace(raw))
	if err != nil {
		return "", &ValidationError{Input: raw, Err: err}
	}

	isoDate := FormatPeriodDate(day)
	if err := service.store.Append(ctx, isoDate); err != nil {
		return "", wrapStoreError("append", err)
	}
	return isoDate, nil
}

// Summarize rereads the whole store and derives every value from scratch.
func (service *SummaryService) Summarize(ctx context.Context, now time.Time) (Summary, error) {
	records, err := service.store.List(ctx)
	if err != nil {
		return Summary{}, wrapStoreError("list", err)
	}

	dates := StripHeaderRow(records)
	summary := Summary{
		Dates: dates,
		Today: FormatPeriodDate(dateOnly(now)),
		Chart: ChartPayload{Labels: chartLabels(dates), Values: []int{}},
	}
	if len(dates) < 2 {
		return summary, nil
	}

	parsed := make([]time.Time, 0, len(dates))
	for _, raw := range dates {
		day, err := ParsePeriodDate(strings.TrimSpace(raw))
		if err != nil {
			return Summary{}, &StoreError{Op: "parse", Err: fmt.Errorf("stored date %q: %w", raw, err)}
		}
		parsed = append(parsed, day)
	}

	sorted := SortDates(parsed)
	lengths := CycleLengths(sorted)
	summary.Chart.Values = lengths

	average, hasAverage := AverageCycleLength(PositiveCycleLengths(lengths))
	if hasAverage {
		latestSorted := sorted[len(sorted)-1]
		// Windows follow the last submitted entry, not the latest calendar date.
		anchor := parsed[len(parsed)-1]
		predicted := FormatPeriodDate(PredictNextPeriod(latestSorted, average))
		windows := PredictCycleWindows(anchor, average)

		summary.AverageCycle = &average
		summary.PredictedNext = &predicted
		summary.Windows = &windows
		summary.LatestRecorded = FormatPeriodDate(latestSorted)
		summary.WindowAnchor = FormatPeriodDate(anchor)
	}

	summary.Alert = DetectIrregularity(lengths[len(lengths)-1], average, hasAverage)
	return summary, nil
}

func chartLabels(dates []string) []string {
	if len(dates) < 2 {
		return []string{}
	}
	labels := make([]string, len(dates)-1)
	copy(labels, dates[1:])
	return labels
}

type dateRangePayload struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

func (r DateRange) payload() dateRangePayload {
	start, end := r.Strings()
	return dateRangePayload{Start: start, End: end}
}

func (r DateRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.payload())
}

func (r DateRange) MarshalYAML() (any, error) {
	return r.payload(), nil
}

type cycleWindowsPayload struct {
	SafeBefore DateRange `json:"safe_before" yaml:"safe_before"`
	Fertile    DateRange `json:"fertile" yaml:"fertile"`
	SafeAfter  DateRange `json:"safe_after" yaml:"safe_after"`
	Degenerate bool      `json:"degenerate" yaml:"degenerate"`
}

func (w CycleWindows) MarshalJSON() ([]byte, error) {
	return json.Marshal(cycleWindowsPayload(w))
}

func (w CycleWindows) MarshalYAML() (any, error) {
	return cycleWindowsPayload(w), nil
}
