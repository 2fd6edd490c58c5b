package services

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"
)

type stubPeriodStore struct {
	records   []string
	listErr   error
	appendErr error
	appended  []string
}

func (stub *stubPeriodStore) Append(_ context.Context, isoDate string) error {
	if stub.appendErr != nil {
		return stub.appendErr
	}
	stub.appended = append(stub.appended, isoDate)
	stub.records = append(stub.records, isoDate)
	return nil
}

func (stub *stubPeriodStore) List(context.Context) ([]string, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	result := make([]string, len(stub.records))
	copy(result, stub.records)
	return result, nil
}

var summaryNow = time.Date(2024, time.February, 3, 18, 30, 0, 0, time.UTC)

func TestSummarizeRegularHistory(t *testing.T) {
	store := &stubPeriodStore{records: []string{"start_date", "2023-12-04", "2023-11-06", "2024-01-01"}}
	service := NewSummaryService(store)

	summary, err := service.Summarize(context.Background(), summaryNow)
	if err != nil {
		t.Fatalf("Summarize() unexpected error: %v", err)
	}

	if !reflect.DeepEqual(summary.Dates, []string{"2023-12-04", "2023-11-06", "2024-01-01"}) {
		t.Fatalf("expected header to be stripped, got %v", summary.Dates)
	}
	if summary.Today != "2024-02-03" {
		t.Fatalf("expected today 2024-02-03, got %s", summary.Today)
	}
	if summary.AverageCycle == nil || *summary.AverageCycle != 28 {
		t.Fatalf("expected average cycle 28, got %v", summary.AverageCycle)
	}
	if summary.PredictedNext == nil || *summary.PredictedNext != "2024-01-29" {
		t.Fatalf("expected predicted next 2024-01-29, got %v", summary.PredictedNext)
	}
	if summary.Windows == nil {
		t.Fatal("expected windows to be computed")
	}
	assertRange(t, "fertile", summary.Windows.Fertile, "2024-01-10", "2024-01-15")
	if summary.Alert != nil {
		t.Fatalf("expected no alert, got %#v", summary.Alert)
	}
	if !reflect.DeepEqual(summary.Chart.Labels, []string{"2023-11-06", "2024-01-01"}) {
		t.Fatalf("unexpected chart labels %v", summary.Chart.Labels)
	}
	if !reflect.DeepEqual(summary.Chart.Values, []int{28, 28}) {
		t.Fatalf("unexpected chart values %v", summary.Chart.Values)
	}
}

func TestSummarizeAnchorsWindowsOnLastSubmittedDate(t *testing.T) {
	store := &stubPeriodStore{records: []string{"2024-01-01", "2024-01-29", "2023-12-04"}}
	summary, err := NewSummaryService(store).Summarize(context.Background(), summaryNow)
	if err != nil {
		t.Fatalf("Summarize() unexpected error: %v", err)
	}

	if summary.PredictedNext == nil || *summary.PredictedNext != "2024-02-26" {
		t.Fatalf("expected prediction from latest calendar date, got %v", summary.PredictedNext)
	}
	if summary.WindowAnchor != "2023-12-04" || summary.LatestRecorded != "2024-01-29" {
		t.Fatalf("unexpected anchors: window=%s latest=%s", summary.WindowAnchor, summary.LatestRecorded)
	}
	assertRange(t, "safe before", summary.Windows.SafeBefore, "2023-12-04", "2023-12-12")
}

func TestSummarizeWithFewerThanTwoDates(t *testing.T) {
	for _, records := range [][]string{nil, {"START_DATE"}, {"2024-01-01"}} {
		summary, err := NewSummaryService(&stubPeriodStore{records: records}).Summarize(context.Background(), summaryNow)
		if err != nil {
			t.Fatalf("Summarize(%v) unexpected error: %v", records, err)
		}
		if summary.AverageCycle != nil || summary.PredictedNext != nil || summary.Windows != nil || summary.Alert != nil {
			t.Fatalf("expected no derived values for %v, got %#v", records, summary)
		}
		if len(summary.Chart.Labels) != 0 || len(summary.Chart.Values) != 0 {
			t.Fatalf("expected empty chart for %v, got %#v", records, summary.Chart)
		}
	}
}

func TestSummarizeDuplicateDatesRaiseShortAlert(t *testing.T) {
	store := &stubPeriodStore{records: []string{"2024-01-01", "2024-01-29", "2024-01-29"}}
	summary, err := NewSummaryService(store).Summarize(context.Background(), summaryNow)
	if err != nil {
		t.Fatalf("Summarize() unexpected error: %v", err)
	}

	if summary.AverageCycle == nil || *summary.AverageCycle != 28 {
		t.Fatalf("expected zero-length cycle to be ignored for the average, got %v", summary.AverageCycle)
	}
	if summary.Alert == nil || summary.Alert.Kind != IrregularityLatestShort || summary.Alert.Days != 0 {
		t.Fatalf("expected short latest cycle alert, got %#v", summary.Alert)
	}
}

func TestSummarizeOnlyDuplicatesLeavesAverageUndefined(t *testing.T) {
	store := &stubPeriodStore{records: []string{"2024-01-01", "2024-01-01"}}
	summary, err := NewSummaryService(store).Summarize(context.Background(), summaryNow)
	if err != nil {
		t.Fatalf("Summarize() unexpected error: %v", err)
	}
	if summary.AverageCycle != nil || summary.Windows != nil || summary.PredictedNext != nil {
		t.Fatalf("expected undefined average, got %#v", summary)
	}
	if summary.Alert == nil || summary.Alert.Kind != IrregularityLatestShort {
		t.Fatalf("expected short cycle alert, got %#v", summary.Alert)
	}
}

func TestSummarizeKeepsExactLengthForMistypedYear(t *testing.T) {
	store := &stubPeriodStore{records: []string{"1024-01-01", "2024-01-01"}}
	summary, err := NewSummaryService(store).Summarize(context.Background(), summaryNow)
	if err != nil {
		t.Fatalf("Summarize() unexpected error: %v", err)
	}

	if !reflect.DeepEqual(summary.Chart.Values, []int{365243}) {
		t.Fatalf("expected chart values [365243], got %v", summary.Chart.Values)
	}
	if summary.AverageCycle == nil || *summary.AverageCycle != 365243 {
		t.Fatalf("expected fallback average 365243, got %v", summary.AverageCycle)
	}
	if summary.Alert == nil || summary.Alert.Kind != IrregularityLatestLong || summary.Alert.Days != 365243 {
		t.Fatalf("expected long cycle alert of 365243 days, got %#v", summary.Alert)
	}
}

func TestSummarizeIsIdempotent(t *testing.T) {
	store := &stubPeriodStore{records: []string{"2024-01-01", "2024-02-05", "2024-03-01"}}
	service := NewSummaryService(store)

	first, err := service.Summarize(context.Background(), summaryNow)
	if err != nil {
		t.Fatalf("first Summarize() unexpected error: %v", err)
	}
	second, err := service.Summarize(context.Background(), summaryNow)
	if err != nil {
		t.Fatalf("second Summarize() unexpected error: %v", err)
	}

	firstJSON, _ := json.Marshal(first)
	secondJSON, _ := json.Marshal(second)
	if string(firstJSON) != string(secondJSON) {
		t.Fatalf("expected identical summaries:\n%s\n%s", firstJSON, secondJSON)
	}
}

func TestSummarizeRejectsCorruptStoredDate(t *testing.T) {
	store := &stubPeriodStore{records: []string{"2024-01-01", "not-a-date"}}
	_, err := NewSummaryService(store).Summarize(context.Background(), summaryNow)

	var storeErr *StoreError
	if !errors.As(err, &storeErr) || storeErr.Op != "parse" {
		t.Fatalf("expected parse store error, got %v", err)
	}
}

func TestSummarizePropagatesListFailure(t *testing.T) {
	listErr := errors.New("quota exceeded")
	_, err := NewSummaryService(&stubPeriodStore{listErr: listErr}).Summarize(context.Background(), summaryNow)

	var storeErr *StoreError
	if !errors.As(err, &storeErr) || storeErr.Op != "list" {
		t.Fatalf("expected list store error, got %v", err)
	}
	if !errors.Is(err, listErr) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}

func TestRecordValidatesBeforeAppending(t *testing.T) {
	store := &stubPeriodStore{}
	service := NewSummaryService(store)

	for _, raw := range []string{"", "2024-13-01", "2024-02-30", "01/02/2024", "tomorrow"} {
		_, err := service.Record(context.Background(), raw)
		if !errors.Is(err, ErrInvalidPeriodDate) {
			t.Fatalf("Record(%q) expected ErrInvalidPeriodDate, got %v", raw, err)
		}
		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("Record(%q) expected *ValidationError, got %T", raw, err)
		}
	}
	if len(store.appended) != 0 {
		t.Fatalf("expected no writes for invalid input, got %v", store.appended)
	}

	saved, err := service.Record(context.Background(), " 2024-02-29 ")
	if err != nil {
		t.Fatalf("Record() unexpected error: %v", err)
	}
	if saved != "2024-02-29" || !reflect.DeepEqual(store.appended, []string{"2024-02-29"}) {
		t.Fatalf("expected canonical date to be stored, got %q / %v", saved, store.appended)
	}
}

func TestRecordWrapsAppendFailure(t *testing.T) {
	appendErr := errors.New("permission denied")
	_, err := NewSummaryService(&stubPeriodStore{appendErr: appendErr}).Record(context.Background(), "2024-01-01")

	var storeErr *StoreError
	if !errors.As(err, &storeErr) || storeErr.Op != "append" || !errors.Is(err, appendErr) {
		t.Fatalf("expected wrapped append store error, got %v", err)
	}
}

func TestSummaryJSONShape(t *testing.T) {
	store := &stubPeriodStore{records: []string{"2023-12-04", "2024-01-01"}}
	summary, err := NewSummaryService(store).Summarize(context.Background(), summaryNow)
	if err != nil {
		t.Fatalf("Summarize() unexpected error: %v", err)
	}

	serialized, err := json.Marshal(summary)
	if err != nil {
		t.Fatalf("marshal summary: %v", err)
	}
	payload := map[string]any{}
	if err := json.Unmarshal(serialized, &payload); err != nil {
		t.Fatalf("decode summary: %v", err)
	}

	windows, ok := payload["windows"].(map[string]any)
	if !ok {
		t.Fatalf("expected windows object, got %#v", payload["windows"])
	}
	fertile, ok := windows["fertile"].(map[string]any)
	if !ok || fertile["start"] != "2024-01-10" || fertile["end"] != "2024-01-15" {
		t.Fatalf("unexpected fertile payload %#v", windows["fertile"])
	}
	if payload["irregularity_alert"] != nil {
		t.Fatalf("expected null alert, got %#v", payload["irregularity_alert"])
	}
}
