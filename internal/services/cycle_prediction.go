package services

import "time"

const (
	LutealPhaseDays    = 14
	fertileWindowWidth = 5
)

type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) Inverted() bool {
	return r.Start.After(r.End)
}

func (r DateRange) Strings() (string, string) {
	return FormatPeriodDate(r.Start), FormatPeriodDate(r.End)
}

type CycleWindows struct {
	SafeBefore DateRange
	Fertile    DateRange
	SafeAfter  DateRange
	// Degenerate is set when the average cycle is shorter than the luteal phase
	// or any window ends before it starts. The ranges are left as computed.
	Degenerate bool
}

// PredictCycleWindows partitions the cycle starting at latest into safe and
// fertile ranges, back-calculating ovulation from a fixed luteal phase.
func PredictCycleWindows(latest time.Time, averageCycle int) CycleWindows {
	ovulationOffset := averageCycle - LutealPhaseDays

	fertile := DateRange{
		Start: addDays(latest, ovulationOffset-fertileWindowWidth),
		End:   addDays(latest, ovulationOffset),
	}
	windows := CycleWindows{
		SafeBefore: DateRange{
			Start: dateOnly(latest),
			End:   addDays(fertile.Start, -1),
		},
		Fertile: fertile,
		SafeAfter: DateRange{
			Start: addDays(fertile.End, 1),
			End:   addDays(latest, averageCycle-1),
		},
	}
	windows.Degenerate = averageCycle < LutealPhaseDays ||
		windows.SafeBefore.Inverted() ||
		windows.Fertile.Inverted() ||
		windows.SafeAfter.Inverted()
	return windows
}

func PredictNextPeriod(latestSorted time.Time, averageCycle int) time.Time {
	return addDays(latestSorted, averageCycle)
}
