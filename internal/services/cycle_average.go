package services

import "github.com/montanaflynn/stats"

const (
	MinNormalCycleLength = 21
	MaxNormalCycleLength = 35
)

// AverageCycleLength returns the median of the lengths inside the normal range,
// or of all lengths when none fall inside it. ok is false for empty input.
func AverageCycleLength(lengths []int) (average int, ok bool) {
	if len(lengths) == 0 {
		return 0, false
	}

	candidates := make([]int, 0, len(lengths))
	for _, length := range lengths {
		if IsNormalCycleLength(length) {
			candidates = append(candidates, length)
		}
	}
	if len(candidates) == 0 {
		candidates = lengths
	}

	median, err := stats.Median(stats.LoadRawData(candidates))
	if err != nil {
		return 0, false
	}
	return int(median), true
}

func IsNormalCycleLength(length int) bool {
	return length >= MinNormalCycleLength && length <= MaxNormalCycleLength
}
