package services

type IrregularityKind string

const (
	IrregularityLatestShort     IrregularityKind = "latest_cycle_short"
	IrregularityLatestLong      IrregularityKind = "latest_cycle_long"
	IrregularityAverageAbnormal IrregularityKind = "average_cycle_abnormal"
)

type IrregularityAlert struct {
	Kind IrregularityKind `json:"kind" yaml:"kind"`
	Days int              `json:"days" yaml:"days"`
}

// DetectIrregularity checks the latest cycle first, then the average.
// hasAverage false means the average is undefined.
func DetectIrregularity(latestCycle int, averageCycle int, hasAverage bool) *IrregularityAlert {
	switch {
	case latestCycle < MinNormalCycleLength:
		return &IrregularityAlert{Kind: IrregularityLatestShort, Days: latestCycle}
	case latestCycle > MaxNormalCycleLength:
		return &IrregularityAlert{Kind: IrregularityLatestLong, Days: latestCycle}
	case hasAverage && !IsNormalCycleLength(averageCycle):
		return &IrregularityAlert{Kind: IrregularityAverageAbnormal, Days: averageCycle}
	default:
		return nil
	}
}
