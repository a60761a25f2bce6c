package model

// GainEstimateNote labels ExpectedLapTimeGainS for downstream consumers.
const GainEstimateNote = "naive additive sum of per-corner time deltas; " +
	"descriptive only, not a validated predictive model"

// MetricDeltas holds the signed per-metric differences for one aligned
// corner, convention delta = B - A. Nil when either side lacks the metric.
type MetricDeltas struct {
	BrakingPointM      *float64 `json:"brakingPointM"`
	EntrySpeedKmh      *float64 `json:"entrySpeedKmh"`
	ApexSpeedKmh       *float64 `json:"apexSpeedKmh"`
	ExitSpeedKmh       *float64 `json:"exitSpeedKmh"`
	CornerTimeS        *float64 `json:"cornerTimeS"`
	LateralGMax        *float64 `json:"lateralGMax"`
	SteeringSmoothness *float64 `json:"steeringSmoothness"`
}

// ComparisonResult compares one aligned corner of two drivers. CornerIndex is
// the post-alignment ordinal. Insights are ordered by descending impact.
type ComparisonResult struct {
	DriverAID   string       `json:"driverAId"`
	DriverBID   string       `json:"driverBId"`
	CornerIndex int          `json:"cornerIndex"`
	Deltas      MetricDeltas `json:"deltas"`
	Insights    []string     `json:"insights"`
}

// DriverComparison is the full pairwise comparison document.
type DriverComparison struct {
	DriverAID            string             `json:"driverAId"`
	DriverBID            string             `json:"driverBId"`
	Corners              []ComparisonResult `json:"corners"`
	ExpectedLapTimeGainS float64            `json:"expectedLapTimeGainS"`
	GainEstimateNote     string             `json:"gainEstimateNote"`
}
