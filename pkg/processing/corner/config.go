package corner

// DetectionConfig bundles every tunable of corner detection and metric
// extraction. It is passed explicitly into each call; per-track overrides are
// explicit arguments, never hidden package state.
type DetectionConfig struct {
	SteeringThresholdDeg      float64 `json:"steeringThresholdDeg"`
	LateralGThreshold         float64 `json:"lateralGThreshold"`
	MinCornerDurationS        float64 `json:"minCornerDurationS"`
	MergeGapM                 float64 `json:"mergeGapM"`
	BrakingLookbackSamples    int     `json:"brakingLookbackSamples"`
	BrakePressureThresholdBar float64 `json:"brakePressureThresholdBar"`
	ThrottleThresholdPct      float64 `json:"throttleThresholdPct"`
	// extra samples to scan past the zone end for throttle application
	ThrottleLookaheadSamples int `json:"throttleLookaheadSamples"`
}

// DefaultConfig returns the stock thresholds. They work for most circuits;
// tight street tracks may need a lower steering threshold.
func DefaultConfig() DetectionConfig {
	return DetectionConfig{
		SteeringThresholdDeg:      30,
		LateralGThreshold:         0.8,
		MinCornerDurationS:        0.5,
		MergeGapM:                 50,
		BrakingLookbackSamples:    100,
		BrakePressureThresholdBar: 20,
		ThrottleThresholdPct:      50,
		ThrottleLookaheadSamples:  0,
	}
}
