package config

import "github.com/racelytics/corner-analysis-go/pkg/processing/corner"

// this holds the resolved configuration values from CLI
var (
	LogLevel     string // sets the log level (zap log level values)
	LogFormat    string // text vs json
	LogConfig    string // path to log config file (level filters)
	OutputFormat string // json or yaml output encoding
	OutputFile   string // write output here instead of stdout
	BestLapOnly  bool   // analyze only each driver's fastest lap

	// detection and extraction thresholds (see corner.DetectionConfig)
	SteeringThresholdDeg      float64
	LateralGThreshold         float64
	MinCornerDurationS        float64
	MergeGapM                 float64
	BrakingLookbackSamples    int
	BrakePressureThresholdBar float64
	ThrottleThresholdPct      float64
	ThrottleLookaheadSamples  int

	// insight gates for driver comparison
	InsightSpeedThresholdKmh  float64
	InsightDistanceThresholdM float64
)

// ResolveDetectionConfig builds the explicit per-call config from the
// CLI-resolved values. Commands pass the result into the processor; nothing
// downstream reads this package.
func ResolveDetectionConfig() corner.DetectionConfig {
	return corner.DetectionConfig{
		SteeringThresholdDeg:      SteeringThresholdDeg,
		LateralGThreshold:         LateralGThreshold,
		MinCornerDurationS:        MinCornerDurationS,
		MergeGapM:                 MergeGapM,
		BrakingLookbackSamples:    BrakingLookbackSamples,
		BrakePressureThresholdBar: BrakePressureThresholdBar,
		ThrottleThresholdPct:      ThrottleThresholdPct,
		ThrottleLookaheadSamples:  ThrottleLookaheadSamples,
	}
}
