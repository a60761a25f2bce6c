package model

import "math"

// Sample is one telemetry reading at 20-40 Hz. Sensor channels are pointers:
// a nil value means the channel was not recorded for this sample. Consumers
// must never substitute zero for an absent reading.
type Sample struct {
	Timestamp     *float64 `json:"timestamp"`
	DistanceM     *float64 `json:"distanceM"`
	SpeedKmh      *float64 `json:"speedKmh"`
	SteeringDeg   *float64 `json:"steeringDeg"`
	LateralG      *float64 `json:"lateralG"`
	LongitudinalG *float64 `json:"longitudinalG"`
	BrakeFrontBar *float64 `json:"brakeFrontBar"`
	ThrottlePct   *float64 `json:"throttlePct"`
	LapNumber     int      `json:"lapNumber"`
}

// Present reports whether an optional channel value is usable. NaN counts as
// absent since upstream loaders may map missing CSV cells to NaN.
func Present(v *float64) bool {
	return v != nil && !math.IsNaN(*v)
}

// Lap groups the ordered samples of one lap. Immutable after segmentation.
type Lap struct {
	DriverID  string   `json:"driverId"`
	LapNumber int      `json:"lapNumber"`
	Samples   []Sample `json:"samples"`
	LapTimeS  float64  `json:"lapTimeS"`
	IsBestLap bool     `json:"isBestLap"`
}

// Timestamp returns the timestamp of sample idx. The bool is false when the
// index is out of range or the value is absent.
func (l *Lap) Timestamp(idx int) (float64, bool) {
	if idx < 0 || idx >= len(l.Samples) || !Present(l.Samples[idx].Timestamp) {
		return 0, false
	}
	return *l.Samples[idx].Timestamp, true
}

// DistanceM returns the track distance of sample idx, analogous to Timestamp.
func (l *Lap) DistanceM(idx int) (float64, bool) {
	if idx < 0 || idx >= len(l.Samples) || !Present(l.Samples[idx].DistanceM) {
		return 0, false
	}
	return *l.Samples[idx].DistanceM, true
}
