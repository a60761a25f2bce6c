package model

// CornerZone marks a contiguous run of samples that satisfied the combined
// steering and lateral-g thresholds. Indices point into the owning lap's
// sample slice with StartIdx <= ApexIdx <= EndIdx. ZoneIndex is a per-lap
// ordinal, not an official track corner number.
type CornerZone struct {
	ZoneIndex int `json:"zoneIndex"`
	StartIdx  int `json:"startIdx"`
	ApexIdx   int `json:"apexIdx"`
	EndIdx    int `json:"endIdx"`
}

// CornerMetrics holds the derived per-corner metrics. Nil means the
// underlying signal was absent for the relevant window, never "zero".
type CornerMetrics struct {
	Zone                         CornerZone `json:"zone"`
	EntrySpeedKmh                *float64   `json:"entrySpeedKmh"`
	ApexSpeedKmh                 *float64   `json:"apexSpeedKmh"`
	ExitSpeedKmh                 *float64   `json:"exitSpeedKmh"`
	CornerTimeS                  float64    `json:"cornerTimeS"`
	LateralGMax                  *float64   `json:"lateralGMax"`
	SteeringSmoothness           *float64   `json:"steeringSmoothness"`
	BrakingPointDistanceM        *float64   `json:"brakingPointDistanceM"`
	BrakePressureMaxBar          *float64   `json:"brakePressureMaxBar"`
	ThrottleApplicationDistanceM *float64   `json:"throttleApplicationDistanceM"`
}

// LapAnalysis is the per-lap output document: the detected zones with their
// metrics plus lap bookkeeping.
type LapAnalysis struct {
	LapNumber int             `json:"lapNumber"`
	LapTimeS  float64         `json:"lapTimeS"`
	IsBestLap bool            `json:"isBestLap"`
	Corners   []CornerMetrics `json:"corners"`
}

// DriverAnalysis aggregates the analyzed laps of one driver.
type DriverAnalysis struct {
	DriverID string `json:"driverId"`
	// samples dropped during segmentation due to missing timestamp/distance
	SkippedSamples int           `json:"skippedSamples"`
	Laps           []LapAnalysis `json:"laps"`
}

// RaceAnalysis is the top level output of an analysis run.
type RaceAnalysis struct {
	Track   string           `json:"track"`
	Race    string           `json:"race"`
	Drivers []DriverAnalysis `json:"drivers"`
}
