// Package corner detects corner zones in a single lap and derives per-corner
// metrics. Detection combines steering angle and lateral acceleration
// thresholds, groups consecutive matches into candidate zones, filters them
// by duration and merges zones separated by small track-distance gaps.
package corner

import (
	"errors"
	"math"

	"github.com/racelytics/corner-analysis-go/pkg/model"
)

// ErrEmptyLap is returned when a lap carries no samples. A lap without
// qualifying zones is not an error; it yields an empty slice.
var ErrEmptyLap = errors.New("lap has no samples")

type Detector struct {
	cfg DetectionConfig
}

func NewDetector(cfg DetectionConfig) *Detector {
	return &Detector{cfg: cfg}
}

// span is a candidate zone before apex assignment.
type span struct {
	start, end int // inclusive indices into the lap's samples
}

// DetectZones returns the ordered, non-overlapping corner zones of the lap.
func (d *Detector) DetectZones(lap *model.Lap) ([]model.CornerZone, error) {
	if len(lap.Samples) == 0 {
		return nil, ErrEmptyLap
	}
	mask := d.cornerMask(lap.Samples)
	candidates := collectRuns(mask)
	candidates = d.filterShort(lap, candidates)
	candidates = mergeSpans(lap, candidates, d.cfg.MergeGapM)

	zones := make([]model.CornerZone, 0, len(candidates))
	for i, c := range candidates {
		zones = append(zones, model.CornerZone{
			ZoneIndex: i,
			StartIdx:  c.start,
			ApexIdx:   apexIndex(lap, c),
			EndIdx:    c.end,
		})
	}
	return zones, nil
}

// cornerMask is the strict AND of the steering and lateral-g threshold masks.
// Samples with an absent channel cannot confirm cornering and count as false.
func (d *Detector) cornerMask(samples []model.Sample) []bool {
	mask := make([]bool, len(samples))
	for i := range samples {
		highSteering := model.Present(samples[i].SteeringDeg) &&
			math.Abs(*samples[i].SteeringDeg) > d.cfg.SteeringThresholdDeg
		highLateralG := model.Present(samples[i].LateralG) &&
			math.Abs(*samples[i].LateralG) > d.cfg.LateralGThreshold
		mask[i] = highSteering && highLateralG
	}
	return mask
}

// collectRuns extracts the maximal runs of consecutive true values.
func collectRuns(mask []bool) []span {
	runs := make([]span, 0)
	start := -1
	for i, v := range mask {
		switch {
		case v && start < 0:
			start = i
		case !v && start >= 0:
			runs = append(runs, span{start: start, end: i - 1})
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, span{start: start, end: len(mask) - 1})
	}
	return runs
}

// filterShort drops candidates below the minimum corner duration or with
// fewer than 2 samples.
func (d *Detector) filterShort(lap *model.Lap, candidates []span) []span {
	kept := make([]span, 0, len(candidates))
	for _, c := range candidates {
		if c.end-c.start < 1 {
			continue
		}
		startTS, okS := lap.Timestamp(c.start)
		endTS, okE := lap.Timestamp(c.end)
		if !okS || !okE || endTS-startTS < d.cfg.MinCornerDurationS {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

// mergeSpans collapses neighbours whose track-distance gap is below mergeGapM.
// Closely spaced chicane sub-corners intentionally end up as a single zone.
// The operation is idempotent: once no gap is below the threshold, a second
// pass changes nothing.
func mergeSpans(lap *model.Lap, candidates []span, mergeGapM float64) []span {
	if len(candidates) == 0 {
		return candidates
	}
	merged := make([]span, 0, len(candidates))
	cur := candidates[0]
	for _, next := range candidates[1:] {
		endDist, okE := lap.DistanceM(cur.end)
		startDist, okS := lap.DistanceM(next.start)
		if okE && okS && startDist-endDist < mergeGapM {
			cur.end = next.end
			continue
		}
		merged = append(merged, cur)
		cur = next
	}
	return append(merged, cur)
}

// apexIndex locates the minimum speed within the zone, skipping samples with
// an absent speed channel. Falls back to the zone start when no sample
// carries a speed, preserving StartIdx <= ApexIdx <= EndIdx.
func apexIndex(lap *model.Lap, c span) int {
	apex := c.start
	minSpeed := math.Inf(1)
	for i := c.start; i <= c.end; i++ {
		if !model.Present(lap.Samples[i].SpeedKmh) {
			continue
		}
		if *lap.Samples[i].SpeedKmh < minSpeed {
			minSpeed = *lap.Samples[i].SpeedKmh
			apex = i
		}
	}
	return apex
}
