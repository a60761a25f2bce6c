package corner

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/racelytics/corner-analysis-go/pkg/model"
)

var ErrInvalidZone = errors.New("zone indices out of lap range")

// MetricsExtractor derives the per-corner metrics from a lap and one of its
// detected zones. All aggregations skip absent values; a metric whose inputs
// are entirely missing stays nil.
type MetricsExtractor struct {
	cfg DetectionConfig
}

func NewMetricsExtractor(cfg DetectionConfig) *MetricsExtractor {
	return &MetricsExtractor{cfg: cfg}
}

//nolint:gocognit // straight-line metric assembly reads better unsplit
func (e *MetricsExtractor) Extract(
	lap *model.Lap,
	zone model.CornerZone,
) (model.CornerMetrics, error) {
	if zone.StartIdx < 0 || zone.EndIdx >= len(lap.Samples) ||
		zone.StartIdx > zone.ApexIdx || zone.ApexIdx > zone.EndIdx {
		return model.CornerMetrics{}, fmt.Errorf("%w: %+v", ErrInvalidZone, zone)
	}

	startTS, _ := lap.Timestamp(zone.StartIdx)
	endTS, _ := lap.Timestamp(zone.EndIdx)

	ret := model.CornerMetrics{
		Zone:          zone,
		EntrySpeedKmh: channelValue(lap.Samples[zone.StartIdx].SpeedKmh),
		ApexSpeedKmh:  channelValue(lap.Samples[zone.ApexIdx].SpeedKmh),
		ExitSpeedKmh:  channelValue(lap.Samples[zone.EndIdx].SpeedKmh),
		CornerTimeS:   endTS - startTS,
	}

	ret.LateralGMax = maxAbsOver(lap.Samples[zone.StartIdx:zone.EndIdx+1],
		func(s *model.Sample) *float64 { return s.LateralG })
	ret.SteeringSmoothness = steeringSmoothness(
		lap.Samples[zone.StartIdx : zone.EndIdx+1])

	// braking window: the BrakingLookbackSamples samples leading into the
	// zone. A window reaching before the lap start yields nil.
	if lo := zone.StartIdx - e.cfg.BrakingLookbackSamples; lo >= 0 {
		window := lap.Samples[lo : zone.StartIdx+1]
		ret.BrakingPointDistanceM = firstDistanceAbove(window,
			func(s *model.Sample) *float64 { return s.BrakeFrontBar },
			e.cfg.BrakePressureThresholdBar)
		ret.BrakePressureMaxBar = maxOver(window,
			func(s *model.Sample) *float64 { return s.BrakeFrontBar })
	}

	hi := zone.EndIdx + e.cfg.ThrottleLookaheadSamples
	if hi >= len(lap.Samples) {
		hi = len(lap.Samples) - 1
	}
	ret.ThrottleApplicationDistanceM = firstDistanceAbove(
		lap.Samples[zone.ApexIdx:hi+1],
		func(s *model.Sample) *float64 { return s.ThrottlePct },
		e.cfg.ThrottleThresholdPct)

	return ret, nil
}

// channelValue copies a present channel reading into a fresh pointer so the
// metrics document never aliases lap sample memory.
func channelValue(v *float64) *float64 {
	if !model.Present(v) {
		return nil
	}
	val := *v
	return &val
}

// firstDistanceAbove returns the distance of the first sample (in forward
// chronological order) whose channel exceeds the threshold.
func firstDistanceAbove(
	samples []model.Sample,
	channel func(*model.Sample) *float64,
	threshold float64,
) *float64 {
	for i := range samples {
		v := channel(&samples[i])
		if model.Present(v) && *v > threshold {
			return channelValue(samples[i].DistanceM)
		}
	}
	return nil
}

func maxOver(
	samples []model.Sample,
	channel func(*model.Sample) *float64,
) *float64 {
	var ret *float64
	for i := range samples {
		v := channel(&samples[i])
		if !model.Present(v) {
			continue
		}
		if ret == nil || *v > *ret {
			ret = channelValue(v)
		}
	}
	return ret
}

func maxAbsOver(
	samples []model.Sample,
	channel func(*model.Sample) *float64,
) *float64 {
	var ret *float64
	for i := range samples {
		v := channel(&samples[i])
		if !model.Present(v) {
			continue
		}
		abs := math.Abs(*v)
		if ret == nil || abs > *ret {
			ret = &abs
		}
	}
	return ret
}

// steeringSmoothness is the population standard deviation of the steering
// angle over the zone. Lower values indicate smoother input.
func steeringSmoothness(samples []model.Sample) *float64 {
	values := make([]float64, 0, len(samples))
	for i := range samples {
		if model.Present(samples[i].SteeringDeg) {
			values = append(values, *samples[i].SteeringDeg)
		}
	}
	if len(values) == 0 {
		return nil
	}
	sd := stat.PopStdDev(values, nil)
	return &sd
}
