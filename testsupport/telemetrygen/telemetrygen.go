// Package telemetrygen builds synthetic telemetry streams for tests. Samples
// are generated at a fixed rate with auto-increasing timestamp and distance;
// channel profiles are painted on top.
package telemetrygen

import "github.com/racelytics/corner-analysis-go/pkg/model"

func Ptr(v float64) *float64 { return &v }

type Gen struct {
	// DT is the sample interval in seconds, StepM the distance per sample.
	DT, StepM float64
	LapNumber int

	t, dist float64
	samples []model.Sample
}

// New creates a generator at 20 Hz with 1 m per sample on lap 1.
func New() *Gen {
	return &Gen{DT: 0.05, StepM: 1, LapNumber: 1}
}

// Add appends n samples. Timestamp, distance and lap number are prefilled;
// fill customizes the channels (i is the index within this segment).
func (g *Gen) Add(n int, fill func(i, n int, s *model.Sample)) *Gen {
	for i := 0; i < n; i++ {
		s := model.Sample{
			Timestamp: Ptr(g.t),
			DistanceM: Ptr(g.dist),
			LapNumber: g.LapNumber,
		}
		if fill != nil {
			fill(i, n, &s)
		}
		g.samples = append(g.samples, s)
		g.t += g.DT
		g.dist += g.StepM
	}
	return g
}

// Straight appends n samples of straight-line driving at constant speed.
func (g *Gen) Straight(n int, speedKmh float64) *Gen {
	return g.Add(n, func(_, _ int, s *model.Sample) {
		s.SpeedKmh = Ptr(speedKmh)
		s.SteeringDeg = Ptr(0)
		s.LateralG = Ptr(0)
	})
}

// Corner appends n samples of a corner: steering and lateral g ramp up over
// the first tenth of the segment, hold at their peaks and ramp down over the
// last tenth. Speed dips linearly from entry to min at the midpoint.
func (g *Gen) Corner(n int, peakSteeringDeg, peakLateralG, entryKmh, minKmh float64) *Gen {
	ramp := n / 10
	if ramp < 1 {
		ramp = 1
	}
	mid := n / 2
	return g.Add(n, func(i, n int, s *model.Sample) {
		frac := 1.0
		switch {
		case i < ramp:
			frac = float64(i) / float64(ramp)
		case i > n-1-ramp:
			frac = float64(n-1-i) / float64(ramp)
		}
		s.SteeringDeg = Ptr(peakSteeringDeg * frac)
		s.LateralG = Ptr(peakLateralG * frac)
		if i <= mid {
			s.SpeedKmh = Ptr(entryKmh + (minKmh-entryKmh)*float64(i)/float64(mid))
		} else {
			s.SpeedKmh = Ptr(minKmh + (entryKmh-minKmh)*float64(i-mid)/float64(n-1-mid))
		}
	})
}

// PaintBrake sets the brake channel on the index range [from, to).
func (g *Gen) PaintBrake(from, to int, bar float64) *Gen {
	for i := from; i < to && i < len(g.samples); i++ {
		g.samples[i].BrakeFrontBar = Ptr(bar)
	}
	return g
}

// PaintThrottle sets the throttle channel on the index range [from, to).
func (g *Gen) PaintThrottle(from, to int, pct float64) *Gen {
	for i := from; i < to && i < len(g.samples); i++ {
		g.samples[i].ThrottlePct = Ptr(pct)
	}
	return g
}

// NextLap increments the lap number for subsequently added samples.
func (g *Gen) NextLap() *Gen {
	g.LapNumber++
	return g
}

func (g *Gen) Samples() []model.Sample { return g.samples }

// Lap wraps the generated samples into a Lap record for detector level tests.
func (g *Gen) Lap(driverID string) *model.Lap {
	first := *g.samples[0].Timestamp
	last := *g.samples[len(g.samples)-1].Timestamp
	return &model.Lap{
		DriverID:  driverID,
		LapNumber: g.samples[0].LapNumber,
		Samples:   g.samples,
		LapTimeS:  last - first,
	}
}
