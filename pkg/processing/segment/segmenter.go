// Package segment groups a driver's lap-tagged sample stream into Lap
// records. Lap boundaries are assigned upstream by the loader; this package
// does not infer them from distance wraparound.
package segment

import (
	"errors"

	"github.com/samber/lo"

	"github.com/racelytics/corner-analysis-go/log"
	"github.com/racelytics/corner-analysis-go/pkg/model"
)

// ErrEmptySession is returned when a driver has no usable samples at all.
var ErrEmptySession = errors.New("no samples supplied for driver")

type (
	// Result carries the segmented laps plus diagnostics about dropped
	// samples.
	Result struct {
		Laps []*model.Lap
		// SkippedSamples counts samples dropped for missing timestamp or
		// distance. Exposed for diagnostics, never fatal.
		SkippedSamples int
	}

	LapSegmenter struct {
		l *log.Logger
	}

	Option func(s *LapSegmenter)
)

func WithLogger(l *log.Logger) Option {
	return func(s *LapSegmenter) { s.l = l }
}

func NewLapSegmenter(opts ...Option) *LapSegmenter {
	ret := &LapSegmenter{l: log.Default().Named("segment")}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Process groups samples by lap number, computes lap times and flags the
// fastest lap. Samples with absent timestamp or distance are dropped and
// counted. Returns ErrEmptySession only when nothing usable remains.
func (s *LapSegmenter) Process(driverID string, samples []model.Sample) (*Result, error) {
	if len(samples) == 0 {
		return nil, ErrEmptySession
	}
	usable := lo.Filter(samples, func(item model.Sample, _ int) bool {
		return model.Present(item.Timestamp) && model.Present(item.DistanceM)
	})
	skipped := len(samples) - len(usable)
	if skipped > 0 {
		s.l.Debug("dropped malformed samples",
			log.String("driverId", driverID),
			log.Int("skipped", skipped))
	}
	if len(usable) == 0 {
		return nil, ErrEmptySession
	}

	byLap := make(map[int]*model.Lap)
	lapOrder := make([]int, 0)
	for i := range usable {
		num := usable[i].LapNumber
		lap, ok := byLap[num]
		if !ok {
			lap = &model.Lap{DriverID: driverID, LapNumber: num}
			byLap[num] = lap
			lapOrder = append(lapOrder, num)
		}
		lap.Samples = append(lap.Samples, usable[i])
	}

	laps := make([]*model.Lap, 0, len(lapOrder))
	for _, num := range lapOrder {
		lap := byLap[num]
		first, _ := lap.Timestamp(0)
		last, _ := lap.Timestamp(len(lap.Samples) - 1)
		lap.LapTimeS = last - first
		laps = append(laps, lap)
	}
	best := lo.MinBy(laps, func(a, b *model.Lap) bool {
		return a.LapTimeS < b.LapTimeS
	})
	best.IsBestLap = true

	return &Result{Laps: laps, SkippedSamples: skipped}, nil
}

// BestLap returns the lap flagged as fastest.
func (r *Result) BestLap() *model.Lap {
	for _, lap := range r.Laps {
		if lap.IsBestLap {
			return lap
		}
	}
	return nil
}
