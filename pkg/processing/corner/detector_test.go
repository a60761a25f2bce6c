//nolint:funlen // ok for tests
package corner

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/racelytics/corner-analysis-go/pkg/model"
	"github.com/racelytics/corner-analysis-go/testsupport/telemetrygen"
)

// scenarioLap builds the reference lap: 100 m straight with braking from
// 60 m, one corner with steering peaking at 45 deg, lateral g at 1.2 and
// minimum speed 90 km/h at 180 m, throttle picked up again from 200 m.
func scenarioLap(t *testing.T) *model.Lap {
	t.Helper()
	gen := telemetrygen.New()
	gen.Straight(100, 120)
	gen.Corner(161, 45, 1.2, 120, 90)
	gen.Straight(50, 120)
	gen.PaintBrake(60, 100, 30)
	gen.PaintThrottle(200, 311, 80)
	return gen.Lap("d1")
}

func TestDetector_SingleCornerScenario(t *testing.T) {
	d := NewDetector(DefaultConfig())
	zones, err := d.DetectZones(scenarioLap(t))
	require.NoError(t, err)
	require.Len(t, zones, 1)

	zone := zones[0]
	assert.Equal(t, 0, zone.ZoneIndex)
	// the thresholds are crossed on the ramps, so the zone sits within the
	// 100-260 m corner segment
	assert.GreaterOrEqual(t, zone.StartIdx, 100)
	assert.LessOrEqual(t, zone.EndIdx, 260)
	assert.Less(t, zone.StartIdx, 120)
	assert.Greater(t, zone.EndIdx, 240)
	// apex is the exact minimum-speed sample at 180 m
	assert.Equal(t, 180, zone.ApexIdx)
}

func TestDetector_EmptyLap(t *testing.T) {
	d := NewDetector(DefaultConfig())
	_, err := d.DetectZones(&model.Lap{})
	assert.ErrorIs(t, err, ErrEmptyLap)
}

func TestDetector_NoQualifyingSamples(t *testing.T) {
	gen := telemetrygen.New()
	gen.Straight(200, 140)

	d := NewDetector(DefaultConfig())
	zones, err := d.DetectZones(gen.Lap("d1"))
	require.NoError(t, err)
	assert.Empty(t, zones)
}

func TestDetector_MaskIsStrictAnd(t *testing.T) {
	tests := []struct {
		name              string
		steering, lateral float64
	}{
		{"high steering only", 45, 0.5},
		{"high lateral g only", 10, 1.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := telemetrygen.New()
			gen.Add(200, func(_, _ int, s *model.Sample) {
				s.SpeedKmh = telemetrygen.Ptr(100)
				s.SteeringDeg = telemetrygen.Ptr(tt.steering)
				s.LateralG = telemetrygen.Ptr(tt.lateral)
			})
			d := NewDetector(DefaultConfig())
			zones, err := d.DetectZones(gen.Lap("d1"))
			require.NoError(t, err)
			assert.Empty(t, zones)
		})
	}
}

func TestDetector_AbsentChannelCountsAsFalse(t *testing.T) {
	gen := telemetrygen.New()
	// lateral g strongly present but steering never recorded
	gen.Add(200, func(_, _ int, s *model.Sample) {
		s.SpeedKmh = telemetrygen.Ptr(100)
		s.LateralG = telemetrygen.Ptr(1.5)
	})
	d := NewDetector(DefaultConfig())
	zones, err := d.DetectZones(gen.Lap("d1"))
	require.NoError(t, err)
	assert.Empty(t, zones)
}

func TestDetector_ShortZonesFiltered(t *testing.T) {
	gen := telemetrygen.New()
	gen.Straight(50, 120)
	// 10 qualifying samples at 20 Hz = 0.45 s, below the 0.5 s minimum
	gen.Corner(12, 45, 1.2, 120, 100)
	gen.Straight(50, 120)

	d := NewDetector(DefaultConfig())
	zones, err := d.DetectZones(gen.Lap("d1"))
	require.NoError(t, err)
	assert.Empty(t, zones)
}

func TestDetector_SingleSampleRunFiltered(t *testing.T) {
	gen := telemetrygen.New()
	gen.DT = 1.0 // long intervals so the duration filter alone would pass
	gen.Straight(5, 120)
	gen.Add(1, func(_, _ int, s *model.Sample) {
		s.SpeedKmh = telemetrygen.Ptr(90)
		s.SteeringDeg = telemetrygen.Ptr(45)
		s.LateralG = telemetrygen.Ptr(1.2)
	})
	gen.Straight(5, 120)

	d := NewDetector(DefaultConfig())
	zones, err := d.DetectZones(gen.Lap("d1"))
	require.NoError(t, err)
	assert.Empty(t, zones)
}

func TestDetector_MergesCloseZones(t *testing.T) {
	chicane := func(gapSamples int) *model.Lap {
		gen := telemetrygen.New()
		gen.Straight(100, 120)
		gen.Corner(60, 45, 1.2, 120, 95)
		gen.Straight(gapSamples, 110)
		gen.Corner(60, 40, 1.1, 110, 90)
		gen.Straight(100, 120)
		return gen.Lap("d1")
	}
	d := NewDetector(DefaultConfig())

	// 30 m gap: merged into one zone
	zones, err := d.DetectZones(chicane(30))
	require.NoError(t, err)
	require.Len(t, zones, 1)

	// 60 m gap: stays two zones
	zones, err = d.DetectZones(chicane(60))
	require.NoError(t, err)
	require.Len(t, zones, 2)
	assert.Less(t, zones[0].EndIdx, zones[1].StartIdx)
}

func TestDetector_ZonesOrderedAndNonOverlapping(t *testing.T) {
	gen := telemetrygen.New()
	gen.Straight(100, 140)
	gen.Corner(80, 45, 1.2, 140, 90)
	gen.Straight(120, 140)
	gen.Corner(80, 38, 1.0, 130, 95)
	gen.Straight(120, 140)
	gen.Corner(80, 50, 1.4, 140, 85)
	gen.Straight(100, 140)

	d := NewDetector(DefaultConfig())
	zones, err := d.DetectZones(gen.Lap("d1"))
	require.NoError(t, err)
	require.Len(t, zones, 3)
	for i, zone := range zones {
		assert.Equal(t, i, zone.ZoneIndex)
		assert.LessOrEqual(t, zone.StartIdx, zone.ApexIdx)
		assert.LessOrEqual(t, zone.ApexIdx, zone.EndIdx)
		if i > 0 {
			assert.Greater(t, zone.StartIdx, zones[i-1].EndIdx)
		}
	}
}

func TestMergeSpans_Idempotent(t *testing.T) {
	gen := telemetrygen.New()
	gen.Straight(100, 120)
	gen.Corner(60, 45, 1.2, 120, 95)
	gen.Straight(30, 110)
	gen.Corner(60, 40, 1.1, 110, 90)
	gen.Straight(30, 110)
	gen.Corner(60, 42, 1.1, 110, 92)
	gen.Straight(100, 120)
	lap := gen.Lap("d1")

	d := NewDetector(DefaultConfig())
	mask := d.cornerMask(lap.Samples)
	candidates := d.filterShort(lap, collectRuns(mask))

	once := mergeSpans(lap, candidates, d.cfg.MergeGapM)
	twice := mergeSpans(lap, once, d.cfg.MergeGapM)
	if diff := cmp.Diff(once, twice, cmp.AllowUnexported(span{})); diff != "" {
		t.Errorf("merge not idempotent (-once +twice):\n%s", diff)
	}
}

func TestDetector_ApexSkipsMissingSpeed(t *testing.T) {
	gen := telemetrygen.New()
	gen.Straight(100, 120)
	gen.Corner(161, 45, 1.2, 120, 90)
	gen.Straight(50, 120)
	lap := gen.Lap("d1")
	// knock out the true minimum; apex must move to the next best sample
	lap.Samples[180].SpeedKmh = nil

	d := NewDetector(DefaultConfig())
	zones, err := d.DetectZones(lap)
	require.NoError(t, err)
	require.Len(t, zones, 1)
	assert.NotEqual(t, 180, zones[0].ApexIdx)
	assert.Contains(t, []int{179, 181}, zones[0].ApexIdx)
}
