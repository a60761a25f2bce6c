//nolint:funlen // ok for tests
package segment

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/racelytics/corner-analysis-go/pkg/model"
	"github.com/racelytics/corner-analysis-go/testsupport/telemetrygen"
)

func TestLapSegmenter_EmptySession(t *testing.T) {
	s := NewLapSegmenter()
	_, err := s.Process("d1", nil)
	assert.ErrorIs(t, err, ErrEmptySession)
}

func TestLapSegmenter_AllSamplesMalformed(t *testing.T) {
	s := NewLapSegmenter()
	samples := []model.Sample{
		{DistanceM: telemetrygen.Ptr(1), LapNumber: 1}, // no timestamp
		{Timestamp: telemetrygen.Ptr(1), LapNumber: 1}, // no distance
	}
	_, err := s.Process("d1", samples)
	assert.ErrorIs(t, err, ErrEmptySession)
}

func TestLapSegmenter_GroupsLapsAndFlagsBest(t *testing.T) {
	gen := telemetrygen.New()
	gen.Straight(100, 100) // lap 1: 99 intervals à 0.05s
	gen.NextLap()
	gen.Straight(60, 120) // lap 2: shorter, the best lap

	s := NewLapSegmenter()
	got, err := s.Process("d1", gen.Samples())
	require.NoError(t, err)
	require.Len(t, got.Laps, 2)

	assert.Equal(t, 1, got.Laps[0].LapNumber)
	assert.Equal(t, 2, got.Laps[1].LapNumber)
	assert.Len(t, got.Laps[0].Samples, 100)
	assert.Len(t, got.Laps[1].Samples, 60)
	assert.InDelta(t, 99*0.05, got.Laps[0].LapTimeS, 1e-9)
	assert.InDelta(t, 59*0.05, got.Laps[1].LapTimeS, 1e-9)

	assert.False(t, got.Laps[0].IsBestLap)
	assert.True(t, got.Laps[1].IsBestLap)
	assert.Same(t, got.Laps[1], got.BestLap())
	assert.Equal(t, 0, got.SkippedSamples)
}

func TestLapSegmenter_DropsMalformedSamples(t *testing.T) {
	gen := telemetrygen.New()
	gen.Straight(10, 100)
	samples := gen.Samples()
	samples[3].Timestamp = nil
	samples[7].DistanceM = nil

	s := NewLapSegmenter()
	got, err := s.Process("d1", samples)
	require.NoError(t, err)
	assert.Equal(t, 2, got.SkippedSamples)
	require.Len(t, got.Laps, 1)
	assert.Len(t, got.Laps[0].Samples, 8)
}

func TestLapSegmenter_SingleLapIsBest(t *testing.T) {
	gen := telemetrygen.New()
	gen.Straight(5, 80)

	s := NewLapSegmenter()
	got, err := s.Process("d1", gen.Samples())
	require.NoError(t, err)
	require.Len(t, got.Laps, 1)
	assert.True(t, got.Laps[0].IsBestLap)
	assert.False(t, errors.Is(err, ErrEmptySession))
}
