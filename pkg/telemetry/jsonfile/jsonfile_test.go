package jsonfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/racelytics/corner-analysis-go/pkg/telemetry"
)

const sampleDoc = `{
  "track": "testring",
  "race": "race 1",
  "drivers": [
    {
      "driverId": "alice",
      "samples": [
        {"timestamp": 0.0, "distanceM": 0.0, "speedKmh": 120.5,
         "steeringDeg": -2.5, "lateralG": 0.1, "lapNumber": 1},
        {"timestamp": 0.05, "distanceM": 1.6, "speedKmh": null,
         "brakeFrontBar": 22.5, "lapNumber": 1}
      ]
    }
  ]
}`

func writeDoc(t *testing.T, doc string) string {
	t.Helper()
	fileName := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(fileName, []byte(doc), 0o600))
	return fileName
}

func TestLoad(t *testing.T) {
	session, err := Load(writeDoc(t, sampleDoc))
	require.NoError(t, err)

	assert.Equal(t, "testring", session.Track())
	assert.Equal(t, "race 1", session.Race())
	assert.Equal(t, []string{"alice"}, session.DriverIDs())

	samples, err := session.Samples("alice")
	require.NoError(t, err)
	require.Len(t, samples, 2)

	first := samples[0]
	require.NotNil(t, first.SpeedKmh)
	assert.InDelta(t, 120.5, *first.SpeedKmh, 1e-9)
	assert.Nil(t, first.BrakeFrontBar, "absent channel stays nil")
	assert.Nil(t, first.ThrottlePct)

	second := samples[1]
	assert.Nil(t, second.SpeedKmh, "JSON null stays nil, never zero")
	require.NotNil(t, second.BrakeFrontBar)
	assert.InDelta(t, 22.5, *second.BrakeFrontBar, 1e-9)
}

func TestLoad_UnknownDriver(t *testing.T) {
	session, err := Load(writeDoc(t, sampleDoc))
	require.NoError(t, err)
	_, err = session.Samples("nobody")
	assert.ErrorIs(t, err, telemetry.ErrUnknownDriver)
}

func TestLoad_BadDocument(t *testing.T) {
	_, err := Load(writeDoc(t, "{not json"))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
