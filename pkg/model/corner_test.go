package model

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestCornerMetrics_JSONRoundTrip(t *testing.T) {
	orig := CornerMetrics{
		Zone:                         CornerZone{ZoneIndex: 2, StartIdx: 111, ApexIdx: 180, EndIdx: 249},
		EntrySpeedKmh:                ptr(121.375),
		ApexSpeedKmh:                 ptr(90.0),
		ExitSpeedKmh:                 ptr(117.25),
		CornerTimeS:                  6.9,
		LateralGMax:                  ptr(1.2),
		SteeringSmoothness:           ptr(4.83521),
		BrakingPointDistanceM:        ptr(60.0),
		BrakePressureMaxBar:          nil, // nil must survive as JSON null
		ThrottleApplicationDistanceM: ptr(200.0),
	}

	data, err := json.Marshal(orig)
	require.NoError(t, err)

	var got CornerMetrics
	require.NoError(t, json.Unmarshal(data, &got))

	if diff := cmp.Diff(orig, got, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	require.Nil(t, got.BrakePressureMaxBar)
}

func TestPresent(t *testing.T) {
	nan := math.NaN()
	require.False(t, Present(nil))
	require.False(t, Present(&nan))
	require.True(t, Present(ptr(0)))
}
