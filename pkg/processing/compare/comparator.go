// Package compare aligns two drivers' corner metrics, computes signed deltas
// and generates rule-based coaching insights. Insight generation is fully
// deterministic; there is no model behind it.
package compare

import (
	"fmt"
	"math"
	"sort"

	"github.com/racelytics/corner-analysis-go/pkg/model"
)

type (
	Comparator struct {
		// insight gates: a delta must exceed its threshold to produce text
		speedThresholdKmh  float64
		distanceThresholdM float64
	}

	Option func(c *Comparator)

	// insight pairs a generated sentence with its impact for ordering.
	insight struct {
		text string
		// impact is |delta| normalized by the metric's insight threshold so
		// distance and speed contributions compare on one scale.
		impact float64
	}
)

func WithSpeedThreshold(kmh float64) Option {
	return func(c *Comparator) { c.speedThresholdKmh = kmh }
}

func WithDistanceThreshold(m float64) Option {
	return func(c *Comparator) { c.distanceThresholdM = m }
}

func NewComparator(opts ...Option) *Comparator {
	ret := &Comparator{
		speedThresholdKmh:  2,
		distanceThresholdM: 5,
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Compare aligns the corner lists by ordinal position. Differing lengths are
// truncated to the shorter list; trailing corners are omitted, not an error.
func (c *Comparator) Compare(
	driverA, driverB string,
	cornersA, cornersB []model.CornerMetrics,
) *model.DriverComparison {
	count := len(cornersA)
	if len(cornersB) < count {
		count = len(cornersB)
	}
	ret := &model.DriverComparison{
		DriverAID:        driverA,
		DriverBID:        driverB,
		Corners:          make([]model.ComparisonResult, 0, count),
		GainEstimateNote: model.GainEstimateNote,
	}
	for i := 0; i < count; i++ {
		result := c.compareCorner(driverA, driverB, i, &cornersA[i], &cornersB[i])
		if result.Deltas.CornerTimeS != nil {
			ret.ExpectedLapTimeGainS += *result.Deltas.CornerTimeS
		}
		ret.Corners = append(ret.Corners, result)
	}
	return ret
}

func (c *Comparator) compareCorner(
	driverA, driverB string,
	idx int,
	a, b *model.CornerMetrics,
) model.ComparisonResult {
	cornerTime := b.CornerTimeS - a.CornerTimeS
	deltas := model.MetricDeltas{
		BrakingPointM:      delta(a.BrakingPointDistanceM, b.BrakingPointDistanceM),
		EntrySpeedKmh:      delta(a.EntrySpeedKmh, b.EntrySpeedKmh),
		ApexSpeedKmh:       delta(a.ApexSpeedKmh, b.ApexSpeedKmh),
		ExitSpeedKmh:       delta(a.ExitSpeedKmh, b.ExitSpeedKmh),
		CornerTimeS:        &cornerTime,
		LateralGMax:        delta(a.LateralGMax, b.LateralGMax),
		SteeringSmoothness: delta(a.SteeringSmoothness, b.SteeringSmoothness),
	}
	return model.ComparisonResult{
		DriverAID:   driverA,
		DriverBID:   driverB,
		CornerIndex: idx,
		Deltas:      deltas,
		Insights:    c.insights(driverA, driverB, idx, &deltas),
	}
}

// insights renders one sentence per metric whose delta clears its threshold,
// ordered by descending impact on the corner time.
func (c *Comparator) insights(
	driverA, driverB string,
	idx int,
	deltas *model.MetricDeltas,
) []string {
	collected := make([]insight, 0, 4)
	if v := deltas.BrakingPointM; v != nil && math.Abs(*v) > c.distanceThresholdM {
		collected = append(collected, insight{
			text: fmt.Sprintf("%s brakes %.0f m %s than %s into corner %d",
				driverB, math.Abs(*v), laterOrEarlier(*v), driverA, idx+1),
			impact: math.Abs(*v) / c.distanceThresholdM,
		})
	}
	speedInsight := func(v *float64, phase string) {
		if v == nil || math.Abs(*v) <= c.speedThresholdKmh {
			return
		}
		collected = append(collected, insight{
			text: fmt.Sprintf("%s carries %.1f km/h %s %s speed than %s in corner %d",
				driverB, math.Abs(*v), moreOrLess(*v), phase, driverA, idx+1),
			impact: math.Abs(*v) / c.speedThresholdKmh,
		})
	}
	speedInsight(deltas.EntrySpeedKmh, "entry")
	speedInsight(deltas.ApexSpeedKmh, "apex")
	speedInsight(deltas.ExitSpeedKmh, "exit")

	sort.SliceStable(collected, func(i, j int) bool {
		return collected[i].impact > collected[j].impact
	})
	texts := make([]string, 0, len(collected))
	for _, ins := range collected {
		texts = append(texts, ins.text)
	}
	return texts
}

// delta computes b-a, nil when either side lacks the metric.
func delta(a, b *float64) *float64 {
	if a == nil || b == nil {
		return nil
	}
	d := *b - *a
	return &d
}

func laterOrEarlier(v float64) string {
	if v > 0 {
		return "later"
	}
	return "earlier"
}

func moreOrLess(v float64) string {
	if v > 0 {
		return "more"
	}
	return "less"
}
