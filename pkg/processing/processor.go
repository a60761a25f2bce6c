// Package processing wires segmentation, corner detection and metric
// extraction into per-driver and per-race analysis runs. Every underlying
// stage is a pure function of its input, so driver runs fan out concurrently.
package processing

import (
	"fmt"
	"sync"

	"github.com/racelytics/corner-analysis-go/log"
	"github.com/racelytics/corner-analysis-go/pkg/model"
	"github.com/racelytics/corner-analysis-go/pkg/processing/compare"
	"github.com/racelytics/corner-analysis-go/pkg/processing/corner"
	"github.com/racelytics/corner-analysis-go/pkg/processing/segment"
	"github.com/racelytics/corner-analysis-go/pkg/telemetry"
)

type (
	AnalysisProcessor struct {
		cfg        corner.DetectionConfig
		segmenter  *segment.LapSegmenter
		detector   *corner.Detector
		extractor  *corner.MetricsExtractor
		comparator *compare.Comparator
		l          *log.Logger
		bestOnly   bool
	}

	ProcessorOption func(p *AnalysisProcessor)
)

func WithDetectionConfig(cfg corner.DetectionConfig) ProcessorOption {
	return func(p *AnalysisProcessor) { p.cfg = cfg }
}

func WithComparator(c *compare.Comparator) ProcessorOption {
	return func(p *AnalysisProcessor) { p.comparator = c }
}

func WithLogger(l *log.Logger) ProcessorOption {
	return func(p *AnalysisProcessor) { p.l = l }
}

// WithBestLapOnly restricts analysis output to each driver's fastest lap.
func WithBestLapOnly(flag bool) ProcessorOption {
	return func(p *AnalysisProcessor) { p.bestOnly = flag }
}

func NewAnalysisProcessor(opts ...ProcessorOption) *AnalysisProcessor {
	ret := &AnalysisProcessor{
		cfg:        corner.DefaultConfig(),
		comparator: compare.NewComparator(),
		l:          log.Default().Named("analysis"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	ret.segmenter = segment.NewLapSegmenter(segment.WithLogger(ret.l))
	ret.detector = corner.NewDetector(ret.cfg)
	ret.extractor = corner.NewMetricsExtractor(ret.cfg)
	return ret
}

// ProcessDriver analyzes one driver's session stream. Failures inside a
// single lap are logged and leave that lap without corners; they never abort
// the remaining laps.
func (p *AnalysisProcessor) ProcessDriver(
	driverID string,
	samples []model.Sample,
) (*model.DriverAnalysis, error) {
	segmented, err := p.segmenter.Process(driverID, samples)
	if err != nil {
		return nil, fmt.Errorf("driver %s: %w", driverID, err)
	}
	ret := &model.DriverAnalysis{
		DriverID:       driverID,
		SkippedSamples: segmented.SkippedSamples,
	}
	for _, lap := range segmented.Laps {
		if p.bestOnly && !lap.IsBestLap {
			continue
		}
		ret.Laps = append(ret.Laps, p.analyzeLap(lap))
	}
	return ret, nil
}

func (p *AnalysisProcessor) analyzeLap(lap *model.Lap) model.LapAnalysis {
	ret := model.LapAnalysis{
		LapNumber: lap.LapNumber,
		LapTimeS:  lap.LapTimeS,
		IsBestLap: lap.IsBestLap,
		Corners:   []model.CornerMetrics{},
	}
	zones, err := p.detector.DetectZones(lap)
	if err != nil {
		p.l.Warn("corner detection failed",
			log.String("driverId", lap.DriverID),
			log.Int("lap", lap.LapNumber),
			log.ErrorField(err))
		return ret
	}
	for _, zone := range zones {
		metrics, err := p.extractor.Extract(lap, zone)
		if err != nil {
			p.l.Warn("metric extraction failed",
				log.String("driverId", lap.DriverID),
				log.Int("lap", lap.LapNumber),
				log.Int("zone", zone.ZoneIndex),
				log.ErrorField(err))
			continue
		}
		ret.Corners = append(ret.Corners, metrics)
	}
	return ret
}

// ProcessRace analyzes every driver of the session. Driver runs are
// independent and executed concurrently; a failing driver is logged and
// skipped so one empty stream never poisons the batch.
func (p *AnalysisProcessor) ProcessRace(
	provider telemetry.Provider,
) (*model.RaceAnalysis, error) {
	driverIDs := provider.DriverIDs()
	results := make([]*model.DriverAnalysis, len(driverIDs))
	var wg sync.WaitGroup
	for i, driverID := range driverIDs {
		i, driverID := i, driverID
		wg.Add(1)
		go func() {
			defer wg.Done()
			samples, err := provider.Samples(driverID)
			if err == nil {
				results[i], err = p.ProcessDriver(driverID, samples)
			}
			if err != nil {
				p.l.Warn("skipping driver",
					log.String("driverId", driverID),
					log.ErrorField(err))
			}
		}()
	}
	wg.Wait()

	ret := &model.RaceAnalysis{Track: provider.Track(), Race: provider.Race()}
	for _, r := range results {
		if r != nil {
			ret.Drivers = append(ret.Drivers, *r)
		}
	}
	return ret, nil
}

// CompareDrivers compares the corner metrics of both drivers' best laps.
func (p *AnalysisProcessor) CompareDrivers(
	provider telemetry.Provider,
	driverA, driverB string,
) (*model.DriverComparison, error) {
	bestA, err := p.bestLapCorners(provider, driverA)
	if err != nil {
		return nil, err
	}
	bestB, err := p.bestLapCorners(provider, driverB)
	if err != nil {
		return nil, err
	}
	return p.comparator.Compare(driverA, driverB, bestA, bestB), nil
}

func (p *AnalysisProcessor) bestLapCorners(
	provider telemetry.Provider,
	driverID string,
) ([]model.CornerMetrics, error) {
	samples, err := provider.Samples(driverID)
	if err != nil {
		return nil, err
	}
	segmented, err := p.segmenter.Process(driverID, samples)
	if err != nil {
		return nil, err
	}
	return p.analyzeLap(segmented.BestLap()).Corners, nil
}
