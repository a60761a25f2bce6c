package compare

import (
	"github.com/spf13/cobra"

	"github.com/racelytics/corner-analysis-go/log"
	"github.com/racelytics/corner-analysis-go/pkg/cmd/render"
	"github.com/racelytics/corner-analysis-go/pkg/config"
	"github.com/racelytics/corner-analysis-go/pkg/processing"
	comparator "github.com/racelytics/corner-analysis-go/pkg/processing/compare"
	"github.com/racelytics/corner-analysis-go/pkg/telemetry/jsonfile"
)

func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <session-file> <driverA> <driverB>",
		Short: "compare two drivers' best laps corner by corner",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return compareDrivers(cmd, args[0], args[1], args[2])
		},
	}
	return cmd
}

func compareDrivers(cmd *cobra.Command, sessionFile, driverA, driverB string) error {
	logger := log.GetFromContext(cmd.Context()).Named("compare")
	session, err := jsonfile.Load(sessionFile)
	if err != nil {
		return err
	}
	logger.Info("comparing drivers",
		log.String("track", session.Track()),
		log.String("driverA", driverA),
		log.String("driverB", driverB))

	proc := processing.NewAnalysisProcessor(
		processing.WithDetectionConfig(config.ResolveDetectionConfig()),
		processing.WithComparator(comparator.NewComparator(
			comparator.WithSpeedThreshold(config.InsightSpeedThresholdKmh),
			comparator.WithDistanceThreshold(config.InsightDistanceThresholdM),
		)),
		processing.WithLogger(logger),
	)
	result, err := proc.CompareDrivers(session, driverA, driverB)
	if err != nil {
		return err
	}
	return render.Write(result, config.OutputFormat, config.OutputFile)
}
