package analyze

import (
	"github.com/spf13/cobra"

	"github.com/racelytics/corner-analysis-go/log"
	"github.com/racelytics/corner-analysis-go/pkg/cmd/render"
	"github.com/racelytics/corner-analysis-go/pkg/config"
	"github.com/racelytics/corner-analysis-go/pkg/processing"
	"github.com/racelytics/corner-analysis-go/pkg/telemetry/jsonfile"
)

func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <session-file>",
		Short: "detect corners and compute per-corner metrics for every driver",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return analyzeSession(cmd, args[0])
		},
	}
	return cmd
}

func analyzeSession(cmd *cobra.Command, sessionFile string) error {
	logger := log.GetFromContext(cmd.Context()).Named("analyze")
	session, err := jsonfile.Load(sessionFile)
	if err != nil {
		return err
	}
	logger.Info("analyzing session",
		log.String("track", session.Track()),
		log.String("race", session.Race()),
		log.Int("drivers", len(session.DriverIDs())))

	proc := processing.NewAnalysisProcessor(
		processing.WithDetectionConfig(config.ResolveDetectionConfig()),
		processing.WithBestLapOnly(config.BestLapOnly),
		processing.WithLogger(logger),
	)
	result, err := proc.ProcessRace(session)
	if err != nil {
		return err
	}
	for i := range result.Drivers {
		d := &result.Drivers[i]
		if d.SkippedSamples > 0 {
			logger.Info("dropped malformed samples",
				log.String("driverId", d.DriverID),
				log.Int("skipped", d.SkippedSamples))
		}
	}
	return render.Write(result, config.OutputFormat, config.OutputFile)
}
