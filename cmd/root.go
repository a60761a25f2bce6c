package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/racelytics/corner-analysis-go/log"
	analyzeCmd "github.com/racelytics/corner-analysis-go/pkg/cmd/analyze"
	compareCmd "github.com/racelytics/corner-analysis-go/pkg/cmd/compare"
	"github.com/racelytics/corner-analysis-go/pkg/config"
	"github.com/racelytics/corner-analysis-go/version"
)

const envPrefix = "CORNERS"

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "corner-analysis",
	Short:   "Per-corner performance analysis for high-frequency vehicle telemetry",
	Long:    ``,
	Version: version.FullVersion,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger, err := setupLogger()
		if err != nil {
			return err
		}
		log.ResetDefault(logger)
		cmd.SetContext(log.AddToContext(cmd.Context(), logger))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:funlen // flag declarations
func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.corner-analysis.yml)")
	rootCmd.PersistentFlags().StringVar(&config.LogLevel, "log-level",
		"info",
		"sets the log level (zap log level values)")
	rootCmd.PersistentFlags().StringVar(&config.LogFormat, "log-format",
		"text",
		"controls the log output format (text, json)")
	rootCmd.PersistentFlags().StringVar(&config.LogConfig, "log-config", "",
		"log config file with zapfilter rules for named loggers")
	rootCmd.PersistentFlags().StringVar(&config.OutputFormat, "format",
		"json",
		"output encoding (json, yaml)")
	rootCmd.PersistentFlags().StringVar(&config.OutputFile, "output", "",
		"write results to this file instead of stdout")

	rootCmd.PersistentFlags().Float64Var(&config.SteeringThresholdDeg,
		"steering-threshold-deg", 30,
		"min abs steering angle for the corner mask")
	rootCmd.PersistentFlags().Float64Var(&config.LateralGThreshold,
		"lateral-g-threshold", 0.8,
		"min abs lateral acceleration for the corner mask")
	rootCmd.PersistentFlags().Float64Var(&config.MinCornerDurationS,
		"min-corner-duration", 0.5,
		"min zone duration in seconds")
	rootCmd.PersistentFlags().Float64Var(&config.MergeGapM,
		"merge-gap", 50,
		"zones closer than this distance (m) are merged")
	rootCmd.PersistentFlags().IntVar(&config.BrakingLookbackSamples,
		"braking-lookback-samples", 100,
		"samples scanned before a zone for the braking point")
	rootCmd.PersistentFlags().Float64Var(&config.BrakePressureThresholdBar,
		"brake-pressure-threshold", 20,
		"brake pressure (bar) marking the braking point")
	rootCmd.PersistentFlags().Float64Var(&config.ThrottleThresholdPct,
		"throttle-threshold", 50,
		"throttle position (%) marking throttle application")
	rootCmd.PersistentFlags().IntVar(&config.ThrottleLookaheadSamples,
		"throttle-lookahead-samples", 0,
		"extra samples scanned past the zone end for throttle application")
	rootCmd.PersistentFlags().Float64Var(&config.InsightSpeedThresholdKmh,
		"insight-speed-threshold", 2,
		"speed delta (km/h) required to emit an insight")
	rootCmd.PersistentFlags().Float64Var(&config.InsightDistanceThresholdM,
		"insight-distance-threshold", 5,
		"distance delta (m) required to emit an insight")
	rootCmd.PersistentFlags().BoolVar(&config.BestLapOnly, "best-only", false,
		"analyze only each driver's fastest lap")

	// add commands here
	rootCmd.AddCommand(analyzeCmd.NewAnalyzeCmd())
	rootCmd.AddCommand(compareCmd.NewCompareCmd())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".corner-analysis"
		// (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".corner-analysis")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	bindFlags(rootCmd, viper.GetViper())
	for _, cmd := range rootCmd.Commands() {
		bindFlags(cmd, viper.GetViper())
	}
}

// Bind each cobra flag to its associated viper configuration
// (config file and environment variable)
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Environment variables can't have dashes in them, so bind them to
		// their equivalent keys with underscores, e.g. --merge-gap to
		// CORNERS_MERGE_GAP
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name,
				fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				fmt.Fprintf(os.Stderr, "Could not bind env var %s: %v", f.Name, err)
			}
		}
		// Apply the viper config value to the flag when the flag is not set
		// and viper has a value
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				fmt.Fprintf(os.Stderr, "Could set flag value for %s: %v", f.Name, err)
			}
		}
	})
}

func setupLogger() (*log.Logger, error) {
	lvl, err := log.ParseLevel(config.LogLevel)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	var logger *log.Logger
	if config.LogFormat == "json" {
		logger = log.NewLogger(os.Stderr, lvl)
	} else {
		logger = log.DevLogger(os.Stderr, lvl)
	}
	if config.LogConfig == "" {
		return logger, nil
	}
	cfg, err := log.LoadConfig(config.LogConfig)
	if err != nil {
		return nil, err
	}
	return log.NewWithConfig(logger, cfg)
}
