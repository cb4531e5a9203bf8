package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"deepspace-navigator/internal/config"
	"deepspace-navigator/internal/export"
	"deepspace-navigator/internal/planner"
	"deepspace-navigator/internal/scenario"
)

var (
	configPath string

	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "navigator",
	Short:         "Shortest-path planning through hazard fields",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger = config.NewLogger(cfg.Log, os.Stderr)
		slog.SetDefault(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.AddCommand(serveCmd, planCmd, scenariosCmd, decodeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func openRepository() (*scenario.Repository, error) {
	return scenario.Open(cfg.Scenarios.Root, scenario.Options{
		NamesFile:         cfg.Scenarios.NamesFile,
		SimplifyTolerance: cfg.Scenarios.SimplifyTolerance,
		MergeTolerance:    cfg.Scenarios.MergeTolerance,
	})
}

func newPlanner() *planner.Planner {
	return planner.New(cfg.PlannerOptions(logger))
}

// newExporter returns nil when no passphrase is configured
func newExporter() (*export.Exporter, error) {
	if cfg.Export.Passphrase == "" {
		return nil, nil
	}
	return export.NewExporter(cfg.Export.Passphrase, cfg.Export.Iterations)
}
