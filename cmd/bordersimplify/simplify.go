package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/migurski/Bloch/dataset"
	"github.com/migurski/Bloch/oracle/geosoracle"
	"github.com/migurski/Bloch/simplify"
	"github.com/migurski/Bloch/topology"
)

// simplifyCommand implements `bordersimplify simplify --tolerance N
// in.geojson out.geojson` (SPEC_FULL.md §A.4).
func simplifyCommand() *cobra.Command {
	var (
		tolerance  float64
		verbose    bool
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "simplify <in.geojson> <out.geojson>",
		Short: "Load a GeoJSON feature collection, simplify its borders, and save the result",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return fmt.Errorf("bordersimplify: reading config: %w", err)
			}
			if !cmd.Flags().Changed("tolerance") && cfg.Tolerance > 0 {
				tolerance = cfg.Tolerance
			}
			if !cmd.Flags().Changed("verbose") && cfg.Verbose {
				verbose = true
			}
			if tolerance <= 0 {
				return fmt.Errorf("bordersimplify: --tolerance must be positive")
			}

			logger := newLogger(os.Stderr, verbose)
			return runSimplify(logger, args[0], args[1], tolerance)
		},
	}

	cmd.Flags().Float64Var(&tolerance, "tolerance", 0, "simplification tolerance, in the input's linear map units")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level progress logging")
	cmd.Flags().StringVar(&configPath, "config", "", "optional TOML config file (SPEC_FULL.md §A.3)")

	return cmd
}

func runSimplify(logger *log.Logger, in, out string, tolerance float64) error {
	o := geosoracle.New()

	ds, err := dataset.Load(dataset.GeoJSON{}, in, o,
		dataset.WithBuilderProgress(func(ev topology.ProgressEvent) {
			logger.Debug("topology", "phase", ev.Phase, "feature", ev.Feature, "detail", ev.Detail)
		}),
		dataset.WithSimplifyProgress(func(ev simplify.PassEvent) {
			logger.Debug("pass", "pass", ev.Pass, "lines_left", ev.LinesLeft, "collapsed", ev.Collapsed, "live_segments", ev.LiveSegment)
		}),
	)
	if err != nil {
		return fmt.Errorf("bordersimplify: %w", err)
	}

	logger.Info("loaded", "path", in)

	if err := ds.Simplify(tolerance); err != nil {
		return fmt.Errorf("bordersimplify: simplify: %w", err)
	}

	for _, w := range ds.Warnings() {
		logger.Warn(w.String())
	}

	if err := ds.Save(dataset.GeoJSON{}, out); err != nil {
		return fmt.Errorf("bordersimplify: %w", err)
	}

	logger.Info("saved", "path", out, "tolerance", tolerance)
	return nil
}
