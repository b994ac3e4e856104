package main

import (
	"context"
	"fmt"
	"os"

	"defcheck/internal/regression"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// batteryCmd runs probe batteries
var batteryCmd = &cobra.Command{
	Use:   "battery [file...]",
	Short: "Run YAML probe batteries",
	Long: `Loads each battery file and runs its cases against the probes.
Without arguments runs .defcheck/battery.yaml in the workspace.

Example:
  defcheck battery testdata/levels.yaml testdata/components.yaml`,
	RunE: runBatteries,
}

func runBatteries(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		ws := workspace
		if ws == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to resolve workspace: %w", err)
			}
			ws = cwd
		}
		paths = []string{regression.DefaultBatteryPath(ws)}
	}

	batteries := make([]*regression.Battery, len(paths))
	var g errgroup.Group
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			b, err := regression.LoadBattery(path)
			if err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}
			batteries[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	baseCtx := cmd.Context()
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	ctx, cancel := context.WithTimeout(baseCtx, timeout)
	defer cancel()

	failed := 0
	for i, b := range batteries {
		logger.Debug("Running battery", zap.String("path", paths[i]), zap.Int("cases", len(b.Cases)))
		report, err := regression.RunBattery(ctx, b)
		if err != nil {
			return fmt.Errorf("run %s: %w", paths[i], err)
		}
		renderReport(cmd.OutOrStdout(), paths[i], report)
		failed += report.Failed()
	}

	if failed > 0 {
		return fmt.Errorf("%d case(s) failed", failed)
	}
	return nil
}
