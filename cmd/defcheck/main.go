package main

import (
	"fmt"
	"os"
	"time"

	"defcheck/internal/asserttest"
	"defcheck/internal/config"
	"defcheck/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose    bool
	configPath string
	workspace  string
	timeout    time.Duration

	// Logger
	logger *zap.Logger

	restoreBuild  = func() {}
	restoreLogger = func() {}
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "defcheck",
	Short: "Inspect component names, build specs and probe batteries",
	Long: `defcheck exercises the defensive-check test support outside of go test.

It extracts component names from file names, validates build specs, and runs
YAML probe batteries against the catch and try probes.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err = logging.New(cfg.Logging.Level, cfg.Logging.Format)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		restoreLogger = logging.SetLogger(logger)

		restore, err := asserttest.UseBuild(cfg.Build)
		if err != nil {
			return err
		}
		restoreBuild = restore
		logger.Debug("Configured build",
			zap.String("mode", cfg.Build.Mode),
			zap.Bool("exceptions", cfg.Build.Exceptions),
			zap.Bool("check_levels", cfg.Build.CheckLevels),
			zap.Bool("embed_file_names", cfg.Build.EmbedFileNames))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "defcheck.yaml", "Config file")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: current)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", time.Minute, "Battery timeout")

	rootCmd.AddCommand(componentCmd)
	rootCmd.AddCommand(buildSpecCmd)
	rootCmd.AddCommand(batteryCmd)
}

// execute runs the root command and undoes the build and logger setup.
// Cobra skips post-run hooks when a command fails, so cleanup lives here.
func execute() error {
	defer cleanup()
	return rootCmd.Execute()
}

func cleanup() {
	restoreBuild()
	restoreLogger()
	restoreBuild = func() {}
	restoreLogger = func() {}
	if logger != nil {
		_ = logger.Sync()
	}
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
