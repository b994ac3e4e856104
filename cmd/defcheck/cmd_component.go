package main

import (
	"fmt"

	"defcheck/internal/asserttest"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// componentCmd prints the component each file belongs to
var componentCmd = &cobra.Command{
	Use:   "component [file...]",
	Short: "Print the component name of each file",
	Long: `Strips the path, the component suffix and any trailing "_test" segment.

Example:
  defcheck component groups/bsl/bsls/bsls_asserttest.t.cpp
  defcheck component internal/asserttest/probe_test.go`,
	Args: cobra.MinimumNArgs(1),
	RunE: runComponent,
}

func runComponent(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	bad := 0
	for _, file := range args {
		name, err := asserttest.ExtractComponentName(file)
		if err != nil {
			logger.Debug("Not a component file", zap.String("file", file), zap.Error(err))
			fmt.Fprintf(out, "%s\t%v\n", file, err)
			bad++
			continue
		}
		fmt.Fprintf(out, "%s\t%s\n", file, name)
	}
	if bad > 0 {
		return fmt.Errorf("%d of %d files are not component files", bad, len(args))
	}
	return nil
}
