package main

import (
	"fmt"

	"defcheck/internal/asserttest"

	"github.com/spf13/cobra"
)

// buildSpecCmd validates build specs
var buildSpecCmd = &cobra.Command{
	Use:   "buildspec [spec...]",
	Short: "Validate build specs",
	Long: `A build spec is one of S, A, O or I, optionally followed by 2.

Example:
  defcheck buildspec S A2 X`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBuildSpec,
}

func runBuildSpec(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	bad := 0
	for _, spec := range args {
		if asserttest.IsValidBuildSpec(spec) {
			fmt.Fprintf(out, "%s\tvalid\n", spec)
			continue
		}
		fmt.Fprintf(out, "%s\tinvalid\n", spec)
		bad++
	}
	if bad > 0 {
		return fmt.Errorf("%d of %d build specs are invalid", bad, len(args))
	}
	return nil
}
