package main

import (
	"fmt"
	"io"
	"strings"

	"defcheck/internal/regression"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	detailStyle = lipgloss.NewStyle().Faint(true).PaddingLeft(6)
)

// renderReport writes one line per case, with the error and captured
// diagnostics under each failed case.
func renderReport(w io.Writer, path string, report *regression.Report) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%s (run %s)", path, report.RunID)))

	for _, res := range report.Results {
		if res.Success {
			fmt.Fprintf(w, "  %s %s (%dms)\n", passStyle.Render("PASS"), res.CaseID, res.DurationMs)
			continue
		}
		fmt.Fprintf(w, "  %s %s (%dms)\n", failStyle.Render("FAIL"), res.CaseID, res.DurationMs)
		if res.Error != "" {
			fmt.Fprintln(w, detailStyle.Render(res.Error))
		}
		if out := strings.TrimSpace(res.Output); out != "" {
			fmt.Fprintln(w, detailStyle.Render(out))
		}
	}

	fmt.Fprintf(w, "%d passed, %d failed\n", report.Passed(), report.Failed())
}
