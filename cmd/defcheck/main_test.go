package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"defcheck/internal/check"
	"defcheck/internal/logging"
	"defcheck/internal/regression"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func testCommand(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	logger = zap.NewNop()
	timeout = 10 * time.Second
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	return cmd, &buf
}

func TestRunComponent(t *testing.T) {
	cmd, out := testCommand(t)

	if err := runComponent(cmd, []string{"/src/bsls_assert.t.cpp", "probe_test.go"}); err != nil {
		t.Fatalf("runComponent failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "/src/bsls_assert.t.cpp\tbsls_assert\n") {
		t.Fatalf("missing component line: %q", got)
	}
	if !strings.Contains(got, "probe_test.go\tprobe\n") {
		t.Fatalf("missing go component line: %q", got)
	}
}

func TestRunComponentReportsBadFiles(t *testing.T) {
	cmd, out := testCommand(t)

	err := runComponent(cmd, []string{"README.md", "bdlt_date.h", ".cpp"})
	if err == nil || err.Error() != "2 of 3 files are not component files" {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "bdlt_date.h\tbdlt_date\n") {
		t.Fatalf("valid file not printed: %q", out.String())
	}
}

func TestRunBuildSpec(t *testing.T) {
	cmd, out := testCommand(t)

	if err := runBuildSpec(cmd, []string{"S", "I2"}); err != nil {
		t.Fatalf("runBuildSpec failed: %v", err)
	}
	if out.String() != "S\tvalid\nI2\tvalid\n" {
		t.Fatalf("unexpected output: %q", out.String())
	}

	out.Reset()
	err := runBuildSpec(cmd, []string{"A", "X2"})
	if err == nil || !strings.Contains(err.Error(), "1 of 2") {
		t.Fatalf("expected invalid spec error, got %v", err)
	}
	if !strings.Contains(out.String(), "X2\tinvalid") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func writeBattery(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write battery: %v", err)
	}
	return path
}

const passingBattery = `version: 1
cases:
  - id: spec-ok
    type: build_spec
    input: A2
  - id: name
    type: component
    input: bsls_log.g.cpp
    want: bsls_log
`

const failingBattery = `version: 1
cases:
  - id: wrong-name
    type: component
    input: bsls_log.g.cpp
    want: bsls_logx
`

func TestRunBatteries(t *testing.T) {
	cmd, out := testCommand(t)
	dir := t.TempDir()
	a := writeBattery(t, dir, "a.yaml", passingBattery)
	b := writeBattery(t, dir, "b.yaml", passingBattery)

	if err := runBatteries(cmd, []string{a, b}); err != nil {
		t.Fatalf("runBatteries failed: %v", err)
	}
	got := out.String()
	if strings.Count(got, "2 passed, 0 failed") != 2 {
		t.Fatalf("expected two summaries, got %q", got)
	}
	if !strings.Contains(got, "spec-ok") || !strings.Contains(got, a) {
		t.Fatalf("unexpected report: %q", got)
	}
}

func TestRunBatteriesFailures(t *testing.T) {
	cmd, out := testCommand(t)
	path := writeBattery(t, t.TempDir(), "fail.yaml", failingBattery)

	err := runBatteries(cmd, []string{path})
	if err == nil || err.Error() != "1 case(s) failed" {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "FAIL") || !strings.Contains(out.String(), "verdict = false, want true") {
		t.Fatalf("failure details missing: %q", out.String())
	}
}

func TestRunBatteriesDefaultPath(t *testing.T) {
	cmd, out := testCommand(t)
	dir := t.TempDir()
	writeBattery(t, dir, filepath.Join(".defcheck", "battery.yaml"), passingBattery)

	workspace = dir
	t.Cleanup(func() { workspace = "" })

	if err := runBatteries(cmd, nil); err != nil {
		t.Fatalf("runBatteries failed: %v", err)
	}
	if !strings.Contains(out.String(), regression.DefaultBatteryPath(dir)) {
		t.Fatalf("default battery not used: %q", out.String())
	}
}

func TestRunBatteriesMissingFile(t *testing.T) {
	cmd, _ := testCommand(t)
	missing := filepath.Join(t.TempDir(), "missing.yaml")

	err := runBatteries(cmd, []string{missing})
	if err == nil || !strings.Contains(err.Error(), "load "+missing) {
		t.Fatalf("expected load error, got %v", err)
	}
}

func TestRenderReport(t *testing.T) {
	var buf bytes.Buffer
	renderReport(&buf, "battery.yaml", &regression.Report{
		RunID: "run-1",
		Results: []regression.Result{
			{CaseID: "ok", Success: true},
			{CaseID: "bad", Error: "verdict = false, want true", Output: "WARN\tExpression passed that was expected to fail.\n"},
		},
	})

	got := buf.String()
	for _, want := range []string{"battery.yaml (run run-1)", "ok", "bad", "verdict = false", "Expression passed", "1 passed, 1 failed"} {
		if !strings.Contains(got, want) {
			t.Fatalf("report missing %q: %q", want, got)
		}
	}
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml")}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		configPath = "defcheck.yaml"
	})
	err := execute()
	return buf.String(), err
}

func TestExecuteRestoresAfterFailure(t *testing.T) {
	t.Setenv("DEFCHECK_BUILD_MODE", "S2")
	before := check.Build()
	prevLogger := logging.L()

	out, err := runRoot(t, "component", "README.md")
	if err == nil || err.Error() != "1 of 1 files are not component files" {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "README.md\t") {
		t.Fatalf("command did not run: %q", out)
	}
	if check.Build() != before {
		t.Fatalf("build not restored: %+v", check.Build())
	}
	if logging.L() != prevLogger {
		t.Fatal("logger not restored")
	}
}

func TestExecuteAppliesConfiguredBuild(t *testing.T) {
	t.Setenv("DEFCHECK_BUILD_MODE", "O")
	dir := t.TempDir()
	// Assert checks are off in an opt build, so this case passes only when
	// the configured build is active during the run.
	path := writeBattery(t, dir, "mode.yaml", `version: 1
cases:
  - id: assert-off
    type: check
    expected: P
    level: A
`)
	before := check.Build()

	if _, err := runRoot(t, "battery", path); err != nil {
		t.Fatalf("battery failed: %v", err)
	}
	if check.Build() != before {
		t.Fatalf("build not restored: %+v", check.Build())
	}
}
