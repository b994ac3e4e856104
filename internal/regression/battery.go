// Package regression runs probe batteries: YAML-defined suites of
// component-name, build-spec and probe cases checked against the asserttest
// package, so expectations about defensive checks can live next to the
// code as data.
package regression

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"defcheck/internal/asserttest"
	"defcheck/internal/check"
	"defcheck/internal/config"
	"defcheck/internal/logging"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Case types.
const (
	TypeComponent = "component"
	TypeBuildSpec = "build_spec"
	TypeCatch     = "catch"
	TypeCatchRaw  = "catch_raw"
	TypeTry       = "try"
	TypeTryRaw    = "try_raw"
	TypeCheck     = "check"
)

// Battery is a collection of probe cases.
type Battery struct {
	Version  int                 `yaml:"version"`
	Build    *config.BuildConfig `yaml:"build,omitempty"` // build to run under; current build when nil
	FailFast bool                `yaml:"fail_fast,omitempty"`
	Cases    []Case              `yaml:"cases"`
}

// Case is a single probe case.
type Case struct {
	ID   string `yaml:"id"`
	Type string `yaml:"type"`

	// Input is the file name (component) or build spec (build_spec).
	Input string `yaml:"input,omitempty"`
	// Want is the component name a component case must extract.
	Want string `yaml:"want,omitempty"`

	Expected   string         `yaml:"expected,omitempty"` // P or F
	Level      string         `yaml:"level,omitempty"`    // S, A, O or I
	CheckLevel *bool          `yaml:"check_level,omitempty"`
	Violation  *ViolationSpec `yaml:"violation,omitempty"`
	Driver     string         `yaml:"driver,omitempty"`
	Review     bool           `yaml:"review,omitempty"` // check cases: fire a review instead of an assertion

	// Verdict is the boolean the probe or validator must return. Defaults
	// to true.
	Verdict *bool `yaml:"verdict,omitempty"`
}

// ViolationSpec describes the caught exception of a catch case.
type ViolationSpec struct {
	Text  string `yaml:"text"`
	File  string `yaml:"file"`
	Line  int    `yaml:"line"`
	Level string `yaml:"level"`
}

// Result captures the outcome of a case.
type Result struct {
	CaseID     string
	Success    bool
	Output     string
	Error      string
	DurationMs int64
}

// Report is the outcome of one battery run.
type Report struct {
	RunID   string
	Results []Result
}

// Passed returns the number of successful cases.
func (r *Report) Passed() int {
	n := 0
	for _, res := range r.Results {
		if res.Success {
			n++
		}
	}
	return n
}

// Failed returns the number of failed cases.
func (r *Report) Failed() int {
	return len(r.Results) - r.Passed()
}

// LoadBattery reads a YAML battery file from disk.
func LoadBattery(path string) (*Battery, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var b Battery
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to parse battery YAML: %w", err)
	}
	return &b, nil
}

// RunBattery executes all cases in order. Cases run one at a time because
// check handlers and the active build are process-wide.
func RunBattery(ctx context.Context, b *Battery) (*Report, error) {
	report := &Report{RunID: uuid.NewString()}
	if b == nil || len(b.Cases) == 0 {
		return report, nil
	}

	if b.Build != nil {
		restore, err := asserttest.UseBuild(*b.Build)
		if err != nil {
			return nil, fmt.Errorf("battery build: %w", err)
		}
		defer restore()
	}

	report.Results = make([]Result, 0, len(b.Cases))
	for _, c := range b.Cases {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		res := runCase(c)
		report.Results = append(report.Results, res)

		if b.FailFast && !res.Success {
			break
		}
	}

	return report, nil
}

// runCase evaluates c with diagnostics captured into the result output.
func runCase(c Case) Result {
	start := time.Now()
	res := Result{CaseID: c.ID}

	var buf bytes.Buffer
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(&buf), zapcore.DebugLevel)
	restore := logging.SetLogger(zap.New(core))

	got, err := evaluate(c)
	restore()

	res.Output = buf.String()
	switch {
	case err != nil:
		res.Error = err.Error()
	case got != wantVerdict(c):
		res.Error = fmt.Sprintf("verdict = %t, want %t", got, wantVerdict(c))
	default:
		res.Success = true
	}
	res.DurationMs = time.Since(start).Milliseconds()
	return res
}

func wantVerdict(c Case) bool {
	if c.Verdict == nil {
		return true
	}
	return *c.Verdict
}

func evaluate(c Case) (bool, error) {
	t := strings.ToLower(strings.TrimSpace(c.Type))
	switch t {
	case TypeComponent:
		name, err := asserttest.ExtractComponentName(c.Input)
		if err != nil {
			logging.Printf("%v", err)
			return false, nil
		}
		if name != c.Want {
			logging.Printf("extracted %q, want %q", name, c.Want)
			return false, nil
		}
		return true, nil

	case TypeBuildSpec:
		return asserttest.IsValidBuildSpec(c.Input), nil

	case TypeCatch, TypeCatchRaw:
		if c.Violation == nil {
			return false, fmt.Errorf("case %s: %s requires a violation", c.ID, t)
		}
		caught := asserttest.NewException(c.Violation.Text, c.Violation.File, c.Violation.Line, check.Level(c.Violation.Level))
		if t == TypeCatchRaw {
			return asserttest.CatchProbeRaw(char(c.Expected), checkLevel(c), char(c.Level), caught), nil
		}
		return asserttest.CatchProbe(char(c.Expected), checkLevel(c), char(c.Level), caught, c.Driver), nil

	case TypeTry:
		return asserttest.TryProbe(char(c.Expected), char(c.Level)), nil

	case TypeTryRaw:
		return asserttest.TryProbeRaw(char(c.Expected), char(c.Level)), nil

	case TypeCheck:
		return runCheck(c)

	default:
		return false, fmt.Errorf("unsupported case type: %s", c.Type)
	}
}

// runCheck fires a real failing check at the case level under the test
// handlers and probes the outcome.
func runCheck(c Case) (bool, error) {
	if !check.Build().Exceptions {
		return false, fmt.Errorf("case %s: check cases need a build with exceptions enabled", c.ID)
	}
	text := c.Violation.textOr(c.ID)

	var fire func()
	switch char(c.Level) {
	case asserttest.LevelSafe:
		fire = func() { check.Safe(false, text) }
		if c.Review {
			fire = func() { check.ReviewSafe(false, text) }
		}
	case asserttest.LevelAssert:
		fire = func() { check.Assert(false, text) }
		if c.Review {
			fire = func() { check.Review(false, text) }
		}
	case asserttest.LevelOpt:
		fire = func() { check.Opt(false, text) }
		if c.Review {
			fire = func() { check.ReviewOpt(false, text) }
		}
	case asserttest.LevelInvoke:
		fire = func() { check.Invoke(text) }
		if c.Review {
			fire = func() { check.ReviewInvoke(text) }
		}
	default:
		return false, fmt.Errorf("case %s: invalid level %q", c.ID, c.Level)
	}

	caught := func() *asserttest.Exception {
		defer check.InstallHandlers(asserttest.FailTestDriver, asserttest.FailTestDriverByReview)()
		return asserttest.Catch(fire)
	}()

	if caught == nil {
		return asserttest.TryProbe(char(c.Expected), char(c.Level)), nil
	}
	return asserttest.CatchProbe(char(c.Expected), checkLevel(c), char(c.Level), caught, c.Driver), nil
}

func (v *ViolationSpec) textOr(fallback string) string {
	if v == nil || v.Text == "" {
		return fallback
	}
	return v.Text
}

func checkLevel(c Case) bool {
	if c.CheckLevel == nil {
		return true
	}
	return *c.CheckLevel
}

// char returns the single spec character s holds, or 0 so the probe
// rejects it.
func char(s string) byte {
	if len(s) != 1 {
		return 0
	}
	return s[0]
}

// DefaultBatteryPath returns the canonical battery path for a workspace.
func DefaultBatteryPath(workspace string) string {
	return filepath.Join(workspace, ".defcheck", "battery.yaml")
}
