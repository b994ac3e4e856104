package asserttest

import (
	"errors"
	"fmt"

	"defcheck/internal/check"
	"defcheck/internal/config"
)

// ErrInvalidBuildSpec is returned by UseBuild for a malformed build mode.
var ErrInvalidBuildSpec = errors.New("invalid build spec")

// FailTestDriver is a check.Handler for test drivers. When the build can
// unwind it panics with an *Exception describing v; otherwise it reports v
// and aborts the process.
func FailTestDriver(v *check.Violation) {
	fail(v.Comment(), v.FileName(), v.LineNumber(), v.AssertLevel())
}

// FailTestDriverByReview is the check.ReviewHandler counterpart of
// FailTestDriver.
func FailTestDriverByReview(v *check.ReviewViolation) {
	fail(v.Comment(), v.FileName(), v.LineNumber(), v.ReviewLevel())
}

func fail(comment, file string, line int, level check.Level) {
	if check.Build().Exceptions {
		panic(NewException(comment, file, line, level))
	}
	printError(comment, file, line)
	check.Abort()
}

// UseBuild validates b and makes it the active build, returning a function
// that restores the previous build.
func UseBuild(b config.BuildConfig) (restore func(), err error) {
	if !IsValidBuildSpec(b.Mode) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBuildSpec, b.Mode)
	}
	return check.Configure(b), nil
}
