// Package asserttest lets test drivers verify that defensive checks fail
// when they should, at the level they should, and from the component they
// should.
//
// A failing check is turned into a panic carrying an *Exception by the
// handlers in this package. The driver recovers it with Catch and hands it
// to CatchProbe; when nothing failed the driver calls TryProbe instead.
// Probes never fail loudly: they print a diagnostic and return false.
package asserttest

import (
	"fmt"

	"defcheck/internal/check"
)

// Exception is the signal a test failure handler raises for a failed check.
// It is immutable once created.
type Exception struct {
	expression string
	filename   string
	lineNumber int
	level      check.Level
}

// NewException returns the signal for a check on expression that failed at
// filename:lineNumber at level.
func NewException(expression, filename string, lineNumber int, level check.Level) *Exception {
	return &Exception{
		expression: expression,
		filename:   filename,
		lineNumber: lineNumber,
		level:      level,
	}
}

func (e *Exception) Expression() string { return e.expression }
func (e *Exception) Filename() string   { return e.filename }
func (e *Exception) LineNumber() int    { return e.lineNumber }
func (e *Exception) Level() check.Level { return e.level }

// Error implements error.
func (e *Exception) Error() string {
	return fmt.Sprintf("%s:%d: check failed (level %s): %s", e.filename, e.lineNumber, e.level, e.expression)
}

// Catch runs fn and returns the *Exception it panicked with, or nil when fn
// returned normally. Any other panic value is re-raised.
func Catch(fn func()) (caught *Exception) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		ex, ok := r.(*Exception)
		if !ok {
			panic(r)
		}
		caught = ex
	}()
	fn()
	return nil
}
