package check

import (
	"runtime"

	"defcheck/internal/logging"
)

// Condition arguments are evaluated by Go before the call, so a disabled
// level skips only the failure, never the expression.

// Safe fails at LevelSafe when cond is false and safe checks are active.
func Safe(cond bool, text string) {
	if !cond && IsActive(LevelSafe) {
		fail(LevelSafe, text)
	}
}

// Assert fails at LevelAssert when cond is false and assert checks are
// active.
func Assert(cond bool, text string) {
	if !cond && IsActive(LevelAssert) {
		fail(LevelAssert, text)
	}
}

// Opt fails at LevelOpt when cond is false and opt checks are active.
func Opt(cond bool, text string) {
	if !cond && IsActive(LevelOpt) {
		fail(LevelOpt, text)
	}
}

// Invoke fails unconditionally at LevelInvoke.
func Invoke(text string) {
	fail(LevelInvoke, text)
}

// ReviewSafe reports a failed review at ReviewLevelSafe.
func ReviewSafe(cond bool, text string) {
	if !cond && IsActive(ReviewLevelSafe) {
		failReview(ReviewLevelSafe, text)
	}
}

// Review reports a failed review at ReviewLevelReview.
func Review(cond bool, text string) {
	if !cond && IsActive(ReviewLevelReview) {
		failReview(ReviewLevelReview, text)
	}
}

// ReviewOpt reports a failed review at ReviewLevelOpt.
func ReviewOpt(cond bool, text string) {
	if !cond && IsActive(ReviewLevelOpt) {
		failReview(ReviewLevelOpt, text)
	}
}

// ReviewInvoke reports a review failure whenever reviews are enabled.
func ReviewInvoke(text string) {
	if IsActive(ReviewLevelInvoke) {
		failReview(ReviewLevelInvoke, text)
	}
}

// IsActive reports whether checks at level fire under the active build.
//
//	mode S: safe, assert, opt    mode O: opt
//	mode A: assert, opt          mode I: none
//
// Invoke checks always fire. Review levels follow their assert counterpart
// and additionally need a review mode (trailing 2).
func IsActive(level Level) bool {
	b := Build()
	if len(b.Mode) == 0 {
		return level == LevelInvoke
	}

	if level.IsReview() {
		if !b.ReviewsEnabled() {
			return false
		}
		level = assertCounterpart(level)
	}

	switch level {
	case LevelInvoke:
		return true
	case LevelSafe:
		return b.Mode[0] == 'S'
	case LevelAssert:
		return b.Mode[0] == 'S' || b.Mode[0] == 'A'
	case LevelOpt:
		return b.Mode[0] == 'S' || b.Mode[0] == 'A' || b.Mode[0] == 'O'
	}
	return false
}

func assertCounterpart(level Level) Level {
	switch level {
	case ReviewLevelSafe:
		return LevelSafe
	case ReviewLevelReview:
		return LevelAssert
	case ReviewLevelOpt:
		return LevelOpt
	default:
		return LevelInvoke
	}
}

// callSite returns the file and line of the check's caller. Reduced builds
// drop the file name.
func callSite() (string, int) {
	_, file, line, ok := runtime.Caller(3)
	if !ok {
		return "", 0
	}
	if !Build().EmbedFileNames {
		file = ""
	}
	return file, line
}

func fail(level Level, text string) {
	file, line := callSite()
	v := NewViolation(text, file, line, level)
	currentHandler()(v)

	// Violation handlers must not return.
	logging.LogFormattedMessage(logging.SeverityFatal, file, line,
		"violation handler returned for level %s", level)
	Abort()
}

func failReview(level Level, text string) {
	file, line := callSite()
	currentReviewHandler()(NewReviewViolation(text, file, line, level))
}
