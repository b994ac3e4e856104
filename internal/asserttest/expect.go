package asserttest

import (
	"runtime"
	"testing"

	"defcheck/internal/check"
)

// ExpectPass runs fn with the test handlers installed and reports a test
// error unless fn completes without any check failing.
func ExpectPass(t testing.TB, level byte, fn func()) bool {
	t.Helper()
	return expect(t, ResultPass, level, callerFile(), fn)
}

// ExpectFail runs fn with the test handlers installed and reports a test
// error unless a check at level, or a stricter one, fails inside fn and
// the failure comes from the component of the calling test file. When the
// active build compiles level out, fn is instead expected to pass.
func ExpectFail(t testing.TB, level byte, fn func()) bool {
	t.Helper()
	return expect(t, expectedFailResult(level, false), level, callerFile(), fn)
}

// ExpectReviewFail is ExpectFail for review checks, which are compiled out
// unless the build mode enables reviews.
func ExpectReviewFail(t testing.TB, level byte, fn func()) bool {
	t.Helper()
	return expect(t, expectedFailResult(level, true), level, callerFile(), fn)
}

// ExpectPassRaw is ExpectPass without the component check.
func ExpectPassRaw(t testing.TB, level byte, fn func()) bool {
	t.Helper()
	return expect(t, ResultPass, level, "", fn)
}

// ExpectFailRaw is ExpectFail without the component check.
func ExpectFailRaw(t testing.TB, level byte, fn func()) bool {
	t.Helper()
	return expect(t, expectedFailResult(level, false), level, "", fn)
}

// ExpectReviewFailRaw is ExpectReviewFail without the component check.
func ExpectReviewFailRaw(t testing.TB, level byte, fn func()) bool {
	t.Helper()
	return expect(t, expectedFailResult(level, true), level, "", fn)
}

func expect(t testing.TB, result, level byte, driverFile string, fn func()) bool {
	t.Helper()

	restore := check.InstallHandlers(FailTestDriver, FailTestDriverByReview)
	caught := func() *Exception {
		defer restore()
		return Catch(fn)
	}()

	var ok bool
	switch {
	case caught == nil && driverFile == "":
		ok = TryProbeRaw(result, level)
	case caught == nil:
		ok = TryProbe(result, level)
	case driverFile == "":
		ok = CatchProbeRaw(result, true, level, caught)
	default:
		ok = CatchProbe(result, true, level, caught, driverFile)
	}

	if !ok {
		if caught != nil {
			t.Errorf("check expectation %c/%c not met: caught %v", result, level, caught)
		} else {
			t.Errorf("check expectation %c/%c not met: nothing failed", result, level)
		}
	}
	return ok
}

// expectedFailResult is F when checks at level fire under the active
// build and P when they are compiled out. review selects the review check
// of the same level. Unknown levels yield F and are rejected by the probe.
func expectedFailResult(level byte, review bool) byte {
	var l check.Level
	switch level {
	case LevelSafe:
		l = check.LevelSafe
		if review {
			l = check.ReviewLevelSafe
		}
	case LevelAssert:
		l = check.LevelAssert
		if review {
			l = check.ReviewLevelReview
		}
	case LevelOpt:
		l = check.LevelOpt
		if review {
			l = check.ReviewLevelOpt
		}
	case LevelInvoke:
		l = check.LevelInvoke
		if review {
			l = check.ReviewLevelInvoke
		}
	default:
		return ResultFail
	}
	if check.IsActive(l) {
		return ResultFail
	}
	return ResultPass
}

// callerFile returns the file of the test function calling an Expect
// helper.
func callerFile() string {
	_, file, _, ok := runtime.Caller(2)
	if !ok {
		return ""
	}
	return file
}
