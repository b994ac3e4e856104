package asserttest

import (
	"defcheck/internal/check"
	"defcheck/internal/logging"
)

// printError reports a failed check the way the terminate path does,
// substituting readable placeholders for missing text or file name.
func printError(text, file string, line int) {
	if text == "" {
		text = "(* Empty Expression Text *)"
	}
	if file == "" {
		if check.Build().EmbedFileNames {
			file = "(* Empty File Name *)"
		} else {
			file = "(* Unspecified File Name *)"
		}
	}
	logging.LogFormattedMessage(logging.SeverityError, file, line, "Assertion failed: %s", text)
}

// acceptedLevels lists, per expected level, the levels a caught violation
// may carry. A stricter check that runs first along the same path can
// preempt the expected one, so each entry includes every stricter level.
// Invoke accepts anything and has no entry.
var acceptedLevels = map[byte][]check.Level{
	LevelSafe: {
		check.ReviewLevelSafe, check.LevelSafe,
	},
	LevelAssert: {
		check.ReviewLevelReview, check.LevelAssert,
		check.ReviewLevelSafe, check.LevelSafe,
	},
	LevelOpt: {
		check.ReviewLevelOpt, check.LevelOpt,
		check.ReviewLevelReview, check.LevelAssert,
		check.ReviewLevelSafe, check.LevelSafe,
	},
}

var levelNames = map[byte]string{
	LevelSafe:   "SAFE",
	LevelAssert: "ASSERT",
	LevelOpt:    "OPT",
	LevelInvoke: "INVOKE",
}

// CatchProbe reports whether caught is the failure a test driver expected.
// On top of CatchProbeRaw it checks that caught names a line and an
// expression, and that it came from the component testDriverFileName tests.
// An empty testDriverFileName matches any component.
func CatchProbe(expectedResult byte, checkLevel bool, expectedLevel byte, caught *Exception, testDriverFileName string) bool {
	if caught == nil {
		logging.Printf("Null exception passed to 'catchProbe'")
		return false
	}

	validArguments := true

	text := caught.Expression()
	file := caught.Filename()

	var exceptionComponent string
	haveExceptionComponent := false
	if file != "" {
		name, err := ExtractComponentName(file)
		if err != nil {
			logging.Printf("Bad component name in exception caught by catchProbe: %s", file)
			validArguments = false
		} else {
			exceptionComponent = name
			haveExceptionComponent = true
		}
	}

	validArguments = validArguments && caught.LineNumber() > 0 && text != ""

	if check.Build().EmbedFileNames {
		validArguments = validArguments && exceptionComponent != ""
	}

	if !validArguments {
		printError(text, file, caught.LineNumber())
	}

	var thisComponent string
	if testDriverFileName != "" {
		name, err := ExtractComponentName(testDriverFileName)
		if err != nil {
			logging.Printf("Bad component name for test driver in catchProbe: %s", testDriverFileName)
			validArguments = false
		}
		thisComponent = name
	}

	if !validArguments {
		return false
	}

	if !CatchProbeRaw(expectedResult, checkLevel, expectedLevel, caught) {
		return false
	}

	// Reduced builds carry no file name, so there is nothing to compare.
	if haveExceptionComponent && testDriverFileName != "" && thisComponent != exceptionComponent {
		logging.Printf("Failure in component %s but expected component %s", exceptionComponent, thisComponent)
		return false
	}

	return true
}

// CatchProbeRaw reports whether caught is consistent with the expected
// result and level, without looking at component names.
func CatchProbeRaw(expectedResult byte, checkLevel bool, expectedLevel byte, caught *Exception) bool {
	if !IsValidExpectedResult(expectedResult) {
		logging.Printf("Invalid 'expectedResult' passed to a 'catchProbeRaw': '%c'", expectedResult)
		return false
	}

	if !IsValidExpectedLevel(expectedLevel) {
		logging.Printf("Invalid 'expectedLevel' passed to 'catchProbeRaw': '%c'", expectedLevel)
		return false
	}

	if expectedResult != ResultFail {
		logging.Printf("Unexpected assertion failure.")
		return false
	}

	if caught == nil {
		logging.Printf("Null exception passed to 'catchProbeRaw'")
		return false
	}

	if !checkLevel || !check.Build().CheckLevels {
		return true
	}

	accepted, restricted := acceptedLevels[expectedLevel]
	if !restricted {
		return true
	}
	level := caught.Level()
	for _, l := range accepted {
		if level == l {
			return true
		}
	}
	logging.Printf("Expected %s failure but got level:%s", levelNames[expectedLevel], level)
	return false
}

// TryProbe reports whether a check that did not fail was expected to pass.
func TryProbe(expectedResult, expectedLevel byte) bool {
	return tryProbe("tryProbe", expectedResult, expectedLevel)
}

// TryProbeRaw is TryProbe for drivers that skip component checks. The two
// behave identically.
func TryProbeRaw(expectedResult, expectedLevel byte) bool {
	return tryProbe("tryProbeRaw", expectedResult, expectedLevel)
}

func tryProbe(name string, expectedResult, expectedLevel byte) bool {
	if !IsValidExpectedResult(expectedResult) {
		logging.Printf("Invalid 'expectedResult' passed to '%s': '%c'", name, expectedResult)
		return false
	}

	if !IsValidExpectedLevel(expectedLevel) {
		logging.Printf("Invalid 'expectedLevel' passed to '%s': '%c'", name, expectedLevel)
		return false
	}

	if expectedResult != ResultPass {
		logging.Printf("Expression passed that was expected to fail.")
		return false
	}

	return true
}
