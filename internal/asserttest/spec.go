package asserttest

// Expected results.
const (
	ResultPass byte = 'P'
	ResultFail byte = 'F'
)

// Expected levels.
const (
	LevelSafe   byte = 'S'
	LevelAssert byte = 'A'
	LevelOpt    byte = 'O'
	LevelInvoke byte = 'I'
)

// IsValidBuildSpec reports whether spec names a build: one of S, A, O, I,
// optionally followed by 2.
func IsValidBuildSpec(spec string) bool {
	if spec == "" {
		return false
	}
	switch spec[0] {
	case LevelSafe, LevelAssert, LevelOpt, LevelInvoke:
		return len(spec) == 1 || (len(spec) == 2 && spec[1] == '2')
	}
	return false
}

// IsValidExpectedResult reports whether c is P or F.
func IsValidExpectedResult(c byte) bool {
	return c == ResultPass || c == ResultFail
}

// IsValidExpectedLevel reports whether c is S, A, O or I.
func IsValidExpectedLevel(c byte) bool {
	return c == LevelSafe || c == LevelAssert || c == LevelOpt || c == LevelInvoke
}
