package config

// BuildConfig describes the build the checks behave as if compiled in.
type BuildConfig struct {
	// Mode is a build spec: S, A, O or I, optionally followed by 2 to
	// enable reviews at the same levels.
	Mode string `yaml:"mode"`

	// Exceptions reports whether a failed check may unwind to the test
	// driver. When false, test handlers terminate the process instead.
	Exceptions bool `yaml:"exceptions"`

	// CheckLevels reports whether the level of a caught violation is
	// available for probes to cross-check.
	CheckLevels bool `yaml:"check_levels"`

	// EmbedFileNames reports whether violations carry the full file name of
	// the failing check. Reduced builds leave it empty.
	EmbedFileNames bool `yaml:"embed_file_names"`
}

// DefaultBuildConfig returns the build a plain `go test` behaves as: assert
// mode, unwinding enabled, levels and file names available.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		Mode:           "A",
		Exceptions:     true,
		CheckLevels:    true,
		EmbedFileNames: true,
	}
}

// ValidBuildModes lists every accepted build mode.
var ValidBuildModes = []string{"S", "A", "O", "I", "S2", "A2", "O2", "I2"}

// ReviewsEnabled reports whether the build mode enables reviews.
func (b BuildConfig) ReviewsEnabled() bool {
	return len(b.Mode) == 2 && b.Mode[1] == '2'
}
