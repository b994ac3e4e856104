package asserttest

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

var (
	// ErrNullArgument is returned when a required file name is empty.
	ErrNullArgument = errors.New("passed at least one null argument")

	// ErrNotComponentFile is returned for file names outside the component
	// naming scheme.
	ErrNotComponentFile = errors.New("filename does not name a component")
)

// componentSuffixes are tried in order and the first match wins, so every
// _cpp03 variant must stay ahead of the plain suffix it ends with.
var componentSuffixes = []string{
	"_cpp03.t.cpp",
	"_cpp03.g.cpp",
	"_cpp03.cpp",
	"_cpp03.h",
	".t.cpp",
	".g.cpp",
	".cpp",
	".h",
	goSuffix,
}

// pathSeparators returns the characters that end a directory prefix.
func pathSeparators() string {
	if runtime.GOOS == "windows" {
		return `:/\`
	}
	return "/"
}

// stripPath returns the part of filename after its last path delimiter.
func stripPath(filename string) string {
	if i := strings.LastIndexAny(filename, pathSeparators()); i >= 0 {
		return filename[i+1:]
	}
	return filename
}

// goSuffix marks Go sources, whose test files always end in "_test".
const goSuffix = ".go"

// ExtractComponentName returns the name of the component filename belongs
// to: the base name without its component suffix and, for subordinate test
// files, without the trailing "_test" segment. The segment is only dropped
// from names with at least two underscores, so a component named xyz_test
// keeps its name. Go files drop it after a single underscore.
//
//	/a/b/xyz_component.t.cpp     -> xyz_component
//	/a/b/xyz_component_test.cpp  -> xyz_component
//	xyz_test.h                   -> xyz_test
//	probe_test.go                -> probe
//
// The result is a substring of filename and shares its storage.
func ExtractComponentName(filename string) (string, error) {
	if filename == "" {
		return "", ErrNullArgument
	}

	name := stripPath(filename)

	matched := ""
	for _, suffix := range componentSuffixes {
		if len(suffix) >= len(name) {
			continue
		}
		if strings.HasSuffix(name, suffix) {
			matched = suffix
			break
		}
	}
	if matched == "" {
		return "", fmt.Errorf("%w: %s", ErrNotComponentFile, filename)
	}
	name = name[:len(name)-len(matched)]

	minUnderscores := 2
	if matched == goSuffix {
		minUnderscores = 1
	}
	if strings.Count(name, "_") >= minUnderscores {
		if last := strings.LastIndexByte(name, '_'); name[last+1:] == "test" {
			name = name[:last]
		}
	}

	return name, nil
}
