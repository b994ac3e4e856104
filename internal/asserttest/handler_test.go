package asserttest

import (
	"errors"
	"runtime"
	"testing"

	"defcheck/internal/check"
	"defcheck/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errAborted = errors.New("aborted")

func thisFile() string {
	_, file, _, _ := runtime.Caller(1)
	return file
}

func TestFailTestDriverRaisesException(t *testing.T) {
	useBuild(t, nil)

	caught := Catch(func() {
		FailTestDriver(check.NewViolation("p != 0", "bslma_default.cpp", 77, check.LevelOpt))
	})

	require.NotNil(t, caught)
	assert.Equal(t, "p != 0", caught.Expression())
	assert.Equal(t, "bslma_default.cpp", caught.Filename())
	assert.Equal(t, 77, caught.LineNumber())
	assert.Equal(t, check.LevelOpt, caught.Level())
	assert.Equal(t, "bslma_default.cpp:77: check failed (level OPT): p != 0", caught.Error())
}

func TestFailTestDriverByReviewRaisesException(t *testing.T) {
	useBuild(t, nil)

	caught := Catch(func() {
		FailTestDriverByReview(check.NewReviewViolation("n < 10", "bdlt_date.cpp", 5, check.ReviewLevelReview))
	})

	require.NotNil(t, caught)
	assert.Equal(t, check.ReviewLevelReview, caught.Level())
	assert.Equal(t, "n < 10", caught.Expression())
}

func TestFailTestDriverWithoutExceptionsAborts(t *testing.T) {
	useBuild(t, func(b *config.BuildConfig) { b.Exceptions = false })
	logs := observeDiagnostics(t)
	t.Cleanup(check.SetAbortFunc(func() { panic(errAborted) }))

	assert.PanicsWithValue(t, errAborted, func() {
		FailTestDriver(check.NewViolation("", "bsls_log.cpp", 3, check.LevelAssert))
	})
	assert.PanicsWithValue(t, errAborted, func() {
		FailTestDriverByReview(check.NewReviewViolation("ok", "", 4, check.ReviewLevelSafe))
	})

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "Assertion failed: (* Empty Expression Text *)", logs.All()[0].Message)
	assert.Equal(t, "bsls_log.cpp", logs.All()[0].ContextMap()["file"])
	assert.Equal(t, "Assertion failed: ok", logs.All()[1].Message)
	assert.Equal(t, "(* Empty File Name *)", logs.All()[1].ContextMap()["file"])
}

func TestCatch(t *testing.T) {
	assert.Nil(t, Catch(func() {}))

	ex := NewException("x", "f.cpp", 1, check.LevelSafe)
	assert.Same(t, ex, Catch(func() { panic(ex) }))

	assert.PanicsWithValue(t, "unrelated", func() {
		Catch(func() { panic("unrelated") })
	})
}

func TestUseBuild(t *testing.T) {
	orig := check.Build()

	_, err := UseBuild(config.BuildConfig{Mode: "S3"})
	assert.ErrorIs(t, err, ErrInvalidBuildSpec)
	assert.Equal(t, orig, check.Build())

	restore, err := UseBuild(config.BuildConfig{Mode: "O2", Exceptions: true})
	require.NoError(t, err)
	assert.Equal(t, "O2", check.Build().Mode)

	restore()
	assert.Equal(t, orig, check.Build())
}

func TestHandlersEndToEnd(t *testing.T) {
	useBuild(t, func(b *config.BuildConfig) { b.Mode = "S" })
	logs := observeDiagnostics(t)
	t.Cleanup(check.InstallHandlers(FailTestDriver, FailTestDriverByReview))

	caught := Catch(func() { check.Safe(false, "begin <= end") })
	require.NotNil(t, caught)
	assert.True(t, CatchProbe('F', true, 'S', caught, thisFile()))

	caught = Catch(func() { check.Opt(false, "begin <= end") })
	require.NotNil(t, caught)
	assert.False(t, CatchProbe('F', true, 'S', caught, thisFile()))
	assert.True(t, CatchProbe('F', true, 'O', caught, thisFile()))
	assert.False(t, CatchProbe('F', true, 'O', caught, "/src/bsls_other.t.cpp"))

	assert.Nil(t, Catch(func() { check.Safe(true, "holds") }))
	assert.True(t, TryProbe('P', 'S'))

	assert.Equal(t, 2, logs.Len())
}
