package check

import (
	"os"
	"sync"

	"defcheck/internal/config"
	"defcheck/internal/logging"
)

// Handler is invoked synchronously when a check fails. It must not return.
type Handler func(v *Violation)

// ReviewHandler is invoked synchronously when a review fails. Returning
// resumes execution after the review.
type ReviewHandler func(v *ReviewViolation)

// abortExitCode is the status shells report for SIGABRT.
const abortExitCode = 134

var (
	mu            sync.RWMutex
	handler       Handler       = FailByAbort
	reviewHandler ReviewHandler = FailByLog
	build                       = config.DefaultBuildConfig()
	abortFunc                   = func() { os.Exit(abortExitCode) }
)

// SetViolationHandler installs h and returns the handler it replaced. A nil
// h reinstates FailByAbort.
func SetViolationHandler(h Handler) Handler {
	if h == nil {
		h = FailByAbort
	}
	mu.Lock()
	defer mu.Unlock()
	prev := handler
	handler = h
	return prev
}

// SetReviewHandler installs h and returns the handler it replaced. A nil h
// reinstates FailByLog.
func SetReviewHandler(h ReviewHandler) ReviewHandler {
	if h == nil {
		h = FailByLog
	}
	mu.Lock()
	defer mu.Unlock()
	prev := reviewHandler
	reviewHandler = h
	return prev
}

// InstallHandlers installs both handlers and returns a function restoring
// the previous pair.
func InstallHandlers(h Handler, rh ReviewHandler) (restore func()) {
	prevH := SetViolationHandler(h)
	prevRH := SetReviewHandler(rh)
	return func() {
		SetViolationHandler(prevH)
		SetReviewHandler(prevRH)
	}
}

// Configure makes b the active build and returns a function restoring the
// previous one. b.Mode is trusted; validate it before calling.
func Configure(b config.BuildConfig) (restore func()) {
	mu.Lock()
	prev := build
	build = b
	mu.Unlock()
	return func() {
		mu.Lock()
		build = prev
		mu.Unlock()
	}
}

// Build returns the active build.
func Build() config.BuildConfig {
	mu.RLock()
	defer mu.RUnlock()
	return build
}

// SetAbortFunc replaces the process termination used by failure handlers
// and returns a function restoring the previous one. Tests use it to observe
// the terminate path without exiting.
func SetAbortFunc(f func()) (restore func()) {
	mu.Lock()
	prev := abortFunc
	abortFunc = f
	mu.Unlock()
	return func() {
		mu.Lock()
		abortFunc = prev
		mu.Unlock()
	}
}

// Abort terminates the process abnormally.
func Abort() {
	mu.RLock()
	f := abortFunc
	mu.RUnlock()
	f()
}

// FailByAbort logs the violation and aborts the process. It is the default
// violation handler.
func FailByAbort(v *Violation) {
	logging.LogFormattedMessage(logging.SeverityFatal, v.FileName(), v.LineNumber(),
		"Assertion failed: %s", v.Comment())
	Abort()
}

// FailByLog logs the review failure and returns. It is the default review
// handler.
func FailByLog(v *ReviewViolation) {
	logging.LogFormattedMessage(logging.SeverityError, v.FileName(), v.LineNumber(),
		"review failure (level:%s): '%s'", v.ReviewLevel(), v.Comment())
}

func currentHandler() Handler {
	mu.RLock()
	defer mu.RUnlock()
	return handler
}

func currentReviewHandler() ReviewHandler {
	mu.RLock()
	defer mu.RUnlock()
	return reviewHandler
}
