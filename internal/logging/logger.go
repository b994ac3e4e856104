// Package logging is the diagnostic sink for defensive-check failures and
// probe verdicts. Everything goes through one process-wide zap logger that
// test drivers and the CLI can swap out.
package logging

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Severity is the severity a diagnostic is reported at.
type Severity int

const (
	SeverityFatal Severity = iota
	SeverityError
	SeverityWarn
	SeverityInfo
	SeverityDebug
	SeverityTrace
)

// String returns the lower-case name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityFatal:
		return "fatal"
	case SeverityError:
		return "error"
	case SeverityWarn:
		return "warn"
	case SeverityInfo:
		return "info"
	case SeverityDebug:
		return "debug"
	case SeverityTrace:
		return "trace"
	default:
		return "unknown"
	}
}

// zapLevel maps a severity onto the zap level it is written at. Fatal is
// written at error level: terminating is the caller's decision, not the
// sink's.
func (s Severity) zapLevel() zapcore.Level {
	switch s {
	case SeverityFatal, SeverityError:
		return zapcore.ErrorLevel
	case SeverityWarn:
		return zapcore.WarnLevel
	case SeverityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

var (
	loggerMu sync.RWMutex
	logger   = newStderrLogger()
)

// newStderrLogger builds the default sink: console encoding, no timestamps,
// unbuffered writes to stderr.
func newStderrLogger() *zap.Logger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(os.Stderr), zapcore.DebugLevel)
	return zap.New(core)
}

// New builds a stderr logger at the given level ("debug", "info", "warn",
// "error") in the given format ("console" or "json").
func New(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var cfg zap.Config
	switch format {
	case "json":
		cfg = zap.NewProductionConfig()
	case "", "console", "text":
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.TimeKey = ""
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Sampling = nil
	cfg.DisableStacktrace = true
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return l, nil
}

// L returns the current process-wide logger.
func L() *zap.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// SetLogger installs l as the process-wide logger and returns a function
// that reinstates the previous one. A nil l installs a no-op logger.
func SetLogger(l *zap.Logger) (restore func()) {
	if l == nil {
		l = zap.NewNop()
	}

	loggerMu.Lock()
	prev := logger
	logger = l
	loggerMu.Unlock()

	return func() {
		loggerMu.Lock()
		logger = prev
		loggerMu.Unlock()
	}
}

// LogFormattedMessage writes a printf-style message attributed to the given
// source file and line.
func LogFormattedMessage(severity Severity, file string, line int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if ce := L().Check(severity.zapLevel(), msg); ce != nil {
		ce.Write(
			zap.String("severity", severity.String()),
			zap.String("file", file),
			zap.Int("line", line),
		)
	}
}

// Printf writes a free-form diagnostic at warn level.
func Printf(format string, args ...interface{}) {
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	L().Warn(msg)
}
