// Package samlog wraps the editor's structured logger. Every debug/info
// print the teacher scattered across lexer.DebugPrint/parser.debugPrint
// goes through here instead, tagged with the fields engine.Run needs to
// correlate one invocation's output: invocation id, file name, command
// name.
package samlog

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu   sync.Mutex
	base *zap.Logger
)

// Init installs the process-wide base logger. verbose raises the level
// to Debug; otherwise Info and above are emitted. Safe to call more than
// once (e.g. after config reload changes verbosity).
func Init(verbose bool) {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	l, err := cfg.Build()
	if err != nil {
		// Logging must never be the reason the editor fails to start.
		l = zap.NewNop()
	}
	mu.Lock()
	base = l
	mu.Unlock()
}

// Base returns the process-wide base logger installed by Init (or a
// no-op logger if Init was never called), for a host to hand to
// engine.Editor.Logger.
func Base() *zap.Logger { return logger() }

func logger() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	if base == nil {
		base = zap.NewNop()
	}
	return base
}

// Sync flushes any buffered log entries; call before process exit.
func Sync() {
	_ = logger().Sync()
}

// Invocation returns a child logger pre-tagged with one engine.Run call's
// correlation id, so every line it emits for that run can be grepped out
// of a shared log stream.
func Invocation(id string) *zap.Logger {
	return logger().With(zap.String("invocation", id))
}

// ForCommand further tags an invocation logger with the file and command
// name currently executing (spec.md §7 "User-visible info messages").
func ForCommand(l *zap.Logger, file, command string) *zap.Logger {
	return l.With(zap.String("file", file), zap.String("command", command))
}

// Fallback is used by call sites that run before Init (or when Init was
// never called, e.g. in unit tests): a bare stderr logger so output is
// never silently dropped.
func Fallback() *zap.Logger {
	l, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// Discard returns a logger that drops everything, for tests that don't
// care about log output but must supply one.
func Discard() *zap.Logger { return zap.NewNop() }
