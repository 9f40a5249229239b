// Package log provides leveled logging for popper on top of log/slog.
//
// Popper distinguishes three effective verbosity levels. The default level
// includes per-action informational output (ACTION); --quiet suppresses
// action-level output while keeping ordinary informational messages; --debug
// shows everything and overrides --quiet.
//
// Key types:
//   - [Level] - Verbosity level enumeration (debug, action-info, info)
//   - [Logger] - Structured logger with an optional log-file attachment
//
// A single [Logger] is created per command invocation and shared by every
// component. [Logger.AttachFile] tees output to a file for the remainder of
// the invocation.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Level represents an effective verbosity level.
//
// Levels are ordered from most to least verbose. A logger set to a given
// level emits every message at that level or above it in severity.
type Level int

const (
	// LevelDebug is the most verbose level, enabled by --debug.
	// It overrides --quiet.
	LevelDebug Level = iota

	// LevelActionInfo is the default level. It includes per-action
	// informational output in addition to ordinary messages.
	LevelActionInfo

	// LevelInfo is the quiet level, enabled by --quiet. Action-level
	// informational output is suppressed.
	LevelInfo
)

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelActionInfo:
		return "ACTION_INFO"
	case LevelInfo:
		return "INFO"
	default:
		return "UNKNOWN"
	}
}

// slogActionInfo sits between slog's DEBUG (-4) and INFO (0) so that the
// default level passes action output through while --quiet filters it.
const slogActionInfo = slog.Level(-2)

func slogLevel(l Level) slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelActionInfo:
		return slogActionInfo
	default:
		return slog.LevelInfo
	}
}

// Logger is the process-wide logger for one command invocation.
//
// Create with [New], then optionally adjust verbosity with [Logger.SetLevel]
// and attach a log file with [Logger.AttachFile] once the command line has
// been resolved. Both mutations happen during argument resolution, before
// any execution begins; afterwards the logger is only read.
type Logger struct {
	slogger *slog.Logger
	level   *slog.LevelVar
	out     io.Writer
	file    *os.File
}

// New creates a [Logger] at the given level writing to w.
func New(level Level, w io.Writer) *Logger {
	lv := new(slog.LevelVar)
	lv.Set(slogLevel(level))
	return &Logger{
		slogger: slog.New(newHandler(w, lv)),
		level:   lv,
		out:     w,
	}
}

// Discard returns a [Logger] that drops all output. Useful in tests.
func Discard() *Logger {
	return New(LevelDebug, io.Discard)
}

func newHandler(w io.Writer, lv *slog.LevelVar) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: lv,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Render the custom action level by name instead of "DEBUG+2".
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == slogActionInfo {
					a.Value = slog.StringValue("ACTION")
				}
			}
			return a
		},
	})
}

// SetLevel changes the logger's effective verbosity level.
func (l *Logger) SetLevel(level Level) {
	l.level.Set(slogLevel(level))
}

// AttachFile tees all subsequent log output to the file at path, creating
// or truncating it. Attaching a path that is already attached is a no-op,
// so re-attaching per planned run is safe. The attachment lasts for the
// remainder of the invocation; call [Logger.Close] to release the file
// handle.
func (l *Logger) AttachFile(path string) error {
	if l.file != nil && l.file.Name() == path {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	if l.file != nil {
		l.file.Close()
	}
	l.file = f
	l.slogger = slog.New(newHandler(io.MultiWriter(l.out, f), l.level))
	return nil
}

// Close releases the attached log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// With returns a Logger that includes the given attributes on every message.
// The attached file and level are shared with the receiver.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		slogger: l.slogger.With(args...),
		level:   l.level,
		out:     l.out,
		file:    l.file,
	}
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, args ...any) {
	l.slogger.Debug(msg, args...)
}

// ActionInfo logs action-level informational output. Suppressed by --quiet.
func (l *Logger) ActionInfo(msg string, args ...any) {
	l.slogger.Log(context.Background(), slogActionInfo, msg, args...)
}

// Info logs at info level.
func (l *Logger) Info(msg string, args ...any) {
	l.slogger.Info(msg, args...)
}

// Warn logs at warn level.
func (l *Logger) Warn(msg string, args ...any) {
	l.slogger.Warn(msg, args...)
}

// Error logs at error level.
func (l *Logger) Error(msg string, args ...any) {
	l.slogger.Error(msg, args...)
}
