package util

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// LogFormat selects the slog handler used by the process logger.
type LogFormat string

const (
	// LogText writes key=value lines with a short clock, for terminals.
	LogText LogFormat = "text"
	// LogJSON writes one JSON object per record, for log collectors.
	LogJSON LogFormat = "json"
)

// ParseLogFormat accepts "text" or "json" in any case. Empty means text.
func ParseLogFormat(name string) (LogFormat, error) {
	switch f := LogFormat(strings.ToLower(strings.TrimSpace(name))); f {
	case "", LogText:
		return LogText, nil
	case LogJSON:
		return LogJSON, nil
	default:
		return "", fmt.Errorf("unknown log format %q (want text or json)", name)
	}
}

var (
	mu        sync.RWMutex
	logLevel  = new(slog.LevelVar)
	logFormat = LogText
	logOut    io.Writer = os.Stderr
	logger    = newLogger(logOut, logFormat)
)

func newLogger(w io.Writer, format LogFormat) *slog.Logger {
	if format == LogJSON {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: logLevel}))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       logLevel,
		ReplaceAttr: clockTime,
	}))
}

// clockTime shortens top-level timestamps to HH:MM:SS.
func clockTime(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && len(groups) == 0 && a.Value.Kind() == slog.KindTime {
		return slog.String(slog.TimeKey, a.Value.Time().Format("15:04:05"))
	}
	return a
}

// SetLogOutput redirects the process logger to w.
func SetLogOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logOut = w
	logger = newLogger(logOut, logFormat)
}

// SetLogFormat switches the process logger between text and JSON.
func SetLogFormat(format LogFormat) {
	mu.Lock()
	defer mu.Unlock()
	logFormat = format
	logger = newLogger(logOut, logFormat)
}

// SetVerbose enables or disables debug records.
func SetVerbose(verbose bool) {
	if verbose {
		logLevel.Set(slog.LevelDebug)
		return
	}
	logLevel.Set(slog.LevelInfo)
}

// Debug logs a formatted debug message.
func Debug(format string, args ...interface{}) {
	Slog().Debug(fmt.Sprintf(format, args...))
}

// Warn logs a formatted warning.
func Warn(format string, args ...interface{}) {
	Slog().Warn(fmt.Sprintf(format, args...))
}

// Slog returns the process logger.
func Slog() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Component returns the process logger tagged with component=name.
// The result does not follow later SetLogOutput or SetLogFormat calls.
func Component(name string) *slog.Logger {
	return Slog().With("component", name)
}
