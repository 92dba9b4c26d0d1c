package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Leveled logger used across the dashboard service.
// - Debug/Info/Warn/Error/Fatal variants and Init(level, format)
// - backed by log/slog; format is "text" (default) or "json"

var (
	mu     sync.RWMutex
	level  = new(slog.LevelVar)
	format = "text"
	out    io.Writer = os.Stdout
	base   *slog.Logger
)

func init() {
	rebuild()
}

// Init sets the global log level (debug, info, warn, error; case-insensitive)
// and output format. Unknown levels fall back to info, unknown formats to text.
func Init(lvl, fmtName string) {
	mu.Lock()
	defer mu.Unlock()
	level.Set(parseLevel(lvl))
	switch strings.ToLower(strings.TrimSpace(fmtName)) {
	case "json":
		format = "json"
	default:
		format = "text"
	}
	rebuildLocked()
}

func parseLevel(l string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setOutput redirects log output; used by tests.
func setOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
	rebuildLocked()
}

func rebuild() {
	mu.Lock()
	defer mu.Unlock()
	rebuildLocked()
}

func rebuildLocked() {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if format == "json" {
		h = slog.NewJSONHandler(out, opts)
	} else {
		h = slog.NewTextHandler(out, opts)
	}
	base = slog.New(h)
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// With returns a structured logger carrying the component name.
func With(component string) *slog.Logger {
	return current().With("component", component)
}

func Debugf(format string, v ...interface{}) {
	current().Debug(fmt.Sprintf(format, v...))
}

func Infof(format string, v ...interface{}) {
	current().Info(fmt.Sprintf(format, v...))
}

func Warnf(format string, v ...interface{}) {
	current().Warn(fmt.Sprintf(format, v...))
}

func Errorf(format string, v ...interface{}) {
	current().Error(fmt.Sprintf(format, v...))
}

func Fatalf(format string, v ...interface{}) {
	current().Error(fmt.Sprintf(format, v...), "fatal", true)
	os.Exit(1)
}

func Info(v string)  { Infof("%s", v) }
func Warn(v string)  { Warnf("%s", v) }
func Error(v string) { Errorf("%s", v) }

// LevelString returns the current level as text.
func LevelString() string {
	switch level.Level() {
	case slog.LevelDebug:
		return "debug"
	case slog.LevelWarn:
		return "warn"
	case slog.LevelError:
		return "error"
	}
	return "info"
}
