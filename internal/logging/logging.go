// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options controls logger construction.
type Options struct {
	// Level is a level name such as "debug" or "off"; empty keeps the default.
	Level   string
	Verbose bool
	NoColor bool
	Out     io.Writer
}

var configureMu sync.Mutex

// Configure installs a console logger as zerolog's global logger and returns it.
// Verbose forces at least debug level.
func Configure(opts Options) zerolog.Logger {
	configureMu.Lock()
	defer configureMu.Unlock()

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	level, ok := ParseLevel(opts.Level)
	if !ok {
		level = zerolog.WarnLevel
	}
	if opts.Verbose && level > zerolog.DebugLevel {
		level = zerolog.DebugLevel
	}

	writer := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    opts.NoColor,
	}
	logger := zerolog.New(writer).Level(level).With().Timestamp().Str("app", "pkgstate").Logger()
	log.Logger = logger
	return logger
}

// ParseLevel maps a level name to a zerolog level.
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.WarnLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.WarnLevel, false
	}
}
