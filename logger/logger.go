// Package logger builds the zerolog loggers used by the CLI and the audit
// package.
package logger

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrUnknownFormat indicates a log format other than "console" or "json".
var ErrUnknownFormat = errors.New("logger: unknown format")

const (
	// FormatConsole is human-readable output with RFC3339 timestamps.
	FormatConsole = "console"

	// FormatJSON is one JSON object per line.
	FormatJSON = "json"
)

// ParseLevel maps a level name ("debug", "info", "warn", ...) to zerolog.
// The empty string means info.
func ParseLevel(name string) (zerolog.Level, error) {
	if strings.TrimSpace(name) == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("logger: %w", err)
	}

	return lvl, nil
}

// New returns a timestamped logger writing to w at level in the given format.
func New(w io.Writer, level zerolog.Level, format string) (zerolog.Logger, error) {
	switch format {
	case FormatConsole, "":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	case FormatJSON:
	default:
		return zerolog.Nop(), fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}
