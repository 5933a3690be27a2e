// Package logging builds the process logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options selects the logger output.
type Options struct {
	Level  string    // debug, info, warn, error; empty means info
	Format string    // console or json; empty means console
	Out    io.Writer // defaults to os.Stderr
}

// New returns a logger writing to opts.Out. An unknown level falls back to info.
func New(opts Options) zerolog.Logger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	if opts.Format != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	return zerolog.New(out).
		Level(ParseLevel(opts.Level)).
		With().
		Timestamp().
		Logger()
}

// ParseLevel maps a level name onto zerolog's levels.
func ParseLevel(name string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// Since adds the elapsed time since start to an event.
func Since(e *zerolog.Event, start time.Time) *zerolog.Event {
	return e.Dur("duration", time.Since(start))
}
