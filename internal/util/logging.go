// Package util provides common utilities including logging helpers,
// file system paths and small integer helpers.
package util

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// NewLogger returns a timestamped logger writing to w. Unknown levels fall
// back to info.
func NewLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// NewConsoleLogger is NewLogger with human-readable output for the CLI.
func NewConsoleLogger(w io.Writer, level string) zerolog.Logger {
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: !isTerminal(w)}
	return NewLogger(cw, level)
}

// LogError logs an error with context if it is non-nil.
func LogError(logger zerolog.Logger, context string, err error) {
	if err != nil {
		logger.Error().Err(err).Msg(context)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
