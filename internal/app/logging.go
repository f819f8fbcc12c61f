package app

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// newLogger builds the CLI's console logger. verbose forces debug level; an
// unknown level falls back to warn.
func newLogger(w io.Writer, level string, verbose bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}
	if verbose {
		lvl = zerolog.DebugLevel
	}

	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    flagNoColor,
	}
	return zerolog.New(console).Level(lvl).With().Timestamp().Logger()
}
