package core

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// NewLogger returns a console logger at the given level. Unknown levels fall
// back to info.
func NewLogger(level string) zerolog.Logger {
	return newLogger(zerolog.ConsoleWriter{Out: os.Stderr}, level)
}

func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
