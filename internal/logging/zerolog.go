package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewZerolog returns the component logger used by the storage and metrics
// layers. A nil writer falls back to the console sink.
func NewZerolog(w io.Writer, level string) zerolog.Logger {
	if w == nil {
		w = zerolog.ConsoleWriter{Out: consoleOut, TimeFormat: time.RFC3339, NoColor: true}
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
