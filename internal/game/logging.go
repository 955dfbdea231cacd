package game

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the console logger for the game shell. Logging happens at
// lifecycle boundaries only (startup, rebuild, shutdown), never per frame.
func NewLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
