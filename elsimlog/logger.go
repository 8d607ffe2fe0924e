// Package elsimlog builds the zerolog logger used across the engine.
package elsimlog

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/gosimilarity/elsim/elsimcfg"
)

// New returns a configured zerolog.Logger writing to stderr with a
// console-friendly format. The level is taken from cfg.LogLevel,
// falling back to Info for anything unparsable.
func New(cfg *elsimcfg.Config) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: os.Stderr}

	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	return zerolog.New(out).With().Timestamp().Logger()
}
