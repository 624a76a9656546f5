// Package hivelog builds the zerolog logger used across the runtime and its
// bootstrap entry point.
package hivelog

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"hive/internal/config"
)

// New builds a zerolog.Logger from a config.Config: JSON to stdout in
// production, a console writer when LogFormat is "console".
func New(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var writer = os.Stdout
	logger := zerolog.New(writer).With().Timestamp().Logger()

	if cfg.LogFormat == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	}

	return logger.With().Str("component", "hived").Logger()
}
