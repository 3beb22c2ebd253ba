// Package logging builds the zerolog logger shared by commands and the server.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/theirongolddev/julmat/internal/config"
)

// New constructs a logger writing to w. Format "json" emits JSON lines;
// anything else uses the console writer. An unknown level means warn.
func New(cfg config.LoggingConfig, w io.Writer) zerolog.Logger {
	level := zerolog.WarnLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level))); err == nil && cfg.Level != "" {
		level = parsed
	}

	output := w
	if strings.ToLower(strings.TrimSpace(cfg.Format)) != "json" {
		output = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Str("app", "julmat").
		Logger()
}
