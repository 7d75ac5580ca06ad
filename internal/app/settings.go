package app

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"

	"github.com/kevingerman/pianoman/internal/logger"
)

// Settings configures the pianoman command itself, as opposed to the
// configuration it resolves. Values come from the environment.
type Settings struct {
	// LogLevel is a zerolog level name.
	LogLevel string `env:"LOG_LEVEL" envDefault:"warn"`

	// LogPretty switches logs from JSON lines to the console format.
	LogPretty bool `env:"LOG_PRETTY"`

	// NoColor disables coloured output. Any non-empty NO_COLOR counts, as
	// the no-color.org convention asks.
	NoColor bool

	// SchemaFile replaces the embedded schema.
	SchemaFile string `env:"SCHEMA_FILE"`
}

// ParseSettings reads Settings from environ (KEY=VALUE entries).
func ParseSettings(environ []string) (Settings, error) {
	vars := env.ToMap(environ)

	s, err := env.ParseAsWithOptions[Settings](env.Options{Environment: vars})
	if err != nil {
		return Settings{}, fmt.Errorf("error getting settings from environment: %w", err)
	}
	s.NoColor = vars["NO_COLOR"] != ""

	return s, nil
}

// Logger builds the command's logger from the settings.
func (s Settings) Logger() *logger.Logger {
	return logger.NewLogger(Name, logger.Options{
		Level:  logger.ParseLevel(s.LogLevel, zerolog.WarnLevel),
		Pretty: s.LogPretty,
	})
}
