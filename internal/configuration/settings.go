package configuration

import (
	"log/slog"

	"github.com/desertwitch/sysat/internal/replace"
)

const (
	// KeyTempAttempts bounds the temporary-name claim loop.
	KeyTempAttempts = "TEMP_ATTEMPTS"

	// KeySync flushes replaced files to the device before committing them.
	KeySync = "SYNC"

	// KeyLogLevel is one of debug, info, warn or error.
	KeyLogLevel = "LOG_LEVEL"

	// DefaultPath is where the CLI looks for its configuration file.
	DefaultPath = "/etc/sysat.env"
)

// Settings is the principal structure holding the application configuration.
type Settings struct {
	TempAttempts uint
	Sync         bool
	LogLevel     slog.Level
}

// NewSettings returns a pointer to new [Settings] holding the defaults.
func NewSettings() *Settings {
	return &Settings{
		TempAttempts: replace.DefaultMaxAttempts,
		Sync:         false,
		LogLevel:     slog.LevelInfo,
	}
}

// Apply carries the settings over to a replacement handler.
func (s *Settings) Apply(h *replace.Handler) {
	h.MaxAttempts = s.TempAttempts
	h.Sync = s.Sync
}
