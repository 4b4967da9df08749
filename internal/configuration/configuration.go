package configuration

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strconv"
	"strings"
)

type genericConfigProvider interface {
	Read(filenames ...string) (envMap map[string]string, err error)
}

// Handler reads [Settings] from Unix-type configuration files.
type Handler struct {
	GenericConfigReader genericConfigProvider
}

// NewHandler returns a pointer to a new [Handler].
func NewHandler(genericConfigReader genericConfigProvider) *Handler {
	return &Handler{
		GenericConfigReader: genericConfigReader,
	}
}

// Load reads the given files over the defaults. Keys that are absent keep
// their defaults; files that do not exist are the same as empty ones.
func (c *Handler) Load(filenames ...string) (*Settings, error) {
	settings := NewSettings()

	envMap, err := c.GenericConfigReader.Read(filenames...)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("Configuration file not found (using defaults).",
			"files", filenames,
		)

		return settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("(config) failed to read: %w", err)
	}

	if value, ok, err := c.MapKeyToUint(envMap, KeyTempAttempts); err != nil {
		return nil, err
	} else if ok {
		if value == 0 {
			return nil, fmt.Errorf("(config) %w: %s must be at least 1", ErrInvalidValue, KeyTempAttempts)
		}
		settings.TempAttempts = value
	}

	if value, ok, err := c.MapKeyToBool(envMap, KeySync); err != nil {
		return nil, err
	} else if ok {
		settings.Sync = value
	}

	if value := c.MapKeyToString(envMap, KeyLogLevel); value != "" {
		level, err := ParseLevel(value)
		if err != nil {
			return nil, err
		}
		settings.LogLevel = level
	}

	return settings, nil
}

func (c *Handler) MapKeyToString(envMap map[string]string, key string) string {
	if value, exists := envMap[key]; exists {
		return strings.TrimSpace(value)
	}

	return ""
}

func (c *Handler) MapKeyToUint(envMap map[string]string, key string) (uint, bool, error) {
	value := c.MapKeyToString(envMap, key)
	if value == "" {
		return 0, false, nil
	}

	uintValue, err := strconv.ParseUint(value, 10, 0)
	if err != nil {
		return 0, false, fmt.Errorf("(config) %w: %s=%q", ErrInvalidValue, key, value)
	}

	return uint(uintValue), true, nil
}

func (c *Handler) MapKeyToBool(envMap map[string]string, key string) (bool, bool, error) {
	value := c.MapKeyToString(envMap, key)
	if value == "" {
		return false, false, nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return false, false, fmt.Errorf("(config) %w: %s=%q", ErrInvalidValue, key, value)
	}

	return boolValue, true, nil
}

// ParseLevel reads a log level name.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("(config) %w: %s=%q", ErrInvalidValue, KeyLogLevel, s)
	}

	return level, nil
}
