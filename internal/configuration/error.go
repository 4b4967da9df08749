package configuration

import "errors"

var (
	// ErrInvalidValue is an error that occurs when a configuration key holds
	// a value that cannot be used for it.
	ErrInvalidValue = errors.New("invalid configuration value")
)
