package config

import "errors"

var (
	// ErrInvalidConfig is the error returned when a configuration value is out of range
	ErrInvalidConfig = errors.New("invalid configuration")
)
