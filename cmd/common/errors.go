package common

import "errors"

// Dependency errors shared by command implementations.
var (
	// ErrLoggerRequired indicates the logger dependency is missing.
	ErrLoggerRequired = errors.New("logger is required")
	// ErrConfigRequired indicates the config dependency is missing.
	ErrConfigRequired = errors.New("config is required")
)
