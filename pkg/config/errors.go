package config

import "errors"

var (
	// ErrParsingConfig is returned when the environment cannot be parsed into the config struct.
	ErrParsingConfig = errors.New("config.parsing_failed")

	// ErrReadingEnvFile is returned when a named .env file exists but cannot be read.
	ErrReadingEnvFile = errors.New("config.env_file_unreadable")

	// ErrNilPointer is returned when a nil pointer is provided to Load.
	ErrNilPointer = errors.New("config.nil_pointer")
)
