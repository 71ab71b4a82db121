package config

import "errors"

// ErrParse is returned when environment variables cannot be parsed into a config struct.
var ErrParse = errors.New("failed to parse config")
