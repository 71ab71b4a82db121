package logger

import "errors"

// ErrUnknownSeverity is returned when a severity name cannot be parsed.
var ErrUnknownSeverity = errors.New("unknown severity")
