package exception

import "errors"

var (
	ErrNoController      = errors.New("fallback controller is required")
	ErrUnknownPolicy     = errors.New("unknown log level policy")
	ErrInvalidLevelTable = errors.New("invalid log level table")
)
