package pg

import "errors"

var (
	ErrEmptyConnectionString = errors.New("empty postgres connection string")
	ErrParseConnString       = errors.New("failed to parse postgres connection string")
	ErrConnect               = errors.New("failed to connect to postgres")
	ErrHealthcheckFailed     = errors.New("postgres healthcheck failed")
)
