package server

import "errors"

var (
	ErrMissingAddress  = errors.New("server address is required")
	ErrIncompleteTLS   = errors.New("both tls certificate and key files are required")
	ErrInvalidConfig   = errors.New("invalid server configuration")
	ErrLoadCertificate = errors.New("failed to load tls certificate")

	ErrServerAlreadyRunning = errors.New("server is already running")
	ErrListen               = errors.New("failed to listen")
)
