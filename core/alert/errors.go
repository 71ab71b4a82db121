package alert

import "errors"

var (
	ErrNoSender    = errors.New("alert: sender is required")
	ErrNoRecipient = errors.New("alert: valid recipient address is required")
)
