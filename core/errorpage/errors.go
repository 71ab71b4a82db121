package errorpage

import "errors"

// ErrMissingException is returned when the request has no flattened error to render.
var ErrMissingException = errors.New("request has no exception attribute")
