package response

import "errors"

var (
	// ErrJSONEncode is returned when a JSON response body cannot be encoded.
	ErrJSONEncode = errors.New("failed to encode json response")

	ErrNilComponent = errors.New("nil templ component")
	ErrRender       = errors.New("failed to render component")
)
