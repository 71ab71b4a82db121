// Package response provides the HTTP response value produced by controllers and
// filtered by kernel listeners, together with constructors for common content
// types and a structured HTTPError that carries its status code.
//
// Responses are plain values: listeners may inspect and modify Status, Header and
// Body until the kernel writes them with Write.
//
//	resp := response.HTMLWithStatus("<h1>Not Found</h1>", http.StatusNotFound)
//	resp.Header.Set("Cache-Control", "no-store")
//
// Controllers report failures by returning errors. HTTPError implements
// StatusCode() int, which the kernel and the exception listener use to derive the
// status code and log severity:
//
//	return nil, response.ErrNotFound.WithMessage("user not found")
package response
