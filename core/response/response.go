package response

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Response is an outbound HTTP response.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// New creates a response. A zero status means 200 OK.
func New(status int, body []byte) *Response {
	if status == 0 {
		status = http.StatusOK
	}
	return &Response{
		Status: status,
		Header: make(http.Header),
		Body:   body,
	}
}

// Write sends the response. Bodies of 204 and 304 responses are never written.
func (r *Response) Write(w http.ResponseWriter) error {
	for k, v := range r.Header {
		w.Header()[k] = append([]string(nil), v...)
	}

	status := r.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)

	switch status {
	case http.StatusNoContent, http.StatusNotModified:
		return nil
	}
	if len(r.Body) == 0 {
		return nil
	}
	_, err := w.Write(r.Body)
	return err
}

// String creates a text/plain response with 200 OK status.
func String(content string) *Response {
	return StringWithStatus(content, http.StatusOK)
}

// StringWithStatus creates a text/plain response with custom status code.
func StringWithStatus(content string, status int) *Response {
	return BytesWithStatus([]byte(content), "text/plain; charset=utf-8", status)
}

// HTML creates a text/html response with 200 OK status.
func HTML(content string) *Response {
	return HTMLWithStatus(content, http.StatusOK)
}

// HTMLWithStatus creates a text/html response with custom status code.
func HTMLWithStatus(content string, status int) *Response {
	return BytesWithStatus([]byte(content), "text/html; charset=utf-8", status)
}

// Bytes creates a response with custom content type and 200 OK status.
func Bytes(content []byte, contentType string) *Response {
	return BytesWithStatus(content, contentType, http.StatusOK)
}

// BytesWithStatus creates a response with custom content type and status code.
func BytesWithStatus(content []byte, contentType string, status int) *Response {
	r := New(status, content)
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	return r
}

// JSON creates an application/json response with 200 OK status.
func JSON(v any) (*Response, error) {
	return JSONWithStatus(v, http.StatusOK)
}

// JSONWithStatus creates an application/json response with custom status code.
// A zero status means 204 for nil data and 200 otherwise.
func JSONWithStatus(v any, status int) (*Response, error) {
	if status == 0 {
		if v == nil {
			status = http.StatusNoContent
		} else {
			status = http.StatusOK
		}
	}

	var body []byte
	if status != http.StatusNoContent && status != http.StatusNotModified {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrJSONEncode, err)
		}
		body = append(b, '\n')
	}

	return BytesWithStatus(body, "application/json; charset=utf-8", status), nil
}

// NoContent creates a 204 No Content response.
func NoContent() *Response {
	return New(http.StatusNoContent, nil)
}

// Status creates an empty response with the specified status code.
func Status(code int) *Response {
	return New(code, nil)
}
