package exception

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/httpkernel/core/kernel"
)

// maxFlattenDepth bounds the Previous tree of a FlattenedError.
const maxFlattenDepth = 16

// FlattenedError is a serializable snapshot of an error and its causes.
type FlattenedError struct {
	Type       string            `json:"type"`
	Message    string            `json:"message"`
	StatusCode int               `json:"status_code"`
	StatusText string            `json:"status_text"`
	File       string            `json:"file,omitempty"`
	Line       int               `json:"line,omitempty"`
	Stack      string            `json:"stack,omitempty"`
	Previous   []*FlattenedError `json:"previous,omitempty"`
}

// Flatten snapshots err. The status code comes from the first StatusCoder in
// the chain and defaults to 500. Returns nil for a nil error.
func Flatten(err error) *FlattenedError {
	return flatten(err, 0)
}

func flatten(err error, depth int) *FlattenedError {
	if err == nil {
		return nil
	}

	code := http.StatusInternalServerError
	var sc kernel.StatusCoder
	if errors.As(err, &sc) && http.StatusText(sc.StatusCode()) != "" {
		code = sc.StatusCode()
	}

	f := &FlattenedError{
		Type:       fmt.Sprintf("%T", err),
		Message:    err.Error(),
		StatusCode: code,
		StatusText: http.StatusText(code),
	}
	f.File, f.Line = location(err)

	var st interface{ Stack() []byte }
	if errors.As(err, &st) {
		f.Stack = string(st.Stack())
	}

	if depth < maxFlattenDepth {
		for _, c := range causes(err) {
			if p := flatten(c, depth+1); p != nil {
				f.Previous = append(f.Previous, p)
			}
		}
	}
	return f
}

// Location returns "file:line", or an empty string when the position is unknown.
func (f *FlattenedError) Location() string {
	if f == nil || f.File == "" {
		return ""
	}
	return f.File + ":" + strconv.Itoa(f.Line)
}

// location reports the source position of the first Locator in the chain.
func location(err error) (string, int) {
	var l kernel.Locator
	if errors.As(err, &l) {
		return l.Location()
	}
	return "", 0
}
