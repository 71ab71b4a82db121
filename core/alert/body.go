package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/httpkernel/core/exception"
	"github.com/dmitrymomot/httpkernel/core/logger"
)

type report struct {
	AppName   string                    `json:"app,omitempty"`
	Severity  logger.Severity           `json:"-"`
	Method    string                    `json:"method"`
	Path      string                    `json:"path"`
	RequestID string                    `json:"request_id"`
	Time      time.Time                 `json:"time"`
	Error     *exception.FlattenedError `json:"error"`
	ReportKey string                    `json:"-"`
}

// MarshalJSON adds the severity name.
func (r report) MarshalJSON() ([]byte, error) {
	type plain report
	return json.Marshal(struct {
		plain
		Severity string `json:"severity"`
	}{plain(r), r.Severity.String()})
}

// key is incidents/<yyyy>/<mm>/<dd>/<request id>.json in UTC.
func (r report) key() string {
	return path.Join("incidents", r.Time.UTC().Format("2006/01/02"), r.RequestID+".json")
}

func renderBody(ctx context.Context, r report) (string, error) {
	var buf bytes.Buffer
	if err := reportView(r).Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func reportView(r report) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		ew := &errWriter{w: w}
		ew.write(`<!DOCTYPE html><html><body style="font-family:sans-serif">`,
			`<h1>`, templ.EscapeString(r.AppName), ` `, templ.EscapeString(r.Severity.String()), `</h1>`,
			`<table cellpadding="4">`)
		row(ew, "Request", r.Method+" "+r.Path)
		row(ew, "Request ID", r.RequestID)
		row(ew, "Time", r.Time.UTC().Format(time.RFC3339))
		row(ew, "Status", strconv.Itoa(r.Error.StatusCode)+" "+r.Error.StatusText)
		if r.ReportKey != "" {
			row(ew, "Report", r.ReportKey)
		}
		ew.write(`</table>`)
		errorView(ew, r.Error, 0)
		ew.write(`</body></html>`)
		return ew.err
	})
}

func row(ew *errWriter, name, value string) {
	ew.write(`<tr><th align="left">`, templ.EscapeString(name), `</th><td>`, templ.EscapeString(value), `</td></tr>`)
}

func errorView(ew *errWriter, e *exception.FlattenedError, depth int) {
	if depth > 0 {
		ew.write(`<h3>Caused by</h3>`)
	}
	ew.write(`<h2>`, templ.EscapeString(e.Type), `</h2><p>`, templ.EscapeString(e.Message), `</p>`)
	if loc := e.Location(); loc != "" {
		ew.write(`<p>at `, templ.EscapeString(loc), `</p>`)
	}
	if e.Stack != "" {
		ew.write(`<pre style="font-size:12px">`, templ.EscapeString(e.Stack), `</pre>`)
	}
	for _, prev := range e.Previous {
		errorView(ew, prev, depth+1)
	}
}

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) write(parts ...string) {
	for _, p := range parts {
		if ew.err != nil {
			return
		}
		_, ew.err = io.WriteString(ew.w, p)
	}
}
