package errorpage

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/httpkernel/core/exception"
)

type view struct {
	Title      string                    `json:"-"`
	Status     int                       `json:"status"`
	StatusText string                    `json:"message"`
	Error      *exception.FlattenedError `json:"exception,omitempty"`
	Logs       *logSummary               `json:"logs,omitempty"`
}

type logSummary struct {
	Count  int `json:"count"`
	Errors int `json:"errors"`
}

type payload struct {
	Error view `json:"error"`
}

const style = `body{font-family:system-ui,sans-serif;margin:0;background:#f7f7f8;color:#1f2328}` +
	`main{max-width:960px;margin:4rem auto;padding:0 1.5rem}` +
	`h1{font-size:2rem;margin:0 0 1rem}` +
	`pre{background:#fff;border:1px solid #d0d7de;border-radius:6px;padding:1rem;overflow:auto;font-size:.8rem}` +
	`.meta{color:#59636e}`

func pageView(v view) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		status := strconv.Itoa(v.Status)
		ew := &errWriter{w: w}
		ew.write(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width,initial-scale=1">`,
			`<title>`, templ.EscapeString(status+" "+v.StatusText+" | "+v.Title), `</title>`,
			`<style>`, style, `</style></head><body><main>`,
			`<h1>`, templ.EscapeString(status+" "+v.StatusText), `</h1>`)
		if ew.err != nil {
			return ew.err
		}
		if v.Error != nil {
			if err := detailsView(v.Error, v.Logs).Render(ctx, w); err != nil {
				return err
			}
		}
		ew.write(`</main></body></html>`)
		return ew.err
	})
}

func detailsView(e *exception.FlattenedError, logs *logSummary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		ew := &errWriter{w: w}
		ew.write(`<section class="exception">`)
		errorView(ew, e, 0)
		if logs != nil {
			ew.write(`<p class="meta">Logs: `, strconv.Itoa(logs.Count), ` records, `,
				strconv.Itoa(logs.Errors), ` errors</p>`)
		}
		ew.write(`</section>`)
		return ew.err
	})
}

func errorView(ew *errWriter, e *exception.FlattenedError, depth int) {
	ew.write(`<h2>`, templ.EscapeString(e.Type), `</h2>`,
		`<p class="message">`, templ.EscapeString(e.Message), `</p>`)
	if loc := e.Location(); loc != "" {
		ew.write(`<p class="meta">at `, templ.EscapeString(loc), `</p>`)
	}
	if e.Stack != "" {
		ew.write(`<pre>`, templ.EscapeString(e.Stack), `</pre>`)
	}
	for _, prev := range e.Previous {
		ew.write(`<h3>Previous (`, strconv.Itoa(depth+1), `)</h3>`)
		errorView(ew, prev, depth+1)
	}
}

// errWriter keeps the first write error.
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
