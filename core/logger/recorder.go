package logger

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// DebugLogger exposes the records a logger has emitted.
type DebugLogger interface {
	Records() []Record
	CountErrors() int
}

// Record is a captured log entry.
type Record struct {
	Time    time.Time      `json:"time"`
	Level   string         `json:"level"`
	Message string         `json:"message"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	level   slog.Level
}

type recordStore struct {
	mu      sync.Mutex
	limit   int
	records []Record
}

// Recorder is a slog.Handler that keeps a bounded history of records and
// forwards every record to the next handler (if any).
// Safe for concurrent use; handlers derived via WithAttrs/WithGroup share the history.
type Recorder struct {
	next   slog.Handler
	store  *recordStore
	attrs  []slog.Attr
	groups []string
}

// NewRecorder wraps next. A non-positive limit defaults to 1000 records.
func NewRecorder(next slog.Handler, limit int) *Recorder {
	if limit <= 0 {
		limit = 1000
	}
	return &Recorder{
		next:  next,
		store: &recordStore{limit: limit},
	}
}

// Enabled reports whether the next handler accepts the level. Without a next
// handler every level is recorded.
func (r *Recorder) Enabled(ctx context.Context, level slog.Level) bool {
	if r.next == nil {
		return true
	}
	return r.next.Enabled(ctx, level)
}

// Handle records the entry and passes it on.
func (r *Recorder) Handle(ctx context.Context, rec slog.Record) error {
	attrs := make(map[string]any, rec.NumAttrs()+len(r.attrs))
	prefix := strings.Join(r.groups, ".")
	for _, a := range r.attrs {
		flatten(attrs, "", a)
	}
	rec.Attrs(func(a slog.Attr) bool {
		flatten(attrs, prefix, a)
		return true
	})

	r.store.add(Record{
		Time:    rec.Time,
		Level:   LevelName(rec.Level),
		Message: rec.Message,
		Attrs:   attrs,
		level:   rec.Level,
	})

	if r.next == nil {
		return nil
	}
	return r.next.Handle(ctx, rec)
}

// WithAttrs returns a Recorder sharing this one's history.
func (r *Recorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	cp := *r
	prefix := strings.Join(r.groups, ".")
	cp.attrs = append([]slog.Attr(nil), r.attrs...)
	for _, a := range attrs {
		if prefix != "" {
			a.Key = prefix + "." + a.Key
		}
		cp.attrs = append(cp.attrs, a)
	}
	if r.next != nil {
		cp.next = r.next.WithAttrs(attrs)
	}
	return &cp
}

// WithGroup returns a Recorder sharing this one's history.
func (r *Recorder) WithGroup(name string) slog.Handler {
	if name == "" {
		return r
	}
	cp := *r
	cp.groups = append(append([]string(nil), r.groups...), name)
	if r.next != nil {
		cp.next = r.next.WithGroup(name)
	}
	return &cp
}

// Records returns a copy of the captured history, oldest first.
func (r *Recorder) Records() []Record {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return append([]Record(nil), r.store.records...)
}

// CountErrors returns the number of captured records at error level or above.
func (r *Recorder) CountErrors() int {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	n := 0
	for _, rec := range r.store.records {
		if rec.level >= slog.LevelError {
			n++
		}
	}
	return n
}

// Clear drops the captured history.
func (r *Recorder) Clear() {
	r.store.mu.Lock()
	r.store.records = nil
	r.store.mu.Unlock()
}

// AsDebugLogger reports whether log is backed by a Recorder.
func AsDebugLogger(log *slog.Logger) (DebugLogger, bool) {
	if log == nil {
		return nil, false
	}
	dl, ok := log.Handler().(DebugLogger)
	return dl, ok
}

func (s *recordStore) add(rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.records) >= s.limit {
		copy(s.records, s.records[1:])
		s.records = s.records[:len(s.records)-1]
	}
	s.records = append(s.records, rec)
}

func flatten(dst map[string]any, prefix string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		for _, ga := range v.Group() {
			flatten(dst, key, ga)
		}
		return
	}
	dst[key] = v.Any()
}
