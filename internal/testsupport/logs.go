package testsupport

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// LoggedRecord is a flattened log record captured by LogRecorder.
type LoggedRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]string
	order   []string
}

// Line renders the record as "LEVEL message key=value ..." in emission order.
func (r LoggedRecord) Line() string {
	var b strings.Builder
	b.WriteString(r.Level.String())
	b.WriteByte(' ')
	b.WriteString(r.Message)
	for _, key := range r.order {
		fmt.Fprintf(&b, " %s=%s", key, r.Attrs[key])
	}
	return b.String()
}

// LogRecorder captures slog records in memory for assertions.
type LogRecorder struct {
	mu      sync.Mutex
	records []LoggedRecord
}

// NewLogRecorder returns a recorder and a debug-level logger feeding it.
func NewLogRecorder() (*LogRecorder, *slog.Logger) {
	rec := &LogRecorder{}
	return rec, slog.New(&recordingHandler{rec: rec})
}

// Records returns a copy of everything captured so far.
func (r *LogRecorder) Records() []LoggedRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]LoggedRecord(nil), r.records...)
}

// Find returns records with the given level and message.
func (r *LogRecorder) Find(level slog.Level, msg string) []LoggedRecord {
	var out []LoggedRecord
	for _, rec := range r.Records() {
		if rec.Level == level && rec.Message == msg {
			out = append(out, rec)
		}
	}
	return out
}

// Count reports how many records match level and message.
func (r *LogRecorder) Count(level slog.Level, msg string) int {
	return len(r.Find(level, msg))
}

// Lines renders every captured record with LoggedRecord.Line.
func (r *LogRecorder) Lines() []string {
	records := r.Records()
	lines := make([]string, len(records))
	for i, rec := range records {
		lines[i] = rec.Line()
	}
	return lines
}

// Reset drops every captured record.
func (r *LogRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = nil
}

type recordingHandler struct {
	rec   *LogRecorder
	attrs []slog.Attr
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, record slog.Record) error {
	logged := LoggedRecord{
		Level:   record.Level,
		Message: record.Message,
		Attrs:   make(map[string]string, record.NumAttrs()+len(h.attrs)),
	}
	add := func(a slog.Attr) bool {
		if _, seen := logged.Attrs[a.Key]; !seen {
			logged.order = append(logged.order, a.Key)
		}
		logged.Attrs[a.Key] = a.Value.Resolve().String()
		return true
	}
	for _, a := range h.attrs {
		add(a)
	}
	record.Attrs(add)

	h.rec.mu.Lock()
	defer h.rec.mu.Unlock()
	h.rec.records = append(h.rec.records, logged)
	return nil
}

func (h *recordingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &recordingHandler{rec: h.rec, attrs: append(append([]slog.Attr(nil), h.attrs...), attrs...)}
}

func (h *recordingHandler) WithGroup(string) slog.Handler { return h }
