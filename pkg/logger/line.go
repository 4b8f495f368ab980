package logger

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// RequestIDKey is the attribute key rendered in the [<requestId>] slot of the
// line format. Extractors that want their value in that slot must use it.
const RequestIDKey = "request_id"

// timestampLayout matches the per-day log file granularity: date for rotation,
// milliseconds for ordering within a file.
const timestampLayout = "2006-01-02 15:04:05.000"

// formatLine renders a record as a single plain-text line:
//
//	<timestamp> [<requestId>] [<LEVEL>] <message> key=value ...
//
// preformatted holds attributes accumulated via WithAttrs. The request_id
// attribute, wherever it appears, is lifted into the fixed bracket slot.
// When no request ID is present the slot renders as [-] so columns stay
// aligned across requests and startup logs.
func formatLine(rec slog.Record, preformatted []slog.Attr) string {
	requestID := "-"
	var kvs []string

	collect := func(a slog.Attr) {
		if a.Key == RequestIDKey {
			if v := a.Value.String(); v != "" {
				requestID = v
			}
			return
		}
		if a.Equal(slog.Attr{}) {
			return
		}
		kvs = append(kvs, fmt.Sprintf("%s=%s", a.Key, a.Value.String()))
	}

	for _, a := range preformatted {
		collect(a)
	}
	rec.Attrs(func(a slog.Attr) bool {
		collect(a)
		return true
	})

	ts := rec.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	var sb strings.Builder
	sb.WriteString(ts.Format(timestampLayout))
	sb.WriteString(" [")
	sb.WriteString(requestID)
	sb.WriteString("] [")
	sb.WriteString(rec.Level.String())
	sb.WriteString("] ")
	sb.WriteString(rec.Message)
	if len(kvs) > 0 {
		sb.WriteString(" ")
		sb.WriteString(strings.Join(kvs, " "))
	}
	return sb.String()
}
