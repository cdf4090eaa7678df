// ABOUTME: Request logging middleware with correlation IDs
// ABOUTME: One log line per request, level raised for client and server errors

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// RequestIDHeader carries the correlation ID in both directions
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// statusRecorder remembers the status code and body size of a response
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

// LogRequest tags the request with a correlation ID and logs it once the
// handler returns. A caller supplied X-Request-ID is reused when it is a UUID.
func LogRequest(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w}
		next(rec, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
		if rec.status == 0 {
			rec.status = http.StatusOK
		}

		slog.Log(r.Context(), levelFor(rec.status), "Request completed",
			"request_id", id,
			"method", r.Method,
			"path", sanitizePath(r.URL.Path),
			"status", rec.status,
			"bytes", rec.bytes,
			"latency_ms", time.Since(start).Milliseconds(),
		)
	}
}

// RequestID returns the correlation ID assigned by LogRequest, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func levelFor(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// sanitizePath drops control characters so a crafted URL cannot forge log lines
func sanitizePath(p string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, p)
}
