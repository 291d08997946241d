package middleware

import (
	"context"
	"net/http"
	"time"

	"auwalk/pkg/logger"
)

// LoggingMiddleware writes one access line per request. Handlers further in
// can attach the authenticated email to it.
type LoggingMiddleware struct {
	logger logger.Logger
}

func NewLoggingMiddleware(log logger.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{logger: log}
}

type accessKey struct{}

// accessEntry is filled in while the request runs and read once it returns.
type accessEntry struct {
	email string
}

// Log records method, path, status, size and latency. 5xx answers are logged
// at error and 4xx at warn.
func (m *LoggingMiddleware) Log(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		entry := &accessEntry{}
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), accessKey{}, entry)))

		fields := map[string]interface{}{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rec.status,
			"bytes":       rec.written,
			"duration_ms": time.Since(start).Milliseconds(),
			"request_id":  RequestIDFromContext(r.Context()),
			"remote_addr": r.RemoteAddr,
		}
		if entry.email != "" {
			fields["email"] = entry.email
		}

		switch {
		case rec.status >= http.StatusInternalServerError:
			m.logger.Error("request completed", fields)
		case rec.status >= http.StatusBadRequest:
			m.logger.Warn("request completed", fields)
		default:
			m.logger.Info("request completed", fields)
		}
	})
}

// noteEmail attaches email to the access line of the request in ctx, if any.
func noteEmail(ctx context.Context, email string) {
	if entry, ok := ctx.Value(accessKey{}).(*accessEntry); ok {
		entry.email = email
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	written     int
	wroteHeader bool
}

func (w *statusRecorder) WriteHeader(status int) {
	if !w.wroteHeader {
		w.status = status
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	w.wroteHeader = true
	n, err := w.ResponseWriter.Write(b)
	w.written += n
	return n, err
}
