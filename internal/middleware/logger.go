package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/indblik/site/internal/logging"
	"github.com/indblik/site/internal/metrics"
	"github.com/indblik/site/internal/routes"
)

type responseWriter struct {
	http.ResponseWriter
	status      int
	size        int
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}
	rw.status = code
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// Logger emits one wide event per request. Handlers and middleware further
// down add their attributes with logging.AddToEvent.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", requestID)

		ctx, event := logging.NewEventContext(r.Context())

		event.Add(
			slog.String("request_id", requestID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("query", r.URL.RawQuery),
			slog.String("remote_addr", r.RemoteAddr),
			slog.String("user_agent", r.UserAgent()),
			slog.String("accept_language", r.Header.Get("Accept-Language")),
		)

		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r.WithContext(ctx))

		event.Add(
			slog.Int("status", rw.status),
			slog.Int("size", rw.size),
			durationMS(time.Since(start)),
		)
		if loc := rw.Header().Get("Location"); loc != "" {
			event.Add(slog.String("location", loc))
		}

		metrics.HttpRequestsTotal.WithLabelValues(routeLabel(r.URL.Path), r.Method, strconv.Itoa(rw.status)).Inc()

		level := slog.LevelInfo
		switch {
		case rw.status >= 500:
			level = slog.LevelError
		case r.URL.Path == routes.Health || r.URL.Path == routes.Metrics:
			level = slog.LevelDebug
		}

		logging.Get().Log(ctx, level, "request completed", event.Attrs()...)
	})
}

// routeLabel keeps the path label bounded: unknown paths share one series.
func routeLabel(path string) string {
	switch path {
	case routes.Home, routes.About, routes.Locale, routes.Health, routes.Metrics:
		return path
	}
	if strings.HasPrefix(path, routes.Assets) {
		return routes.Assets
	}
	return "other"
}

func durationMS(d time.Duration) slog.Attr {
	return slog.Float64("duration_ms", float64(d.Nanoseconds())/1e6)
}
