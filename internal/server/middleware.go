package server

import (
	"net"
	"net/http"
	"regexp"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/voltwise/internal/logging"
)

// RequestIDHeader carries the per-request trace ID back to the client.
const RequestIDHeader = "X-Request-Id"

// Client-supplied request IDs are kept only when they match this pattern.
//
//nolint:gochecknoglobals // Compiled once.
var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// requestTraceID returns the client's request ID when it is well formed and a
// new trace ID otherwise.
func requestTraceID(r *http.Request) string {
	if id := r.Header.Get(RequestIDHeader); requestIDPattern.MatchString(id) {
		return id
	}
	return logging.NewTraceID()
}

// withLogging attaches base and a trace ID to each request context and logs
// the completed request.
func withLogging(base zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := requestTraceID(r)
		ctx := logging.ContextWithTraceID(base.WithContext(r.Context()), traceID)
		w.Header().Set(RequestIDHeader, traceID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r.WithContext(ctx))

		logging.FromContext(ctx).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	})
}

// withRateLimit rejects clients that have used up their bucket.
func withRateLimit(limiter *RateLimiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow(clientIP(r)) {
			respondError(w, r, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
