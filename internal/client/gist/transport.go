package gist

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// loggingTransport logs every remote call without sensitive data.
type loggingTransport struct {
	next   http.RoundTripper
	logger *slog.Logger
}

// NewLoggingTransport wraps next with request logging
// Логирует метод, путь, статус и время выполнения, но не заголовки и не тело
func NewLoggingTransport(next http.RoundTripper, logger *slog.Logger) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &loggingTransport{next: next, logger: logger}
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		t.logger.Log(req.Context(), slog.LevelWarn, "HTTP request failed",
			"method", req.Method,
			"host", req.URL.Host,
			"path", sanitizePath(req.URL.Path),
			"duration_ms", duration.Milliseconds(),
			"error", err,
		)
		return nil, err
	}

	// Определяем уровень логирования на основе статуса
	logLevel := slog.LevelDebug
	if resp.StatusCode >= 500 {
		logLevel = slog.LevelError
	} else if resp.StatusCode >= 400 {
		logLevel = slog.LevelWarn
	}

	t.logger.Log(req.Context(), logLevel, "HTTP request",
		"method", req.Method,
		"host", req.URL.Host,
		"path", sanitizePath(req.URL.Path),
		"status", resp.StatusCode,
		"duration_ms", duration.Milliseconds(),
		"bytes", resp.ContentLength,
	)
	return resp, nil
}

// sanitizePath masks gist ids and revision hashes in a path.
// /gists/aa5a315d61ae9438b18d/commits -> /gists/aa5a31***/commits
func sanitizePath(path string) string {
	parts := strings.Split(path, "/")
	for i := 1; i < len(parts); i++ {
		if parts[i-1] == "gists" || (i >= 2 && parts[i-2] == "gists" && parts[i] != "commits") {
			parts[i] = mask(parts[i])
		}
	}
	// raw URLs: /<user>/<gist id>/raw/<revision>/<file>
	for i := 1; i < len(parts); i++ {
		if parts[i] == "raw" {
			parts[i-1] = mask(parts[i-1])
			if i+1 < len(parts) {
				parts[i+1] = mask(parts[i+1])
			}
		}
	}
	return strings.Join(parts, "/")
}

func mask(segment string) string {
	if len(segment) <= 6 {
		return segment
	}
	return segment[:6] + "***"
}
