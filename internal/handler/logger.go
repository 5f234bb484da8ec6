package handler

import (
	"fmt"
	"net/http"

	"github.com/DMarby/utility-docs/internal/logger"
	"github.com/felixge/httpsnoop"
)

// Logger is a handler that logs completed requests.
// Server errors are logged as errors, client errors as info, everything else at debug level
func Logger(log *logger.Logger, h http.Handler, routeMatcher RouteMatcher) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(h, w, r)

		fields := LogFields(r,
			"route", routeMatcher.Match(r),
			"http-method", r.Method,
			"remote-addr", r.RemoteAddr,
			"user-agent", r.UserAgent(),
			"referer", r.Referer(),
			"uri", r.URL.String(),
			"status-code", m.Code,
			"bytes-written", m.Written,
			"elapsed", fmt.Sprintf("%.9fs", m.Duration.Seconds()),
		)

		logAt(log, m.Code)("Request completed", fields...)
	})
}

func logAt(log *logger.Logger, code int) func(msg string, keysAndValues ...interface{}) {
	switch {
	case code >= http.StatusInternalServerError:
		return log.Errorw
	case code >= http.StatusBadRequest:
		return log.Infow
	default:
		return log.Debugw
	}
}

// LogFields prefixes the given keys and values with the request id
func LogFields(r *http.Request, keysAndValues ...interface{}) []interface{} {
	return append([]interface{}{"request-id", GetReqID(r.Context())}, keysAndValues...)
}
