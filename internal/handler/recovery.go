package handler

import (
	"net/http"
	"runtime/debug"

	"github.com/DMarby/utility-docs/internal/logger"
	"github.com/DMarby/utility-docs/internal/tracing"
)

// Recovery is a handler for handling panics
func Recovery(log *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}

				traceID, spanID := tracing.TraceInfo(r.Context())
				log.Errorw("panic handling request", LogFields(r,
					"trace-id", traceID,
					"span-id", spanID,
					"panic", err,
					"stacktrace", string(debug.Stack()),
				)...)

				Handler(func(w http.ResponseWriter, r *http.Request) *Error {
					return InternalServerError()
				}).ServeHTTP(w, r)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
