package middleware

import (
	"net/http"

	"github.com/frahmantamala/service-tracking/pkg/logger"

	"github.com/google/uuid"
)

// RequestID carries an incoming X-Trace-ID through the request, minting one
// when the caller didn't send it, and attaches it to the context logger.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := logger.With(r.Context(), "traceID", traceID)

		w.Header().Set("X-Trace-ID", traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
