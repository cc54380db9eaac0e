package middleware

import (
	"net/http"

	"confadmin/config"

	"github.com/google/uuid"
)

// RequestIDHeader carries the correlation ID between the admin client, this service and
// the conference backend.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLen bounds client-supplied IDs before they reach logs and the journal.
const maxRequestIDLen = 128

// RequestID reuses the caller's X-Request-ID or generates one, stores it in the request
// context and echoes it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(config.WithRequestID(r.Context(), id)))
	})
}
