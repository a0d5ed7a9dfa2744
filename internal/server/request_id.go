package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// HeaderXRequestID carries the per-request identifier in both directions.
const HeaderXRequestID = "X-Request-ID"

const maxRequestIDLen = 128

type requestIDKey struct{}

// RequestIDFromContext returns the request ID stored by the request ID
// middleware, or "" when there is none.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(HeaderXRequestID))
		if requestID == "" || len(requestID) > maxRequestIDLen {
			requestID = uuid.New().String()
		}
		w.Header().Set(HeaderXRequestID, requestID)

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
