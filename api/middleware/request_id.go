package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dev-arham/ecommerce-server/pkg/logger"
)

// RequestIDHeader carries the correlation id echoed back on every response.
const RequestIDHeader = "X-Request-Id"

// RequestID tags each request with a correlation id and threads it through
// the logger context. An inbound header value is trusted only when it parses
// as a UUID; anything else is replaced with a fresh one.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(ctx, id)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
