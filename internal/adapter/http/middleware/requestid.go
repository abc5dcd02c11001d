package middleware

import (
	"net/http"

	"github.com/urbancabz/booking-system/internal/domain/types"
	wrap "github.com/urbancabz/booking-system/pkg/logger/wrapper"
	"github.com/urbancabz/booking-system/pkg/uuid"
)

const requestIDHeader = "X-Request-Id"

// RequestID attaches a request ID to the context and echoes it in the
// response. An incoming header value is reused so traces can span services.
func (m *Middleware) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}

		ctx := types.WithRequestIDContext(r.Context(), id)
		ctx = wrap.WithRequestID(ctx, id)

		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
