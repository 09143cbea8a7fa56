// Package correlation assigns a request ID to every incoming request so logs,
// audit events, and responses can be joined after the fact.
package correlation

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/tech920/motor-claim-decision-api-sub000/pkg/requestcontext"
)

// Header is the inbound/outbound correlation header.
const Header = "X-Request-ID"

// Middleware reuses the caller-supplied request ID when present and valid,
// otherwise generates one. The ID is echoed on the response and stored in the
// request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(Header)
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewString()
		}

		w.Header().Set(Header, requestID)
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
