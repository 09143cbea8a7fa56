// Package auth provides bearer-token authentication middleware for the API
// surface. Tokens are HS256 JWTs issued by the upstream gateway; this service
// only validates them, it does not mint or manage users.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	dErrors "github.com/tech920/motor-claim-decision-api-sub000/pkg/domain-errors"
	"github.com/tech920/motor-claim-decision-api-sub000/pkg/platform/httputil"
)

// Claims carries the subject fields we read from gateway-issued tokens.
type Claims struct {
	Subject string `json:"sub_name,omitempty"`
	jwt.RegisteredClaims
}

type contextKeySubject struct{}

// Subject retrieves the authenticated caller identity from the context.
func Subject(ctx context.Context) string {
	if s, ok := ctx.Value(contextKeySubject{}).(string); ok {
		return s
	}
	return ""
}

// WithSubject injects a caller identity into a context. Useful for handler
// tests that bypass the middleware chain.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, contextKeySubject{}, subject)
}

// Middleware validates the Authorization bearer token with the given signing
// key. An empty signing key disables authentication entirely, which keeps
// local development and batch tooling friction-free.
func Middleware(signingKey string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if signingKey == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing bearer token"))
				return
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return []byte(signingKey), nil
			})
			if err != nil || !token.Valid {
				if logger != nil {
					logger.WarnContext(r.Context(), "token validation failed", "error", err)
				}
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid token"))
				return
			}

			subject := claims.Subject
			if subject == "" {
				subject, _ = token.Claims.GetSubject()
			}
			next.ServeHTTP(w, r.WithContext(WithSubject(r.Context(), subject)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
