// Package middleware provides the request-level plumbing shared by all
// routes: cookie authentication for protected subrouters and request logging.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/hjhuang/identity-service/internal/token"
)

// CookieName is the cookie carrying the session token. The token is never
// read from a header or body.
const CookieName = "authToken"

type claimsContextKey struct{}

// ClaimsFromContext returns the authenticated identity attached by
// Authenticate, if any.
func ClaimsFromContext(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(*token.Claims)
	return claims, ok
}

// Authenticate verifies the session cookie and attaches the decoded claims to
// the request context. A missing cookie and an invalid token both produce the
// same generic 401; the distinction is logged server-side only.
func Authenticate(codec *token.Codec, log *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(CookieName)
			if err != nil {
				unauthorized(w)
				return
			}

			claims, err := codec.Verify(cookie.Value)
			if err != nil {
				log.Warnf("Authentication failed: %v", err)
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": "Unauthorized"})
}
