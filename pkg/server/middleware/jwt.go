// Package middleware provides HTTP middleware for the API server.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/stateloan/lms-auth/pkg/identity"
	"github.com/stateloan/lms-auth/pkg/token"
)

const bearerPrefix = "Bearer "

// TokenParser parses and verifies a bearer token string.
type TokenParser interface {
	Parse(tokenString string) (*token.Claims, error)
}

// RevocationChecker reports whether a token has been revoked out of
// band. Authority claims are baked in at issuance, so without a checker
// a token stays valid until it expires.
type RevocationChecker interface {
	IsRevoked(claims *token.Claims) bool
}

// BearerAuthenticator is middleware that validates bearer tokens and
// attaches the authenticated identity to the request context.
type BearerAuthenticator struct {
	Parser TokenParser

	// RevocationChecker is optional; nil means no revocation check.
	RevocationChecker RevocationChecker
}

// NewBearerAuthenticator creates a new bearer token authenticator middleware
func NewBearerAuthenticator(parser TokenParser) *BearerAuthenticator {
	return &BearerAuthenticator{Parser: parser}
}

// Middleware returns an HTTP middleware that validates bearer tokens
func (b *BearerAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")

		if len(authHeader) == 0 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Authorization missing"))
			return
		}

		if !strings.HasPrefix(authHeader, bearerPrefix) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Malformed authorization header"))
			return
		}

		tokenString := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if tokenString == "" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Malformed authorization header"))
			return
		}

		claims, err := b.Parser.Parse(tokenString)
		if err != nil {
			if errors.Is(err, token.ErrTokenExpired) {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte("Token expired"))
				return
			}
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Invalid token"))
			return
		}

		if b.RevocationChecker != nil && b.RevocationChecker.IsRevoked(claims) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Token revoked"))
			return
		}

		id := identity.FromClaims(claims).WithRemoteIP(identity.ClientIP(r))
		r = r.WithContext(identity.Set(r.Context(), id))

		next.ServeHTTP(w, r)
	})
}
