package identity

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/stateloan/lms-auth/pkg/authz"
	"github.com/stateloan/lms-auth/pkg/token"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// Key is the context key for Identity.
	Key ContextKey = "identity"
)

// Identity represents the authenticated identity for a request.
// It combines token claims with request-specific context.
type Identity struct {
	// Token claims
	UserID      uint
	Username    string
	Authorities []string
	IssuedAt    time.Time
	ExpiresAt   time.Time

	// Request context
	RemoteIP net.IP
}

// FromClaims creates an Identity from parsed token claims.
func FromClaims(claims *token.Claims) *Identity {
	id := &Identity{
		UserID:      claims.UserID,
		Username:    claims.Subject,
		Authorities: claims.Authorities,
	}
	if claims.IssuedAt != nil {
		id.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id
}

// WithRemoteIP sets the remote IP address.
func (i *Identity) WithRemoteIP(ip net.IP) *Identity {
	i.RemoteIP = ip
	return i
}

// HasRole reports whether the identity's authorities grant the named
// role. Authorities reflect the role/permission graph at token
// issuance, not the current database state.
func (i *Identity) HasRole(role string) bool {
	return authz.HasRole(i.Authorities, role)
}

// HasAuthority reports whether the identity carries the given authority
// claim (either "ROLE_<name>" or a bare permission name).
func (i *Identity) HasAuthority(authority string) bool {
	return authz.HasAuthority(i.Authorities, authority)
}

// ClientIP extracts the client IP from a request, preferring the first
// X-Forwarded-For hop over the socket address.
func ClientIP(r *http.Request) net.IP {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first := strings.TrimSpace(strings.Split(fwd, ",")[0])
		if ip := net.ParseIP(first); ip != nil {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return net.ParseIP(r.RemoteAddr)
	}
	return net.ParseIP(host)
}

// Get retrieves Identity from context.
func Get(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(Key).(*Identity)
	return id, ok
}

// Set stores Identity in context.
func Set(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, Key, id)
}
