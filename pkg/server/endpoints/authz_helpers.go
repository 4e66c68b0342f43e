package endpoints

import (
	"net/http"

	"github.com/stateloan/lms-auth/pkg/identity"
)

const adminRole = "ADMIN"

// requireIdentity fetches the authenticated identity from the request
// context. It only fails when a route was registered without the bearer
// middleware.
func requireIdentity(w http.ResponseWriter, r *http.Request) (*identity.Identity, bool) {
	id, ok := identity.Get(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return nil, false
	}
	return id, true
}

// requireRole enforces that the caller's token carries the named role.
// Role claims reflect the graph at token issuance.
func requireRole(w http.ResponseWriter, r *http.Request, role string) (*identity.Identity, bool) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return nil, false
	}
	if !id.HasRole(role) {
		respondWithError(w, http.StatusForbidden, "Access Denied")
		return nil, false
	}
	return id, true
}

// requireAdminOrSelf allows admins and the user the record belongs to.
func requireAdminOrSelf(w http.ResponseWriter, r *http.Request, userID uint) (*identity.Identity, bool) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return nil, false
	}
	if !id.HasRole(adminRole) && id.UserID != userID {
		respondWithError(w, http.StatusForbidden, "Access Denied")
		return nil, false
	}
	return id, true
}
