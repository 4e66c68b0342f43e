// Package authz derives the effective authority set for a user from
// the role/permission graph. It is pure data transformation with no
// persistence side effects, so the token service and the authorization
// checks share a single source of truth.
package authz

import (
	"sort"

	"github.com/stateloan/lms-auth/pkg/model"
)

// RolePrefix marks role-derived authorities in token claims; permission
// authorities are bare RESOURCE:ACTION names.
const RolePrefix = "ROLE_"

// EffectiveAuthorities returns the sorted, de-duplicated union of the
// user's role authorities ("ROLE_" + role name) and the permission
// names granted through those roles. The user's Roles (and each role's
// Permissions) must have been eagerly loaded.
//
// Authorities are computed fresh at token issuance: role or permission
// changes take effect only for tokens issued afterwards.
func EffectiveAuthorities(user *model.User) []string {
	seen := make(map[string]struct{})
	for _, role := range user.Roles {
		seen[RolePrefix+role.Name] = struct{}{}
		for _, permission := range role.Permissions {
			seen[permission.Name] = struct{}{}
		}
	}

	authorities := make([]string, 0, len(seen))
	for authority := range seen {
		authorities = append(authorities, authority)
	}
	sort.Strings(authorities)
	return authorities
}

// HasAuthority reports whether the authority list contains the given
// claim string (either "ROLE_<name>" or a bare permission name).
func HasAuthority(authorities []string, authority string) bool {
	for _, a := range authorities {
		if a == authority {
			return true
		}
	}
	return false
}

// HasRole reports whether the authority list grants the named role.
func HasRole(authorities []string, role string) bool {
	return HasAuthority(authorities, RolePrefix+role)
}
