// Package identity provides authenticated identity management for
// requests.
//
// This package separates the concept of an authenticated identity from
// the raw token parsing. An Identity combines token claims (user id,
// username, authorities) with request-specific context (remote IP).
//
// # Basic Usage
//
//	// Create identity from parsed claims
//	id := identity.FromClaims(claims).WithRemoteIP(identity.ClientIP(r))
//
//	// Store in request context
//	ctx = identity.Set(ctx, id)
//
//	// Retrieve from context
//	id, ok := identity.Get(ctx)
//
// # Identity vs Token
//
// The token package handles parsing and validating the raw bearer
// token. The identity package builds on that to provide the request
// context handlers actually consult: who the caller is, which
// authorities the token carries, and where the request came from.
package identity
