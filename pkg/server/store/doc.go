// Package store provides storage abstractions for the access-control
// server.
//
// This package defines interfaces for database operations, allowing the
// server endpoints to be decoupled from the specific database
// implementation. This enables easier testing with mocks and potential
// support for different storage backends.
//
// # Available Stores
//
//   - PermissionsStore: RESOURCE:ACTION capability records
//   - RolesStore: roles and their permission sets
//   - UsersStore: accounts, credentials and role assignments
//   - HealthStore: connectivity checks
//
// Store operations fail with the typed errors defined in errors.go
// (ValidationError, ConflictError, NotFoundError, AuthenticationError,
// AuthorizationError); the HTTP boundary maps them to status codes with
// errors.As.
package store
