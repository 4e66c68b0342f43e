// Package model defines the database models for the loan-management
// access-control service.
//
// This package contains GORM models that map to the PostgreSQL schema
// managed by the migrations in db/migrations.
//
// # Core Models
//
//   - Permission: atomic RESOURCE:ACTION capability records
//   - Role: named collections of permissions
//   - User: accounts with hashed credentials and assigned roles
//   - RolePermission: role_permissions join rows (Role <-> Permission)
//   - UserRole: user_roles join rows (User <-> Role)
//
// The many-to-many relations are stored as explicit join rows keyed by
// id pairs rather than bidirectional live references. The Permissions
// and Roles slices on Role and User are populated by the stores on
// eager reads and are not mapped columns.
package model
