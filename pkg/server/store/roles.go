package store

import "github.com/stateloan/lms-auth/pkg/model"

// RolesStore abstracts role storage operations.
type RolesStore interface {
	// ListRoles returns all roles without their permission sets.
	ListRoles() ([]model.Role, error)

	// FindRoleByID retrieves a role by id.
	FindRoleByID(id uint) (*model.Role, error)

	// FindRoleByName retrieves a role by its exact name.
	FindRoleByName(name string) (*model.Role, error)

	// FindRoleByIDWithPermissions retrieves a role with its permission
	// set eagerly loaded.
	FindRoleByIDWithPermissions(id uint) (*model.Role, error)

	// FindRoleByNameWithPermissions retrieves a role by name with its
	// permission set eagerly loaded.
	FindRoleByNameWithPermissions(name string) (*model.Role, error)

	// CreateRole persists a new role, rejecting duplicate names.
	CreateRole(name, description string) (*model.Role, error)

	// UpdateRole changes name and description only, rejecting renames
	// that collide with a different existing role.
	UpdateRole(id uint, name, description string) (*model.Role, error)

	// DeleteRole removes the role and its membership rows
	// unconditionally.
	DeleteRole(id uint) error

	// ReplacePermissions resolves permissionIDs and replaces the role's
	// entire permission set atomically. If any id is unknown the call
	// fails with NotFoundError and applies no change.
	ReplacePermissions(roleID uint, permissionIDs []uint) (*model.Role, error)

	// AddPermission adds a single permission to the role. Adding an
	// already-present permission is a no-op success.
	AddPermission(roleID, permissionID uint) (*model.Role, error)

	// RemovePermission removes a single permission from the role.
	// Removing an absent permission is a no-op success.
	RemovePermission(roleID, permissionID uint) (*model.Role, error)

	// RoleExistsByName checks name uniqueness.
	RoleExistsByName(name string) bool
}
