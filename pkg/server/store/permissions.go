package store

import "github.com/stateloan/lms-auth/pkg/model"

// PermissionsStore abstracts permission storage operations.
type PermissionsStore interface {
	// ListPermissions returns all permissions.
	ListPermissions() ([]model.Permission, error)

	// FindPermissionByID retrieves a permission by id.
	FindPermissionByID(id uint) (*model.Permission, error)

	// FindPermissionByName retrieves a permission by its exact name.
	FindPermissionByName(name string) (*model.Permission, error)

	// FindPermissionsByResource returns permissions whose name starts
	// with "<resource>:".
	FindPermissionsByResource(resource string) ([]model.Permission, error)

	// FindPermissionsByAction returns permissions whose name ends
	// with ":<action>".
	FindPermissionsByAction(action string) ([]model.Permission, error)

	// ListResources returns the distinct RESOURCE segments.
	ListResources() ([]string, error)

	// ListActions returns the distinct ACTION segments.
	ListActions() ([]string, error)

	// CreatePermission validates the name format and uniqueness, then
	// persists the permission.
	CreatePermission(name, description string) (*model.Permission, error)

	// UpdatePermission re-validates the format and rejects renames that
	// collide with a different existing permission.
	UpdatePermission(id uint, name, description string) (*model.Permission, error)

	// DeletePermission removes the permission and its role membership
	// rows. It does not check role usage first.
	DeletePermission(id uint) error

	// PermissionExistsByName checks name uniqueness.
	PermissionExistsByName(name string) bool
}
