package gorm

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/stateloan/lms-auth/pkg/model"
	"github.com/stateloan/lms-auth/pkg/server/store"
)

// Ensure RolesStore implements store.RolesStore
var _ store.RolesStore = (*RolesStore)(nil)

// RolesStore implements store.RolesStore using GORM
type RolesStore struct {
	db *gorm.DB
}

// NewRolesStore creates a new RolesStore
func NewRolesStore(db *gorm.DB) *RolesStore {
	return &RolesStore{db: db}
}

// ListRoles returns all roles ordered by name
func (s *RolesStore) ListRoles() ([]model.Role, error) {
	var roles []model.Role
	if err := s.db.Order("name").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// FindRoleByID retrieves a role by id
func (s *RolesStore) FindRoleByID(id uint) (*model.Role, error) {
	var role model.Role
	err := s.db.First(&role, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.NewNotFoundError("Role", id)
		}
		return nil, err
	}
	return &role, nil
}

// FindRoleByName retrieves a role by its unique name
func (s *RolesStore) FindRoleByName(name string) (*model.Role, error) {
	var role model.Role
	err := s.db.Where("name = ?", name).First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &store.NotFoundError{
				Message: fmt.Sprintf("Role not found with name: %s", name),
			}
		}
		return nil, err
	}
	return &role, nil
}

// FindRoleByIDWithPermissions retrieves a role with its permission set loaded
func (s *RolesStore) FindRoleByIDWithPermissions(id uint) (*model.Role, error) {
	role, err := s.FindRoleByID(id)
	if err != nil {
		return nil, err
	}
	permissions, err := rolePermissions(s.db, role.ID)
	if err != nil {
		return nil, err
	}
	role.Permissions = permissions
	return role, nil
}

// FindRoleByNameWithPermissions retrieves a role by name with its
// permission set loaded
func (s *RolesStore) FindRoleByNameWithPermissions(name string) (*model.Role, error) {
	role, err := s.FindRoleByName(name)
	if err != nil {
		return nil, err
	}
	permissions, err := rolePermissions(s.db, role.ID)
	if err != nil {
		return nil, err
	}
	role.Permissions = permissions
	return role, nil
}

// rolePermissions loads the permissions granted to a role through the
// role_permissions join table
func rolePermissions(db *gorm.DB, roleID uint) ([]model.Permission, error) {
	var permissions []model.Permission
	err := db.Raw(`
		SELECT p.*
		FROM permissions p
		JOIN role_permissions rp ON rp.permission_id = p.id
		WHERE rp.role_id = ?
		ORDER BY p.name
	`, roleID).Scan(&permissions).Error
	if err != nil {
		return nil, err
	}
	return permissions, nil
}

// CreateRole enforces name uniqueness and persists a new role
func (s *RolesStore) CreateRole(name, description string) (*model.Role, error) {
	if name == "" {
		return nil, &store.ValidationError{Message: "Role name is required"}
	}
	if s.RoleExistsByName(name) {
		return nil, &store.ConflictError{Message: "Role name is already taken!"}
	}

	role := model.Role{Name: name, Description: description}
	if err := s.db.Create(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// UpdateRole renames or re-describes an existing role. Uniqueness is
// only re-checked when the name actually changes.
func (s *RolesStore) UpdateRole(id uint, name, description string) (*model.Role, error) {
	role, err := s.FindRoleByID(id)
	if err != nil {
		return nil, err
	}

	if name == "" {
		return nil, &store.ValidationError{Message: "Role name is required"}
	}
	if name != role.Name && s.RoleExistsByName(name) {
		return nil, &store.ConflictError{Message: "Role name is already taken!"}
	}

	role.Name = name
	role.Description = description
	if err := s.db.Save(role).Error; err != nil {
		return nil, err
	}
	return role, nil
}

// DeleteRole removes a role together with its permission grants and
// user memberships
func (s *RolesStore) DeleteRole(id uint) error {
	role, err := s.FindRoleByID(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM role_permissions WHERE role_id = ?`, role.ID).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM user_roles WHERE role_id = ?`, role.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Role{}, role.ID).Error
	})
}

// ReplacePermissions atomically replaces the role's entire permission
// set. If any id is unknown no change is applied.
func (s *RolesStore) ReplacePermissions(roleID uint, permissionIDs []uint) (*model.Role, error) {
	role, err := s.FindRoleByID(roleID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(permissionIDs) > 0 {
			var count int64
			if err := tx.Model(&model.Permission{}).Where("id IN ?", permissionIDs).Count(&count).Error; err != nil {
				return err
			}
			if count != int64(len(dedupIDs(permissionIDs))) {
				return &store.NotFoundError{Message: "Some permissions were not found"}
			}
		}

		if err := tx.Exec(`DELETE FROM role_permissions WHERE role_id = ?`, role.ID).Error; err != nil {
			return err
		}

		for _, permissionID := range dedupIDs(permissionIDs) {
			if err := tx.Create(&model.RolePermission{RoleID: role.ID, PermissionID: permissionID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.FindRoleByIDWithPermissions(role.ID)
}

// AddPermission grants a single permission to a role. Granting an
// already-held permission is a no-op success.
func (s *RolesStore) AddPermission(roleID, permissionID uint) (*model.Role, error) {
	role, err := s.FindRoleByID(roleID)
	if err != nil {
		return nil, err
	}
	if _, err := s.findPermission(permissionID); err != nil {
		return nil, err
	}

	err = s.db.Exec(`
		INSERT INTO role_permissions (role_id, permission_id)
		VALUES (?, ?)
		ON CONFLICT DO NOTHING
	`, role.ID, permissionID).Error
	if err != nil {
		return nil, err
	}

	return s.FindRoleByIDWithPermissions(role.ID)
}

// RemovePermission revokes a single permission from a role. Revoking an
// absent permission is a no-op success.
func (s *RolesStore) RemovePermission(roleID, permissionID uint) (*model.Role, error) {
	role, err := s.FindRoleByID(roleID)
	if err != nil {
		return nil, err
	}
	if _, err := s.findPermission(permissionID); err != nil {
		return nil, err
	}

	err = s.db.Exec(`
		DELETE FROM role_permissions WHERE role_id = ? AND permission_id = ?
	`, role.ID, permissionID).Error
	if err != nil {
		return nil, err
	}

	return s.FindRoleByIDWithPermissions(role.ID)
}

func (s *RolesStore) findPermission(id uint) (*model.Permission, error) {
	var permission model.Permission
	err := s.db.First(&permission, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.NewNotFoundError("Permission", id)
		}
		return nil, err
	}
	return &permission, nil
}

// RoleExistsByName checks if a role name is taken
func (s *RolesStore) RoleExistsByName(name string) bool {
	var exists bool
	s.db.Raw(`SELECT EXISTS(SELECT 1 FROM roles WHERE name = ?)`, name).Scan(&exists)
	return exists
}

// dedupIDs drops duplicate ids while preserving order
func dedupIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	result := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
