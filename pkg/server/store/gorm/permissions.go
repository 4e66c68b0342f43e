package gorm

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/stateloan/lms-auth/pkg/model"
	"github.com/stateloan/lms-auth/pkg/server/store"
)

// Ensure PermissionsStore implements store.PermissionsStore
var _ store.PermissionsStore = (*PermissionsStore)(nil)

// PermissionsStore implements store.PermissionsStore using GORM
type PermissionsStore struct {
	db *gorm.DB
}

// NewPermissionsStore creates a new PermissionsStore
func NewPermissionsStore(db *gorm.DB) *PermissionsStore {
	return &PermissionsStore{db: db}
}

// ListPermissions returns all permissions ordered by name
func (s *PermissionsStore) ListPermissions() ([]model.Permission, error) {
	var permissions []model.Permission
	if err := s.db.Order("name").Find(&permissions).Error; err != nil {
		return nil, err
	}
	return permissions, nil
}

// FindPermissionByID retrieves a permission by id
func (s *PermissionsStore) FindPermissionByID(id uint) (*model.Permission, error) {
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

// FindPermissionByName retrieves a permission by its unique name
func (s *PermissionsStore) FindPermissionByName(name string) (*model.Permission, error) {
	var permission model.Permission
	err := s.db.Where("name = ?", name).First(&permission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &store.NotFoundError{
				Message: fmt.Sprintf("Permission not found with name: %s", name),
			}
		}
		return nil, err
	}
	return &permission, nil
}

// FindPermissionsByResource returns permissions whose resource segment matches
func (s *PermissionsStore) FindPermissionsByResource(resource string) ([]model.Permission, error) {
	var permissions []model.Permission
	err := s.db.
		Where("split_part(name, ':', 1) = ?", resource).
		Order("name").
		Find(&permissions).Error
	if err != nil {
		return nil, err
	}
	return permissions, nil
}

// FindPermissionsByAction returns permissions whose action segment matches
func (s *PermissionsStore) FindPermissionsByAction(action string) ([]model.Permission, error) {
	var permissions []model.Permission
	err := s.db.
		Where("split_part(name, ':', 2) = ?", action).
		Order("name").
		Find(&permissions).Error
	if err != nil {
		return nil, err
	}
	return permissions, nil
}

// ListResources returns the distinct resource segments in use
func (s *PermissionsStore) ListResources() ([]string, error) {
	return s.distinctSegments(1)
}

// ListActions returns the distinct action segments in use
func (s *PermissionsStore) ListActions() ([]string, error) {
	return s.distinctSegments(2)
}

func (s *PermissionsStore) distinctSegments(part int) ([]string, error) {
	type segmentRow struct {
		Segment string `gorm:"column:segment"`
	}
	var rows []segmentRow
	err := s.db.Raw(
		`SELECT DISTINCT split_part(name, ':', ?) AS segment FROM permissions ORDER BY segment`,
		part,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	segments := make([]string, 0, len(rows))
	for _, row := range rows {
		segments = append(segments, row.Segment)
	}
	return segments, nil
}

// CreatePermission validates the name format, enforces uniqueness and
// persists a new permission
func (s *PermissionsStore) CreatePermission(name, description string) (*model.Permission, error) {
	if !model.ValidPermissionName(name) {
		return nil, &store.ValidationError{Message: model.PermissionNameFormat}
	}
	if s.PermissionExistsByName(name) {
		return nil, &store.ConflictError{Message: "Permission name is already taken!"}
	}

	permission := model.Permission{Name: name, Description: description}
	if err := s.db.Create(&permission).Error; err != nil {
		return nil, err
	}
	return &permission, nil
}

// UpdatePermission renames or re-describes an existing permission.
// Uniqueness is only re-checked when the name actually changes.
func (s *PermissionsStore) UpdatePermission(id uint, name, description string) (*model.Permission, error) {
	permission, err := s.FindPermissionByID(id)
	if err != nil {
		return nil, err
	}

	if !model.ValidPermissionName(name) {
		return nil, &store.ValidationError{Message: model.PermissionNameFormat}
	}
	if name != permission.Name && s.PermissionExistsByName(name) {
		return nil, &store.ConflictError{Message: "Permission name is already taken!"}
	}

	permission.Name = name
	permission.Description = description
	if err := s.db.Save(permission).Error; err != nil {
		return nil, err
	}
	return permission, nil
}

// DeletePermission removes a permission and its role grants
func (s *PermissionsStore) DeletePermission(id uint) error {
	permission, err := s.FindPermissionByID(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM role_permissions WHERE permission_id = ?`, permission.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Permission{}, permission.ID).Error
	})
}

// PermissionExistsByName checks if a permission name is taken
func (s *PermissionsStore) PermissionExistsByName(name string) bool {
	var exists bool
	s.db.Raw(`SELECT EXISTS(SELECT 1 FROM permissions WHERE name = ?)`, name).Scan(&exists)
	return exists
}
