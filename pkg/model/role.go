package model

import "time"

// Role represents a named set of permissions. Role names are unique and
// conventionally uppercase (ADMIN, USER, LOAN_OFFICER, MANAGER).
type Role struct {
	ID          uint      `gorm:"column:id;primaryKey" json:"id"`
	Name        string    `gorm:"column:name;not null;unique" json:"name"`
	Description string    `gorm:"column:description" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Permissions is populated by eager reads (FindByIDWithPermissions
	// and friends); it is not a mapped column.
	Permissions []Permission `gorm:"-" json:"permissions,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// RolePermission is a row in the role_permissions join table.
type RolePermission struct {
	RoleID       uint `gorm:"column:role_id;primaryKey"`
	PermissionID uint `gorm:"column:permission_id;primaryKey"`
}

func (RolePermission) TableName() string {
	return "role_permissions"
}
