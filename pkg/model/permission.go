package model

import (
	"regexp"
	"strings"
	"time"
)

// PermissionNameFormat is the message returned when a permission name
// does not match the required RESOURCE:ACTION shape.
const PermissionNameFormat = "Permission name must be in format RESOURCE:ACTION (e.g., LOAN:CREATE)"

var permissionNamePattern = regexp.MustCompile(`^[A-Z_]+:[A-Z_]+$`)

// Permission represents an atomic capability of the form RESOURCE:ACTION
// (e.g. "LOAN:APPROVE"). Names are globally unique.
type Permission struct {
	ID          uint      `gorm:"column:id;primaryKey" json:"id"`
	Name        string    `gorm:"column:name;not null;unique" json:"name"`
	Description string    `gorm:"column:description" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Permission) TableName() string {
	return "permissions"
}

// Resource returns the RESOURCE segment of the permission name.
func (p Permission) Resource() string {
	return strings.SplitN(p.Name, ":", 2)[0]
}

// Action returns the ACTION segment of the permission name.
func (p Permission) Action() string {
	parts := strings.SplitN(p.Name, ":", 2)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// ValidPermissionName reports whether name matches ^[A-Z_]+:[A-Z_]+$.
func ValidPermissionName(name string) bool {
	return permissionNamePattern.MatchString(name)
}
