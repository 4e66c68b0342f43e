package model

import "time"

// User represents an account. Username and email are globally unique
// and case-sensitive. PasswordHash holds the output of a one-way hash
// and is never serialized.
type User struct {
	ID           uint      `gorm:"column:id;primaryKey" json:"id"`
	Username     string    `gorm:"column:username;not null;unique" json:"username"`
	Email        string    `gorm:"column:email;not null;unique" json:"email"`
	PasswordHash string    `gorm:"column:password;not null" json:"-"`
	Enabled      bool      `gorm:"column:enabled;not null;default:true" json:"enabled"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Roles is populated by eager reads (FindByIDWithRoles and
	// friends); it is not a mapped column.
	Roles []Role `gorm:"-" json:"roles,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// RoleNames returns the names of the user's loaded roles.
func (u User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		names = append(names, role.Name)
	}
	return names
}

// UserRole is a row in the user_roles join table.
type UserRole struct {
	UserID uint `gorm:"column:user_id;primaryKey"`
	RoleID uint `gorm:"column:role_id;primaryKey"`
}

func (UserRole) TableName() string {
	return "user_roles"
}
