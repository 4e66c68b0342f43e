package store

import "github.com/stateloan/lms-auth/pkg/model"

// DefaultRoleName is the role every newly created user is enrolled in.
// User creation fails hard if it does not exist.
const DefaultRoleName = "USER"

// UserUpdate carries the optional fields of a user update. Nil fields
// are left unchanged; a nil or empty Password preserves the stored hash.
type UserUpdate struct {
	Username *string
	Email    *string
	Enabled  *bool
	Password *string
}

// UsersStore abstracts user storage operations and owns credential
// verification (delegated to an injected one-way hasher).
type UsersStore interface {
	// ListUsers returns all users without their role sets.
	ListUsers() ([]model.User, error)

	// FindUserByID retrieves a user by id.
	FindUserByID(id uint) (*model.User, error)

	// FindUserByUsername retrieves a user by username.
	FindUserByUsername(username string) (*model.User, error)

	// FindUserByEmail retrieves a user by email.
	FindUserByEmail(email string) (*model.User, error)

	// FindUserByIDWithRoles retrieves a user with roles and each role's
	// permissions eagerly loaded.
	FindUserByIDWithRoles(id uint) (*model.User, error)

	// FindUserByUsernameWithRoles retrieves a user by username with
	// roles and each role's permissions eagerly loaded.
	FindUserByUsernameWithRoles(username string) (*model.User, error)

	// CreateUser hashes the password, enrolls the default USER role and
	// persists the account. Duplicate username or email fails with
	// ConflictError (username checked first).
	CreateUser(username, email, password string) (*model.User, error)

	// UpdateUser applies the non-nil fields of update. Uniqueness is
	// re-checked only for fields whose value actually changes.
	UpdateUser(id uint, update UserUpdate) (*model.User, error)

	// DeleteUser removes the user and its role membership rows.
	DeleteUser(id uint) error

	// ReplaceRoles resolves roleIDs and replaces the user's entire role
	// set atomically. If any id is unknown the call fails with
	// NotFoundError and applies no change.
	ReplaceRoles(userID uint, roleIDs []uint) (*model.User, error)

	// AddRole adds a single role to the user; adding an already-present
	// role is a no-op success.
	AddRole(userID, roleID uint) (*model.User, error)

	// RemoveRole removes a single role from the user; removing an
	// absent role is a no-op success.
	RemoveRole(userID, roleID uint) (*model.User, error)

	// VerifyPassword checks the plaintext against the stored hash via
	// the injected hasher. The store never compares passwords directly.
	VerifyPassword(user *model.User, password string) bool

	// UserExistsByUsername checks username uniqueness.
	UserExistsByUsername(username string) bool

	// UserExistsByEmail checks email uniqueness.
	UserExistsByEmail(email string) bool
}
