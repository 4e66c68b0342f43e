package gorm

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/stateloan/lms-auth/pkg/model"
	"github.com/stateloan/lms-auth/pkg/password"
	"github.com/stateloan/lms-auth/pkg/server/store"
)

// Ensure UsersStore implements store.UsersStore
var _ store.UsersStore = (*UsersStore)(nil)

// UsersStore implements store.UsersStore using GORM. Password hashing
// is delegated to the injected hasher.
type UsersStore struct {
	db     *gorm.DB
	hasher password.Hasher
}

// NewUsersStore creates a new UsersStore
func NewUsersStore(db *gorm.DB, hasher password.Hasher) *UsersStore {
	return &UsersStore{db: db, hasher: hasher}
}

// ListUsers returns all users ordered by username
func (s *UsersStore) ListUsers() ([]model.User, error) {
	var users []model.User
	if err := s.db.Order("username").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindUserByID retrieves a user by id
func (s *UsersStore) FindUserByID(id uint) (*model.User, error) {
	var user model.User
	err := s.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.NewNotFoundError("User", id)
		}
		return nil, err
	}
	return &user, nil
}

// FindUserByUsername retrieves a user by username
func (s *UsersStore) FindUserByUsername(username string) (*model.User, error) {
	var user model.User
	err := s.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &store.NotFoundError{
				Message: fmt.Sprintf("User not found with username: %s", username),
			}
		}
		return nil, err
	}
	return &user, nil
}

// FindUserByEmail retrieves a user by email
func (s *UsersStore) FindUserByEmail(email string) (*model.User, error) {
	var user model.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &store.NotFoundError{
				Message: fmt.Sprintf("User not found with email: %s", email),
			}
		}
		return nil, err
	}
	return &user, nil
}

// FindUserByIDWithRoles retrieves a user with roles and each role's
// permissions loaded
func (s *UsersStore) FindUserByIDWithRoles(id uint) (*model.User, error) {
	user, err := s.FindUserByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.loadRoles(user); err != nil {
		return nil, err
	}
	return user, nil
}

// FindUserByUsernameWithRoles retrieves a user by username with roles
// and each role's permissions loaded
func (s *UsersStore) FindUserByUsernameWithRoles(username string) (*model.User, error) {
	user, err := s.FindUserByUsername(username)
	if err != nil {
		return nil, err
	}
	if err := s.loadRoles(user); err != nil {
		return nil, err
	}
	return user, nil
}

// loadRoles populates user.Roles through the user_roles join table,
// including each role's permission set
func (s *UsersStore) loadRoles(user *model.User) error {
	var roles []model.Role
	err := s.db.Raw(`
		SELECT r.*
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = ?
		ORDER BY r.name
	`, user.ID).Scan(&roles).Error
	if err != nil {
		return err
	}

	for i := range roles {
		permissions, err := rolePermissions(s.db, roles[i].ID)
		if err != nil {
			return err
		}
		roles[i].Permissions = permissions
	}

	user.Roles = roles
	return nil
}

// CreateUser hashes the password, enrolls the default USER role and
// persists the account. Username uniqueness is checked before email.
func (s *UsersStore) CreateUser(username, email, plaintext string) (*model.User, error) {
	if username == "" || email == "" || plaintext == "" {
		return nil, &store.ValidationError{Message: "Username, email and password are required"}
	}
	if s.UserExistsByUsername(username) {
		return nil, &store.ConflictError{Message: "Username is already taken!"}
	}
	if s.UserExistsByEmail(email) {
		return nil, &store.ConflictError{Message: "Email is already in use!"}
	}

	hash, err := s.hasher.Hash(plaintext)
	if err != nil {
		return nil, err
	}

	user := model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Enabled:      true,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var defaultRole model.Role
		if err := tx.Where("name = ?", store.DefaultRoleName).First(&defaultRole).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &store.NotFoundError{Message: "Default USER role not found"}
			}
			return err
		}

		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&model.UserRole{UserID: user.ID, RoleID: defaultRole.ID}).Error
	})
	if err != nil {
		return nil, err
	}

	return s.FindUserByIDWithRoles(user.ID)
}

// UpdateUser applies the non-nil fields of update. Uniqueness is only
// re-checked for fields whose value actually changes.
func (s *UsersStore) UpdateUser(id uint, update store.UserUpdate) (*model.User, error) {
	user, err := s.FindUserByID(id)
	if err != nil {
		return nil, err
	}

	if update.Username != nil && *update.Username != user.Username {
		if s.UserExistsByUsername(*update.Username) {
			return nil, &store.ConflictError{Message: "Username is already taken!"}
		}
		user.Username = *update.Username
	}
	if update.Email != nil && *update.Email != user.Email {
		if s.UserExistsByEmail(*update.Email) {
			return nil, &store.ConflictError{Message: "Email is already in use!"}
		}
		user.Email = *update.Email
	}
	if update.Enabled != nil {
		user.Enabled = *update.Enabled
	}
	if update.Password != nil && *update.Password != "" {
		hash, err := s.hasher.Hash(*update.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return s.FindUserByIDWithRoles(user.ID)
}

// DeleteUser removes the user and its role membership rows
func (s *UsersStore) DeleteUser(id uint) error {
	user, err := s.FindUserByID(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM user_roles WHERE user_id = ?`, user.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, user.ID).Error
	})
}

// ReplaceRoles atomically replaces the user's entire role set. If any
// id is unknown no change is applied.
func (s *UsersStore) ReplaceRoles(userID uint, roleIDs []uint) (*model.User, error) {
	user, err := s.FindUserByID(userID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(roleIDs) > 0 {
			var count int64
			if err := tx.Model(&model.Role{}).Where("id IN ?", roleIDs).Count(&count).Error; err != nil {
				return err
			}
			if count != int64(len(dedupIDs(roleIDs))) {
				return &store.NotFoundError{Message: "Some roles were not found"}
			}
		}

		if err := tx.Exec(`DELETE FROM user_roles WHERE user_id = ?`, user.ID).Error; err != nil {
			return err
		}

		for _, roleID := range dedupIDs(roleIDs) {
			if err := tx.Create(&model.UserRole{UserID: user.ID, RoleID: roleID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.FindUserByIDWithRoles(user.ID)
}

// AddRole enrolls the user in a single role. Adding an already-held
// role is a no-op success.
func (s *UsersStore) AddRole(userID, roleID uint) (*model.User, error) {
	user, err := s.FindUserByID(userID)
	if err != nil {
		return nil, err
	}
	if err := s.checkRoleExists(roleID); err != nil {
		return nil, err
	}

	err = s.db.Exec(`
		INSERT INTO user_roles (user_id, role_id)
		VALUES (?, ?)
		ON CONFLICT DO NOTHING
	`, user.ID, roleID).Error
	if err != nil {
		return nil, err
	}

	return s.FindUserByIDWithRoles(user.ID)
}

// RemoveRole removes a single role from the user. Removing an absent
// role is a no-op success.
func (s *UsersStore) RemoveRole(userID, roleID uint) (*model.User, error) {
	user, err := s.FindUserByID(userID)
	if err != nil {
		return nil, err
	}
	if err := s.checkRoleExists(roleID); err != nil {
		return nil, err
	}

	err = s.db.Exec(`
		DELETE FROM user_roles WHERE user_id = ? AND role_id = ?
	`, user.ID, roleID).Error
	if err != nil {
		return nil, err
	}

	return s.FindUserByIDWithRoles(user.ID)
}

func (s *UsersStore) checkRoleExists(roleID uint) error {
	var role model.Role
	err := s.db.First(&role, roleID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return store.NewNotFoundError("Role", roleID)
		}
		return err
	}
	return nil
}

// VerifyPassword checks the plaintext against the stored hash
func (s *UsersStore) VerifyPassword(user *model.User, plaintext string) bool {
	return s.hasher.Compare(user.PasswordHash, plaintext)
}

// UserExistsByUsername checks if a username is taken
func (s *UsersStore) UserExistsByUsername(username string) bool {
	var exists bool
	s.db.Raw(`SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)`, username).Scan(&exists)
	return exists
}

// UserExistsByEmail checks if an email is in use
func (s *UsersStore) UserExistsByEmail(email string) bool {
	var exists bool
	s.db.Raw(`SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`, email).Scan(&exists)
	return exists
}
