package seed

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/stateloan/lms-auth/pkg/model"
)

// PermissionCatalogStore is the slice of the permissions store the
// seeder needs.
type PermissionCatalogStore interface {
	PermissionExistsByName(name string) bool
	CreatePermission(name, description string) (*model.Permission, error)
	FindPermissionByName(name string) (*model.Permission, error)
	ListPermissions() ([]model.Permission, error)
}

// RoleCatalogStore is the slice of the roles store the seeder needs.
type RoleCatalogStore interface {
	RoleExistsByName(name string) bool
	CreateRole(name, description string) (*model.Role, error)
	FindRoleByName(name string) (*model.Role, error)
	AddPermission(roleID, permissionID uint) (*model.Role, error)
}

// UserCatalogStore is the slice of the users store the seeder needs.
type UserCatalogStore interface {
	UserExistsByUsername(username string) bool
	CreateUser(username, email, password string) (*model.User, error)
	FindUserByUsername(username string) (*model.User, error)
	AddRole(userID, roleID uint) (*model.User, error)
}

// Seeder applies a catalog to the stores.
type Seeder struct {
	permissions PermissionCatalogStore
	roles       RoleCatalogStore
	users       UserCatalogStore
	logger      *zap.Logger
}

// NewSeeder creates a Seeder.
func NewSeeder(
	permissions PermissionCatalogStore,
	roles RoleCatalogStore,
	users UserCatalogStore,
	logger *zap.Logger,
) *Seeder {
	return &Seeder{
		permissions: permissions,
		roles:       roles,
		users:       users,
		logger:      logger,
	}
}

// Run seeds permissions, then roles, then users. Existing records are
// never modified, so re-running with the same catalog is a no-op.
func (s *Seeder) Run(catalog *Catalog) error {
	if err := s.seedPermissions(catalog); err != nil {
		return err
	}
	if err := s.seedRoles(catalog); err != nil {
		return err
	}
	if err := s.seedUsers(catalog); err != nil {
		return err
	}

	s.logger.Info("Seeding initial data completed successfully")
	return nil
}

func (s *Seeder) seedPermissions(catalog *Catalog) error {
	s.logger.Info("Seeding permissions...")

	for _, spec := range catalog.Permissions {
		if s.permissions.PermissionExistsByName(spec.Name) {
			continue
		}

		description := spec.Description
		if description == "" {
			description = DescriptionFor(spec.Name)
		}

		if _, err := s.permissions.CreatePermission(spec.Name, description); err != nil {
			return fmt.Errorf("failed to create permission %s: %w", spec.Name, err)
		}
		s.logger.Info("Created permission", zap.String("name", spec.Name))
	}
	return nil
}

func (s *Seeder) seedRoles(catalog *Catalog) error {
	s.logger.Info("Seeding roles...")

	for _, spec := range catalog.Roles {
		if s.roles.RoleExistsByName(spec.Name) {
			continue
		}

		role, err := s.roles.CreateRole(spec.Name, spec.Description)
		if err != nil {
			return fmt.Errorf("failed to create role %s: %w", spec.Name, err)
		}

		grants := spec.Permissions
		if spec.AllPermissions {
			all, err := s.permissions.ListPermissions()
			if err != nil {
				return err
			}
			grants = make([]string, 0, len(all))
			for _, permission := range all {
				grants = append(grants, permission.Name)
			}
		}

		for _, name := range grants {
			permission, err := s.permissions.FindPermissionByName(name)
			if err != nil {
				s.logger.Warn("Skipping unknown permission grant",
					zap.String("role", spec.Name),
					zap.String("permission", name))
				continue
			}
			if _, err := s.roles.AddPermission(role.ID, permission.ID); err != nil {
				return fmt.Errorf("failed to grant %s to role %s: %w", name, spec.Name, err)
			}
		}
		s.logger.Info("Created role",
			zap.String("name", spec.Name),
			zap.Int("permissions", len(grants)))
	}
	return nil
}

func (s *Seeder) seedUsers(catalog *Catalog) error {
	s.logger.Info("Seeding users...")

	for _, spec := range catalog.Users {
		if s.users.UserExistsByUsername(spec.Username) {
			continue
		}

		// CreateUser enrolls the default USER role; the catalog's role
		// grants come on top of that.
		user, err := s.users.CreateUser(spec.Username, spec.Email, spec.Password)
		if err != nil {
			return fmt.Errorf("failed to create user %s: %w", spec.Username, err)
		}

		for _, roleName := range spec.Roles {
			role, err := s.roles.FindRoleByName(roleName)
			if err != nil {
				s.logger.Warn("Skipping unknown role grant",
					zap.String("user", spec.Username),
					zap.String("role", roleName))
				continue
			}
			if _, err := s.users.AddRole(user.ID, role.ID); err != nil {
				return fmt.Errorf("failed to grant role %s to user %s: %w", roleName, spec.Username, err)
			}
		}
		s.logger.Info("Created user", zap.String("username", spec.Username))
	}
	return nil
}
