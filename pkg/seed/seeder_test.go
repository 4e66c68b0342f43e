package seed

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stateloan/lms-auth/pkg/model"
)

// fakeStores is a minimal in-memory backend for the seeder.
type fakeStores struct {
	permissions map[string]*model.Permission
	roles       map[string]*model.Role
	users       map[string]*model.User
	roleGrants  map[uint][]uint // role id -> permission ids
	userGrants  map[uint][]uint // user id -> role ids
	nextID      uint
}

func newFakeStores() *fakeStores {
	return &fakeStores{
		permissions: make(map[string]*model.Permission),
		roles:       make(map[string]*model.Role),
		users:       make(map[string]*model.User),
		roleGrants:  make(map[uint][]uint),
		userGrants:  make(map[uint][]uint),
	}
}

func (f *fakeStores) id() uint {
	f.nextID++
	return f.nextID
}

func (f *fakeStores) PermissionExistsByName(name string) bool {
	_, ok := f.permissions[name]
	return ok
}

func (f *fakeStores) CreatePermission(name, description string) (*model.Permission, error) {
	permission := &model.Permission{ID: f.id(), Name: name, Description: description}
	f.permissions[name] = permission
	return permission, nil
}

func (f *fakeStores) FindPermissionByName(name string) (*model.Permission, error) {
	permission, ok := f.permissions[name]
	if !ok {
		return nil, fmt.Errorf("permission %s not found", name)
	}
	return permission, nil
}

func (f *fakeStores) ListPermissions() ([]model.Permission, error) {
	list := make([]model.Permission, 0, len(f.permissions))
	for _, permission := range f.permissions {
		list = append(list, *permission)
	}
	return list, nil
}

func (f *fakeStores) RoleExistsByName(name string) bool {
	_, ok := f.roles[name]
	return ok
}

func (f *fakeStores) CreateRole(name, description string) (*model.Role, error) {
	role := &model.Role{ID: f.id(), Name: name, Description: description}
	f.roles[name] = role
	return role, nil
}

func (f *fakeStores) FindRoleByName(name string) (*model.Role, error) {
	role, ok := f.roles[name]
	if !ok {
		return nil, fmt.Errorf("role %s not found", name)
	}
	return role, nil
}

func (f *fakeStores) AddPermission(roleID, permissionID uint) (*model.Role, error) {
	for _, existing := range f.roleGrants[roleID] {
		if existing == permissionID {
			return nil, nil
		}
	}
	f.roleGrants[roleID] = append(f.roleGrants[roleID], permissionID)
	return nil, nil
}

func (f *fakeStores) UserExistsByUsername(username string) bool {
	_, ok := f.users[username]
	return ok
}

func (f *fakeStores) CreateUser(username, email, password string) (*model.User, error) {
	user := &model.User{ID: f.id(), Username: username, Email: email, Enabled: true}
	f.users[username] = user
	// Mirror the real store: new accounts get the default USER role.
	if role, ok := f.roles["USER"]; ok {
		f.userGrants[user.ID] = append(f.userGrants[user.ID], role.ID)
	}
	return user, nil
}

func (f *fakeStores) FindUserByUsername(username string) (*model.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, fmt.Errorf("user %s not found", username)
	}
	return user, nil
}

func (f *fakeStores) AddRole(userID, roleID uint) (*model.User, error) {
	for _, existing := range f.userGrants[userID] {
		if existing == roleID {
			return nil, nil
		}
	}
	f.userGrants[userID] = append(f.userGrants[userID], roleID)
	return nil, nil
}

func TestSeederRunDefaultCatalog(t *testing.T) {
	stores := newFakeStores()
	seeder := NewSeeder(stores, stores, stores, zap.NewNop())

	require.NoError(t, seeder.Run(DefaultCatalog()))

	assert.Len(t, stores.permissions, 32)
	assert.Len(t, stores.roles, 4)
	assert.Len(t, stores.users, 3)

	// ADMIN holds every permission.
	admin := stores.roles["ADMIN"]
	assert.Len(t, stores.roleGrants[admin.ID], 32)

	// USER holds exactly its five basic permissions.
	user := stores.roles["USER"]
	assert.Len(t, stores.roleGrants[user.ID], 5)

	// The admin account carries the default USER role plus ADMIN.
	adminUser := stores.users["admin"]
	assert.ElementsMatch(t, []uint{user.ID, admin.ID}, stores.userGrants[adminUser.ID])

	// Descriptions are derived from the permission names.
	assert.Equal(t, "Permission to create user records", stores.permissions["USER:CREATE"].Description)
}

func TestSeederRunIsIdempotent(t *testing.T) {
	stores := newFakeStores()
	seeder := NewSeeder(stores, stores, stores, zap.NewNop())

	require.NoError(t, seeder.Run(DefaultCatalog()))
	firstCount := stores.nextID

	require.NoError(t, seeder.Run(DefaultCatalog()))
	assert.Equal(t, firstCount, stores.nextID, "second run must not create anything")
}

func TestSeederSkipsUnknownGrants(t *testing.T) {
	stores := newFakeStores()
	seeder := NewSeeder(stores, stores, stores, zap.NewNop())

	catalog := &Catalog{
		Permissions: []PermissionSpec{{Name: "LOAN:READ"}},
		Roles: []RoleSpec{{
			Name:        "CLERK",
			Permissions: []string{"LOAN:READ", "LOAN:MISSING"},
		}},
	}

	require.NoError(t, seeder.Run(catalog))

	clerk := stores.roles["CLERK"]
	assert.Len(t, stores.roleGrants[clerk.ID], 1)
}
