package endpoints

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stateloan/lms-auth/pkg/model"
	"github.com/stateloan/lms-auth/pkg/server/store"
)

func loanOfficerRole() *model.Role {
	return &model.Role{
		ID:   2,
		Name: "LOAN_OFFICER",
		Permissions: []model.Permission{
			{ID: 10, Name: "LOAN:READ"},
			{ID: 11, Name: "LOAN:APPROVE"},
		},
	}
}

func TestGetRoleWithPermissions(t *testing.T) {
	srv, mocks := newTestServer(t)

	mocks.roles.On("FindRoleByIDWithPermissions", uint(2)).Return(loanOfficerRole(), nil)

	w := doRequest(srv, "GET", "/api/roles/2", adminBearer(t, srv), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var role model.Role
	decodeBody(t, w, &role)
	assert.Equal(t, "LOAN_OFFICER", role.Name)
	assert.Len(t, role.Permissions, 2)
}

func TestCreateRoleDuplicate(t *testing.T) {
	srv, mocks := newTestServer(t)

	mocks.roles.On("CreateRole", "MANAGER", "").
		Return(nil, &store.ConflictError{Message: "Role name is already taken!"})

	w := doRequest(srv, "POST", "/api/roles", adminBearer(t, srv), RoleRequest{Name: "MANAGER"})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Role name is already taken!", errorMessage(t, w))
}

func TestDeleteRole(t *testing.T) {
	srv, mocks := newTestServer(t)

	mocks.roles.On("DeleteRole", uint(2)).Return(nil)

	w := doRequest(srv, "DELETE", "/api/roles/2", adminBearer(t, srv), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp MessageResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "Role deleted successfully!", resp.Message)
}

func TestReplaceRolePermissionsBulk(t *testing.T) {
	srv, mocks := newTestServer(t)

	replaced := loanOfficerRole()
	mocks.roles.On("ReplacePermissions", uint(2), []uint{10, 11}).Return(replaced, nil)

	w := doRequest(srv, "PUT", "/api/roles/2/permissions", adminBearer(t, srv), RolePermissionsRequest{
		PermissionIDs: []uint{10, 11},
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var role model.Role
	decodeBody(t, w, &role)
	assert.Len(t, role.Permissions, 2)
}

func TestReplaceRolePermissionsUnknownID(t *testing.T) {
	srv, mocks := newTestServer(t)

	// One unknown id fails the whole batch and changes nothing.
	mocks.roles.On("ReplacePermissions", uint(2), []uint{10, 999}).
		Return(nil, &store.NotFoundError{Message: "Some permissions were not found"})

	w := doRequest(srv, "PUT", "/api/roles/2/permissions", adminBearer(t, srv), RolePermissionsRequest{
		PermissionIDs: []uint{10, 999},
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Some permissions were not found", errorMessage(t, w))
}

func TestAddRolePermissionIdempotent(t *testing.T) {
	srv, mocks := newTestServer(t)

	// Adding an already-held permission succeeds with an unchanged set.
	mocks.roles.On("AddPermission", uint(2), uint(10)).Return(loanOfficerRole(), nil)

	w := doRequest(srv, "POST", "/api/roles/2/permissions/10", adminBearer(t, srv), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var role model.Role
	decodeBody(t, w, &role)
	assert.Len(t, role.Permissions, 2)
}

func TestRemoveRolePermissionVacuous(t *testing.T) {
	srv, mocks := newTestServer(t)

	// Removing a permission the role never had is a no-op success.
	mocks.roles.On("RemovePermission", uint(2), uint(42)).Return(loanOfficerRole(), nil)

	w := doRequest(srv, "DELETE", "/api/roles/2/permissions/42", adminBearer(t, srv), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoleEndpointsRequireAdmin(t *testing.T) {
	srv, _ := newTestServer(t)

	bearer := userBearer(t, srv, 5, "bob")

	paths := []struct {
		method string
		path   string
	}{
		{"GET", "/api/roles"},
		{"POST", "/api/roles"},
		{"GET", "/api/roles/2"},
		{"PUT", "/api/roles/2/permissions"},
		{"POST", "/api/roles/2/permissions/10"},
		{"DELETE", "/api/roles/2/permissions/10"},
	}

	for _, p := range paths {
		w := doRequest(srv, p.method, p.path, bearer, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, "%s %s", p.method, p.path)
	}
}
