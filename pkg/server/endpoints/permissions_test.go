package endpoints

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stateloan/lms-auth/pkg/model"
	"github.com/stateloan/lms-auth/pkg/server/store"
)

func TestListPermissionsRequiresAdmin(t *testing.T) {
	srv, mocks := newTestServer(t)

	mocks.permissions.On("ListPermissions").Return([]model.Permission{
		{ID: 1, Name: "LOAN:CREATE"},
		{ID: 2, Name: "LOAN:READ"},
	}, nil)

	// No token
	w := doRequest(srv, "GET", "/api/permissions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Non-admin token
	w = doRequest(srv, "GET", "/api/permissions", userBearer(t, srv, 5, "bob"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Access Denied", errorMessage(t, w))

	// Admin token
	w = doRequest(srv, "GET", "/api/permissions", adminBearer(t, srv), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var list []model.Permission
	decodeBody(t, w, &list)
	assert.Len(t, list, 2)
}

func TestCreatePermission(t *testing.T) {
	srv, mocks := newTestServer(t)

	mocks.permissions.On("CreatePermission", "LOAN:APPROVE", "Approve loans").
		Return(&model.Permission{ID: 3, Name: "LOAN:APPROVE", Description: "Approve loans"}, nil)

	w := doRequest(srv, "POST", "/api/permissions", adminBearer(t, srv), PermissionRequest{
		Name:        "LOAN:APPROVE",
		Description: "Approve loans",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var created model.Permission
	decodeBody(t, w, &created)
	assert.Equal(t, uint(3), created.ID)
	assert.Equal(t, "LOAN:APPROVE", created.Name)
}

func TestCreatePermissionInvalidFormat(t *testing.T) {
	srv, mocks := newTestServer(t)

	mocks.permissions.On("CreatePermission", "loan:approve", "").
		Return(nil, &store.ValidationError{Message: model.PermissionNameFormat})

	w := doRequest(srv, "POST", "/api/permissions", adminBearer(t, srv), PermissionRequest{
		Name: "loan:approve",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, model.PermissionNameFormat, errorMessage(t, w))
}

func TestCreatePermissionDuplicate(t *testing.T) {
	srv, mocks := newTestServer(t)

	mocks.permissions.On("CreatePermission", "LOAN:CREATE", "").
		Return(nil, &store.ConflictError{Message: "Permission name is already taken!"})

	w := doRequest(srv, "POST", "/api/permissions", adminBearer(t, srv), PermissionRequest{
		Name: "LOAN:CREATE",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Permission name is already taken!", errorMessage(t, w))
}

func TestGetPermissionNotFound(t *testing.T) {
	srv, mocks := newTestServer(t)

	mocks.permissions.On("FindPermissionByID", uint(99)).
		Return(nil, store.NewNotFoundError("Permission", 99))

	w := doRequest(srv, "GET", "/api/permissions/99", adminBearer(t, srv), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Permission not found with id: 99", errorMessage(t, w))
}

func TestListResourcesAndActions(t *testing.T) {
	srv, mocks := newTestServer(t)

	mocks.permissions.On("ListResources").Return([]string{"LOAN", "USER"}, nil)
	mocks.permissions.On("ListActions").Return([]string{"CREATE", "READ"}, nil)

	w := doRequest(srv, "GET", "/api/permissions/resources", adminBearer(t, srv), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var resources []string
	decodeBody(t, w, &resources)
	assert.Equal(t, []string{"LOAN", "USER"}, resources)

	w = doRequest(srv, "GET", "/api/permissions/actions", adminBearer(t, srv), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var actions []string
	decodeBody(t, w, &actions)
	assert.Equal(t, []string{"CREATE", "READ"}, actions)
}

func TestPermissionsByResource(t *testing.T) {
	srv, mocks := newTestServer(t)

	mocks.permissions.On("FindPermissionsByResource", "LOAN").Return([]model.Permission{
		{ID: 1, Name: "LOAN:CREATE"},
		{ID: 2, Name: "LOAN:READ"},
	}, nil)

	w := doRequest(srv, "GET", "/api/permissions/by-resource/LOAN", adminBearer(t, srv), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var list []model.Permission
	decodeBody(t, w, &list)
	assert.Len(t, list, 2)
}

func TestDeletePermission(t *testing.T) {
	srv, mocks := newTestServer(t)

	mocks.permissions.On("DeletePermission", uint(3)).Return(nil)

	w := doRequest(srv, "DELETE", "/api/permissions/3", adminBearer(t, srv), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp MessageResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "Permission deleted successfully!", resp.Message)
	mocks.permissions.AssertCalled(t, "DeletePermission", uint(3))
}

func TestUpdatePermission(t *testing.T) {
	srv, mocks := newTestServer(t)

	mocks.permissions.On("UpdatePermission", uint(2), "LOAN:REVIEW", "Review loans").
		Return(&model.Permission{ID: 2, Name: "LOAN:REVIEW", Description: "Review loans"}, nil)

	w := doRequest(srv, "PUT", "/api/permissions/2", adminBearer(t, srv), PermissionRequest{
		Name:        "LOAN:REVIEW",
		Description: "Review loans",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var updated model.Permission
	decodeBody(t, w, &updated)
	assert.Equal(t, "LOAN:REVIEW", updated.Name)
}
