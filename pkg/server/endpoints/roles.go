package endpoints

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/stateloan/lms-auth/pkg/audit"
	"github.com/stateloan/lms-auth/pkg/identity"
	"github.com/stateloan/lms-auth/pkg/model"
	"github.com/stateloan/lms-auth/pkg/server"
	"github.com/stateloan/lms-auth/pkg/server/store"
)

// RoleRequest is the body for role create and update
type RoleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RolePermissionsRequest is the body for a bulk permission replace
type RolePermissionsRequest struct {
	PermissionIDs []uint `json:"permissionIds"`
}

// RegisterRolesEndpoints registers the role management endpoints. All
// of them are admin-only.
func RegisterRolesEndpoints(s *server.Server) {
	roles := s.Stores.Roles

	router := s.Router.PathPrefix("/api/roles").Subrouter()
	router.Use(s.Middleware.Middleware)

	router.HandleFunc("", handleListRoles(roles)).Methods("GET")
	router.HandleFunc("", handleCreateRole(roles)).Methods("POST")
	router.HandleFunc("/name/{name}", handleGetRoleByName(roles)).Methods("GET")
	router.HandleFunc("/{id:[0-9]+}", handleGetRole(roles)).Methods("GET")
	router.HandleFunc("/{id:[0-9]+}", handleUpdateRole(roles)).Methods("PUT")
	router.HandleFunc("/{id:[0-9]+}", handleDeleteRole(roles)).Methods("DELETE")
	router.HandleFunc("/{id:[0-9]+}/permissions", handleGetRolePermissions(roles)).Methods("GET")
	router.HandleFunc("/{id:[0-9]+}/permissions", handleReplaceRolePermissions(roles)).Methods("PUT")
	router.HandleFunc("/{id:[0-9]+}/permissions/{permissionId:[0-9]+}", handleAddRolePermission(roles)).Methods("POST")
	router.HandleFunc("/{id:[0-9]+}/permissions/{permissionId:[0-9]+}", handleRemoveRolePermission(roles)).Methods("DELETE")
}

func handleListRoles(roles store.RolesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireRole(w, r, adminRole); !ok {
			return
		}

		list, err := roles.ListRoles()
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, list)
	}
}

func handleGetRole(roles store.RolesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireRole(w, r, adminRole); !ok {
			return
		}
		id, ok := idVar(r, "id")
		if !ok {
			respondWithError(w, http.StatusBadRequest, "Invalid role id")
			return
		}

		role, err := roles.FindRoleByIDWithPermissions(id)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, role)
	}
}

func handleGetRoleByName(roles store.RolesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireRole(w, r, adminRole); !ok {
			return
		}

		role, err := roles.FindRoleByNameWithPermissions(mux.Vars(r)["name"])
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, role)
	}
}

func handleCreateRole(roles store.RolesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireRole(w, r, adminRole); !ok {
			return
		}
		var req RoleRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}

		role, err := roles.CreateRole(req.Name, req.Description)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusCreated, role)
	}
}

func handleUpdateRole(roles store.RolesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireRole(w, r, adminRole); !ok {
			return
		}
		id, ok := idVar(r, "id")
		if !ok {
			respondWithError(w, http.StatusBadRequest, "Invalid role id")
			return
		}
		var req RoleRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}

		role, err := roles.UpdateRole(id, req.Name, req.Description)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, role)
	}
}

func handleDeleteRole(roles store.RolesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireRole(w, r, adminRole); !ok {
			return
		}
		id, ok := idVar(r, "id")
		if !ok {
			respondWithError(w, http.StatusBadRequest, "Invalid role id")
			return
		}

		if err := roles.DeleteRole(id); err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, MessageResponse{Message: "Role deleted successfully!"})
	}
}

func handleGetRolePermissions(roles store.RolesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireRole(w, r, adminRole); !ok {
			return
		}
		id, ok := idVar(r, "id")
		if !ok {
			respondWithError(w, http.StatusBadRequest, "Invalid role id")
			return
		}

		role, err := roles.FindRoleByIDWithPermissions(id)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, role.Permissions)
	}
}

func handleReplaceRolePermissions(roles store.RolesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireRole(w, r, adminRole)
		if !ok {
			return
		}
		roleID, ok := idVar(r, "id")
		if !ok {
			respondWithError(w, http.StatusBadRequest, "Invalid role id")
			return
		}
		var req RolePermissionsRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}

		role, err := roles.ReplacePermissions(roleID, req.PermissionIDs)
		logRolePermissionChange(id, r, role, "replace", permissionNames(role), err)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, role)
	}
}

func handleAddRolePermission(roles store.RolesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireRole(w, r, adminRole)
		if !ok {
			return
		}
		roleID, ok := idVar(r, "id")
		if !ok {
			respondWithError(w, http.StatusBadRequest, "Invalid role id")
			return
		}
		permissionID, ok := idVar(r, "permissionId")
		if !ok {
			respondWithError(w, http.StatusBadRequest, "Invalid permission id")
			return
		}

		role, err := roles.AddPermission(roleID, permissionID)
		logRolePermissionChange(id, r, role, "grant", permissionNames(role), err)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, role)
	}
}

func handleRemoveRolePermission(roles store.RolesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireRole(w, r, adminRole)
		if !ok {
			return
		}
		roleID, ok := idVar(r, "id")
		if !ok {
			respondWithError(w, http.StatusBadRequest, "Invalid role id")
			return
		}
		permissionID, ok := idVar(r, "permissionId")
		if !ok {
			respondWithError(w, http.StatusBadRequest, "Invalid permission id")
			return
		}

		role, err := roles.RemovePermission(roleID, permissionID)
		logRolePermissionChange(id, r, role, "revoke", permissionNames(role), err)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, role)
	}
}

func permissionNames(role *model.Role) []string {
	if role == nil {
		return nil
	}
	names := make([]string, 0, len(role.Permissions))
	for _, permission := range role.Permissions {
		names = append(names, permission.Name)
	}
	return names
}

func logRolePermissionChange(id *identity.Identity, r *http.Request, role *model.Role, operation string, permissions []string, err error) {
	event := audit.PermissionChangeEvent{
		Actor:       id.Username,
		ClientIP:    identity.ClientIP(r).String(),
		Operation:   operation,
		Permissions: permissions,
		Success:     err == nil,
	}
	if role != nil {
		event.RoleName = role.Name
	}
	if err != nil {
		event.ErrorMessage = err.Error()
	}
	audit.Log(event)
}
