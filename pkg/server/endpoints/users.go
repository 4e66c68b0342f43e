package endpoints

import (
	"net/http"

	"github.com/stateloan/lms-auth/pkg/audit"
	"github.com/stateloan/lms-auth/pkg/identity"
	"github.com/stateloan/lms-auth/pkg/model"
	"github.com/stateloan/lms-auth/pkg/server"
	"github.com/stateloan/lms-auth/pkg/server/store"
)

// UserUpdateRequest is the body for a user update. Absent fields are
// left unchanged.
type UserUpdateRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Enabled  *bool   `json:"enabled"`
}

// UserRolesRequest is the body for a bulk role replace
type UserRolesRequest struct {
	RoleIDs []uint `json:"roleIds"`
}

// RegisterUsersEndpoints registers the user management endpoints.
// Reading and updating a single user is allowed for admins and the
// account owner; everything else is admin-only.
func RegisterUsersEndpoints(s *server.Server) {
	users := s.Stores.Users

	router := s.Router.PathPrefix("/api/users").Subrouter()
	router.Use(s.Middleware.Middleware)

	router.HandleFunc("", handleListUsers(users)).Methods("GET")
	router.HandleFunc("/{id:[0-9]+}", handleGetUser(users)).Methods("GET")
	router.HandleFunc("/{id:[0-9]+}", handleUpdateUser(users)).Methods("PUT")
	router.HandleFunc("/{id:[0-9]+}", handleDeleteUser(users)).Methods("DELETE")
	router.HandleFunc("/{id:[0-9]+}/roles", handleGetUserRoles(users)).Methods("GET")
	router.HandleFunc("/{id:[0-9]+}/roles", handleReplaceUserRoles(users)).Methods("PUT")
	router.HandleFunc("/{id:[0-9]+}/roles/{roleId:[0-9]+}", handleAddUserRole(users)).Methods("POST")
	router.HandleFunc("/{id:[0-9]+}/roles/{roleId:[0-9]+}", handleRemoveUserRole(users)).Methods("DELETE")
}

func handleListUsers(users store.UsersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireRole(w, r, adminRole); !ok {
			return
		}

		list, err := users.ListUsers()
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, list)
	}
}

func handleGetUser(users store.UsersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := idVar(r, "id")
		if !ok {
			respondWithError(w, http.StatusBadRequest, "Invalid user id")
			return
		}
		if _, ok := requireAdminOrSelf(w, r, userID); !ok {
			return
		}

		user, err := users.FindUserByIDWithRoles(userID)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, user)
	}
}

func handleUpdateUser(users store.UsersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := idVar(r, "id")
		if !ok {
			respondWithError(w, http.StatusBadRequest, "Invalid user id")
			return
		}
		id, ok := requireAdminOrSelf(w, r, userID)
		if !ok {
			return
		}
		var req UserUpdateRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}

		update := store.UserUpdate{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
		}
		// Only admins may enable or disable accounts.
		if id.HasRole(adminRole) {
			update.Enabled = req.Enabled
		}

		user, err := users.UpdateUser(userID, update)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, user)
	}
}

func handleDeleteUser(users store.UsersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireRole(w, r, adminRole); !ok {
			return
		}
		userID, ok := idVar(r, "id")
		if !ok {
			respondWithError(w, http.StatusBadRequest, "Invalid user id")
			return
		}

		if err := users.DeleteUser(userID); err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, MessageResponse{Message: "User deleted successfully!"})
	}
}

func handleGetUserRoles(users store.UsersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := idVar(r, "id")
		if !ok {
			respondWithError(w, http.StatusBadRequest, "Invalid user id")
			return
		}
		if _, ok := requireAdminOrSelf(w, r, userID); !ok {
			return
		}

		user, err := users.FindUserByIDWithRoles(userID)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, user.Roles)
	}
}

func handleReplaceUserRoles(users store.UsersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireRole(w, r, adminRole)
		if !ok {
			return
		}
		userID, ok := idVar(r, "id")
		if !ok {
			respondWithError(w, http.StatusBadRequest, "Invalid user id")
			return
		}
		var req UserRolesRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}

		user, err := users.ReplaceRoles(userID, req.RoleIDs)
		logUserRoleChange(id, r, user, "replace", err)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, user)
	}
}

func handleAddUserRole(users store.UsersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireRole(w, r, adminRole)
		if !ok {
			return
		}
		userID, ok := idVar(r, "id")
		if !ok {
			respondWithError(w, http.StatusBadRequest, "Invalid user id")
			return
		}
		roleID, ok := idVar(r, "roleId")
		if !ok {
			respondWithError(w, http.StatusBadRequest, "Invalid role id")
			return
		}

		user, err := users.AddRole(userID, roleID)
		logUserRoleChange(id, r, user, "grant", err)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, user)
	}
}

func handleRemoveUserRole(users store.UsersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireRole(w, r, adminRole)
		if !ok {
			return
		}
		userID, ok := idVar(r, "id")
		if !ok {
			respondWithError(w, http.StatusBadRequest, "Invalid user id")
			return
		}
		roleID, ok := idVar(r, "roleId")
		if !ok {
			respondWithError(w, http.StatusBadRequest, "Invalid role id")
			return
		}

		user, err := users.RemoveRole(userID, roleID)
		logUserRoleChange(id, r, user, "revoke", err)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, user)
	}
}

func logUserRoleChange(id *identity.Identity, r *http.Request, user *model.User, operation string, err error) {
	event := audit.RoleChangeEvent{
		Actor:     id.Username,
		ClientIP:  identity.ClientIP(r).String(),
		Operation: operation,
		Success:   err == nil,
	}
	if user != nil {
		event.Username = user.Username
		event.Roles = user.RoleNames()
	}
	if err != nil {
		event.ErrorMessage = err.Error()
	}
	audit.Log(event)
}
