package endpoints

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/stateloan/lms-auth/pkg/server"
	"github.com/stateloan/lms-auth/pkg/server/store"
)

// PermissionRequest is the body for permission create and update
type PermissionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RegisterPermissionsEndpoints registers the permission catalog
// endpoints. All of them are admin-only.
func RegisterPermissionsEndpoints(s *server.Server) {
	permissions := s.Stores.Permissions

	router := s.Router.PathPrefix("/api/permissions").Subrouter()
	router.Use(s.Middleware.Middleware)

	router.HandleFunc("", handleListPermissions(permissions)).Methods("GET")
	router.HandleFunc("", handleCreatePermission(permissions)).Methods("POST")
	router.HandleFunc("/resources", handleListResources(permissions)).Methods("GET")
	router.HandleFunc("/actions", handleListActions(permissions)).Methods("GET")
	router.HandleFunc("/by-resource/{resource}", handlePermissionsByResource(permissions)).Methods("GET")
	router.HandleFunc("/by-action/{action}", handlePermissionsByAction(permissions)).Methods("GET")
	router.HandleFunc("/name/{name}", handleGetPermissionByName(permissions)).Methods("GET")
	router.HandleFunc("/{id:[0-9]+}", handleGetPermission(permissions)).Methods("GET")
	router.HandleFunc("/{id:[0-9]+}", handleUpdatePermission(permissions)).Methods("PUT")
	router.HandleFunc("/{id:[0-9]+}", handleDeletePermission(permissions)).Methods("DELETE")
}

func handleListPermissions(permissions store.PermissionsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireRole(w, r, adminRole); !ok {
			return
		}

		list, err := permissions.ListPermissions()
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, list)
	}
}

func handleGetPermission(permissions store.PermissionsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireRole(w, r, adminRole); !ok {
			return
		}
		id, ok := idVar(r, "id")
		if !ok {
			respondWithError(w, http.StatusBadRequest, "Invalid permission id")
			return
		}

		permission, err := permissions.FindPermissionByID(id)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, permission)
	}
}

func handleGetPermissionByName(permissions store.PermissionsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireRole(w, r, adminRole); !ok {
			return
		}

		permission, err := permissions.FindPermissionByName(mux.Vars(r)["name"])
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, permission)
	}
}

func handlePermissionsByResource(permissions store.PermissionsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireRole(w, r, adminRole); !ok {
			return
		}

		list, err := permissions.FindPermissionsByResource(mux.Vars(r)["resource"])
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, list)
	}
}

func handlePermissionsByAction(permissions store.PermissionsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireRole(w, r, adminRole); !ok {
			return
		}

		list, err := permissions.FindPermissionsByAction(mux.Vars(r)["action"])
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, list)
	}
}

func handleListResources(permissions store.PermissionsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireRole(w, r, adminRole); !ok {
			return
		}

		resources, err := permissions.ListResources()
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, resources)
	}
}

func handleListActions(permissions store.PermissionsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireRole(w, r, adminRole); !ok {
			return
		}

		actions, err := permissions.ListActions()
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, actions)
	}
}

func handleCreatePermission(permissions store.PermissionsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireRole(w, r, adminRole); !ok {
			return
		}
		var req PermissionRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}

		permission, err := permissions.CreatePermission(req.Name, req.Description)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusCreated, permission)
	}
}

func handleUpdatePermission(permissions store.PermissionsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireRole(w, r, adminRole); !ok {
			return
		}
		id, ok := idVar(r, "id")
		if !ok {
			respondWithError(w, http.StatusBadRequest, "Invalid permission id")
			return
		}
		var req PermissionRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}

		permission, err := permissions.UpdatePermission(id, req.Name, req.Description)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, permission)
	}
}

func handleDeletePermission(permissions store.PermissionsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireRole(w, r, adminRole); !ok {
			return
		}
		id, ok := idVar(r, "id")
		if !ok {
			respondWithError(w, http.StatusBadRequest, "Invalid permission id")
			return
		}

		if err := permissions.DeletePermission(id); err != nil {
			respondWithStoreError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, MessageResponse{Message: "Permission deleted successfully!"})
	}
}
