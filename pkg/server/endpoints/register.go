package endpoints

import (
	"github.com/stateloan/lms-auth/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterAuthEndpoints(srv)
	RegisterPermissionsEndpoints(srv)
	RegisterRolesEndpoints(srv)
	RegisterUsersEndpoints(srv)
	RegisterHealthEndpoints(srv)
}
