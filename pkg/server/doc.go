// Package server provides the HTTP server for the loan management API.
//
// This package implements the core HTTP server that handles all REST
// API requests. It uses gorilla/mux for routing and provides middleware
// for bearer token authentication.
//
// # Server Setup
//
//	srv := server.NewServer(cfg, db, logger, stores, issuer)
//	endpoints.RegisterAll(srv)
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Components
//
// The Server struct holds:
//
//   - Router: HTTP request router
//   - DB: Database connection
//   - Stores: Permission, role, user and health storage
//   - Issuer: Bearer token minting and validation
//   - Middleware: Bearer token validation for protected routes
//
// # Endpoints
//
// API endpoints are registered via the endpoints subpackage:
//
//	endpoints.RegisterAll(srv)
//
// This registers the full API surface:
//
//   - /api/auth/* - Registration, login, logout, token introspection
//   - /api/permissions/* - Permission catalog management
//   - /api/roles/* - Role management and permission grants
//   - /api/users/* - User management and role grants
//   - /api/health - Service health
package server
