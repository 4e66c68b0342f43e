// Package main provides lmsctl, the CLI for the State Loan Management
// System auth service.
//
// The service exposes the authentication and authorization REST API of
// the loan management system: user registration and login, JWT bearer
// tokens, and administration of users, roles and permissions.
//
// # Architecture
//
// The code is organized into several packages:
//
//   - pkg/server: HTTP server and routing
//   - pkg/server/endpoints: REST API endpoint handlers
//   - pkg/server/store: storage interfaces and their gorm implementation
//   - pkg/token: JWT issuing and parsing
//   - pkg/authz: authority resolution (roles and permissions)
//   - pkg/identity: authenticated request identity
//   - pkg/seed: initial data bootstrap
//   - pkg/model: database models
//   - pkg/db: database connection utilities
//   - pkg/audit: audit logging
//   - pkg/config: configuration management
//
// # Quick Start
//
//	# Run database migrations
//	lmsctl db migrate
//
//	# Seed the permission catalog, default roles and accounts
//	lmsctl seed load
//
//	# Start the server
//	export LMS_JWT_SECRET=changeme
//	lmsctl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - AUDIT_DATABASE_URL: optional PostgreSQL store for audit messages
//   - LMS_JWT_SECRET: secret used to sign bearer tokens
//   - LMS_TOKEN_TTL: bearer token lifetime in seconds (default: 86400)
//   - LMS_BIND_ADDRESS, LMS_PORT: server listen address
//   - LMS_LOG_LEVEL: log level (debug, info)
//   - LMS_SEED_FILE: YAML seed catalog overriding the built-in one
//   - LMS_CONFIG_PATH: directory holding lms.yml (default: /etc/lms)
package main
