// Package seed bootstraps the permission catalog, the default roles and
// the initial accounts. Seeding is idempotent: anything that already
// exists is left untouched, so it is safe to run on every startup.
package seed

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// PermissionSpec describes a permission to seed. An empty description
// is derived from the name.
type PermissionSpec struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// RoleSpec describes a role and its permission grants. AllPermissions
// grants every permission in the catalog.
type RoleSpec struct {
	Name           string   `yaml:"name"`
	Description    string   `yaml:"description"`
	AllPermissions bool     `yaml:"all_permissions"`
	Permissions    []string `yaml:"permissions"`
}

// UserSpec describes an initial account and its role grants.
type UserSpec struct {
	Username string   `yaml:"username"`
	Email    string   `yaml:"email"`
	Password string   `yaml:"password"`
	Roles    []string `yaml:"roles"`
}

// Catalog is the full set of seed data.
type Catalog struct {
	Permissions []PermissionSpec `yaml:"permissions"`
	Roles       []RoleSpec       `yaml:"roles"`
	Users       []UserSpec       `yaml:"users"`
}

// LoadCatalog reads a catalog from a YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	return &catalog, nil
}

// DefaultCatalog returns the built-in seed data: the full permission
// catalog, the ADMIN/USER/LOAN_OFFICER/MANAGER roles and the initial
// accounts.
func DefaultCatalog() *Catalog {
	permissionNames := []string{
		// User management permissions
		"USER:CREATE", "USER:READ", "USER:UPDATE", "USER:DELETE",
		// Role management permissions
		"ROLE:CREATE", "ROLE:READ", "ROLE:UPDATE", "ROLE:DELETE",
		// Permission management permissions
		"PERMISSION:CREATE", "PERMISSION:READ", "PERMISSION:UPDATE", "PERMISSION:DELETE",
		// Loan management permissions
		"LOAN:CREATE", "LOAN:READ", "LOAN:UPDATE", "LOAN:DELETE",
		"LOAN:APPROVE", "LOAN:REJECT", "LOAN:PROCESS",
		// Application management permissions
		"APPLICATION:CREATE", "APPLICATION:READ", "APPLICATION:UPDATE", "APPLICATION:DELETE",
		"APPLICATION:SUBMIT", "APPLICATION:REVIEW", "APPLICATION:APPROVE",
		// Report permissions
		"REPORT:READ", "REPORT:GENERATE", "REPORT:EXPORT",
		// System administration permissions
		"SYSTEM:ADMIN", "SYSTEM:CONFIG", "SYSTEM:AUDIT",
	}

	permissions := make([]PermissionSpec, 0, len(permissionNames))
	for _, name := range permissionNames {
		permissions = append(permissions, PermissionSpec{Name: name})
	}

	return &Catalog{
		Permissions: permissions,
		Roles: []RoleSpec{
			{
				Name:           "ADMIN",
				Description:    "System Administrator with full access",
				AllPermissions: true,
			},
			{
				Name:        "USER",
				Description: "Regular user with limited access",
				Permissions: []string{
					"USER:READ", "APPLICATION:CREATE", "APPLICATION:READ",
					"APPLICATION:UPDATE", "LOAN:READ",
				},
			},
			{
				Name:        "LOAN_OFFICER",
				Description: "Loan Officer with loan processing capabilities",
				Permissions: []string{
					"USER:READ", "LOAN:CREATE", "LOAN:READ", "LOAN:UPDATE", "LOAN:PROCESS",
					"APPLICATION:READ", "APPLICATION:UPDATE", "APPLICATION:REVIEW",
					"REPORT:READ", "REPORT:GENERATE",
				},
			},
			{
				Name:        "MANAGER",
				Description: "Manager with approval and oversight capabilities",
				Permissions: []string{
					"USER:READ", "LOAN:READ", "LOAN:APPROVE", "LOAN:REJECT",
					"APPLICATION:READ", "APPLICATION:APPROVE", "REPORT:READ",
					"REPORT:GENERATE", "REPORT:EXPORT",
				},
			},
		},
		Users: []UserSpec{
			{Username: "admin", Email: "admin@stateloan.com", Password: "admin123", Roles: []string{"ADMIN"}},
			{Username: "loanofficer", Email: "officer@stateloan.com", Password: "officer123", Roles: []string{"LOAN_OFFICER"}},
			{Username: "manager", Email: "manager@stateloan.com", Password: "manager123", Roles: []string{"MANAGER"}},
		},
	}
}

// DescriptionFor derives a human-readable description from a
// RESOURCE:ACTION permission name.
func DescriptionFor(permissionName string) string {
	parts := strings.SplitN(permissionName, ":", 2)
	if len(parts) != 2 {
		return "Permission " + permissionName
	}
	resource := strings.ToLower(parts[0])
	action := strings.ToLower(parts[1])

	var phrase string
	switch action {
	case "create", "read", "update", "delete", "approve", "reject",
		"process", "submit", "review", "generate", "export":
		phrase = action + " " + resource + " records"
	case "admin":
		phrase = "administer " + resource
	case "config":
		phrase = "configure " + resource
	case "audit":
		phrase = "audit " + resource
	default:
		phrase = "perform " + action + " action on " + resource
	}
	return "Permission to " + phrase
}
