package audit

import (
	"fmt"
	"strings"
)

// AuthenticateEvent represents a login attempt audit event
type AuthenticateEvent struct {
	Username     string
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e AuthenticateEvent) MessageID() string {
	return "authn"
}

func (e AuthenticateEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s successfully authenticated", e.Username)
	}
	msg := fmt.Sprintf("%s failed to authenticate", e.Username)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e AuthenticateEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e AuthenticateEvent) Facility() int {
	return FacilityAuthPriv
}

func (e AuthenticateEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.Username,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "login",
			"result":    result,
		},
	}
}

// RegisterEvent represents an account registration audit event
type RegisterEvent struct {
	Username     string
	Email        string
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e RegisterEvent) MessageID() string {
	return "register"
}

func (e RegisterEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("registered account %s (%s)", e.Username, e.Email)
	}
	msg := fmt.Sprintf("failed to register account %s", e.Username)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e RegisterEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e RegisterEvent) Facility() int {
	return FacilityAuthPriv
}

func (e RegisterEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDSubject: {
			"user":  e.Username,
			"email": e.Email,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "register",
			"result":    result,
		},
	}
}

// RoleChangeEvent represents a change to a user's role set
type RoleChangeEvent struct {
	Actor        string
	ClientIP     string
	Username     string
	Operation    string // "grant", "revoke", "replace"
	Roles        []string
	Success      bool
	ErrorMessage string
}

func (e RoleChangeEvent) MessageID() string {
	return "role-change"
}

func (e RoleChangeEvent) Message() string {
	roles := strings.Join(e.Roles, ", ")
	if e.Success {
		switch e.Operation {
		case "grant":
			return fmt.Sprintf("%s granted role %s to %s", e.Actor, roles, e.Username)
		case "revoke":
			return fmt.Sprintf("%s revoked role %s from %s", e.Actor, roles, e.Username)
		default:
			return fmt.Sprintf("%s replaced roles of %s with [%s]", e.Actor, e.Username, roles)
		}
	}
	msg := fmt.Sprintf("%s failed to %s roles of %s", e.Actor, e.Operation, e.Username)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e RoleChangeEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e RoleChangeEvent) Facility() int {
	return FacilityAuthPriv
}

func (e RoleChangeEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.Actor,
		},
		SDIDSubject: {
			"user":  e.Username,
			"roles": strings.Join(e.Roles, ","),
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.Operation + "-roles",
			"result":    result,
		},
	}
}

// PermissionChangeEvent represents a change to a role's permission set
type PermissionChangeEvent struct {
	Actor        string
	ClientIP     string
	RoleName     string
	Operation    string // "grant", "revoke", "replace"
	Permissions  []string
	Success      bool
	ErrorMessage string
}

func (e PermissionChangeEvent) MessageID() string {
	return "permission-change"
}

func (e PermissionChangeEvent) Message() string {
	permissions := strings.Join(e.Permissions, ", ")
	if e.Success {
		switch e.Operation {
		case "grant":
			return fmt.Sprintf("%s granted permission %s to role %s", e.Actor, permissions, e.RoleName)
		case "revoke":
			return fmt.Sprintf("%s revoked permission %s from role %s", e.Actor, permissions, e.RoleName)
		default:
			return fmt.Sprintf("%s replaced permissions of role %s with [%s]", e.Actor, e.RoleName, permissions)
		}
	}
	msg := fmt.Sprintf("%s failed to %s permissions of role %s", e.Actor, e.Operation, e.RoleName)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e PermissionChangeEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e PermissionChangeEvent) Facility() int {
	return FacilityAuthPriv
}

func (e PermissionChangeEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.Actor,
		},
		SDIDSubject: {
			"role":        e.RoleName,
			"permissions": strings.Join(e.Permissions, ","),
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.Operation + "-permissions",
			"result":    result,
		},
	}
}
