package audit

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger()
	logger.SetWriter(&buf)

	event := AuthenticateEvent{
		Username: "admin",
		ClientIP: "192.168.1.1",
		Success:  true,
	}

	logger.Log(event)

	output := buf.String()

	// Check RFC5424 format components
	if !strings.Contains(output, "lms") {
		t.Error("Expected app name 'lms' in output")
	}
	if !strings.Contains(output, "authn") {
		t.Error("Expected message ID 'authn' in output")
	}
	if !strings.Contains(output, "admin") {
		t.Error("Expected username in output")
	}
	if !strings.Contains(output, "192.168.1.1") {
		t.Error("Expected client IP in output")
	}
	if !strings.Contains(output, "successfully authenticated") {
		t.Error("Expected success message in output")
	}
}

func TestAuthenticateEvent(t *testing.T) {
	tests := []struct {
		name    string
		event   AuthenticateEvent
		wantMsg string
		wantSev Severity
	}{
		{
			name: "successful authentication",
			event: AuthenticateEvent{
				Username: "admin",
				ClientIP: "10.0.0.1",
				Success:  true,
			},
			wantMsg: "admin successfully authenticated",
			wantSev: SeverityInfo,
		},
		{
			name: "failed authentication",
			event: AuthenticateEvent{
				Username:     "admin",
				ClientIP:     "10.0.0.1",
				Success:      false,
				ErrorMessage: "Invalid username or password",
			},
			wantMsg: "admin failed to authenticate: Invalid username or password",
			wantSev: SeverityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.Message(); got != tt.wantMsg {
				t.Errorf("Message() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.event.Severity(); got != tt.wantSev {
				t.Errorf("Severity() = %v, want %v", got, tt.wantSev)
			}
			if got := tt.event.Facility(); got != FacilityAuthPriv {
				t.Errorf("Facility() = %v, want %v", got, FacilityAuthPriv)
			}
		})
	}
}

func TestRoleChangeEventMessages(t *testing.T) {
	grant := RoleChangeEvent{
		Actor:     "admin",
		Username:  "loanofficer",
		Operation: "grant",
		Roles:     []string{"MANAGER"},
		Success:   true,
	}
	if got := grant.Message(); got != "admin granted role MANAGER to loanofficer" {
		t.Errorf("Message() = %q", got)
	}

	replace := RoleChangeEvent{
		Actor:     "admin",
		Username:  "loanofficer",
		Operation: "replace",
		Roles:     []string{"USER", "LOAN_OFFICER"},
		Success:   true,
	}
	if got := replace.Message(); got != "admin replaced roles of loanofficer with [USER, LOAN_OFFICER]" {
		t.Errorf("Message() = %q", got)
	}

	failed := RoleChangeEvent{
		Actor:        "admin",
		Username:     "ghost",
		Operation:    "replace",
		Roles:        []string{"USER"},
		Success:      false,
		ErrorMessage: "Some roles were not found",
	}
	if got := failed.Message(); got != "admin failed to replace roles of ghost: Some roles were not found" {
		t.Errorf("Message() = %q", got)
	}
	if failed.Severity() != SeverityWarning {
		t.Errorf("Severity() = %v, want warning", failed.Severity())
	}
}

func TestPermissionChangeEventStructuredData(t *testing.T) {
	event := PermissionChangeEvent{
		Actor:       "admin",
		ClientIP:    "10.0.0.1",
		RoleName:    "LOAN_OFFICER",
		Operation:   "grant",
		Permissions: []string{"LOAN:APPROVE"},
		Success:     true,
	}

	sd := event.StructuredData()
	if sd[SDIDSubject]["role"] != "LOAN_OFFICER" {
		t.Errorf("subject role = %q", sd[SDIDSubject]["role"])
	}
	if sd[SDIDAction]["operation"] != "grant-permissions" {
		t.Errorf("action operation = %q", sd[SDIDAction]["operation"])
	}
	if sd[SDIDAction]["result"] != "success" {
		t.Errorf("action result = %q", sd[SDIDAction]["result"])
	}
}

func TestEscapeSDValue(t *testing.T) {
	got := escapeSDValue(`va"lue\with]chars`)
	want := `"va\"lue\\with\]chars"`
	if got != want {
		t.Errorf("escapeSDValue() = %s, want %s", got, want)
	}
}
