package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPermissionName(t *testing.T) {
	valid := []string{
		"LOAN:CREATE",
		"USER:READ",
		"SYSTEM:ADMIN",
		"LOAN_OFFICER:READ",
		"REPORT:GENERATE_ALL",
	}
	for _, name := range valid {
		assert.True(t, ValidPermissionName(name), name)
	}

	invalid := []string{
		"",
		"LOAN",
		"LOAN:",
		":CREATE",
		"loan:create",
		"LOAN:CREATE:NOW",
		"LOAN CREATE",
		"LOAN-1:CREATE",
	}
	for _, name := range invalid {
		assert.False(t, ValidPermissionName(name), name)
	}
}

func TestPermissionSegments(t *testing.T) {
	p := Permission{Name: "LOAN:APPROVE"}
	assert.Equal(t, "LOAN", p.Resource())
	assert.Equal(t, "APPROVE", p.Action())

	bare := Permission{Name: "LOAN"}
	assert.Equal(t, "LOAN", bare.Resource())
	assert.Equal(t, "", bare.Action())
}
