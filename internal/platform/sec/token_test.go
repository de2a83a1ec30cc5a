// Copyright (c) 2026 Meridian Pay. All rights reserved.
// Author: platform@meridianpay.io

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianpay/portal/internal/platform/sec"
)

/*
TestGenerateSecureToken verifies token length and uniqueness across calls.
*/
func TestGenerateSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	second, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)

	// 32 entropy bytes encode to 64 hex characters
	assert.Len(t, first, 64)
	assert.Len(t, second, 64)
	assert.NotEqual(t, first, second)
}

/*
TestHashToken verifies the digest is deterministic and input-sensitive.
*/
func TestHashToken(t *testing.T) {
	digest := sec.HashToken("opaque-reset-token")

	assert.Len(t, digest, 64)
	assert.Equal(t, digest, sec.HashToken("opaque-reset-token"))
	assert.NotEqual(t, digest, sec.HashToken("opaque-reset-token2"))
}

/*
TestRole_Valid verifies recognition of the staff role set.
*/
func TestRole_Valid(t *testing.T) {
	tests := []struct {
		name    string
		role    sec.Role
		valid   bool
		isAdmin bool
	}{
		{name: "employee", role: sec.RoleEmployee, valid: true, isAdmin: false},
		{name: "admin", role: sec.RoleAdmin, valid: true, isAdmin: true},
		{name: "superadmin", role: sec.RoleSuperAdmin, valid: true, isAdmin: true},
		{name: "empty", role: sec.Role(""), valid: false, isAdmin: false},
		{name: "unknown", role: sec.Role("root"), valid: false, isAdmin: false},
		{name: "case sensitive", role: sec.Role("Admin"), valid: false, isAdmin: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.role.Valid())
			assert.Equal(t, tt.isAdmin, tt.role.IsAdmin())
		})
	}
}
