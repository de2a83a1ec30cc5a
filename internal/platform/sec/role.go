// Copyright (c) 2026 Meridian Pay. All rights reserved.
// Author: platform@meridianpay.io

package sec

// # Staff Roles

// Role represents the authorization level granted to a portal staff account.
//
// Customers are not staff and carry no role; their tokens are discriminated
// by [KindCustomer] instead.
type Role string

const (
	// Full system access, including creating other admins
	RoleSuperAdmin Role = "superadmin"

	// Can manage staff accounts and act on payments
	RoleAdmin Role = "admin"

	// Default role; can review, approve, and deny payments
	RoleEmployee Role = "employee"
)

// Valid reports whether the role is one of the recognized staff roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleEmployee:
		return true
	}
	return false
}

// IsAdmin reports whether the role grants administrative access.
//
// Both admin and superadmin pass the admin gate; superadmin exists so a
// seeded root account can never be deleted by an ordinary admin.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}
