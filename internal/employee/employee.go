// Copyright (c) 2026 Meridian Pay. All rights reserved.
// Author: platform@meridianpay.io

/*
Package employee implements staff identity and administration.

It covers the staff portal login, staff token revocation, and the
admin-gated management of employee accounts (list, create, delete).

# Architecture

Mirrors the customer domain: entity + repository contract + service +
thin HTTP layer. Role authority lives in the token claims; this package
only decides what each role may do to staff records.
*/
package employee

import (
	"time"

	"github.com/meridianpay/portal/internal/platform/sec"
)

// # Domain Entities

// Employee represents a staff member of the Meridian portal back office.
type Employee struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.Role  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the employee domain.
const (
	FieldFullName  = "full_name"
	FieldUsername  = "username"
	FieldPassword  = "password"
	FieldRole      = "role"
	FieldToken     = "token"
	FieldEmployee  = "employee"
	FieldEmployees = "employees"
	FieldExpiresIn = "expires_in"
	FieldMessage   = "message"
	FieldStaffID   = "id"
)
