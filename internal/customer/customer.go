// Copyright (c) 2026 Meridian Pay. All rights reserved.
// Author: platform@meridianpay.io

/*
Package customer implements the customer identity and payment-portal account
lifecycle.

It defines the core domain entity and the logic for registration, credential
authentication, token revocation on logout, and password recovery.

# Architecture

This layer is the "Truth" for customer accounts. The entity has no transport
or storage dependencies; storage is abstracted behind repository interfaces
and tokens behind small issuer/revoker contracts.
*/
package customer

import "time"

// # Domain Entities

// Customer represents a registered account holder of the Meridian portal.
type Customer struct {
	ID            string    `json:"id"`
	FullName      string    `json:"full_name"`
	IDNumber      string    `json:"-"` // Government ID. Never serialized to clients.
	AccountNumber string    `json:"account_number"`
	Username      string    `json:"username"`
	PasswordHash  string    `json:"-"` // Explicitly omitted from JSON for security.
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the customer domain.
const (
	FieldFullName        = "full_name"
	FieldIDNumber        = "id_number"
	FieldAccountNumber   = "account_number"
	FieldUsername        = "username"
	FieldPassword        = "password"
	FieldToken           = "token"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldCustomer        = "customer"
	FieldExpiresIn       = "expires_in"
	FieldMessage         = "message"
)
