// Copyright (c) 2026 Meridian Pay. All rights reserved.
// Author: platform@meridianpay.io

/*
Package payment implements the international payment capture and approval
workflow.

Customers submit payment requests through the portal; staff review the
pending queue and approve or deny each request. The portal only records
requests and decisions; it never executes transfers.

# Architecture

  - Entity: Payment with a three-state lifecycle (pending → approved|denied).
  - Audit: Every decision records the acting employee and the decision time.
  - Storage: Abstracted behind [Repository], implemented on PostgreSQL.
*/
package payment

import "time"

// # Lifecycle

// Status is the review state of a payment request.
type Status string

const (
	// StatusPending marks a freshly captured, undecided request.
	StatusPending Status = "pending"

	// StatusApproved marks a request cleared by staff for forwarding.
	StatusApproved Status = "approved"

	// StatusDenied marks a request rejected by staff.
	StatusDenied Status = "denied"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusDenied:
		return true
	}
	return false
}

// Decided reports whether the status is terminal.
func (s Status) Decided() bool {
	return s == StatusApproved || s == StatusDenied
}

// # Domain Entities

// Payment represents one captured international payment request.
type Payment struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`

	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Provider string  `json:"provider"`

	PayeeName          string `json:"payee_name"`
	PayeeAccountNumber string `json:"payee_account_number"`
	PayeeBank          string `json:"payee_bank"`
	PayeeCountry       string `json:"payee_country"`
	SwiftCode          string `json:"swift_code"`

	// Reference is the unique customer-visible identifier, generated when
	// the customer does not supply one.
	Reference string `json:"reference"`

	Status Status `json:"status"`

	// DecidedBy is the employee who approved or denied the request; empty
	// while pending.
	DecidedBy string     `json:"decided_by,omitempty"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the payment domain.
const (
	FieldAmount             = "amount"
	FieldCurrency           = "currency"
	FieldProvider           = "provider"
	FieldPayeeName          = "payee_name"
	FieldPayeeAccountNumber = "payee_account_number"
	FieldPayeeBank          = "payee_bank"
	FieldPayeeCountry       = "payee_country"
	FieldSwiftCode          = "swift_code"
	FieldReference          = "reference"
	FieldPaymentID          = "id"
	FieldPayment            = "payment"
	FieldPayments           = "payments"
	FieldMessage            = "message"
)
