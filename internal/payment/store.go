// Copyright (c) 2026 Meridian Pay. All rights reserved.
// Author: platform@meridianpay.io

package payment

import (
	"context"
	"time"
)

// # Payment Data Access

// Repository defines the data access contract for payment requests.
type Repository interface {

	/*
		Create persists a freshly captured payment request.

		Parameters:
		  - context: context.Context
		  - payment: *Payment

		Returns:
		  - error: Persistence failures (duplicate reference mapped to Conflict)
	*/
	Create(context context.Context, payment *Payment) error

	/*
		FindByID returns the payment with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Payment: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Payment, error)

	/*
		ListByCustomer returns all payments captured by one customer,
		newest first.

		Parameters:
		  - context: context.Context
		  - customerID: string

		Returns:
		  - []*Payment: The customer's payment history
		  - error: Database retrieval failures
	*/
	ListByCustomer(context context.Context, customerID string) ([]*Payment, error)

	/*
		ListByStatus returns all payments in the given state, oldest first
		for pending (review queue order) and newest first otherwise.

		Parameters:
		  - context: context.Context
		  - status: Status

		Returns:
		  - []*Payment: Matching payments
		  - error: Database retrieval failures
	*/
	ListByStatus(context context.Context, status Status) ([]*Payment, error)

	/*
		ListDecided returns all approved and denied payments, newest
		decision first.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*Payment: Decision history
		  - error: Database retrieval failures
	*/
	ListDecided(context context.Context) ([]*Payment, error)

	/*
		Decide atomically moves a pending payment to a terminal status and
		records the acting employee. The transition only fires while the row
		is still pending.

		Parameters:
		  - context: context.Context
		  - paymentID: string
		  - status: Status (approved or denied)
		  - decidedBy: string (employee ID)
		  - decidedAt: time.Time

		Returns:
		  - bool: Whether the row transitioned (false = already decided or absent)
		  - error: Execution errors
	*/
	Decide(context context.Context, paymentID string, status Status, decidedBy string, decidedAt time.Time) (bool, error)
}
