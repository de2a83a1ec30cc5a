// Copyright (c) 2026 Meridian Pay. All rights reserved.
// Author: platform@meridianpay.io

package customer

import (
	"context"
	"time"
)

// # Customer Data Access

// Repository defines the data access contract for customer accounts.
type Repository interface {

	/*
		FindByID returns the customer with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Customer: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Customer, error)

	/*
		FindByUsername returns the customer with the given canonical username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *Customer: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*Customer, error)

	/*
		FindByAccountNumber returns the customer holding the given account number.

		Parameters:
		  - context: context.Context
		  - accountNumber: string

		Returns:
		  - *Customer: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByAccountNumber(context context.Context, accountNumber string) (*Customer, error)

	/*
		FindByIDNumber returns the customer registered under the given government ID.

		Parameters:
		  - context: context.Context
		  - idNumber: string

		Returns:
		  - *Customer: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByIDNumber(context context.Context, idNumber string) (*Customer, error)

	/*
		Create persists a brand-new customer account to the storage.

		Parameters:
		  - context: context.Context
		  - customer: *Customer

		Returns:
		  - error: Persistence failures (unique-constraint violations mapped to Conflict)
	*/
	Create(context context.Context, customer *Customer) error

	/*
		UpdatePassword replaces only the customer's password hash.

		Parameters:
		  - context: context.Context
		  - customerID: string
		  - newHash: string

		Returns:
		  - error: Persistence failures
	*/
	UpdatePassword(context context.Context, customerID, newHash string) error
}

// # Volatile Data Access

// ResetTokenRepository defines the contract for storing volatile password
// reset tokens. Tokens are stored by hash so a storage dump never reveals a
// usable token.
type ResetTokenRepository interface {

	/*
		Set stores a reset token hash associated with a customerID for a limited duration.

		Parameters:
		  - context: context.Context
		  - tokenHash: string
		  - customerID: string
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Set(context context.Context, tokenHash string, customerID string, ttl time.Duration) error

	/*
		Get retrieves the customerID associated with a given reset token hash.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - string: CustomerID
		  - error: Retrieval failures
	*/
	Get(context context.Context, tokenHash string) (string, error)

	/*
		Delete removes a reset token after successful use.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, tokenHash string) error
}
