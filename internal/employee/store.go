// Copyright (c) 2026 Meridian Pay. All rights reserved.
// Author: platform@meridianpay.io

package employee

import "context"

// # Staff Data Access

// Repository defines the data access contract for staff accounts.
type Repository interface {

	/*
		FindByID returns the staff member with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Employee: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Employee, error)

	/*
		FindByUsername returns the staff member with the given canonical username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *Employee: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*Employee, error)

	/*
		List returns all staff accounts ordered by creation time.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*Employee: All staff entities
		  - error: Database retrieval failures
	*/
	List(context context.Context) ([]*Employee, error)

	/*
		Create persists a brand-new staff account to the storage.

		Parameters:
		  - context: context.Context
		  - employee: *Employee

		Returns:
		  - error: Persistence failures (unique-constraint violations mapped to Conflict)
	*/
	Create(context context.Context, employee *Employee) error

	/*
		Delete permanently removes a staff account by ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound when no row matches, or execution errors
	*/
	Delete(context context.Context, id string) error
}
