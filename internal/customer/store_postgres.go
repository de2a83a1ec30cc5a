// Copyright (c) 2026 Meridian Pay. All rights reserved.
// Author: platform@meridianpay.io

package customer

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridianpay/portal/internal/platform/dberr"
)

// # Customer Repository

// PostgresRepository implements the [Repository] interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the customer [Repository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const customerColumns = `
	id, fullname, idnumber, accountnumber, username, passwordhash, createdat, updatedat`

func scanCustomer(row interface{ Scan(dest ...any) error }) (*Customer, error) {
	entity := &Customer{}
	err := row.Scan(
		&entity.ID,
		&entity.FullName,
		&entity.IDNumber,
		&entity.AccountNumber,
		&entity.Username,
		&entity.PasswordHash,
		&entity.CreatedAt,
		&entity.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return entity, nil
}

/*
Create persists a new customer record into the portal.customer table.

Description: Deep-persists account metadata, initializing timestamps when
absent. Unique-constraint violations surface as client-safe Conflict errors.

Parameters:
  - context: context.Context
  - customer: *Customer (Entity to persist)

Returns:
  - error: apperr.Conflict on duplicate identity, or connectivity errors
*/
func (repository *PostgresRepository) Create(context context.Context, customer *Customer) error {
	const query = `
		INSERT INTO portal.customer (
			id, fullname, idnumber, accountnumber, username, passwordhash, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	now := time.Now()
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = now
	}
	customer.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		customer.ID,
		customer.FullName,
		customer.IDNumber,
		customer.AccountNumber,
		customer.Username,
		customer.PasswordHash,
		customer.CreatedAt,
		customer.UpdatedAt,
	)

	if err != nil {
		// The service pre-checks uniqueness, but concurrent registrations
		// can still race; the constraint is the last line of defense.
		return dberr.Wrap(err, "An account with these details already exists")
	}

	return nil
}

/*
FindByID retrieves a customer record by its unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *Customer: Hydrated account entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM portal.customer WHERE id = $1`

	entity, err := scanCustomer(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, fmt.Errorf("postgres_customer_repo_find_by_id_failed: %w", dberr.Wrap(err, ""))
	}
	return entity, nil
}

/*
FindByUsername retrieves a customer record by canonical username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *Customer: Hydrated account entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) FindByUsername(context context.Context, username string) (*Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM portal.customer WHERE username = $1`

	entity, err := scanCustomer(repository.pool.QueryRow(context, query, username))
	if err != nil {
		return nil, fmt.Errorf("postgres_customer_repo_find_by_username_failed: %w", dberr.Wrap(err, ""))
	}
	return entity, nil
}

/*
FindByAccountNumber retrieves a customer record by account number.

Parameters:
  - context: context.Context
  - accountNumber: string

Returns:
  - *Customer: Hydrated account entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) FindByAccountNumber(context context.Context, accountNumber string) (*Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM portal.customer WHERE accountnumber = $1`

	entity, err := scanCustomer(repository.pool.QueryRow(context, query, accountNumber))
	if err != nil {
		return nil, fmt.Errorf("postgres_customer_repo_find_by_account_failed: %w", dberr.Wrap(err, ""))
	}
	return entity, nil
}

/*
FindByIDNumber retrieves a customer record by government ID number.

Parameters:
  - context: context.Context
  - idNumber: string

Returns:
  - *Customer: Hydrated account entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) FindByIDNumber(context context.Context, idNumber string) (*Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM portal.customer WHERE idnumber = $1`

	entity, err := scanCustomer(repository.pool.QueryRow(context, query, idNumber))
	if err != nil {
		return nil, fmt.Errorf("postgres_customer_repo_find_by_idnumber_failed: %w", dberr.Wrap(err, ""))
	}
	return entity, nil
}

/*
UpdatePassword updates only the password hash for a specific customer.

Parameters:
  - context: context.Context
  - customerID: string
  - newHash: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresRepository) UpdatePassword(context context.Context, customerID, newHash string) error {
	const query = `
		UPDATE portal.customer
		SET passwordhash = $2, updatedat = $3
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, customerID, newHash, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_customer_repo_update_password_failed: %w", err)
	}

	return nil
}
