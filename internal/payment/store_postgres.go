// Copyright (c) 2026 Meridian Pay. All rights reserved.
// Author: platform@meridianpay.io

package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridianpay/portal/internal/platform/dberr"
)

// # Payment Repository

// PostgresRepository implements the [Repository] interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the payment [Repository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const paymentColumns = `
	id, customerid, amount, currency, provider,
	payeename, payeeaccountnumber, payeebank, payeecountry, swiftcode,
	reference, status, decidedby, decidedat, createdat, updatedat`

func scanPayment(row interface{ Scan(dest ...any) error }) (*Payment, error) {
	entity := &Payment{}
	var decidedBy *string
	err := row.Scan(
		&entity.ID,
		&entity.CustomerID,
		&entity.Amount,
		&entity.Currency,
		&entity.Provider,
		&entity.PayeeName,
		&entity.PayeeAccountNumber,
		&entity.PayeeBank,
		&entity.PayeeCountry,
		&entity.SwiftCode,
		&entity.Reference,
		&entity.Status,
		&decidedBy,
		&entity.DecidedAt,
		&entity.CreatedAt,
		&entity.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if decidedBy != nil {
		entity.DecidedBy = *decidedBy
	}
	return entity, nil
}

/*
Create persists a new payment request into the portal.payment table.

Parameters:
  - context: context.Context
  - payment: *Payment (Entity to persist)

Returns:
  - error: apperr.Conflict on duplicate reference, or connectivity errors
*/
func (repository *PostgresRepository) Create(context context.Context, payment *Payment) error {
	const query = `
		INSERT INTO portal.payment (
			id, customerid, amount, currency, provider,
			payeename, payeeaccountnumber, payeebank, payeecountry, swiftcode,
			reference, status, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	now := time.Now()
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = now
	}
	payment.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		payment.ID,
		payment.CustomerID,
		payment.Amount,
		payment.Currency,
		payment.Provider,
		payment.PayeeName,
		payment.PayeeAccountNumber,
		payment.PayeeBank,
		payment.PayeeCountry,
		payment.SwiftCode,
		payment.Reference,
		payment.Status,
		payment.CreatedAt,
		payment.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "A payment with this reference already exists")
	}

	return nil
}

/*
FindByID retrieves a payment by its unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *Payment: Hydrated entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Payment, error) {
	const query = `SELECT ` + paymentColumns + ` FROM portal.payment WHERE id = $1`

	entity, err := scanPayment(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, fmt.Errorf("postgres_payment_repo_find_by_id_failed: %w", dberr.Wrap(err, ""))
	}
	return entity, nil
}

/*
ListByCustomer retrieves all payments captured by one customer, newest first.

Parameters:
  - context: context.Context
  - customerID: string

Returns:
  - []*Payment: The customer's history
  - error: Execution errors
*/
func (repository *PostgresRepository) ListByCustomer(context context.Context, customerID string) ([]*Payment, error) {
	const query = `SELECT ` + paymentColumns + `
		FROM portal.payment WHERE customerid = $1 ORDER BY createdat DESC`

	return repository.queryMany(context, query, customerID)
}

/*
ListByStatus retrieves all payments in a given lifecycle state.

Description: Pending rows come back oldest first so the review queue is
first-in first-out; terminal states come back newest first.

Parameters:
  - context: context.Context
  - status: Status

Returns:
  - []*Payment: Matching payments
  - error: Execution errors
*/
func (repository *PostgresRepository) ListByStatus(context context.Context, status Status) ([]*Payment, error) {
	query := `SELECT ` + paymentColumns + `
		FROM portal.payment WHERE status = $1 ORDER BY createdat DESC`
	if status == StatusPending {
		query = `SELECT ` + paymentColumns + `
			FROM portal.payment WHERE status = $1 ORDER BY createdat ASC`
	}

	return repository.queryMany(context, query, string(status))
}

/*
ListDecided retrieves all approved and denied payments, newest decision first.

Parameters:
  - context: context.Context

Returns:
  - []*Payment: Decision history
  - error: Execution errors
*/
func (repository *PostgresRepository) ListDecided(context context.Context) ([]*Payment, error) {
	const query = `SELECT ` + paymentColumns + `
		FROM portal.payment WHERE status IN ($1, $2) ORDER BY decidedat DESC`

	return repository.queryMany(context, query, string(StatusApproved), string(StatusDenied))
}

/*
Decide atomically transitions a pending payment to a terminal status.

Description: The WHERE clause guards the state machine: a row that is no
longer pending is left untouched and the caller is told via the bool.

Parameters:
  - context: context.Context
  - paymentID: string
  - status: Status
  - decidedBy: string
  - decidedAt: time.Time

Returns:
  - bool: Whether the transition fired
  - error: Execution errors
*/
func (repository *PostgresRepository) Decide(context context.Context, paymentID string, status Status, decidedBy string, decidedAt time.Time) (bool, error) {
	const query = `
		UPDATE portal.payment
		SET status = $2, decidedby = $3, decidedat = $4, updatedat = $4
		WHERE id = $1 AND status = $5`

	tag, err := repository.pool.Exec(context, query,
		paymentID, status, decidedBy, decidedAt, StatusPending)
	if err != nil {
		return false, fmt.Errorf("postgres_payment_repo_decide_failed: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// queryMany runs a multi-row payment query and scans the results.
func (repository *PostgresRepository) queryMany(context context.Context, query string, args ...any) ([]*Payment, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres_payment_repo_query_failed: %w", err)
	}
	defer rows.Close()

	var payments []*Payment
	for rows.Next() {
		entity, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_payment_repo_scan_failed: %w", err)
		}
		payments = append(payments, entity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_payment_repo_rows_failed: %w", err)
	}

	return payments, nil
}
