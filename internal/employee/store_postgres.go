// Copyright (c) 2026 Meridian Pay. All rights reserved.
// Author: platform@meridianpay.io

package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridianpay/portal/internal/platform/apperr"
	"github.com/meridianpay/portal/internal/platform/dberr"
)

// # Staff Repository

// PostgresRepository implements the [Repository] interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the staff [Repository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const employeeColumns = `
	id, fullname, username, passwordhash, role, createdat, updatedat`

func scanEmployee(row interface{ Scan(dest ...any) error }) (*Employee, error) {
	entity := &Employee{}
	err := row.Scan(
		&entity.ID,
		&entity.FullName,
		&entity.Username,
		&entity.PasswordHash,
		&entity.Role,
		&entity.CreatedAt,
		&entity.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return entity, nil
}

/*
Create persists a new staff record into the portal.employee table.

Parameters:
  - context: context.Context
  - employee: *Employee (Entity to persist)

Returns:
  - error: apperr.Conflict on duplicate username, or connectivity errors
*/
func (repository *PostgresRepository) Create(context context.Context, employee *Employee) error {
	const query = `
		INSERT INTO portal.employee (
			id, fullname, username, passwordhash, role, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	now := time.Now()
	if employee.CreatedAt.IsZero() {
		employee.CreatedAt = now
	}
	employee.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		employee.ID,
		employee.FullName,
		employee.Username,
		employee.PasswordHash,
		employee.Role,
		employee.CreatedAt,
		employee.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "A staff account with this username already exists")
	}

	return nil
}

/*
FindByID retrieves a staff record by its unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *Employee: Hydrated staff entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Employee, error) {
	const query = `SELECT ` + employeeColumns + ` FROM portal.employee WHERE id = $1`

	entity, err := scanEmployee(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, fmt.Errorf("postgres_employee_repo_find_by_id_failed: %w", dberr.Wrap(err, ""))
	}
	return entity, nil
}

/*
FindByUsername retrieves a staff record by canonical username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *Employee: Hydrated staff entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) FindByUsername(context context.Context, username string) (*Employee, error) {
	const query = `SELECT ` + employeeColumns + ` FROM portal.employee WHERE username = $1`

	entity, err := scanEmployee(repository.pool.QueryRow(context, query, username))
	if err != nil {
		return nil, fmt.Errorf("postgres_employee_repo_find_by_username_failed: %w", dberr.Wrap(err, ""))
	}
	return entity, nil
}

/*
List returns every staff account, oldest first.

Parameters:
  - context: context.Context

Returns:
  - []*Employee: All staff entities
  - error: Execution errors
*/
func (repository *PostgresRepository) List(context context.Context) ([]*Employee, error) {
	const query = `SELECT ` + employeeColumns + ` FROM portal.employee ORDER BY createdat ASC`

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_employee_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var employees []*Employee
	for rows.Next() {
		entity, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_employee_repo_list_scan_failed: %w", err)
		}
		employees = append(employees, entity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_employee_repo_list_rows_failed: %w", err)
	}

	return employees, nil
}

/*
Delete permanently removes a staff account.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound when no row matched, or execution errors
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM portal.employee WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_employee_repo_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Employee")
	}

	return nil
}
