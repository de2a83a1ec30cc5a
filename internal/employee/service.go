// Copyright (c) 2026 Meridian Pay. All rights reserved.
// Author: platform@meridianpay.io

package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/meridianpay/portal/internal/platform/apperr"
	"github.com/meridianpay/portal/internal/platform/normalize"
	"github.com/meridianpay/portal/internal/platform/sec"
	"github.com/meridianpay/portal/pkg/uuidv7"
)

// # Contracts & Types

// TokenIssuer defines the contract for generating staff access tokens.
type TokenIssuer interface {
	// IssueEmployeeToken creates a signed JWT carrying the staff role claim.
	IssueEmployeeToken(userID string, role sec.Role, timeToLive time.Duration) (string, error)
}

// TokenRevoker defines the contract for invalidating issued tokens early.
type TokenRevoker interface {
	Revoke(token string, expiresAt time.Time)
}

// Service implements staff authentication and administration use cases.
type Service struct {
	employeeRepository Repository
	tokenIssuer        TokenIssuer
	tokenRevoker       TokenRevoker
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(employeeRepo Repository, issuer TokenIssuer, revoker TokenRevoker) *Service {
	return &Service{
		employeeRepository: employeeRepo,
		tokenIssuer:        issuer,
		tokenRevoker:       revoker,
	}
}

// # Authentication Flow

// Session represents a successfully established staff session.
type Session struct {
	Token    string
	Employee *Employee
}

/*
Login validates staff credentials and issues an access token.

Description: Looks up the staff account by username and performs
constant-time password comparison. Failures collapse into one generic
Unauthorized for enumeration resistance.

Parameters:
  - context: context.Context
  - username: string
  - password: string

Returns:
  - *Session: Staff token (60m TTL, role claim) plus the entity
  - err: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, username, password string) (*Session, error) {
	entity, err := service.employeeRepository.FindByUsername(context, normalize.Username(username))

	// If (err != nil) the account does not exist. Generic message to prevent enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	if !sec.CheckPasswordHash(password, entity.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	token, err := service.tokenIssuer.IssueEmployeeToken(entity.ID, entity.Role, AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("employee_service_token_generation_failed: %w", err)
	}

	return &Session{Token: token, Employee: entity}, nil
}

// Logout permanently revokes the presented staff token. Idempotent.
func (service *Service) Logout(token string, expiresAt time.Time) {
	service.tokenRevoker.Revoke(token, expiresAt)
}

// # Staff Administration

// CreateStaffInput holds the data required to provision a staff account.
type CreateStaffInput struct {
	FullName string
	Username string
	Password string
	Role     sec.Role
}

/*
CreateStaff provisions a new staff account.

Description: Admin-gated. Normalizes the username, enforces its uniqueness,
hashes the password, and defaults the role to "employee" when absent.

Parameters:
  - context: context.Context
  - input: CreateStaffInput

Returns:
  - *Employee: Created entity
  - err: Conflict (username taken), validation, or storage errors
*/
func (service *Service) CreateStaff(context context.Context, input CreateStaffInput) (*Employee, error) {
	username := normalize.Username(input.Username)

	role := input.Role
	if role == "" {
		role = sec.RoleEmployee
	}
	if !role.Valid() {
		return nil, apperr.ValidationError("Unknown staff role")
	}

	_, err := service.employeeRepository.FindByUsername(context, username)
	if err == nil {
		return nil, apperr.Conflict("A staff account with this username already exists")
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("employee_service_hash_failed: %w", err)
	}

	entity := &Employee{
		ID:           uuidv7.New(),
		FullName:     normalize.FullName(input.FullName),
		Username:     username,
		PasswordHash: hashedPassword,
		Role:         role,
	}

	if err := service.employeeRepository.Create(context, entity); err != nil {
		return nil, fmt.Errorf("employee_service_create_staff_failed: %w", err)
	}

	return entity, nil
}

/*
ListStaff returns every staff account.

Description: Admin-gated; password hashes never leave the entity's JSON
boundary.

Parameters:
  - context: context.Context

Returns:
  - []*Employee: All staff entities
  - err: Storage errors
*/
func (service *Service) ListStaff(context context.Context) ([]*Employee, error) {
	employees, err := service.employeeRepository.List(context)
	if err != nil {
		return nil, fmt.Errorf("employee_service_list_staff_failed: %w", err)
	}
	return employees, nil
}

/*
DeleteStaff removes a staff account.

Description: Admin-gated. An administrator cannot delete their own account;
locking every admin out of the portal by one careless click is worse than
the extra round trip through a colleague.

Parameters:
  - context: context.Context
  - actorID: string (the authenticated administrator)
  - staffID: string (the account to remove)

Returns:
  - err: Validation (self-deletion), NotFound, or storage errors
*/
func (service *Service) DeleteStaff(context context.Context, actorID, staffID string) error {
	if actorID == staffID {
		return apperr.ValidationError("You cannot delete your own account")
	}

	if err := service.employeeRepository.Delete(context, staffID); err != nil {
		return err
	}

	return nil
}
