// Copyright (c) 2026 Meridian Pay. All rights reserved.
// Author: platform@meridianpay.io

package customer

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

// TokenIssuer defines the contract for generating customer access tokens.
type TokenIssuer interface {
	// IssueCustomerToken creates a signed JWT string for the given customer.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - username: The canonical username.
	//   - accountNumber: The canonical account number.
	//   - fullName: The display name.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	IssueCustomerToken(userID, username, accountNumber, fullName string, timeToLive time.Duration) (string, error)
}

// TokenRevoker defines the contract for invalidating issued tokens early.
type TokenRevoker interface {
	// Revoke denylists the exact token string until expiresAt.
	Revoke(token string, expiresAt time.Time)
}

// Service implements customer account use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing,
// registration, or login logic must be reviewed by the security team.
type Service struct {
	customerRepository   Repository
	resetTokenRepository ResetTokenRepository
	tokenIssuer          TokenIssuer
	tokenRevoker         TokenRevoker
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	customerRepo Repository,
	resetRepo ResetTokenRepository,
	issuer TokenIssuer,
	revoker TokenRevoker,
) *Service {
	return &Service{
		customerRepository:   customerRepo,
		resetTokenRepository: resetRepo,
		tokenIssuer:          issuer,
		tokenRevoker:         revoker,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new account holder.
type RegisterInput struct {
	FullName      string
	IDNumber      string
	AccountNumber string
	Username      string
	Password      string
}

// Session represents a successfully established customer session.
type Session struct {
	Token    string
	Customer *Customer
}

/*
Register validates, hashes, and persists a brand new customer account.

Description: Normalizes identity fields, enforces uniqueness over username,
government ID, and account number, hashes the password, and issues an
access token so the new account is immediately usable.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *Session: Fresh access token plus the created entity
  - err: Conflict (if an identity field exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*Session, error) {

	// Canonical forms first: every uniqueness check and every later lookup
	// runs against the normalized value.
	username := normalize.Username(input.Username)
	accountNumber := normalize.AccountNumber(input.AccountNumber)
	idNumber := normalize.IDNumber(input.IDNumber)
	fullName := normalize.FullName(input.FullName)

	// Verify username uniqueness. Return a client-safe Conflict err.
	_, err := service.customerRepository.FindByUsername(context, username)
	if err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	// Verify government-ID uniqueness
	_, err = service.customerRepository.FindByIDNumber(context, idNumber)
	if err == nil {
		return nil, apperr.Conflict("An account with this ID number already exists")
	}

	// Verify account-number uniqueness
	_, err = service.customerRepository.FindByAccountNumber(context, accountNumber)
	if err == nil {
		return nil, apperr.Conflict("An account with this account number already exists")
	}

	// Prevent storing plain-text passwords. Fixed cost 12 balances security
	// against CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("customer_service_hash_failed: %w", err)
	}

	// Construct the new Customer entity. Time-sortable ID to prevent PG index fragmentation.
	entity := &Customer{
		ID:            uuidv7.New(),
		FullName:      fullName,
		IDNumber:      idNumber,
		AccountNumber: accountNumber,
		Username:      username,
		PasswordHash:  hashedPassword,
	}

	if err := service.customerRepository.Create(context, entity); err != nil {
		return nil, fmt.Errorf("customer_service_register_failed: %w", err)
	}

	token, err := service.tokenIssuer.IssueCustomerToken(
		entity.ID, entity.Username, entity.AccountNumber, entity.FullName, AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("customer_service_token_generation_failed: %w", err)
	}

	return &Session{Token: token, Customer: entity}, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Username      string
	AccountNumber string
	Password      string
}

/*
Login validates customer credentials and issues an access token.

Description: Looks up the account by username, cross-checks the account
number, and performs constant-time password comparison. All failure modes
collapse into one generic Unauthorized so responses never reveal which
identifying field was wrong.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *Session: Transport-ready session
  - err: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {
	username := normalize.Username(input.Username)
	accountNumber := normalize.AccountNumber(input.AccountNumber)

	entity, err := service.customerRepository.FindByUsername(context, username)

	// If (err != nil) the account does not exist. Generic message to prevent enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	// The account number is a second identifying factor, not a secret, but
	// it still must match exactly.
	if entity.AccountNumber != accountNumber {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	// Verify password hash using constant-time comparison in bcrypt to prevent timing attacks
	if !sec.CheckPasswordHash(input.Password, entity.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	token, err := service.tokenIssuer.IssueCustomerToken(
		entity.ID, entity.Username, entity.AccountNumber, entity.FullName, AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("customer_service_token_generation_failed: %w", err)
	}

	return &Session{Token: token, Customer: entity}, nil
}

/*
Logout permanently revokes the presented access token.

Description: Adds the exact token string to the revocation registry; every
later request carrying it fails authentication. Other tokens issued to the
same customer are unaffected. Idempotent.

Parameters:
  - token: string (the raw bearer token)
  - expiresAt: time.Time (the token's own exp claim)
*/
func (service *Service) Logout(token string, expiresAt time.Time) {
	service.tokenRevoker.Revoke(token, expiresAt)
}

// # Password Lifecycle

/*
ChangePassword allows an authenticated customer to update their credentials.

Description: Verifies the current password before applying the new hash.

Parameters:
  - context: context.Context
  - customerID: string
  - currentPassword: string
  - newPassword: string

Returns:
  - err: Unauthorized or storage failures
*/
func (service *Service) ChangePassword(context context.Context, customerID, currentPassword, newPassword string) error {
	entity, err := service.customerRepository.FindByID(context, customerID)
	if err != nil {
		return err
	}

	// Verify the current password before allowing change
	if !sec.CheckPasswordHash(currentPassword, entity.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("customer_service_change_password_hash_failed: %w", err)
	}

	if err := service.customerRepository.UpdatePassword(context, customerID, hashedPassword); err != nil {
		return fmt.Errorf("customer_service_change_password_update_failed: %w", err)
	}

	return nil
}

/*
RequestPasswordReset initiates the forgot-password flow.

Description: Generates a secure token and saves its hash to Redis. The raw
token is returned to the caller for out-of-band delivery.

NOTE: We never signal whether the account exists, to prevent enumeration.
An unknown identity silently returns an empty token.

Parameters:
  - context: context.Context
  - username: string
  - accountNumber: string

Returns:
  - string: Raw reset token (empty when the identity is unknown)
  - err: Generation or storage errors
*/
func (service *Service) RequestPasswordReset(context context.Context, username, accountNumber string) (string, error) {
	entity, err := service.customerRepository.FindByUsername(context, normalize.Username(username))
	if err != nil || entity.AccountNumber != normalize.AccountNumber(accountNumber) {
		return "", nil
	}

	token, err := sec.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		return "", fmt.Errorf("customer_service_generate_reset_token_failed: %w", err)
	}

	// Store only the hash: a Redis dump must never contain a usable token.
	if err := service.resetTokenRepository.Set(context, sec.HashToken(token), entity.ID, ResetTokenTTL); err != nil {
		return "", fmt.Errorf("customer_service_save_reset_token_failed: %w", err)
	}

	return token, nil
}

/*
ResetPassword completes the forgot-password flow.

Description: Resolves the token hash, hashes the new password, updates the
DB, and burns the token so it cannot be replayed.

Parameters:
  - context: context.Context
  - token: string
  - newPassword: string

Returns:
  - err: Validation or update failures
*/
func (service *Service) ResetPassword(context context.Context, token, newPassword string) error {
	tokenHash := sec.HashToken(token)

	customerID, err := service.resetTokenRepository.Get(context, tokenHash)
	if err != nil {
		return err
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("customer_service_reset_password_hash_failed: %w", err)
	}

	if err := service.customerRepository.UpdatePassword(context, customerID, hashedPassword); err != nil {
		return fmt.Errorf("customer_service_reset_password_update_failed: %w", err)
	}

	// Burn the token after successful use
	_ = service.resetTokenRepository.Delete(context, tokenHash)

	return nil
}
