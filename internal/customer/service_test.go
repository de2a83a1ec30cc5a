// Copyright (c) 2026 Meridian Pay. All rights reserved.
// Author: platform@meridianpay.io

package customer_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianpay/portal/internal/customer"
	"github.com/meridianpay/portal/internal/platform/apperr"
	"github.com/meridianpay/portal/internal/platform/sec"
)

// # Test Doubles

// memoryRepository is an in-memory customer.Repository keyed by ID.
type memoryRepository struct {
	customers map[string]*customer.Customer
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{customers: make(map[string]*customer.Customer)}
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (*customer.Customer, error) {
	if entity, found := r.customers[id]; found {
		return entity, nil
	}
	return nil, apperr.NotFound("Customer")
}

func (r *memoryRepository) FindByUsername(_ context.Context, username string) (*customer.Customer, error) {
	for _, entity := range r.customers {
		if entity.Username == username {
			return entity, nil
		}
	}
	return nil, apperr.NotFound("Customer")
}

func (r *memoryRepository) FindByAccountNumber(_ context.Context, accountNumber string) (*customer.Customer, error) {
	for _, entity := range r.customers {
		if entity.AccountNumber == accountNumber {
			return entity, nil
		}
	}
	return nil, apperr.NotFound("Customer")
}

func (r *memoryRepository) FindByIDNumber(_ context.Context, idNumber string) (*customer.Customer, error) {
	for _, entity := range r.customers {
		if entity.IDNumber == idNumber {
			return entity, nil
		}
	}
	return nil, apperr.NotFound("Customer")
}

func (r *memoryRepository) Create(_ context.Context, entity *customer.Customer) error {
	r.customers[entity.ID] = entity
	return nil
}

func (r *memoryRepository) UpdatePassword(_ context.Context, customerID, newHash string) error {
	entity, found := r.customers[customerID]
	if !found {
		return apperr.NotFound("Customer")
	}
	entity.PasswordHash = newHash
	return nil
}

// memoryResetTokens is an in-memory customer.ResetTokenRepository.
type memoryResetTokens struct {
	tokens map[string]string // tokenHash -> customerID
}

func newMemoryResetTokens() *memoryResetTokens {
	return &memoryResetTokens{tokens: make(map[string]string)}
}

func (r *memoryResetTokens) Set(_ context.Context, tokenHash, customerID string, _ time.Duration) error {
	r.tokens[tokenHash] = customerID
	return nil
}

func (r *memoryResetTokens) Get(_ context.Context, tokenHash string) (string, error) {
	if customerID, found := r.tokens[tokenHash]; found {
		return customerID, nil
	}
	return "", apperr.NotFound("Reset token is invalid or expired")
}

func (r *memoryResetTokens) Delete(_ context.Context, tokenHash string) error {
	delete(r.tokens, tokenHash)
	return nil
}

// fakeIssuer returns a deterministic token naming the principal.
type fakeIssuer struct{}

func (fakeIssuer) IssueCustomerToken(userID, _, _, _ string, _ time.Duration) (string, error) {
	return fmt.Sprintf("token-for-%s", userID), nil
}

// recordingRevoker captures revoked token strings.
type recordingRevoker struct {
	revoked []string
}

func (r *recordingRevoker) Revoke(token string, _ time.Time) {
	r.revoked = append(r.revoked, token)
}

// # Fixtures

const (
	validPassword = "Sup3rSecret!Pass"
	otherPassword = "An0therSecret!Pass"
)

func validRegisterInput() customer.RegisterInput {
	return customer.RegisterInput{
		FullName:      "Alice Walker",
		IDNumber:      "9001015800087",
		AccountNumber: "ZA12345678",
		Username:      "alice_w",
		Password:      validPassword,
	}
}

type serviceFixture struct {
	service    *customer.Service
	repository *memoryRepository
	resets     *memoryResetTokens
	revoker    *recordingRevoker
}

func newServiceFixture() *serviceFixture {
	repository := newMemoryRepository()
	resets := newMemoryResetTokens()
	revoker := &recordingRevoker{}

	return &serviceFixture{
		service:    customer.NewService(repository, resets, fakeIssuer{}, revoker),
		repository: repository,
		resets:     resets,
		revoker:    revoker,
	}
}

// # Tests

/*
TestService_Register verifies enrollment: normalization, password hashing,
and an immediately usable session.
*/
func TestService_Register(t *testing.T) {
	fixture := newServiceFixture()

	input := validRegisterInput()
	input.Username = "  Alice_W "
	input.AccountNumber = "za12345678"
	input.FullName = " Alice   Walker "

	session, err := fixture.service.Register(context.Background(), input)
	require.NoError(t, err)

	// 1. A token was issued for the new account
	assert.Equal(t, "token-for-"+session.Customer.ID, session.Token)

	// 2. Identity fields were stored in canonical form
	assert.Equal(t, "alice_w", session.Customer.Username)
	assert.Equal(t, "ZA12345678", session.Customer.AccountNumber)
	assert.Equal(t, "Alice Walker", session.Customer.FullName)
	assert.NotEmpty(t, session.Customer.ID)

	// 3. The password was hashed, never stored raw
	stored := fixture.repository.customers[session.Customer.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, validPassword, stored.PasswordHash)
	assert.True(t, sec.CheckPasswordHash(validPassword, stored.PasswordHash))
}

/*
TestService_Register_Conflicts verifies that each identity field is unique
across accounts, including after normalization.
*/
func TestService_Register_Conflicts(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(input *customer.RegisterInput)
		wantMessage string
	}{
		{
			name: "duplicate username different case",
			mutate: func(input *customer.RegisterInput) {
				input.Username = "ALICE_W"
				input.IDNumber = "8505055800084"
				input.AccountNumber = "ZA87654321"
			},
			wantMessage: "Username is already taken",
		},
		{
			name: "duplicate id number",
			mutate: func(input *customer.RegisterInput) {
				input.Username = "bob_m"
				input.AccountNumber = "ZA87654321"
			},
			wantMessage: "An account with this ID number already exists",
		},
		{
			name: "duplicate account number",
			mutate: func(input *customer.RegisterInput) {
				input.Username = "bob_m"
				input.IDNumber = "8505055800084"
			},
			wantMessage: "An account with this account number already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixture := newServiceFixture()

			// 1. Seed the first account
			_, err := fixture.service.Register(context.Background(), validRegisterInput())
			require.NoError(t, err)

			// 2. The colliding registration is rejected with 409
			input := validRegisterInput()
			tt.mutate(&input)
			_, err = fixture.service.Register(context.Background(), input)

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, "CONFLICT", appErr.Code)
			assert.Equal(t, tt.wantMessage, appErr.Message)
		})
	}
}

/*
TestService_Login verifies credential checks and that every failure mode
returns the same generic message.
*/
func TestService_Login(t *testing.T) {
	fixture := newServiceFixture()
	_, err := fixture.service.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	// 1. Correct credentials establish a session; lookup is case-insensitive
	session, err := fixture.service.Login(context.Background(), customer.LoginInput{
		Username:      "Alice_W",
		AccountNumber: "za12345678",
		Password:      validPassword,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "alice_w", session.Customer.Username)

	// 2. Every failure collapses into the same message
	tests := []struct {
		name  string
		input customer.LoginInput
	}{
		{name: "unknown username", input: customer.LoginInput{Username: "nobody", AccountNumber: "ZA12345678", Password: validPassword}},
		{name: "wrong account number", input: customer.LoginInput{Username: "alice_w", AccountNumber: "ZA99999999", Password: validPassword}},
		{name: "wrong password", input: customer.LoginInput{Username: "alice_w", AccountNumber: "ZA12345678", Password: "WrongPass1!xx"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fixture.service.Login(context.Background(), tt.input)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, "UNAUTHORIZED", appErr.Code)
			assert.Equal(t, "Invalid credentials", appErr.Message)
		})
	}
}

/*
TestService_Logout verifies that logout hands the exact token string to the
revocation registry.
*/
func TestService_Logout(t *testing.T) {
	fixture := newServiceFixture()

	fixture.service.Logout("the-raw-token", time.Now().Add(15*time.Minute))

	assert.Equal(t, []string{"the-raw-token"}, fixture.revoker.revoked)
}

/*
TestService_ChangePassword verifies the current-password check and the hash
replacement.
*/
func TestService_ChangePassword(t *testing.T) {
	fixture := newServiceFixture()
	session, err := fixture.service.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)
	customerID := session.Customer.ID

	// 1. Wrong current password is rejected without touching the account
	err = fixture.service.ChangePassword(context.Background(), customerID, "WrongPass1!xx", otherPassword)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
	assert.Equal(t, "Current password is incorrect", appErr.Message)

	// 2. Correct current password swaps the hash
	err = fixture.service.ChangePassword(context.Background(), customerID, validPassword, otherPassword)
	require.NoError(t, err)

	stored := fixture.repository.customers[customerID]
	assert.False(t, sec.CheckPasswordHash(validPassword, stored.PasswordHash))
	assert.True(t, sec.CheckPasswordHash(otherPassword, stored.PasswordHash))
}

/*
TestService_PasswordResetFlow verifies the full forgot-password round trip:
request, reset, and single use of the token.
*/
func TestService_PasswordResetFlow(t *testing.T) {
	fixture := newServiceFixture()
	session, err := fixture.service.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	// 1. A matching identity yields a raw token; only its hash is stored
	token, err := fixture.service.RequestPasswordReset(context.Background(), "alice_w", "ZA12345678")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	_, rawStored := fixture.resets.tokens[token]
	assert.False(t, rawStored)
	_, hashStored := fixture.resets.tokens[sec.HashToken(token)]
	assert.True(t, hashStored)

	// 2. The token resets the password
	err = fixture.service.ResetPassword(context.Background(), token, otherPassword)
	require.NoError(t, err)

	stored := fixture.repository.customers[session.Customer.ID]
	assert.True(t, sec.CheckPasswordHash(otherPassword, stored.PasswordHash))

	// 3. The token is burned after use
	err = fixture.service.ResetPassword(context.Background(), token, validPassword)
	assert.Error(t, err)
}

/*
TestService_RequestPasswordReset_UnknownIdentity verifies the anti-enumeration
contract: unknown or mismatched identities silently yield no token.
*/
func TestService_RequestPasswordReset_UnknownIdentity(t *testing.T) {
	fixture := newServiceFixture()
	_, err := fixture.service.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	tests := []struct {
		name          string
		username      string
		accountNumber string
	}{
		{name: "unknown username", username: "nobody", accountNumber: "ZA12345678"},
		{name: "mismatched account number", username: "alice_w", accountNumber: "ZA99999999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := fixture.service.RequestPasswordReset(context.Background(), tt.username, tt.accountNumber)
			assert.NoError(t, err)
			assert.Empty(t, token)
			assert.Empty(t, fixture.resets.tokens)
		})
	}
}

/*
TestService_ResetPassword_InvalidToken verifies that an unknown token is
rejected without changing any account.
*/
func TestService_ResetPassword_InvalidToken(t *testing.T) {
	fixture := newServiceFixture()

	err := fixture.service.ResetPassword(context.Background(), "never-issued", otherPassword)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
