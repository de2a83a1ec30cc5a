// Copyright (c) 2026 Meridian Pay. All rights reserved.
// Author: platform@meridianpay.io

package employee_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianpay/portal/internal/employee"
	"github.com/meridianpay/portal/internal/platform/apperr"
	"github.com/meridianpay/portal/internal/platform/sec"
)

// # Test Doubles

// memoryRepository is an in-memory employee.Repository keyed by ID.
type memoryRepository struct {
	employees map[string]*employee.Employee
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{employees: make(map[string]*employee.Employee)}
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (*employee.Employee, error) {
	if entity, found := r.employees[id]; found {
		return entity, nil
	}
	return nil, apperr.NotFound("Employee")
}

func (r *memoryRepository) FindByUsername(_ context.Context, username string) (*employee.Employee, error) {
	for _, entity := range r.employees {
		if entity.Username == username {
			return entity, nil
		}
	}
	return nil, apperr.NotFound("Employee")
}

func (r *memoryRepository) List(_ context.Context) ([]*employee.Employee, error) {
	list := make([]*employee.Employee, 0, len(r.employees))
	for _, entity := range r.employees {
		list = append(list, entity)
	}
	return list, nil
}

func (r *memoryRepository) Create(_ context.Context, entity *employee.Employee) error {
	r.employees[entity.ID] = entity
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	if _, found := r.employees[id]; !found {
		return apperr.NotFound("Employee")
	}
	delete(r.employees, id)
	return nil
}

// fakeIssuer encodes the granted role into the token for assertions.
type fakeIssuer struct{}

func (fakeIssuer) IssueEmployeeToken(userID string, role sec.Role, _ time.Duration) (string, error) {
	return fmt.Sprintf("token-for-%s-as-%s", userID, role), nil
}

// recordingRevoker captures revoked token strings.
type recordingRevoker struct {
	revoked []string
}

func (r *recordingRevoker) Revoke(token string, _ time.Time) {
	r.revoked = append(r.revoked, token)
}

// # Fixtures

const staffPassword = "Sup3rSecret!Pass"

type serviceFixture struct {
	service    *employee.Service
	repository *memoryRepository
	revoker    *recordingRevoker
}

func newServiceFixture() *serviceFixture {
	repository := newMemoryRepository()
	revoker := &recordingRevoker{}

	return &serviceFixture{
		service:    employee.NewService(repository, fakeIssuer{}, revoker),
		repository: repository,
		revoker:    revoker,
	}
}

// seedStaff provisions an account through the service so it carries a real
// password hash.
func seedStaff(t *testing.T, fixture *serviceFixture, username string, role sec.Role) *employee.Employee {
	t.Helper()

	entity, err := fixture.service.CreateStaff(context.Background(), employee.CreateStaffInput{
		FullName: "Staff Member",
		Username: username,
		Password: staffPassword,
		Role:     role,
	})
	require.NoError(t, err)
	return entity
}

// # Tests

/*
TestService_Login verifies credential checks and the role carried into the
issued token.
*/
func TestService_Login(t *testing.T) {
	fixture := newServiceFixture()
	admin := seedStaff(t, fixture, "carol_admin", sec.RoleAdmin)

	// 1. Correct credentials yield a session with the staff role
	session, err := fixture.service.Login(context.Background(), "Carol_Admin", staffPassword)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("token-for-%s-as-admin", admin.ID), session.Token)
	assert.Equal(t, sec.RoleAdmin, session.Employee.Role)

	// 2. Unknown username and wrong password share one generic message
	for _, tt := range []struct {
		name     string
		username string
		password string
	}{
		{name: "unknown username", username: "nobody", password: staffPassword},
		{name: "wrong password", username: "carol_admin", password: "WrongPass1!xx"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fixture.service.Login(context.Background(), tt.username, tt.password)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, "UNAUTHORIZED", appErr.Code)
			assert.Equal(t, "Invalid credentials", appErr.Message)
		})
	}
}

/*
TestService_Logout verifies delegation to the revocation registry.
*/
func TestService_Logout(t *testing.T) {
	fixture := newServiceFixture()

	fixture.service.Logout("the-raw-token", time.Now().Add(time.Hour))

	assert.Equal(t, []string{"the-raw-token"}, fixture.revoker.revoked)
}

/*
TestService_CreateStaff verifies provisioning: role defaulting, password
hashing, and uniqueness.
*/
func TestService_CreateStaff(t *testing.T) {
	fixture := newServiceFixture()

	// 1. An omitted role defaults to employee
	created, err := fixture.service.CreateStaff(context.Background(), employee.CreateStaffInput{
		FullName: "Bob  Miller",
		Username: " Bob_M ",
		Password: staffPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleEmployee, created.Role)
	assert.Equal(t, "bob_m", created.Username)
	assert.Equal(t, "Bob Miller", created.FullName)
	assert.True(t, sec.CheckPasswordHash(staffPassword, created.PasswordHash))

	// 2. An unrecognized role is rejected
	_, err = fixture.service.CreateStaff(context.Background(), employee.CreateStaffInput{
		FullName: "Eve Intruder",
		Username: "eve_i",
		Password: staffPassword,
		Role:     sec.Role("root"),
	})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)

	// 3. A duplicate username is a conflict, case-insensitively
	_, err = fixture.service.CreateStaff(context.Background(), employee.CreateStaffInput{
		FullName: "Bob Clone",
		Username: "BOB_M",
		Password: staffPassword,
	})
	appErr = apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
	assert.Equal(t, "A staff account with this username already exists", appErr.Message)
}

/*
TestService_DeleteStaff verifies removal, the self-delete guard, and the
unknown-account path.
*/
func TestService_DeleteStaff(t *testing.T) {
	fixture := newServiceFixture()
	admin := seedStaff(t, fixture, "carol_admin", sec.RoleAdmin)
	target := seedStaff(t, fixture, "bob_m", sec.RoleEmployee)

	// 1. An admin cannot delete their own account
	err := fixture.service.DeleteStaff(context.Background(), admin.ID, admin.ID)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Equal(t, "You cannot delete your own account", appErr.Message)

	// 2. Deleting a colleague works
	err = fixture.service.DeleteStaff(context.Background(), admin.ID, target.ID)
	require.NoError(t, err)
	_, found := fixture.repository.employees[target.ID]
	assert.False(t, found)

	// 3. Deleting a vanished account is 404
	err = fixture.service.DeleteStaff(context.Background(), admin.ID, target.ID)
	appErr = apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
