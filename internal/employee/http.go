// Copyright (c) 2026 Meridian Pay. All rights reserved.
// Author: platform@meridianpay.io

package employee

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/meridianpay/portal/internal/platform/middleware"
	requestutil "github.com/meridianpay/portal/internal/platform/request"
	"github.com/meridianpay/portal/internal/platform/respond"
	"github.com/meridianpay/portal/internal/platform/sec"
	"github.com/meridianpay/portal/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the staff portal HTTP endpoints.
type Handler struct {
	employeeService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{employeeService: service}
}

// Routes returns a [chi.Router] with staff auth and administration routes.
//
// authGuard and bruteGuard are the shared credential-endpoint limiters.
func (handler *Handler) Routes(authGuard, bruteGuard *middleware.Limiter) chi.Router {
	router := chi.NewRouter()

	// Public endpoint
	router.With(authGuard.Handler(), bruteGuard.Handler()).Post("/login", handler.login)

	// Staff endpoints (any role)
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireEmployee)
		r.Get("/logout", handler.logout)
		r.Post("/logout", handler.logout)
	})

	// Administration endpoints (admin or superadmin only)
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Get("/staff", handler.listStaff)
		r.Post("/staff", handler.createStaff)
		r.Delete("/staff/{id}", handler.deleteStaff)
	})

	return router
}

// # Request Payloads

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type createStaffRequest struct {
	FullName string `json:"full_name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

/*
Login authenticates a staff member.

POST /v1/employee/login

Request:
  - Body: loginRequest (Username, Password)

Response:
  - 200: Session: Staff access token, role, and profile
  - 401: ErrUnauthorized: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.employeeService.Login(request.Context(), input.Username, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldToken:     session.Token,
		FieldRole:      session.Employee.Role,
		FieldExpiresIn: AccessTokenTTL / time.Second,
		FieldEmployee:  session.Employee,
	})
}

/*
Logout revokes the presented staff token.

GET|POST /v1/employee/logout

Response:
  - 200: Success: Token invalidated
  - 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	expiresAt := time.Now().Add(AccessTokenTTL)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	handler.employeeService.Logout(requestutil.BearerToken(request), expiresAt)

	respond.OK(writer, map[string]string{
		FieldMessage: "Logged out successfully",
	})
}

/*
ListStaff returns all staff accounts.

GET /v1/employee/staff

Response:
  - 200: []Employee: Staff roster (password hashes omitted)
  - 403: ErrForbidden: Caller is not an administrator
*/
func (handler *Handler) listStaff(writer http.ResponseWriter, request *http.Request) {
	employees, err := handler.employeeService.ListStaff(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldEmployees: employees,
	})
}

/*
CreateStaff provisions a new staff account.

POST /v1/employee/staff

Request:
  - Body: createStaffRequest (FullName, Username, Password, Role?)

Response:
  - 201: Employee: Created staff profile
  - 409: ErrConflict: Username already in use
  - 403: ErrForbidden: Caller is not an administrator
*/
func (handler *Handler) createStaff(writer http.ResponseWriter, request *http.Request) {
	var input createStaffRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldFullName, input.FullName).
		MaxLen(FieldFullName, input.FullName, 100).
		Required(FieldUsername, input.Username).
		Pattern(FieldUsername, input.Username, usernameRegex, "Must be 3-30 characters (letters, numbers, underscores)").
		Required(FieldPassword, input.Password).
		Password(FieldPassword, input.Password)

	if input.Role != "" {
		validator.OneOf(FieldRole, input.Role,
			string(sec.RoleEmployee), string(sec.RoleAdmin), string(sec.RoleSuperAdmin))
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.employeeService.CreateStaff(request.Context(), CreateStaffInput{
		FullName: input.FullName,
		Username: input.Username,
		Password: input.Password,
		Role:     sec.Role(input.Role),
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]any{
		FieldEmployee: entity,
	})
}

/*
DeleteStaff removes a staff account by ID.

DELETE /v1/employee/staff/{id}

Response:
  - 200: Success: Account removed
  - 400: ErrValidation: Self-deletion attempt or malformed ID
  - 404: ErrNotFound: No staff account with that ID
  - 403: ErrForbidden: Caller is not an administrator
*/
func (handler *Handler) deleteStaff(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	staffID := requestutil.Param(request, FieldStaffID)

	validator := &validate.Validator{}
	validator.Required(FieldStaffID, staffID).UUID(FieldStaffID, staffID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.employeeService.DeleteStaff(request.Context(), claims.UserID, staffID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Staff account removed",
	})
}
