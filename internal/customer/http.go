// Copyright (c) 2026 Meridian Pay. All rights reserved.
// Author: platform@meridianpay.io

package customer

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/meridianpay/portal/internal/platform/middleware"
	requestutil "github.com/meridianpay/portal/internal/platform/request"
	"github.com/meridianpay/portal/internal/platform/respond"
	"github.com/meridianpay/portal/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements customer authentication HTTP endpoints.
//
// # Scope
//
// This handler manages everything related to the customer account lifecycle
// entry points (Registration, Login, Logout, Password Recovery).
type Handler struct {
	customerService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{customerService: service}
}

// Routes returns a [chi.Router] configured with customer auth routes.
//
// The limiters are shared instances owned by the composition root:
// authGuard is the login/registration budget, bruteGuard the stricter
// stacked guard on credential submission, sensitiveGuard the password
// lifecycle budget.
func (handler *Handler) Routes(authGuard, bruteGuard, sensitiveGuard *middleware.Limiter) chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.With(authGuard.Handler()).Post("/register", handler.register)
	router.With(authGuard.Handler(), bruteGuard.Handler()).Post("/login", handler.login)
	router.With(sensitiveGuard.Handler()).Post("/forgot-password", handler.forgotPassword)
	router.With(sensitiveGuard.Handler()).Post("/reset-password", handler.resetPassword)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireCustomer)
		// GET kept alongside POST: the original portal UI navigated to
		// logout as a plain link.
		r.Get("/logout", handler.logout)
		r.Post("/logout", handler.logout)
		r.With(sensitiveGuard.Handler()).Post("/change-password", handler.changePassword)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	FullName      string `json:"full_name"`
	IDNumber      string `json:"id_number"`
	AccountNumber string `json:"account_number"`
	Username      string `json:"username"`
	Password      string `json:"password"`
}

type loginRequest struct {
	Username      string `json:"username"`
	AccountNumber string `json:"account_number"`
	Password      string `json:"password"`
}

type forgotPasswordRequest struct {
	Username      string `json:"username"`
	AccountNumber string `json:"account_number"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

/*
Register handles the creation of a new customer account.

POST /v1/auth/register

Description: Validates all identity fields against their exact formats,
checks for conflicts, and persists a new customer profile.

Request:
  - Body: registerRequest (FullName, IDNumber, AccountNumber, Username, Password)

Response:
  - 201: Session: Access token and created profile
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Username, ID number, or account number already exists
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldFullName, input.FullName).
		Pattern(FieldFullName, input.FullName, fullNameRegex, "Must be 2-100 letters and spaces").
		Required(FieldIDNumber, input.IDNumber).
		Pattern(FieldIDNumber, input.IDNumber, idNumberRegex, "Must be 5-20 characters (A-Z, 0-9, dashes)").
		Required(FieldAccountNumber, input.AccountNumber).
		Pattern(FieldAccountNumber, input.AccountNumber, accountNumberRegex, "Must be 8-34 characters (A-Z, 0-9)").
		Required(FieldUsername, input.Username).
		Pattern(FieldUsername, input.Username, usernameRegex, "Must be 3-30 characters (letters, numbers, underscores)").
		Required(FieldPassword, input.Password).
		Password(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.customerService.Register(request.Context(), RegisterInput{
		FullName:      input.FullName,
		IDNumber:      input.IDNumber,
		AccountNumber: input.AccountNumber,
		Username:      input.Username,
		Password:      input.Password,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]any{
		FieldToken:     session.Token,
		FieldExpiresIn: AccessTokenTTL / time.Second,
		FieldCustomer:  session.Customer,
	})
}

/*
Login authenticates a customer and establishes a session.

POST /v1/auth/login

Description: Verifies username, account number, and password, then returns
a short-lived customer access token.

Request:
  - Body: loginRequest (Username, AccountNumber, Password)

Response:
  - 200: Session: Access token and profile
  - 401: ErrUnauthorized: Invalid credentials (field never disclosed)
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Required(FieldAccountNumber, input.AccountNumber).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.customerService.Login(request.Context(), LoginInput{
		Username:      input.Username,
		AccountNumber: input.AccountNumber,
		Password:      input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldToken:     session.Token,
		FieldExpiresIn: AccessTokenTTL / time.Second,
		FieldCustomer:  session.Customer,
	})
}

/*
Logout revokes the presented access token.

GET|POST /v1/auth/logout

Description: Denylists the exact bearer token this request authenticated
with. Other tokens issued to the same customer remain valid until expiry.

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

	handler.customerService.Logout(requestutil.BearerToken(request), expiresAt)

	respond.OK(writer, map[string]string{
		FieldMessage: "Logged out successfully",
	})
}

/*
ForgotPassword initiates the password recovery flow.

POST /v1/auth/forgot-password

Description: Generates a reset token if the identity matches an account.
The response is identical whether or not the account exists.

Request:
  - Body: forgotPasswordRequest (Username, AccountNumber)

Response:
  - 200: Success: Generic acknowledgement
  - 400: ErrInvalidJSON: Missing fields
*/
func (handler *Handler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	var input forgotPasswordRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldUsername, input.Username).
		Required(FieldAccountNumber, input.AccountNumber)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// TODO: deliver the token through the notification service once the
	// SMS/email channel is wired up; until then it is only logged server-side.
	_, err := handler.customerService.RequestPasswordReset(request.Context(), input.Username, input.AccountNumber)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "If this account exists, reset instructions have been sent.",
	})
}

/*
ResetPassword completes the password recovery flow.

POST /v1/auth/reset-password

Description: Validates the reset token and updates the customer's password.

Request:
  - Body: resetPasswordRequest (Token, Password)

Response:
  - 200: Success: Password updated
  - 400: ErrInvalidJSON: Bad token or weak password
  - 404: ErrNotFound: Token invalid or expired
*/
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var input resetPasswordRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldToken, input.Token).
		Required(FieldPassword, input.Password).
		Password(FieldPassword, input.Password)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.customerService.ResetPassword(request.Context(), input.Token, input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Password updated successfully",
	})
}

/*
ChangePassword updates the authenticated customer's password.

POST /v1/auth/change-password

Description: Verifies the current password before applying a new one.

Request:
  - Body: changePasswordRequest (CurrentPassword, NewPassword)

Response:
  - 200: Success: Password changed
  - 401: ErrUnauthorized: Wrong current password or missing token
  - 400: ErrInvalidJSON: Weak password or validation failure
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldCurrentPassword, input.CurrentPassword).
		Required(FieldNewPassword, input.NewPassword).
		Password(FieldNewPassword, input.NewPassword)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.customerService.ChangePassword(
		request.Context(),
		claims.UserID,
		input.CurrentPassword,
		input.NewPassword,
	)

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Password changed successfully",
	})
}
