// Copyright (c) 2026 Meridian Pay. All rights reserved.
// Author: platform@meridianpay.io

package payment

import (
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meridianpay/portal/internal/platform/middleware"
	requestutil "github.com/meridianpay/portal/internal/platform/request"
	"github.com/meridianpay/portal/internal/platform/respond"
	"github.com/meridianpay/portal/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the payment HTTP endpoints for both portals.
type Handler struct {
	paymentService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{paymentService: service}
}

// CustomerRoutes returns the customer-portal payment routes.
//
// All routes require a customer token; paymentGuard is the shared
// payment-endpoint limiter.
func (handler *Handler) CustomerRoutes(paymentGuard *middleware.Limiter) chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireCustomer)
	router.Use(paymentGuard.Handler())

	router.Post("/", handler.create)
	router.Get("/", handler.listOwn)
	router.Get("/{id}", handler.getOwn)

	return router
}

// EmployeeRoutes returns the staff-portal review routes. All routes require
// a staff token; the gate is applied here so the routes stay safe even if
// the mount point changes.
func (handler *Handler) EmployeeRoutes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireEmployee)

	router.Get("/pending", handler.listPending)
	router.Get("/history", handler.listDecided)
	router.Post("/{id}/approve", handler.approve)
	router.Post("/{id}/deny", handler.deny)

	return router
}

// # Request Payloads

type createRequest struct {
	Amount             float64 `json:"amount"`
	Currency           string  `json:"currency"`
	Provider           string  `json:"provider"`
	PayeeName          string  `json:"payee_name"`
	PayeeAccountNumber string  `json:"payee_account_number"`
	PayeeBank          string  `json:"payee_bank"`
	PayeeCountry       string  `json:"payee_country"`
	SwiftCode          string  `json:"swift_code"`
	Reference          string  `json:"reference"`
}

// hasSubCentPrecision reports whether the amount carries more than two
// decimal places.
func hasSubCentPrecision(amount float64) bool {
	cents := amount * 100
	return math.Abs(cents-math.Round(cents)) > 1e-9
}

/*
Create captures a new payment request.

POST /v1/payments

Request:
  - Body: createRequest (Amount, Currency, Payee fields, SwiftCode, Reference?)

Response:
  - 201: Payment: Captured request in pending state
  - 400: ErrInvalidJSON: Validation failure
  - 409: ErrConflict: Duplicate reference
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Custom(FieldAmount, input.Amount <= 0, "Must be a positive amount").
		Custom(FieldAmount, input.Amount > MaxAmount, "Exceeds the maximum portal payment").
		Custom(FieldAmount, hasSubCentPrecision(input.Amount), "At most two decimal places").
		Required(FieldCurrency, input.Currency).
		OneOf(FieldCurrency, input.Currency, SupportedCurrencies...).
		Required(FieldPayeeName, input.PayeeName).
		MinLen(FieldPayeeName, input.PayeeName, 2).
		MaxLen(FieldPayeeName, input.PayeeName, 100).
		Required(FieldPayeeAccountNumber, input.PayeeAccountNumber).
		Pattern(FieldPayeeAccountNumber, input.PayeeAccountNumber, payeeAccountRegex, "Must be 8-34 characters (A-Z, 0-9)").
		Required(FieldPayeeBank, input.PayeeBank).
		MaxLen(FieldPayeeBank, input.PayeeBank, 100).
		Required(FieldPayeeCountry, input.PayeeCountry).
		Pattern(FieldPayeeCountry, input.PayeeCountry, payeeCountryRegex, "Must be a 2-letter country code").
		Required(FieldSwiftCode, input.SwiftCode).
		Pattern(FieldSwiftCode, input.SwiftCode, swiftRegex, "Must be a valid 8 or 11 character SWIFT/BIC code")

	if input.Provider != "" {
		validator.OneOf(FieldProvider, input.Provider, DefaultProvider)
	}
	if input.Reference != "" {
		validator.Pattern(FieldReference, input.Reference, referenceRegex, "Must be 4-40 characters (letters, numbers, dashes)")
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.paymentService.Create(request.Context(), CreateInput{
		CustomerID:         claims.UserID,
		Amount:             input.Amount,
		Currency:           input.Currency,
		Provider:           input.Provider,
		PayeeName:          input.PayeeName,
		PayeeAccountNumber: input.PayeeAccountNumber,
		PayeeBank:          input.PayeeBank,
		PayeeCountry:       input.PayeeCountry,
		SwiftCode:          input.SwiftCode,
		Reference:          input.Reference,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]any{FieldPayment: entity})
}

/*
ListOwn returns the authenticated customer's payment history.

GET /v1/payments

Response:
  - 200: []Payment: Newest first
*/
func (handler *Handler) listOwn(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	payments, err := handler.paymentService.ListOwn(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldPayments: payments})
}

/*
GetOwn returns one of the authenticated customer's payments.

GET /v1/payments/{id}

Response:
  - 200: Payment
  - 404: ErrNotFound: Unknown ID, or a payment belonging to someone else
*/
func (handler *Handler) getOwn(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paymentID := requestutil.Param(request, FieldPaymentID)

	validator := &validate.Validator{}
	validator.Required(FieldPaymentID, paymentID).UUID(FieldPaymentID, paymentID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.paymentService.GetOwn(request.Context(), claims.UserID, paymentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldPayment: entity})
}

/*
ListPending returns the staff review queue.

GET /v1/employee/payments/pending

Response:
  - 200: []Payment: Oldest first
*/
func (handler *Handler) listPending(writer http.ResponseWriter, request *http.Request) {
	payments, err := handler.paymentService.ListPending(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldPayments: payments})
}

/*
ListDecided returns the decision history.

GET /v1/employee/payments/history

Response:
  - 200: []Payment: Newest decision first
*/
func (handler *Handler) listDecided(writer http.ResponseWriter, request *http.Request) {
	payments, err := handler.paymentService.ListDecided(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldPayments: payments})
}

/*
Approve clears a pending payment.

POST /v1/employee/payments/{id}/approve

Response:
  - 200: Payment: Now approved, with the acting employee recorded
  - 404: ErrNotFound: Unknown payment
  - 409: ErrConflict: Already decided
*/
func (handler *Handler) approve(writer http.ResponseWriter, request *http.Request) {
	handler.decide(writer, request, true)
}

/*
Deny rejects a pending payment.

POST /v1/employee/payments/{id}/deny

Response:
  - 200: Payment: Now denied, with the acting employee recorded
  - 404: ErrNotFound: Unknown payment
  - 409: ErrConflict: Already decided
*/
func (handler *Handler) deny(writer http.ResponseWriter, request *http.Request) {
	handler.decide(writer, request, false)
}

func (handler *Handler) decide(writer http.ResponseWriter, request *http.Request, approve bool) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paymentID := requestutil.Param(request, FieldPaymentID)

	validator := &validate.Validator{}
	validator.Required(FieldPaymentID, paymentID).UUID(FieldPaymentID, paymentID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.paymentService.Decide(request.Context(), paymentID, claims.UserID, approve)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldPayment: entity})
}
