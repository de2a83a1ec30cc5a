// Copyright (c) 2026 Meridian Pay. All rights reserved.
// Author: platform@meridianpay.io

package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/meridianpay/portal/internal/platform/apperr"
	"github.com/meridianpay/portal/internal/platform/sec"
	"github.com/meridianpay/portal/pkg/uuidv7"
)

// Service implements the payment capture and approval use cases.
type Service struct {
	paymentRepository Repository
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(paymentRepo Repository) *Service {
	return &Service{paymentRepository: paymentRepo}
}

// # Capture Flow

// CreateInput holds the data required to capture a payment request.
type CreateInput struct {
	CustomerID         string
	Amount             float64
	Currency           string
	Provider           string
	PayeeName          string
	PayeeAccountNumber string
	PayeeBank          string
	PayeeCountry       string
	SwiftCode          string
	Reference          string
}

/*
Create captures a new payment request in the pending state.

Description: Canonicalizes codes to upper case, defaults the provider, and
generates a unique reference when the customer does not supply one.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Payment: The captured request (status pending)
  - err: Conflict (duplicate reference) or storage errors
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Payment, error) {
	provider := strings.ToUpper(strings.TrimSpace(input.Provider))
	if provider == "" {
		provider = DefaultProvider
	}

	reference := strings.TrimSpace(input.Reference)
	if reference == "" {
		generated, err := generateReference()
		if err != nil {
			return nil, fmt.Errorf("payment_service_reference_failed: %w", err)
		}
		reference = generated
	}

	entity := &Payment{
		ID:                 uuidv7.New(),
		CustomerID:         input.CustomerID,
		Amount:             input.Amount,
		Currency:           strings.ToUpper(input.Currency),
		Provider:           provider,
		PayeeName:          strings.TrimSpace(input.PayeeName),
		PayeeAccountNumber: strings.ToUpper(strings.TrimSpace(input.PayeeAccountNumber)),
		PayeeBank:          strings.TrimSpace(input.PayeeBank),
		PayeeCountry:       strings.ToUpper(strings.TrimSpace(input.PayeeCountry)),
		SwiftCode:          strings.ToUpper(strings.TrimSpace(input.SwiftCode)),
		Reference:          reference,
		Status:             StatusPending,
	}

	if err := service.paymentRepository.Create(context, entity); err != nil {
		return nil, err
	}

	return entity, nil
}

// generateReference builds a collision-resistant customer-visible reference.
func generateReference() (string, error) {
	random, err := sec.GenerateSecureToken(referenceRandomBytes)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("SWIFT-%d-%s", time.Now().UnixMilli(), strings.ToUpper(random)), nil
}

// # Customer Views

/*
ListOwn returns the calling customer's payment history, newest first.

Parameters:
  - context: context.Context
  - customerID: string

Returns:
  - []*Payment: The customer's payments
  - err: Storage errors
*/
func (service *Service) ListOwn(context context.Context, customerID string) ([]*Payment, error) {
	payments, err := service.paymentRepository.ListByCustomer(context, customerID)
	if err != nil {
		return nil, fmt.Errorf("payment_service_list_own_failed: %w", err)
	}
	return payments, nil
}

/*
GetOwn returns one payment, but only to the customer who captured it.

Description: Another customer's payment is indistinguishable from a
nonexistent one: both come back NotFound, never Forbidden, so payment IDs
cannot be probed.

Parameters:
  - context: context.Context
  - customerID: string
  - paymentID: string

Returns:
  - *Payment: The entity
  - err: NotFound or storage errors
*/
func (service *Service) GetOwn(context context.Context, customerID, paymentID string) (*Payment, error) {
	entity, err := service.paymentRepository.FindByID(context, paymentID)
	if err != nil {
		return nil, apperr.NotFound("Payment")
	}

	if entity.CustomerID != customerID {
		return nil, apperr.NotFound("Payment")
	}

	return entity, nil
}

// # Review Workflow

/*
ListPending returns the staff review queue, oldest request first.

Parameters:
  - context: context.Context

Returns:
  - []*Payment: Pending requests
  - err: Storage errors
*/
func (service *Service) ListPending(context context.Context) ([]*Payment, error) {
	payments, err := service.paymentRepository.ListByStatus(context, StatusPending)
	if err != nil {
		return nil, fmt.Errorf("payment_service_list_pending_failed: %w", err)
	}
	return payments, nil
}

/*
ListDecided returns the full decision history, newest decision first.

Parameters:
  - context: context.Context

Returns:
  - []*Payment: Approved and denied requests
  - err: Storage errors
*/
func (service *Service) ListDecided(context context.Context) ([]*Payment, error) {
	payments, err := service.paymentRepository.ListDecided(context)
	if err != nil {
		return nil, fmt.Errorf("payment_service_list_decided_failed: %w", err)
	}
	return payments, nil
}

/*
Decide moves a pending payment to approved or denied.

Description: Records which employee acted and when. The transition is guarded
at the storage layer; a payment that was decided concurrently (or does not
exist) is reported accurately instead of being silently re-decided.

Parameters:
  - context: context.Context
  - paymentID: string
  - actorID: string (the reviewing employee)
  - approve: bool

Returns:
  - *Payment: The decided entity
  - err: NotFound, Conflict (already decided), or storage errors
*/
func (service *Service) Decide(context context.Context, paymentID, actorID string, approve bool) (*Payment, error) {
	status := StatusDenied
	if approve {
		status = StatusApproved
	}

	transitioned, err := service.paymentRepository.Decide(context, paymentID, status, actorID, time.Now())
	if err != nil {
		return nil, err
	}

	entity, findErr := service.paymentRepository.FindByID(context, paymentID)
	if findErr != nil {
		return nil, apperr.NotFound("Payment")
	}

	if !transitioned {
		return nil, apperr.Conflict("Payment has already been decided")
	}

	return entity, nil
}
