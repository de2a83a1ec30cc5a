// Copyright (c) 2026 Meridian Pay. All rights reserved.
// Author: platform@meridianpay.io

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (hashing, JWT signing,
// revocation) from the domain logic. It acts as an infrastructure service
// injected into the application layer via small interfaces.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenKind discriminates the two claim shapes the portal issues.
//
// Customer tokens and staff tokens carry different identity fields; the
// "type" claim is the tag that makes the union explicit, so role gates can
// switch on it exhaustively instead of probing for optional fields.
type TokenKind string

const (
	// KindCustomer marks a token issued by the customer portal login/registration.
	KindCustomer TokenKind = "customer"

	// KindEmployee marks a token issued by the staff portal login.
	KindEmployee TokenKind = "employee"
)

// Verification failure modes, distinguished so the 401 payload can tell an
// expired session apart from a forged or corrupted token.
var (
	// ErrTokenExpired is returned when the token's exp claim is in the past.
	ErrTokenExpired = errors.New("sec: token expired")

	// ErrTokenInvalid is returned for signature mismatches and malformed tokens.
	ErrTokenInvalid = errors.New("sec: token invalid")
)

// AuthClaims represents the payload embedded inside a portal JWT.
//
// # Why custom claims?
//
// By embedding identity and role directly inside the JWT, the authorization
// middleware can resolve the active principal WITHOUT querying the database
// on every request. Validity is purely a function of signature and expiry,
// plus the explicit revocation registry.
//
// Customer tokens populate Username, AccountNumber, and FullName; employee
// tokens populate Role. Kind is the discriminator and is always set.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Kind tags the claim shape: "customer" or "employee".
	Kind TokenKind `json:"type"`

	// UserID is the principal's primary key (UUIDv7).
	UserID string `json:"uid"`

	// Customer-only claims.
	Username      string `json:"unm,omitempty"`
	AccountNumber string `json:"acc,omitempty"`
	FullName      string `json:"nam,omitempty"`

	// Employee-only claim.
	Role Role `json:"rol,omitempty"`
}

// IsCustomer reports whether the claims were issued to a customer principal.
func (c *AuthClaims) IsCustomer() bool { return c.Kind == KindCustomer }

// IsEmployee reports whether the claims were issued to a staff principal.
func (c *AuthClaims) IsEmployee() bool { return c.Kind == KindEmployee }

// TokenService handles generation and verification of JWT tokens using HS256.
//
// The signing secret is process-wide configuration loaded exactly once at
// startup; see config.Load for the production presence check.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a TokenService signing with the given shared secret.
func NewTokenService(secret []byte, issuer string) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, errors.New("sec: signing secret must not be empty")
	}

	return &TokenService{secret: secret, issuer: issuer}, nil
}

// IssueCustomerToken creates a signed JWT for a customer principal.
//
// The claims mirror the customer portal session: id, username, account
// number, and display name, tagged type="customer".
func (service *TokenService) IssueCustomerToken(userID, username, accountNumber, fullName string, timeToLive time.Duration) (string, error) {
	claims := AuthClaims{
		RegisteredClaims: service.registered(userID, timeToLive),
		Kind:             KindCustomer,
		UserID:           userID,
		Username:         username,
		AccountNumber:    accountNumber,
		FullName:         fullName,
	}

	return service.sign(claims)
}

// IssueEmployeeToken creates a signed JWT for a staff principal.
//
// Employee claims are intentionally minimal: id and role, tagged
// type="employee".
func (service *TokenService) IssueEmployeeToken(userID string, role Role, timeToLive time.Duration) (string, error) {
	claims := AuthClaims{
		RegisteredClaims: service.registered(userID, timeToLive),
		Kind:             KindEmployee,
		UserID:           userID,
		Role:             role,
	}

	return service.sign(claims)
}

// Verify checks the signature and validity window of a JWT string.
//
// # Returns
//   - The decoded [*AuthClaims] on success.
//   - [ErrTokenExpired] when the token is structurally sound but past exp.
//   - [ErrTokenInvalid] for every other failure (bad signature, wrong
//     algorithm, malformed payload).
func (service *TokenService) Verify(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Pin the algorithm. Accepting whatever "alg" the token announces
		// would let an attacker downgrade to "none".
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

func (service *TokenService) registered(subject string, timeToLive time.Duration) jwt.RegisteredClaims {
	currentTime := time.Now()
	return jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    service.issuer,
		IssuedAt:  jwt.NewNumericDate(currentTime),
		ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
	}
}

func (service *TokenService) sign(claims AuthClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}
