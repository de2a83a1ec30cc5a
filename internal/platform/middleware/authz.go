// Copyright (c) 2026 Meridian Pay. All rights reserved.
// Author: platform@meridianpay.io

package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/meridianpay/portal/internal/platform/apperr"
	"github.com/meridianpay/portal/internal/platform/constants"
	"github.com/meridianpay/portal/internal/platform/ctxutil"
	"github.com/meridianpay/portal/internal/platform/respond"
	"github.com/meridianpay/portal/internal/platform/sec"
)

// # Authentication

// TokenVerifier validates a signed access token and returns its claims.
// Satisfied by [sec.TokenService].
type TokenVerifier interface {
	Verify(tokenString string) (*sec.AuthClaims, error)
}

// RevocationChecker reports whether an exact token string has been revoked.
// Satisfied by [sec.Revocations].
type RevocationChecker interface {
	IsRevoked(token string) bool
}

// Authenticate resolves the Bearer token on every request.
//
// The checks run in a fixed order: extract, revocation lookup, signature and
// expiry verification. Revocation is checked before verification so that an
// invalidated token is rejected as revoked even after it also expires.
//
// A request without an Authorization header passes through anonymously; the
// Require* gates below decide whether anonymity is acceptable for a given
// route. A request that presents a token which fails any check is rejected
// outright, HTTP 401 with a message naming which check failed.
func Authenticate(verifier TokenVerifier, revocations RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// 1. Extract the Bearer token
			token, present := bearerToken(request)
			if !present {
				next.ServeHTTP(writer, request)
				return
			}

			// 2. Reject revoked tokens before any cryptographic work
			if revocations.IsRevoked(token) {
				respond.Error(writer, request, apperr.Unauthorized("Token has been invalidated"))
				return
			}

			// 3. Verify signature and temporal claims
			claims, err := verifier.Verify(token)
			if err != nil {
				if errors.Is(err, sec.ErrTokenExpired) {
					respond.Error(writer, request, apperr.Unauthorized("Token expired"))
					return
				}
				respond.Error(writer, request, apperr.Unauthorized("Invalid token"))
				return
			}

			// 4. Inject the verified principal into the request context. The
			// raw token travels alongside the claims so logout can revoke the
			// exact string it was called with.
			ctx := ctxutil.WithClaims(request.Context(), claims, token)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(request *http.Request) (string, bool) {
	header := request.Header.Get(constants.HeaderAuthorization)
	if header == "" {
		return "", false
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

// # Authorization Gates

// RequireCustomer admits only authenticated customer tokens.
//
// An anonymous request gets 401; an authenticated staff token gets 403. The
// distinction matters to the SPAs: 401 sends the user to the login screen,
// 403 tells them they are on the wrong portal.
func RequireCustomer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetClaims(request.Context())
		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized("Access token required"))
			return
		}
		if !claims.IsCustomer() {
			respond.Error(writer, request, apperr.Forbidden("Customer access required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireEmployee admits any authenticated staff token, whatever its role.
func RequireEmployee(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetClaims(request.Context())
		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized("Access token required"))
			return
		}
		if !claims.IsEmployee() || !claims.Role.Valid() {
			respond.Error(writer, request, apperr.Forbidden("Employee access required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireAdmin admits staff tokens carrying the admin or superadmin role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetClaims(request.Context())
		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized("Access token required"))
			return
		}
		if !claims.IsEmployee() || !claims.Role.IsAdmin() {
			respond.Error(writer, request, apperr.Forbidden("Administrator access required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
