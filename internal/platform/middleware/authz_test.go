// Copyright (c) 2026 Meridian Pay. All rights reserved.
// Author: platform@meridianpay.io

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianpay/portal/internal/platform/ctxutil"
	"github.com/meridianpay/portal/internal/platform/middleware"
	"github.com/meridianpay/portal/internal/platform/sec"
)

// stubVerifier returns a fixed claims/error pair for any token string.
type stubVerifier struct {
	claims *sec.AuthClaims
	err    error
}

func (s stubVerifier) Verify(string) (*sec.AuthClaims, error) {
	return s.claims, s.err
}

// stubRevocations treats the configured set of token strings as revoked.
type stubRevocations struct {
	revoked map[string]bool
}

func (s stubRevocations) IsRevoked(token string) bool {
	return s.revoked[token]
}

func customerClaims() *sec.AuthClaims {
	return &sec.AuthClaims{
		Kind:          sec.KindCustomer,
		UserID:        "0198c5e6-1111-7aaa-8bbb-000000000001",
		Username:      "alice_w",
		AccountNumber: "ZA12345678",
		FullName:      "Alice Walker",
	}
}

func employeeClaims(role sec.Role) *sec.AuthClaims {
	return &sec.AuthClaims{
		Kind:   sec.KindEmployee,
		UserID: "0198c5e6-2222-7aaa-8bbb-000000000002",
		Role:   role,
	}
}

/*
TestAuthenticate verifies the token resolution pipeline: anonymous
pass-through, revocation before verification, and the distinct 401 payloads
for revoked, expired, and invalid tokens.
*/
func TestAuthenticate(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		verifier   stubVerifier
		revoked    map[string]bool
		wantStatus int
		wantBody   string
		wantClaims bool
	}{
		{
			name:       "no header passes through anonymously",
			authHeader: "",
			verifier:   stubVerifier{err: sec.ErrTokenInvalid},
			wantStatus: http.StatusOK,
			wantClaims: false,
		},
		{
			name:       "non-bearer scheme passes through anonymously",
			authHeader: "Basic YWxpY2U6cGFzc3dvcmQ=",
			verifier:   stubVerifier{err: sec.ErrTokenInvalid},
			wantStatus: http.StatusOK,
			wantClaims: false,
		},
		{
			name:       "revoked token rejected before verification",
			authHeader: "Bearer revoked-token",
			verifier:   stubVerifier{claims: customerClaims()},
			revoked:    map[string]bool{"revoked-token": true},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Token has been invalidated",
		},
		{
			name:       "expired token",
			authHeader: "Bearer expired-token",
			verifier:   stubVerifier{err: sec.ErrTokenExpired},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Token expired",
		},
		{
			name:       "invalid token",
			authHeader: "Bearer garbage-token",
			verifier:   stubVerifier{err: sec.ErrTokenInvalid},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Invalid token",
		},
		{
			name:       "valid token injects claims",
			authHeader: "Bearer good-token",
			verifier:   stubVerifier{claims: customerClaims()},
			wantStatus: http.StatusOK,
			wantClaims: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seenClaims *sec.AuthClaims
			var seenToken string

			handler := middleware.Authenticate(tt.verifier, stubRevocations{revoked: tt.revoked})(
				http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
					seenClaims = ctxutil.GetClaims(request.Context())
					seenToken = ctxutil.GetBearerToken(request.Context())
					writer.WriteHeader(http.StatusOK)
				}))

			request := httptest.NewRequest(http.MethodGet, "/v1/payments", nil)
			if tt.authHeader != "" {
				request.Header.Set("Authorization", tt.authHeader)
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantBody != "" {
				assert.Contains(t, recorder.Body.String(), tt.wantBody)
			}

			if tt.wantClaims {
				require.NotNil(t, seenClaims)
				assert.Equal(t, "alice_w", seenClaims.Username)
				assert.Equal(t, "good-token", seenToken)
			} else if tt.wantStatus == http.StatusOK {
				assert.Nil(t, seenClaims)
			}
		})
	}
}

/*
TestRequireGates verifies the three authorization gates against every
principal shape: anonymous requests get 401, authenticated principals of the
wrong kind or rank get 403.
*/
func TestRequireGates(t *testing.T) {
	tests := []struct {
		name       string
		gate       func(http.Handler) http.Handler
		claims     *sec.AuthClaims
		wantStatus int
		wantBody   string
	}{
		// RequireCustomer
		{name: "customer gate anonymous", gate: middleware.RequireCustomer, claims: nil, wantStatus: http.StatusUnauthorized, wantBody: "Access token required"},
		{name: "customer gate customer", gate: middleware.RequireCustomer, claims: customerClaims(), wantStatus: http.StatusOK},
		{name: "customer gate employee", gate: middleware.RequireCustomer, claims: employeeClaims(sec.RoleEmployee), wantStatus: http.StatusForbidden, wantBody: "Customer access required"},
		{name: "customer gate admin", gate: middleware.RequireCustomer, claims: employeeClaims(sec.RoleAdmin), wantStatus: http.StatusForbidden},

		// RequireEmployee
		{name: "employee gate anonymous", gate: middleware.RequireEmployee, claims: nil, wantStatus: http.StatusUnauthorized, wantBody: "Access token required"},
		{name: "employee gate customer", gate: middleware.RequireEmployee, claims: customerClaims(), wantStatus: http.StatusForbidden, wantBody: "Employee access required"},
		{name: "employee gate employee", gate: middleware.RequireEmployee, claims: employeeClaims(sec.RoleEmployee), wantStatus: http.StatusOK},
		{name: "employee gate admin", gate: middleware.RequireEmployee, claims: employeeClaims(sec.RoleAdmin), wantStatus: http.StatusOK},
		{name: "employee gate superadmin", gate: middleware.RequireEmployee, claims: employeeClaims(sec.RoleSuperAdmin), wantStatus: http.StatusOK},
		{name: "employee gate unknown role", gate: middleware.RequireEmployee, claims: employeeClaims(sec.Role("root")), wantStatus: http.StatusForbidden},

		// RequireAdmin
		{name: "admin gate anonymous", gate: middleware.RequireAdmin, claims: nil, wantStatus: http.StatusUnauthorized},
		{name: "admin gate customer", gate: middleware.RequireAdmin, claims: customerClaims(), wantStatus: http.StatusForbidden, wantBody: "Administrator access required"},
		{name: "admin gate employee", gate: middleware.RequireAdmin, claims: employeeClaims(sec.RoleEmployee), wantStatus: http.StatusForbidden, wantBody: "Administrator access required"},
		{name: "admin gate admin", gate: middleware.RequireAdmin, claims: employeeClaims(sec.RoleAdmin), wantStatus: http.StatusOK},
		{name: "admin gate superadmin", gate: middleware.RequireAdmin, claims: employeeClaims(sec.RoleSuperAdmin), wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := tt.gate(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				writer.WriteHeader(http.StatusOK)
			}))

			request := httptest.NewRequest(http.MethodGet, "/v1/protected", nil)
			if tt.claims != nil {
				request = request.WithContext(ctxutil.WithClaims(request.Context(), tt.claims, "raw-token"))
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantBody != "" {
				assert.Contains(t, recorder.Body.String(), tt.wantBody)
			}
		})
	}
}
