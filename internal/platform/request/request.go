// Copyright (c) 2026 Meridian Pay. All rights reserved.
// Author: platform@meridianpay.io

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meridianpay/portal/internal/platform/apperr"
	"github.com/meridianpay/portal/internal/platform/ctxutil"
	"github.com/meridianpay/portal/internal/platform/sec"
	"github.com/meridianpay/portal/internal/platform/validate"
)

// DecodeJSON reads the request body and decodes it into the target structure.
//
// Unknown fields are rejected so that a typo'd payload fails fast instead of
// silently dropping a field. The body size is already capped by the MaxBody
// middleware.
func DecodeJSON(request *http.Request, target interface{}) error {
	decoder := json.NewDecoder(request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// Param retrieves a named URL parameter from the request.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// Claims extracts the authenticated principal claims from the request context.
//
// Returns nil if the request is not authenticated.
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetClaims(request.Context())
}

// RequiredClaims ensures the request is authenticated and returns the claims.
//
// # Returns
//   - *sec.AuthClaims: The authenticated principal claims
//   - error: apperr.Unauthorized if the request is not authenticated
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetClaims(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Access token required")
	}
	return claims, nil
}

// BearerToken returns the raw token string the current request authenticated
// with. Logout hands this exact string to the revocation registry.
func BearerToken(request *http.Request) string {
	return ctxutil.GetBearerToken(request.Context())
}
