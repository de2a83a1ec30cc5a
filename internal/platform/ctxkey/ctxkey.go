// Copyright (c) 2026 Meridian Pay. All rights reserved.
// Author: platform@meridianpay.io

// Package ctxkey defines typed context keys used by middleware and handlers.
//
// # Safety
//
// It is used to store and retrieve per-request values (principal claims,
// bearer token, request ID, logger). Using a private, unexported type for
// keys prevents collisions with third-party packages that might also use
// context for storage.
package ctxkey

// key is an unexported type used for context keys to ensure type safety.
//
// # Collision Prevention
//
// Even if another package uses "request_id" as a string key, it will not
// collide with this key type because Go's [context.Context] uses both the
// value AND the type for lookups.
type key string

const (
	// KeyRequestID is the context key for the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyClaims is the context key for the authenticated principal's [*sec.AuthClaims].
	KeyClaims key = "claims"

	// KeyBearerToken is the context key for the raw bearer token string.
	//
	// Logout needs the exact token string to revoke, not just its decoded
	// claims, so the auth middleware stashes both.
	KeyBearerToken key = "bearer_token"

	// KeyLogger is the context key for the per-request [*log/slog.Logger].
	KeyLogger key = "logger"
)
