// Copyright (c) 2026 Meridian Pay. All rights reserved.
// Author: platform@meridianpay.io

package customer

import (
	"regexp"
	"time"
)

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a customer JWT remains valid.
	// Kept short (15m) to minimize the impact of a leaked token.
	AccessTokenTTL = 15 * time.Minute

	// ResetTokenTTL is the duration a password reset token remains valid.
	// Short-lived (1 hour) for security.
	ResetTokenTTL = 1 * time.Hour

	// ResetTokenLength is the byte length of the random password reset token.
	ResetTokenLength = 32
)

// # Input Formats
//
// Exact-match patterns for every identity field a customer submits. Inputs
// are normalized (trim, case) before matching, so the patterns only accept
// the canonical form.
var (
	// usernameRegex: 3-30 word characters, underscores allowed.
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)

	// accountNumberRegex: IBAN-shaped, 8-34 upper-case alphanumerics.
	accountNumberRegex = regexp.MustCompile(`^[A-Z0-9]{8,34}$`)

	// idNumberRegex: government ID, 5-20 upper-case alphanumerics and dashes.
	idNumberRegex = regexp.MustCompile(`^[A-Z0-9-]{5,20}$`)

	// fullNameRegex: letters and spaces, 2-100 characters.
	fullNameRegex = regexp.MustCompile(`^[a-zA-Z\s]{2,100}$`)
)
