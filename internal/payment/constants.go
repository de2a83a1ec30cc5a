// Copyright (c) 2026 Meridian Pay. All rights reserved.
// Author: platform@meridianpay.io

package payment

import "regexp"

// # Capture Constraints

const (
	// DefaultProvider is the transfer network recorded when the customer
	// does not choose one. SWIFT is currently the only supported network.
	DefaultProvider = "SWIFT"

	// MaxAmount caps a single payment request. Anything larger goes through
	// the relationship-manager desk, not the self-service portal.
	MaxAmount = 1_000_000.00

	// referenceRandomBytes is the entropy appended to generated references.
	referenceRandomBytes = 4
)

// Currencies the portal accepts for international payments.
var SupportedCurrencies = []string{
	"USD", "EUR", "GBP", "ZAR", "AUD", "CAD", "JPY", "CHF",
}

// # Input Formats
var (
	// swiftRegex: BIC format, 8 or 11 characters (bank, country, location,
	// optional branch).
	swiftRegex = regexp.MustCompile(`^[A-Z]{6}[A-Z0-9]{2}([A-Z0-9]{3})?$`)

	// payeeAccountRegex mirrors the customer account-number shape.
	payeeAccountRegex = regexp.MustCompile(`^[A-Z0-9]{8,34}$`)

	// payeeCountryRegex: ISO 3166-1 alpha-2.
	payeeCountryRegex = regexp.MustCompile(`^[A-Z]{2}$`)

	// referenceRegex bounds customer-supplied references.
	referenceRegex = regexp.MustCompile(`^[A-Za-z0-9-]{4,40}$`)
)
