// Copyright (c) 2026 Meridian Pay. All rights reserved.
// Author: platform@meridianpay.io

// Package normalize canonicalizes identity fields before they are stored,
// looked up, or used as abuse-tracking keys.
//
// # Why normalization matters here
//
// Uniqueness checks and credential lookups compare strings. Without a single
// canonical form, "Alice", "alice", and a full-width "ａｌｉｃｅ" would be
// three different accounts, and a brute-force guard keyed on the raw value
// could be bypassed by re-casing the username. NFKC folding collapses
// compatibility variants and case differences into one stable key.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Username canonicalizes a username: trimmed, NFKC-normalized, case-folded.
func Username(value string) string {
	trimmed := strings.TrimSpace(value)
	return cases.Fold().String(norm.NFKC.String(trimmed))
}

// AccountNumber canonicalizes an account number: trimmed and upper-cased.
// Account numbers are restricted to ASCII alphanumerics by validation.
func AccountNumber(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

// IDNumber canonicalizes a government ID number: trimmed and upper-cased.
func IDNumber(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

// FullName trims surrounding whitespace and collapses internal runs of
// spaces to a single space.
func FullName(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
