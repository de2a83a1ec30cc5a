// Copyright (c) 2026 Meridian Pay. All rights reserved.
// Author: platform@meridianpay.io

package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meridianpay/portal/internal/platform/normalize"
)

/*
TestUsername verifies canonicalization: trimming, case folding, and NFKC
compatibility folding of full-width characters.
*/
func TestUsername(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "already canonical", input: "alice_w", want: "alice_w"},
		{name: "trims whitespace", input: "  alice_w  ", want: "alice_w"},
		{name: "folds case", input: "Alice_W", want: "alice_w"},
		{name: "folds full-width to ascii", input: "ａｌｉｃｅ", want: "alice"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.Username(tt.input))
		})
	}
}

/*
TestAccountNumber verifies upper-casing and trimming.
*/
func TestAccountNumber(t *testing.T) {
	assert.Equal(t, "ZA12345678", normalize.AccountNumber(" za12345678 "))
	assert.Equal(t, "ZA12345678", normalize.AccountNumber("ZA12345678"))
}

/*
TestIDNumber verifies upper-casing and trimming.
*/
func TestIDNumber(t *testing.T) {
	assert.Equal(t, "AB-12345", normalize.IDNumber(" ab-12345 "))
}

/*
TestFullName verifies that internal runs of whitespace collapse to single
spaces.
*/
func TestFullName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "single spaces preserved", input: "Alice Walker", want: "Alice Walker"},
		{name: "collapses runs", input: "  Alice   May \t Walker ", want: "Alice May Walker"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.FullName(tt.input))
		})
	}
}
