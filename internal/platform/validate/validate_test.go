// Copyright (c) 2026 Meridian Pay. All rights reserved.
// Author: platform@meridianpay.io

package validate_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianpay/portal/internal/platform/apperr"
	"github.com/meridianpay/portal/internal/platform/validate"
)

/*
TestValidator_Required verifies the presence rule including whitespace-only
input.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "non-empty value", value: "alice", wantErr: false},
		{name: "empty string", value: "", wantErr: true},
		{name: "whitespace only", value: "   \t", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			err := v.Required("username", tt.value).Err()

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
			require.Len(t, appErr.Details, 1)
			assert.Equal(t, "username", appErr.Details[0].Field)
		})
	}
}

/*
TestValidator_Password verifies the full password policy: length floor plus
the four character classes.
*/
func TestValidator_Password(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "meets full policy", value: "Sup3rSecret!Pass", wantErr: false},
		{name: "exactly twelve characters", value: "Abcdefgh1jk!", wantErr: false},
		{name: "strong but short", value: "Short1!", wantErr: true},
		{name: "eleven characters", value: "Abcdefgh1j!", wantErr: true},
		{name: "missing uppercase", value: "abcdefgh1jkl!", wantErr: true},
		{name: "missing lowercase", value: "ABCDEFGH1JKL!", wantErr: true},
		{name: "missing digit", value: "Abcdefghijkl!", wantErr: true},
		{name: "missing special", value: "Abcdefgh1jkl", wantErr: true},
		{name: "special outside allowed set", value: "Abcdefgh1jkl#", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			err := v.Password("password", tt.value).Err()

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

/*
TestValidator_Pattern verifies regex-based field rules with the message
passed through to the field error.
*/
func TestValidator_Pattern(t *testing.T) {
	accountRegex := regexp.MustCompile(`^[A-Z0-9]{8,34}$`)

	// 1. Matching value passes
	v := &validate.Validator{}
	assert.NoError(t, v.Pattern("account_number", "ZA12345678", accountRegex, "Invalid account number").Err())

	// 2. Non-matching value carries the caller's message
	v = &validate.Validator{}
	err := v.Pattern("account_number", "za-123", accountRegex, "Invalid account number").Err()
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	require.Len(t, appErr.Details, 1)
	assert.Equal(t, "Invalid account number", appErr.Details[0].Message)
}

/*
TestValidator_OneOf verifies membership checks against an allowed set.
*/
func TestValidator_OneOf(t *testing.T) {
	v := &validate.Validator{}
	assert.NoError(t, v.OneOf("currency", "ZAR", "USD", "EUR", "ZAR").Err())

	v = &validate.Validator{}
	err := v.OneOf("currency", "BTC", "USD", "EUR", "ZAR").Err()
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Contains(t, appErr.Details[0].Message, "USD, EUR, ZAR")
}

/*
TestValidator_CollectsAllFailures verifies that one chain reports every
failed field at once.
*/
func TestValidator_CollectsAllFailures(t *testing.T) {
	v := &validate.Validator{}
	err := v.
		Required("username", "").
		Password("password", "weak").
		MaxLen("full_name", "This name is most certainly much longer than allowed", 10).
		Err()

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Len(t, appErr.Details, 3)
	assert.True(t, v.HasErrors())
}

/*
TestValidator_UUID verifies UUID acceptance across versions and rejection of
malformed values.
*/
func TestValidator_UUID(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "uuidv7", value: "0198c5e6-1111-7aaa-8bbb-000000000001", wantErr: false},
		{name: "uppercase accepted", value: "0198C5E6-1111-7AAA-8BBB-000000000001", wantErr: false},
		{name: "missing segment", value: "0198c5e6-1111-7aaa-8bbb", wantErr: true},
		{name: "not hex", value: "zzzzzzzz-1111-7aaa-8bbb-000000000001", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			err := v.UUID("id", tt.value).Err()

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
