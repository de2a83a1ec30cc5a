// Copyright (c) 2026 Meridian Pay. All rights reserved.
// Author: platform@meridianpay.io

package sec_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianpay/portal/internal/platform/sec"
)

/*
TestHashPassword_RoundTrip verifies that a hashed password verifies against
the original plaintext and nothing else.
*/
func TestHashPassword_RoundTrip(t *testing.T) {
	const plaintext = "Sup3rSecret!Passw0rd"

	digest, err := sec.HashPassword(plaintext)
	require.NoError(t, err)
	require.NotEmpty(t, digest)

	// A bcrypt digest never equals its input
	assert.NotEqual(t, plaintext, digest)

	assert.True(t, sec.CheckPasswordHash(plaintext, digest))
	assert.False(t, sec.CheckPasswordHash("Sup3rSecret!Passw0rd ", digest))
	assert.False(t, sec.CheckPasswordHash("wrong", digest))
}

/*
TestHashPassword_DistinctSalts verifies that hashing the same plaintext twice
produces different digests (per-hash salt).
*/
func TestHashPassword_DistinctSalts(t *testing.T) {
	const plaintext = "Sup3rSecret!Passw0rd"

	first, err := sec.HashPassword(plaintext)
	require.NoError(t, err)
	second, err := sec.HashPassword(plaintext)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, sec.CheckPasswordHash(plaintext, first))
	assert.True(t, sec.CheckPasswordHash(plaintext, second))
}

/*
TestHashPassword_OverLengthInput verifies that input beyond bcrypt's 72-byte
limit is rejected instead of silently truncated.
*/
func TestHashPassword_OverLengthInput(t *testing.T) {
	tooLong := strings.Repeat("a", 80)

	_, err := sec.HashPassword(tooLong)
	assert.Error(t, err)
}

/*
TestCheckPasswordHash_MalformedDigest verifies that verification against a
corrupt digest returns false rather than panicking.
*/
func TestCheckPasswordHash_MalformedDigest(t *testing.T) {
	assert.False(t, sec.CheckPasswordHash("anything", ""))
	assert.False(t, sec.CheckPasswordHash("anything", "not-a-bcrypt-digest"))
	assert.False(t, sec.CheckPasswordHash("anything", "$2a$12$tooshort"))
}
