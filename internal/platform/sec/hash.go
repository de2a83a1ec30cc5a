// Copyright (c) 2026 Meridian Pay. All rights reserved.
// Author: platform@meridianpay.io

package sec

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHashCost is the bcrypt work factor used for all stored credentials.
//
// Cost 12 is deliberately above bcrypt.DefaultCost: these are banking
// credentials and registration/login are rate-limited, so the extra CPU per
// hash is acceptable.
const PasswordHashCost = 12

// HashPassword hashes a plain-text password using the bcrypt algorithm.
//
// bcrypt rejects inputs longer than 72 bytes; the error is propagated rather
// than silently truncating the password.
func HashPassword(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), PasswordHashCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plain-text password with its stored hash.
//
// It never panics: a malformed or truncated digest simply compares as false.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}
