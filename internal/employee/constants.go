// Copyright (c) 2026 Meridian Pay. All rights reserved.
// Author: platform@meridianpay.io

package employee

import (
	"regexp"
	"time"
)

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a staff JWT remains valid. Longer than
	// the customer TTL (60m vs 15m): staff work sessions span the payment
	// review queue and re-login every quarter hour proved hostile.
	AccessTokenTTL = 60 * time.Minute
)

// usernameRegex mirrors the customer username format: 3-30 word characters.
var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
