// Copyright (c) 2026 Meridian Pay. All rights reserved.
// Author: platform@meridianpay.io

package sec

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newClockedRevocations returns a registry pinned to a fixed clock plus a
// function that advances it.
func newClockedRevocations() (*Revocations, func(d time.Duration)) {
	currentTime := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)

	registry := NewRevocations()
	registry.now = func() time.Time { return currentTime }

	advance := func(d time.Duration) { currentTime = currentTime.Add(d) }
	return registry, advance
}

/*
TestRevocations_RevokeAndLookup verifies the basic revoke/lookup contract,
including idempotency.
*/
func TestRevocations_RevokeAndLookup(t *testing.T) {
	registry, _ := newClockedRevocations()
	expiry := registry.now().Add(15 * time.Minute)

	// 1. Unknown tokens are not revoked
	assert.False(t, registry.IsRevoked("token-a"))

	// 2. Revoking makes the exact string revoked
	registry.Revoke("token-a", expiry)
	assert.True(t, registry.IsRevoked("token-a"))
	assert.False(t, registry.IsRevoked("token-b"))

	// 3. Revoking again is a no-op
	registry.Revoke("token-a", expiry)
	assert.Equal(t, 1, registry.Len())

	// 4. The empty string is never stored
	registry.Revoke("", expiry)
	assert.Equal(t, 1, registry.Len())
	assert.False(t, registry.IsRevoked(""))
}

/*
TestRevocations_AlreadyExpiredNotStored verifies that revoking a token whose
exp claim is already in the past does not grow the registry.
*/
func TestRevocations_AlreadyExpiredNotStored(t *testing.T) {
	registry, _ := newClockedRevocations()

	registry.Revoke("stale-token", registry.now().Add(-time.Second))

	assert.Equal(t, 0, registry.Len())
	assert.False(t, registry.IsRevoked("stale-token"))
}

/*
TestRevocations_SelfEviction verifies that an entry whose token has expired
on its own is dropped by the next lookup.
*/
func TestRevocations_SelfEviction(t *testing.T) {
	registry, advance := newClockedRevocations()

	registry.Revoke("token-a", registry.now().Add(15*time.Minute))
	require.True(t, registry.IsRevoked("token-a"))
	require.Equal(t, 1, registry.Len())

	// 1. Cross the token's own expiry
	advance(16 * time.Minute)

	// 2. The lookup both answers false and evicts the dead entry
	assert.False(t, registry.IsRevoked("token-a"))
	assert.Equal(t, 0, registry.Len())
}

/*
TestRevocations_CompactDropsExpiredFirst verifies that when the registry
crosses the high-water mark, compaction prefers dropping entries that have
already expired before touching live ones.
*/
func TestRevocations_CompactDropsExpiredFirst(t *testing.T) {
	registry, advance := newClockedRevocations()

	// 1. Fill to the high-water mark with tokens that die in 5 minutes
	for i := 0; i < DefaultRevocationHighWater; i++ {
		registry.Revoke(fmt.Sprintf("short-%04d", i), registry.now().Add(5*time.Minute))
	}
	require.Equal(t, DefaultRevocationHighWater, registry.Len())

	// 2. Let them all expire, then add a single live token to trip compaction
	advance(6 * time.Minute)
	registry.Revoke("live-token", registry.now().Add(15*time.Minute))

	// 3. Only the live token survives
	assert.Equal(t, 1, registry.Len())
	assert.True(t, registry.IsRevoked("live-token"))
	assert.False(t, registry.IsRevoked("short-0000"))
}

/*
TestRevocations_CompactKeepsLatestExpiries verifies the second compaction
pass: with every entry still live, the registry truncates to the retain
bound and keeps the entries that expire last.
*/
func TestRevocations_CompactKeepsLatestExpiries(t *testing.T) {
	registry, _ := newClockedRevocations()

	// 1. Insert one more live entry than the high-water mark, each with a
	//    strictly later expiry than the one before it
	total := DefaultRevocationHighWater + 1
	for i := 0; i < total; i++ {
		expiry := registry.now().Add(time.Hour + time.Duration(i)*time.Second)
		registry.Revoke(fmt.Sprintf("token-%04d", i), expiry)
	}

	// 2. Compaction truncated to the retain bound
	require.Equal(t, DefaultRevocationRetain, registry.Len())

	// 3. The latest-expiring half survived, the earliest-expiring did not
	assert.True(t, registry.IsRevoked(fmt.Sprintf("token-%04d", total-1)))
	assert.True(t, registry.IsRevoked(fmt.Sprintf("token-%04d", total-DefaultRevocationRetain)))
	assert.False(t, registry.IsRevoked(fmt.Sprintf("token-%04d", total-DefaultRevocationRetain-1)))
	assert.False(t, registry.IsRevoked("token-0000"))
}
