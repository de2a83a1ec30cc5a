// Copyright (c) 2026 Meridian Pay. All rights reserved.
// Author: platform@meridianpay.io

package sec

import (
	"sort"
	"sync"
	"time"
)

// Default capacity bounds for the in-process revocation registry.
const (
	// DefaultRevocationHighWater is the entry count that triggers compaction.
	DefaultRevocationHighWater = 1000

	// DefaultRevocationRetain is the number of entries kept after compaction.
	DefaultRevocationRetain = 500
)

// Revocations is a bounded, process-local registry of revoked token strings.
//
// # Design
//
// Logout must invalidate a token before its natural expiry, but tokens are
// otherwise stateless, so the server keeps an explicit denylist. Entries are
// indexed by the token's own expiry: once a token would fail verification
// anyway, its entry is garbage and self-evicts on the next lookup or
// compaction. When the registry still exceeds the high-water mark after
// dropping expired entries, it keeps the entries with the LATEST expiries:
// those are the ones that still matter, since everything earlier dies
// soonest on its own.
//
// The registry is deliberately single-instance, in-memory state: restarts
// clear it, and horizontal scaling would require an external shared store.
// Both are accepted operational limitations because every token also expires
// within the hour.
//
// # Concurrency
//
// All methods are safe for concurrent use.
type Revocations struct {
	mu        sync.Mutex
	entries   map[string]time.Time // token -> token's own expiry
	highWater int
	retain    int

	// now is injectable for tests; defaults to time.Now.
	now func() time.Time
}

// NewRevocations creates an empty registry with the default capacity bounds.
func NewRevocations() *Revocations {
	return &Revocations{
		entries:   make(map[string]time.Time),
		highWater: DefaultRevocationHighWater,
		retain:    DefaultRevocationRetain,
		now:       time.Now,
	}
}

// Revoke adds the exact token string to the registry. Idempotent.
//
// expiresAt is the token's own exp claim; a token that is already past it
// is not stored, since verification rejects it regardless.
func (r *Revocations) Revoke(token string, expiresAt time.Time) {
	if token == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !expiresAt.After(r.now()) {
		return
	}

	r.entries[token] = expiresAt

	if len(r.entries) > r.highWater {
		r.compact()
	}
}

// IsRevoked reports whether the exact token string has been revoked and is
// still inside its validity window.
func (r *Revocations) IsRevoked(token string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	expiresAt, found := r.entries[token]
	if !found {
		return false
	}

	// Self-eviction: an expired entry is dead weight. Verification already
	// fails on exp, so the registry no longer needs to remember it.
	if !expiresAt.After(r.now()) {
		delete(r.entries, token)
		return false
	}

	return true
}

// Len returns the current number of retained entries.
func (r *Revocations) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// compact enforces the capacity bound. Caller must hold r.mu.
//
// Pass 1 drops entries whose tokens have expired on their own. If the
// registry is still over the high-water mark, pass 2 keeps only the r.retain
// entries with the latest expiries.
func (r *Revocations) compact() {
	currentTime := r.now()

	for token, expiresAt := range r.entries {
		if !expiresAt.After(currentTime) {
			delete(r.entries, token)
		}
	}

	if len(r.entries) <= r.highWater {
		return
	}

	type entry struct {
		token     string
		expiresAt time.Time
	}

	ordered := make([]entry, 0, len(r.entries))
	for token, expiresAt := range r.entries {
		ordered = append(ordered, entry{token: token, expiresAt: expiresAt})
	}

	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].expiresAt.After(ordered[j].expiresAt)
	})

	for _, victim := range ordered[r.retain:] {
		delete(r.entries, victim.token)
	}
}
