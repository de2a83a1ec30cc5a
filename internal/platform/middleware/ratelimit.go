// Copyright (c) 2026 Meridian Pay. All rights reserved.
// Author: platform@meridianpay.io

package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/meridianpay/portal/internal/platform/apperr"
	"github.com/meridianpay/portal/internal/platform/constants"
	"github.com/meridianpay/portal/internal/platform/respond"
)

// # Rate-Limit Policies
//
// Each policy bounds the number of requests a single client IP may make
// inside a fixed window. Policies with SkipSuccessful only consume budget on
// failed attempts: a customer who logs in correctly on the first try never
// burns login quota, while an attacker guessing passwords does.

// Policy describes one fixed-window rate-limit budget.
type Policy struct {

	// Name identifies the policy in logs.
	Name string

	// Window is the fixed accounting interval. All requests inside one
	// window share a single counter; the counter resets at the window edge.
	Window time.Duration

	// Max is the number of requests allowed per window per key.
	Max int

	// SkipSuccessful refunds the request when the handler responds with a
	// status below 400.
	SkipSuccessful bool
}

var (
	// PolicyGeneral is the portal-wide request budget.
	PolicyGeneral = Policy{Name: "general", Window: 15 * time.Minute, Max: 100}

	// PolicyAuth bounds authentication attempts. Successful logins are
	// refunded so legitimate users are never locked out by their own
	// activity.
	PolicyAuth = Policy{Name: "auth", Window: 15 * time.Minute, Max: 5, SkipSuccessful: true}

	// PolicyPayment bounds payment submissions.
	PolicyPayment = Policy{Name: "payment", Window: 15 * time.Minute, Max: 10}

	// PolicySensitive bounds the rare, high-impact operations (password
	// changes and resets). All attempts count, successful or not.
	PolicySensitive = Policy{Name: "sensitive", Window: time.Hour, Max: 3}

	// PolicyBruteForce is the stricter budget stacked on top of PolicyAuth
	// on credential endpoints: three failed attempts per window.
	PolicyBruteForce = Policy{Name: "brute_force", Window: 15 * time.Minute, Max: 3, SkipSuccessful: true}
)

// # Fixed-Window Limiter

// window is one client's counter for the current accounting interval.
type window struct {
	count   int
	resetAt time.Time
}

// Decision is the outcome of charging one request against a limiter.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Limiter enforces one [Policy] across all client keys.
//
// Each Limiter owns its window table. Limiters are plain values created by
// the router wiring and shared by reference between routes that pool a
// budget; two routes mounted on the same Limiter draw from the same
// counters, two separate Limiters never interact.
type Limiter struct {
	policy Policy

	mu      sync.Mutex
	windows map[string]*window

	// now is replaceable in tests.
	now func() time.Time
}

// NewLimiter creates a limiter enforcing the given policy.
func NewLimiter(policy Policy) *Limiter {
	return &Limiter{
		policy:  policy,
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// Policy returns the policy this limiter enforces.
func (l *Limiter) Policy() Policy {
	return l.policy
}

// Allow charges one request for key and reports whether it fits the budget.
//
// The first request after a window elapses opens a fresh window; request
// Max+1 and onward inside a live window are rejected but still observed, so
// Remaining stays at zero until the window resets.
func (l *Limiter) Allow(key string) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	currentTime := l.now()

	win, found := l.windows[key]
	if !found || !currentTime.Before(win.resetAt) {
		win = &window{resetAt: currentTime.Add(l.policy.Window)}
		l.windows[key] = win
	}

	win.count++

	remaining := l.policy.Max - win.count
	if remaining < 0 {
		remaining = 0
	}

	return Decision{
		Allowed:   win.count <= l.policy.Max,
		Limit:     l.policy.Max,
		Remaining: remaining,
		ResetAt:   win.resetAt,
	}
}

// forgive refunds one request for key. Used by SkipSuccessful policies when
// the handler reports success. A window that already reset is left alone.
func (l *Limiter) forgive(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	win, found := l.windows[key]
	if !found || !l.now().Before(win.resetAt) {
		return
	}
	if win.count > 0 {
		win.count--
	}
}

// StartCleanup evicts elapsed windows in the background until ctx is
// cancelled. Without it the window table only grows between restarts.
func (l *Limiter) StartCleanup(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				l.mu.Lock()
				currentTime := l.now()
				for key, win := range l.windows {
					if !currentTime.Before(win.resetAt) {
						delete(l.windows, key)
					}
				}
				l.mu.Unlock()
			case <-ctx.Done():
				return
			}
		}
	}()
}

// # HTTP Integration

// Handler adapts the limiter into chi middleware.
//
// Every response carries the X-RateLimit-* headers describing the caller's
// standing. A rejected request receives 429 with Retry-After and reaches no
// downstream handler.
func (l *Limiter) Handler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			key := RealIP(request)
			decision := l.Allow(key)

			header := writer.Header()
			header.Set(constants.HeaderRateLimitLimit, strconv.Itoa(decision.Limit))
			header.Set(constants.HeaderRateLimitLeft, strconv.Itoa(decision.Remaining))
			header.Set(constants.HeaderRateLimitReset, strconv.FormatInt(decision.ResetAt.Unix(), 10))

			if !decision.Allowed {
				retryAfter := int(time.Until(decision.ResetAt).Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				header.Set(constants.HeaderRetryAfter, strconv.Itoa(retryAfter))
				respond.Error(writer, request, apperr.RateLimited(retryAfter))
				return
			}

			if !l.policy.SkipSuccessful {
				next.ServeHTTP(writer, request)
				return
			}

			// Observe the handler outcome so successful attempts can be
			// refunded.
			recorder := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}
			next.ServeHTTP(recorder, request)

			if recorder.status < http.StatusBadRequest {
				l.forgive(key)
			}
		})
	}
}
