package server

import (
	"fmt"
	"sync"
	"time"
)

// RateLimiter manages per-client request rate limiting and daily quotas.
type RateLimiter struct {
	mu sync.RWMutex

	// Request rate limiting
	requestsPerMinute int
	requestsPerHour   int

	// Daily quotas
	maxImagesPerDay int64
	maxPixelsPerDay int64

	// Storage for tracking usage
	clients map[string]*clientUsage
}

// clientUsage tracks usage for a single client IP.
type clientUsage struct {
	requestsLastMinute int
	requestsLastHour   int
	imagesToday        int64
	pixelsToday        int64

	lastRequestTime time.Time
	dayStartTime    time.Time
}

// NewRateLimiter creates a rate limiter with the given limits. A limit of
// zero disables that particular check.
func NewRateLimiter(requestsPerMinute, requestsPerHour int, maxImagesPerDay, maxPixelsPerDay int64) *RateLimiter {
	return &RateLimiter{
		requestsPerMinute: requestsPerMinute,
		requestsPerHour:   requestsPerHour,
		maxImagesPerDay:   maxImagesPerDay,
		maxPixelsPerDay:   maxPixelsPerDay,
		clients:           make(map[string]*clientUsage),
	}
}

// Allow checks whether a render of the given pixel count is permitted for
// the client, and records it if so.
func (rl *RateLimiter) Allow(clientID string, pixels int64) error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	usage := rl.getOrCreateUsage(clientID, now)

	rl.resetCountersIfNeeded(usage, now)

	if err := rl.checkRateLimits(usage, now); err != nil {
		return err
	}

	if err := rl.checkDailyQuotas(usage, pixels, now); err != nil {
		return err
	}

	usage.requestsLastMinute++
	usage.requestsLastHour++
	usage.imagesToday++
	usage.pixelsToday += pixels
	usage.lastRequestTime = now

	return nil
}

// resetCountersIfNeeded resets usage counters when time periods change.
func (rl *RateLimiter) resetCountersIfNeeded(usage *clientUsage, now time.Time) {
	if now.Day() != usage.dayStartTime.Day() || now.Month() != usage.dayStartTime.Month() {
		usage.imagesToday = 0
		usage.pixelsToday = 0
		usage.dayStartTime = now
	}

	if now.Sub(usage.lastRequestTime) >= time.Minute {
		usage.requestsLastMinute = 0
	}
	if now.Sub(usage.lastRequestTime) >= time.Hour {
		usage.requestsLastHour = 0
	}
}

// checkRateLimits checks minute and hour rate limits.
func (rl *RateLimiter) checkRateLimits(usage *clientUsage, now time.Time) error {
	if rl.requestsPerMinute > 0 && usage.requestsLastMinute >= rl.requestsPerMinute {
		return &RateLimitError{
			Type:       "minute",
			Limit:      rl.requestsPerMinute,
			RetryAfter: time.Minute - now.Sub(usage.lastRequestTime),
		}
	}

	if rl.requestsPerHour > 0 && usage.requestsLastHour >= rl.requestsPerHour {
		return &RateLimitError{
			Type:       "hour",
			Limit:      rl.requestsPerHour,
			RetryAfter: time.Hour - now.Sub(usage.lastRequestTime),
		}
	}

	return nil
}

// checkDailyQuotas checks daily image and pixel quotas.
func (rl *RateLimiter) checkDailyQuotas(usage *clientUsage, pixels int64, now time.Time) error {
	midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())

	if rl.maxImagesPerDay > 0 && usage.imagesToday >= rl.maxImagesPerDay {
		return &QuotaExceededError{
			Type:   "images",
			Limit:  rl.maxImagesPerDay,
			Used:   usage.imagesToday,
			Resets: midnight,
		}
	}

	if rl.maxPixelsPerDay > 0 && usage.pixelsToday+pixels > rl.maxPixelsPerDay {
		return &QuotaExceededError{
			Type:   "pixels",
			Limit:  rl.maxPixelsPerDay,
			Used:   usage.pixelsToday,
			Resets: midnight,
		}
	}

	return nil
}

// getOrCreateUsage gets or creates usage tracking for a client.
func (rl *RateLimiter) getOrCreateUsage(clientID string, now time.Time) *clientUsage {
	usage, exists := rl.clients[clientID]
	if !exists {
		usage = &clientUsage{
			lastRequestTime: now,
			dayStartTime:    now,
		}
		rl.clients[clientID] = usage
	}
	return usage
}

// RateLimitError represents a rate limit violation.
type RateLimitError struct {
	Type       string        // "minute" or "hour"
	Limit      int           // the limit that was exceeded
	RetryAfter time.Duration // how long to wait before retrying
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded for %s (limit: %d, retry after: %v)", e.Type, e.Limit, e.RetryAfter)
}

// QuotaExceededError represents a daily quota violation.
type QuotaExceededError struct {
	Type   string    // "images" or "pixels"
	Limit  int64     // the limit that was exceeded
	Used   int64     // current usage
	Resets time.Time // when the quota resets
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("quota exceeded for %s (used: %d, limit: %d, resets: %s)",
		e.Type, e.Used, e.Limit, e.Resets.Format(time.RFC3339))
}
