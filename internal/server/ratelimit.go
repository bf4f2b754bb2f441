package server

import (
	"fmt"
	"sync"
	"time"
)

// RateLimiter enforces per-client request limits using token buckets.
type RateLimiter struct {
	mu sync.Mutex

	requestsPerMinute int
	burst             int

	clients map[string]*clientBucket
}

// clientBucket tracks the token balance for one client.
type clientBucket struct {
	tokens   float64
	lastFill time.Time
}

// NewRateLimiter creates a rate limiter allowing requestsPerMinute
// sustained requests per client with the given burst capacity.
func NewRateLimiter(requestsPerMinute, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		requestsPerMinute: requestsPerMinute,
		burst:             burst,
		clients:           make(map[string]*clientBucket),
	}
}

// Allow consumes one token for the client, or returns a RateLimitError
// when the bucket is empty.
func (rl *RateLimiter) Allow(clientID string) error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	bucket, exists := rl.clients[clientID]
	if !exists {
		bucket = &clientBucket{tokens: float64(rl.burst), lastFill: now}
		rl.clients[clientID] = bucket
	}

	refillPerSecond := float64(rl.requestsPerMinute) / 60.0
	bucket.tokens += now.Sub(bucket.lastFill).Seconds() * refillPerSecond
	if bucket.tokens > float64(rl.burst) {
		bucket.tokens = float64(rl.burst)
	}
	bucket.lastFill = now

	if bucket.tokens < 1 {
		retryAfter := time.Duration((1 - bucket.tokens) / refillPerSecond * float64(time.Second))
		return &RateLimitError{
			Limit:      rl.requestsPerMinute,
			RetryAfter: retryAfter,
		}
	}

	bucket.tokens--
	return nil
}

// RateLimitError represents a rate limit violation.
type RateLimitError struct {
	Limit      int           // sustained requests per minute
	RetryAfter time.Duration // how long to wait before retrying
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded (limit: %d/min, retry after: %v)", e.Limit, e.RetryAfter)
}
