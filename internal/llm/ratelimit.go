package llm

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/sobiswriter/LegalLM/internal/logger"
)

const (
	// Sustained token budget kept under the provider's published limit
	// to leave safety margin.
	tokensPerSecond = 30000
	burstTokens     = 60000

	// Rough chars-per-token ratio used to estimate a call's cost.
	charsPerToken = 4

	maxRetries     = 5
	baseRetryDelay = 1 * time.Second
	maxRetryDelay  = 32 * time.Second
)

// Shared limiter: all concurrent operations draw from the same budget.
var apiRateLimiter = rate.NewLimiter(rate.Limit(tokensPerSecond), burstTokens)

// estimateTokens converts a prompt length in characters to a token
// estimate for the limiter.
func estimateTokens(chars int) int {
	tokens := chars / charsPerToken
	if tokens < 1 {
		tokens = 1
	}
	if tokens > burstTokens {
		tokens = burstTokens
	}
	return tokens
}

// RateLimitedCall wraps an API call with rate limiting and retry logic.
// It waits for limiter approval before making the call, and retries with
// exponential backoff on rate-limit errors.
func RateLimitedCall[T any](ctx context.Context, estimatedTokens int, log logger.Logger, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	if err := apiRateLimiter.WaitN(ctx, estimatedTokens); err != nil {
		return zero, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(float64(baseRetryDelay) * math.Pow(2, float64(attempt-1)))
			if delay > maxRetryDelay {
				delay = maxRetryDelay
			}
			log.Warn("retrying API call after rate limit (attempt %d/%d, delay %s)", attempt, maxRetries, delay)
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}

		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !isRateLimitError(err) {
			return zero, err
		}
	}

	return zero, fmt.Errorf("exhausted %d retries: %w", maxRetries, lastErr)
}

// isRateLimitError detects provider throttling responses.
func isRateLimitError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "rate limit") || strings.Contains(msg, "rate_limit")
}
