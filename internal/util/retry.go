package util

import (
	"context"
	"fmt"
	"time"
)

// RetryWithBackoff calls fn up to maxRetries+1 times, doubling the delay
// between attempts starting from baseDelay. fn receives the current attempt
// number (0-indexed) and should return nil on success. A cancelled context
// wins over further attempts.
func RetryWithBackoff(ctx context.Context, maxRetries int, baseDelay time.Duration, fn func(attempt int) error) error {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		lastErr = fn(attempt)
		if lastErr == nil {
			return nil
		}
		if attempt == maxRetries {
			break
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		backoff := baseDelay << attempt
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("failed after %d retries: %w", maxRetries, lastErr)
}
