package services

import "time"

// withRetry runs fn up to maxAttempts times, sleeping a little longer after
// each failed attempt. Returns nil on the first success, otherwise the last
// error once the bound is exhausted. Never retries past maxAttempts.
func withRetry(maxAttempts int, backoff time.Duration, fn func() error) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt < maxAttempts {
			time.Sleep(backoff * time.Duration(attempt))
		}
	}
	return err
}
