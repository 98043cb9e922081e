package retry

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// DefaultEmailPolicy covers transient SMTP failures. Account emails carry
// single-use tokens that stay valid whether or not delivery succeeds, so
// exhausting the retries only logs.
func DefaultEmailPolicy(log *zap.Logger) Policy {
	return Policy{
		Name:     "email",
		Attempts: 4,
		Backoff:  ExpoJitter{Base: 500 * time.Millisecond, Max: 10 * time.Second, Jitter: 0.2},
		Retryable: func(err error) bool {
			return err != nil
		},
		OnAttempt: func(i int, err error) {
			if log != nil {
				log.Warn("email retry", zap.Int("attempt", i+1), zap.Error(err))
			}
		},
		OnExhaust: func(err error) {
			if log != nil && !errors.Is(err, context.Canceled) {
				log.Error("email retries exhausted", zap.Error(err))
			}
		},
	}
}
