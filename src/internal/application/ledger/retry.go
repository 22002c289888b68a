package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/jackyeh168/giftcard_pos/src/internal/domain/shared"
)

// ===========================
// Retry policy
// ===========================

// RetryPolicy bounds how often a mutating use case re-runs its whole
// transaction after a transient failure (optimistic conflict or
// unavailable store). Delays grow exponentially from BaseDelay and never
// exceed MaxDelay.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultRetryPolicy: 5 attempts, 10ms, 20ms, 40ms, 80ms between them.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 5,
		BaseDelay:   10 * time.Millisecond,
		MaxDelay:    500 * time.Millisecond,
	}
}

func (p RetryPolicy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

func (p RetryPolicy) delay(attempt int) time.Duration {
	d := p.BaseDelay << (attempt - 1)
	if d <= 0 || (p.MaxDelay > 0 && d > p.MaxDelay) {
		return p.MaxDelay
	}
	return d
}

// Run calls op until it succeeds, fails with a non-retryable error, or
// the attempts are used up. Each call of op must be a complete,
// independent transaction.
//
// Exhausted conflicts surface as shared.ErrConflictRetryExhausted; an
// exhausted or cancelled store failure as shared.ErrStoreUnavailable.
func (p RetryPolicy) Run(ctx context.Context, op func() error) error {
	var err error
	limit := p.attempts()

	for attempt := 1; attempt <= limit; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return shared.ErrStoreUnavailable.WithContext("reason", ctxErr.Error(), "attempt", attempt)
		}

		err = op()
		if err == nil || !shared.IsRetryable(err) {
			return err
		}
		if attempt == limit {
			break
		}

		timer := time.NewTimer(p.delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return shared.ErrStoreUnavailable.WithContext("reason", ctx.Err().Error(), "attempt", attempt)
		case <-timer.C:
		}
	}

	if errors.Is(err, shared.ErrConcurrentModification) {
		return shared.ErrConflictRetryExhausted.WithContext("attempts", limit, "last_error", err.Error())
	}
	return err
}
