package database

import (
	"context"
	"log/slog"
	"time"

	"github.com/avast/retry-go"
	"github.com/jmoiron/sqlx"
)

// Retrier reruns whole transactions that failed on a race signal.
type Retrier struct {
	Attempts uint
	Delay    time.Duration
}

func NewRetrier(attempts uint) Retrier {
	if attempts == 0 {
		attempts = 1
	}
	return Retrier{Attempts: attempts, Delay: 20 * time.Millisecond}
}

// Do runs fn until it succeeds, fails with a non-retryable error, or the attempts run out.
func (r Retrier) Do(ctx context.Context, name string, fn func() error) error {
	var lastErr error
	err := retry.Do(
		func() error {
			lastErr = fn()
			if lastErr != nil && !IsRetryable(lastErr) {
				return retry.Unrecoverable(lastErr)
			}
			return lastErr
		},
		retry.Context(ctx),
		retry.Attempts(r.Attempts),
		retry.Delay(r.Delay),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
		retry.OnRetry(func(n uint, err error) {
			if n+1 >= r.Attempts {
				slog.Default().Warn("giving up transaction",
					"operation", name,
					"attempts", n+1,
					"error", err,
				)
				return
			}
			slog.Default().Info("retrying transaction",
				"operation", name,
				"attempt", n+1,
				"error", err,
			)
		}),
	)
	if err != nil && lastErr != nil && ctx.Err() == nil {
		return lastErr
	}
	return err
}

// RunInTx runs fn in a transaction and retries the whole transaction on a race signal.
func (r Retrier) RunInTx(ctx context.Context, db *sqlx.DB, name string, fn func(ctx context.Context, tx *sqlx.Tx) error) error {
	return r.Do(ctx, name, func() error {
		return RunInTx(ctx, db, fn)
	})
}
