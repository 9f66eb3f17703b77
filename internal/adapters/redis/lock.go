package redis

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mvasconcelos/horaculo/pkg/logger"
)

const (
	lockTTL           = 10 * time.Second
	lockRetryInterval = 50 * time.Millisecond
	lockWaitLimit     = 5 * time.Second
)

// Acquire takes a distributed lock on key using the Redlock algorithm and
// returns a release function. Blocks with short retries until the lock is
// held, the wait limit passes, or ctx expires; a Redis outage therefore
// fails the acquisition instead of stalling the request. Implements
// memory.KeyLocker.
func (c *Client) Acquire(ctx context.Context, key string) (func(), error) {
	lockName := fmt.Sprintf("horaculo:lock:%s", key)

	err := waitForLock(ctx, lockWaitLimit, func() (bool, error) {
		expiry, err := c.lockManager.Lock(ctx, lockName, lockTTL)
		return err == nil && expiry > 0, err
	})
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", lockName, err)
	}

	return func() {
		if err := c.lockManager.UnLock(context.Background(), lockName); err != nil {
			logger.Warn("failed to release lock (may have expired)",
				zap.String("lock", lockName),
				zap.Error(err),
			)
		}
	}, nil
}

// waitForLock retries try until it reports success, the wait limit passes,
// or ctx is canceled. The last try error is carried into the failure.
func waitForLock(ctx context.Context, wait time.Duration, try func() (bool, error)) error {
	deadline := time.NewTimer(wait)
	defer deadline.Stop()

	var lastErr error
	for {
		held, err := try()
		if held {
			return nil
		}
		if err != nil {
			lastErr = err
		}

		select {
		case <-time.After(lockRetryInterval):
		case <-deadline.C:
			if lastErr != nil {
				return fmt.Errorf("not acquired within %s: %w", wait, lastErr)
			}
			return fmt.Errorf("not acquired within %s", wait)
		case <-ctx.Done():
			return fmt.Errorf("acquisition aborted: %w", ctx.Err())
		}
	}
}
