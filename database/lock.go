package database

import (
	"DentalClinic/utils"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	lockTTL        = 10 * time.Second
	lockMaxRetries = 3
	lockRetryDelay = 2 * time.Second
)

// RedisLocker serializes writes on one key across every API instance.
type RedisLocker struct{}

func NewRedisLocker() *RedisLocker {
	return &RedisLocker{}
}

// Acquire takes the lock, retrying a few times, and returns its release func.
func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	value := uuid.New().String()

	var locked bool
	var err error
	for i := 0; i < lockMaxRetries; i++ {
		locked, err = NewLock(ctx, key, value, lockTTL)
		if err == nil && locked {
			break
		}
		if i < lockMaxRetries-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(lockRetryDelay):
			}
		}
	}
	if !locked {
		if err == nil {
			err = fmt.Errorf("lock %s is held", key)
		}
		return nil, fmt.Errorf("failed to acquire lock after retries: %w", err)
	}

	release := func() {
		// release even when the request context is already cancelled
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := ReleaseLock(releaseCtx, key, value); err != nil {
			utils.Logger.Warn().Err(err).Str("key", key).Msg("failed to release lock")
		}
	}
	return release, nil
}
