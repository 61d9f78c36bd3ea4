// Package redislock keeps two processes from importing the same export for
// the same organization at once.
package redislock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"attendance-ingest/internal/domain"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

const defaultTTL = 5 * time.Minute

// Locker implements usecase.ImportLocker over a single Redis key per import.
type Locker struct {
	client *redislock.Client
	ttl    time.Duration
}

// NewLocker creates a locker whose locks expire after ttl unless released.
func NewLocker(rdb redis.UniversalClient, ttl time.Duration) *Locker {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Locker{client: redislock.New(rdb), ttl: ttl}
}

// Acquire obtains key without retrying.
func (l *Locker) Acquire(ctx context.Context, key string) (func(context.Context) error, error) {
	lock, err := l.client.Obtain(ctx, key, l.ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%w: %s", domain.ErrImportInProgress, key)
	}
	if err != nil {
		return nil, fmt.Errorf("could not obtain lock %s: %w", key, err)
	}

	return func(ctx context.Context) error {
		if err := lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			return fmt.Errorf("could not release lock %s: %w", key, err)
		}
		return nil
	}, nil
}
