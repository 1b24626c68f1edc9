// internal/adapters/out/lock/commit_lock_redis.go
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/sirupsen/logrus"

	"canteen/internal/application/usecase"
)

const (
	retryInterval = 100 * time.Millisecond
	maxRetries    = 50
)

// RedisCommitLocker implements usecase.CommitLocker with a Redis lock.
// A waiting commit retries for about five seconds before giving up.
type RedisCommitLocker struct {
	client *redislock.Client
	ttl    time.Duration
	logger logrus.FieldLogger
}

var _ usecase.CommitLocker = (*RedisCommitLocker)(nil)

func NewRedisCommitLocker(rdb redislock.RedisClient, ttl time.Duration, logger logrus.FieldLogger) *RedisCommitLocker {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	l := &RedisCommitLocker{ttl: ttl, logger: logger.WithField("component", "commit_lock")}
	if rdb != nil {
		l.client = redislock.New(rdb)
	}
	return l
}

func (l *RedisCommitLocker) Lock(ctx context.Context, key string) (func(context.Context) error, error) {
	if l == nil || l.client == nil {
		return nil, errors.New("commit lock: redis client is nil")
	}

	lk, err := l.client.Obtain(ctx, key, l.ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(retryInterval), maxRetries),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		l.logger.WithField("key", key).Warn("commit lock busy")
		return nil, usecase.ErrCommitBusy
	}
	if err != nil {
		return nil, fmt.Errorf("commit lock %s: %w", key, err)
	}

	l.logger.WithFields(logrus.Fields{"key": key, "ttl": l.ttl.String()}).Debug("commit lock obtained")
	return func(ctx context.Context) error {
		if err := lk.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			return err
		}
		return nil
	}, nil
}
