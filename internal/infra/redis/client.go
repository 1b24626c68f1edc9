// internal/infra/redis/client.go
package redisinfra

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Params are the connection settings.
type Params struct {
	Addr     string
	Password string
	DB       int
}

// NewClient connects and pings once.
func NewClient(ctx context.Context, p Params, logger logrus.FieldLogger) (*redis.Client, error) {
	addr := strings.TrimSpace(p.Addr)
	if addr == "" {
		return nil, fmt.Errorf("redis: address is empty")
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: p.Password,
		DB:       p.DB,
		PoolSize: 10,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}

	if logger != nil {
		logger.WithFields(logrus.Fields{"addr": addr, "db": p.DB}).Info("redis connected")
	}
	return rdb, nil
}
