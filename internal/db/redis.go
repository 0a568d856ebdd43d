package db

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// New sets up a Redis client from a redis:// URL and verifies it answers a PING.
func New(addr string, poolSize int, connMaxIdleTime string) (*redis.Client, error) {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		return nil, err
	}

	if poolSize > 0 {
		opts.PoolSize = poolSize
	}

	if connMaxIdleTime != "" {
		duration, err := time.ParseDuration(connMaxIdleTime)
		if err != nil {
			return nil, err
		}
		opts.ConnMaxIdleTime = duration
	}

	client := redis.NewClient(opts)

	// Startup fails if the server cannot be reached within this window.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}
