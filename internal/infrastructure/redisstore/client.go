package redisstore

import (
	"fmt"

	"github.com/otp-auth-api/internal/config"
	"github.com/redis/go-redis/v9"
)

// NewClient creates a Redis client from the configured connection URL.
func NewClient(cfg *config.Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}
