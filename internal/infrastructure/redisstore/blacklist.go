package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Blacklist tracks revoked refresh-token jtis. An entry only needs to live as
// long as the token it revokes, so each is stored with the token's remaining
// lifetime as its TTL.
type Blacklist struct {
	client *redis.Client
}

func NewBlacklist(client *redis.Client) *Blacklist {
	return &Blacklist{client: client}
}

func (b *Blacklist) Revoke(ctx context.Context, jti string, remaining time.Duration) error {
	if remaining <= 0 {
		// Token already expired; nothing to track.
		return nil
	}
	if err := b.client.Set(ctx, blacklistKey(jti), "1", remaining).Err(); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}
	return nil
}

func (b *Blacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := b.client.Get(ctx, blacklistKey(jti)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check blacklist: %w", err)
	}
	return true, nil
}

func blacklistKey(jti string) string {
	return "blacklist:" + jti
}
