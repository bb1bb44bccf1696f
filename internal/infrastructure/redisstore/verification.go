package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/otp-auth-api/internal/domain"
	"github.com/redis/go-redis/v9"
)

// VerificationStore keeps one outstanding verification code per
// (purpose, mobile) pair. Records expire automatically after the TTL and are
// deleted on successful consumption, so a code validates at most once.
type VerificationStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewVerificationStore(client *redis.Client, ttl time.Duration) *VerificationStore {
	return &VerificationStore{client: client, ttl: ttl}
}

// checkAndConsume compares the stored code with the candidate and deletes the
// key in the same script execution. Two concurrent validations of the same
// code cannot both succeed: the first DEL wins.
var checkAndConsume = redis.NewScript(`
local stored = redis.call("GET", KEYS[1])
if not stored then
	return 0
end
if stored ~= ARGV[1] then
	return 0
end
redis.call("DEL", KEYS[1])
return 1
`)

// Issue writes code under (purpose, mobile) with the configured TTL,
// overwriting any prior unconsumed record and resetting its expiry.
func (s *VerificationStore) Issue(ctx context.Context, purpose domain.Purpose, mobile, code string) error {
	if !purpose.Valid() {
		return fmt.Errorf("unknown verification purpose %q: %w", purpose, domain.ErrBadRequest)
	}
	if err := s.client.Set(ctx, key(purpose, mobile), code, s.ttl).Err(); err != nil {
		return fmt.Errorf("store verification code: %w", err)
	}
	return nil
}

// Check reports whether a non-expired record exists and equals candidate.
// It does not consume the record.
func (s *VerificationStore) Check(ctx context.Context, purpose domain.Purpose, mobile, candidate string) (bool, error) {
	stored, err := s.client.Get(ctx, key(purpose, mobile)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read verification code: %w", err)
	}
	return stored == candidate, nil
}

// CheckAndConsume atomically validates candidate and deletes the record on
// match. Returns false for a wrong candidate and for an expired or absent
// record alike.
func (s *VerificationStore) CheckAndConsume(ctx context.Context, purpose domain.Purpose, mobile, candidate string) (bool, error) {
	ok, err := checkAndConsume.Run(ctx, s.client, []string{key(purpose, mobile)}, candidate).Int()
	if err != nil {
		return false, fmt.Errorf("consume verification code: %w", err)
	}
	return ok == 1, nil
}

// Consume deletes the record. Idempotent if it is already absent.
func (s *VerificationStore) Consume(ctx context.Context, purpose domain.Purpose, mobile string) error {
	if err := s.client.Del(ctx, key(purpose, mobile)).Err(); err != nil {
		return fmt.Errorf("delete verification code: %w", err)
	}
	return nil
}

func key(purpose domain.Purpose, mobile string) string {
	return fmt.Sprintf("otp:%s:%s", purpose, mobile)
}
