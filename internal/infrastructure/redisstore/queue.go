package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/otp-auth-api/internal/domain"
	"github.com/redis/go-redis/v9"
)

// SMSQueue is a Redis-list-backed job queue. The API publishes jobs and the
// worker consumes them; delivery is at-least-once and retry policy lives on
// the consumer side.
type SMSQueue struct {
	client *redis.Client
	key    string
}

func NewSMSQueue(client *redis.Client, key string) *SMSQueue {
	return &SMSQueue{client: client, key: key}
}

// Enqueue publishes a job. Callers do not block on delivery.
func (q *SMSQueue) Enqueue(ctx context.Context, job domain.SMSJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal sms job: %w", err)
	}
	if err := q.client.LPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("enqueue sms job: %w", err)
	}
	return nil
}

// Dequeue blocks up to timeout for the next job. Returns (nil, nil) when the
// wait times out with an empty queue.
func (q *SMSQueue) Dequeue(ctx context.Context, timeout time.Duration) (*domain.SMSJob, error) {
	res, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("dequeue sms job: %w", err)
	}
	// BRPop returns [key, value].
	var job domain.SMSJob
	if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
		return nil, fmt.Errorf("unmarshal sms job: %w", err)
	}
	return &job, nil
}
