package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/otp-auth-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_RoundTrip(t *testing.T) {
	_, client := newTestRedis(t)
	q := NewSMSQueue(client, "sms:jobs")
	ctx := context.Background()

	in := domain.SMSJob{
		Task:    domain.TaskSendVerificationSMS,
		Args:    []string{testMobile, "111111"},
		Attempt: 1,
	}
	require.NoError(t, q.Enqueue(ctx, in))

	out, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, in, *out)
}

func TestQueue_FIFOOrder(t *testing.T) {
	_, client := newTestRedis(t)
	q := NewSMSQueue(client, "sms:jobs")
	ctx := context.Background()

	for _, code := range []string{"111111", "222222"} {
		require.NoError(t, q.Enqueue(ctx, domain.SMSJob{
			Task: domain.TaskSendVerificationSMS,
			Args: []string{testMobile, code},
		}))
	}

	first, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "111111", first.Args[1])

	second, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, "222222", second.Args[1])
}

func TestQueue_EmptyTimesOutQuietly(t *testing.T) {
	_, client := newTestRedis(t)
	q := NewSMSQueue(client, "sms:jobs")

	job, err := q.Dequeue(context.Background(), 10*time.Millisecond)
	require.NoError(t, err)
	assert.Nil(t, job)
}
