package notify

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/otp-auth-api/internal/domain"
	"github.com/otp-auth-api/internal/infrastructure/sms"
)

// maxDeliveryAttempts bounds how many times a job cycles through the queue
// before it is dropped. Each cycle runs the in-process retry loop too.
const maxDeliveryAttempts = 3

const dequeueTimeout = 5 * time.Second

type workQueue interface {
	Enqueue(ctx context.Context, job domain.SMSJob) error
	Dequeue(ctx context.Context, timeout time.Duration) (*domain.SMSJob, error)
}

// Worker consumes SMS jobs and delivers them through the configured gateway.
type Worker struct {
	queue  workQueue
	sender sms.Sender
	retry  sms.RetryConfig
}

func NewWorker(queue workQueue, sender sms.Sender) *Worker {
	return &Worker{queue: queue, sender: sender, retry: sms.DefaultRetryConfig()}
}

// Run blocks consuming jobs until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	slog.Info("sms worker started")
	for {
		job, err := w.queue.Dequeue(ctx, dequeueTimeout)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return ctx.Err()
			}
			slog.Error("dequeue failed", "err", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Second):
			}
			continue
		}
		if job == nil {
			continue
		}
		w.process(ctx, job)
	}
}

func (w *Worker) process(ctx context.Context, job *domain.SMSJob) {
	if job.Task != domain.TaskSendVerificationSMS || len(job.Args) < 2 {
		slog.Error("unrecognized sms job", "task", job.Task, "args", len(job.Args))
		return
	}
	mobile, code := job.Args[0], job.Args[1]

	err := sms.Retry(ctx, w.retry, func(ctx context.Context) error {
		return w.sender.SendVerificationCode(ctx, mobile, code)
	})
	if err == nil {
		slog.Info("verification sms delivered", "mobile", mobile, "attempt", job.Attempt)
		return
	}

	job.Attempt++
	if job.Attempt >= maxDeliveryAttempts {
		slog.Error("dropping sms job after repeated failures", "mobile", mobile, "attempts", job.Attempt, "err", err)
		return
	}
	slog.Warn("requeueing sms job", "mobile", mobile, "attempt", job.Attempt, "err", err)
	if qerr := w.queue.Enqueue(ctx, *job); qerr != nil {
		slog.Error("requeue failed, job lost", "mobile", mobile, "err", qerr)
	}
}
