package notify

import (
	"context"
	"fmt"

	"github.com/otp-auth-api/internal/domain"
)

type jobQueue interface {
	Enqueue(ctx context.Context, job domain.SMSJob) error
}

// Dispatcher publishes verification SMS jobs. Delivery happens out of band in
// the worker; callers only learn whether the job was accepted by the queue.
type Dispatcher struct {
	queue jobQueue
}

func NewDispatcher(queue jobQueue) *Dispatcher {
	return &Dispatcher{queue: queue}
}

func (d *Dispatcher) SendCode(ctx context.Context, mobile, code string) error {
	job := domain.SMSJob{
		Task: domain.TaskSendVerificationSMS,
		Args: []string{mobile, code},
	}
	if err := d.queue.Enqueue(ctx, job); err != nil {
		return fmt.Errorf("dispatch verification sms: %w", err)
	}
	return nil
}
