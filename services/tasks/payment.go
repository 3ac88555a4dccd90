package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"homepro/config"
	"homepro/models"

	"github.com/hibiken/asynq"
)

const TypePaymentConfirmed = "payment:confirmed"

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// RedisOpt points asynq at REDIS_QUEUE_DB.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewPaymentConfirmedTask builds the follow-up task for a paid booking.
// The task ID is derived from the booking so a replayed event cannot queue it twice.
func NewPaymentConfirmedTask(payload models.PaymentConfirmedPayload) (*asynq.Task, []asynq.Option, error) {
	if payload.BookingID == "" {
		return nil, nil, errors.New("payment confirmed task needs a booking id")
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypePaymentConfirmed, b)
	opts := []asynq.Option{
		asynq.TaskID(TypePaymentConfirmed + ":" + payload.BookingID),
		asynq.MaxRetry(5),
		asynq.Timeout(30 * time.Second),
	}
	return task, opts, nil
}

// EnqueuePaymentConfirmed queues the task, treating an already-queued task as success.
func EnqueuePaymentConfirmed(ctx context.Context, q Enqueuer, payload models.PaymentConfirmedPayload) error {
	task, opts, err := NewPaymentConfirmedTask(payload)
	if err != nil {
		return err
	}
	if _, err := q.EnqueueContext(ctx, task, opts...); err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
		return fmt.Errorf("enqueue %s: %w", TypePaymentConfirmed, err)
	}
	return nil
}
